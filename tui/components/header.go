// Package components renders the rows of the marking UI as plain strings.
package components

import (
	"fmt"
	"strings"

	"github.com/user/clark/pkg/timeutil"
)

// MarkStats describes the selected mark for the header.
type MarkStats struct {
	// Selected is the selected mark in milliseconds.
	Selected int64
	// Rank is the 1-based position of Selected among the sorted marks.
	Rank int
	// Count is the number of marks; 0 means there is nothing to show.
	Count int
}

// PlayerTimes renders "position / duration", e.g. "1:30 / 2:45".
func PlayerTimes(positionMs, durationMs int64) string {
	return timeutil.FormatTime(positionMs, false) + " / " + timeutil.FormatTime(durationMs, false)
}

// MarkSummary renders the selected mark and its rank, e.g. "0:03.324      3/10",
// or "0/0" when there are no marks.
func MarkSummary(stats MarkStats) string {
	if stats.Count == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%s      %d/%d", timeutil.FormatTime(stats.Selected, true), stats.Rank, stats.Count)
}

// HeaderRow puts the player times on the left and the mark summary on the
// right of a width-wide row. At least one space separates them.
func HeaderRow(positionMs, durationMs int64, stats MarkStats, width int) string {
	left := PlayerTimes(positionMs, durationMs)
	right := MarkSummary(stats)
	gap := width - len(left) - len(right) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
