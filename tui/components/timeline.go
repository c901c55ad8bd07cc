package components

import (
	"strings"
)

const (
	fillChar   = '='
	headPaused = '|'
	headPlay   = '>'
	markerChar = '|'
)

// ProgressRow renders the playhead, e.g. "=======>" while playing or
// "=======|" while paused. The head sits at column
// floor(position/duration * (width-1)); with no known duration only the
// head is drawn.
func ProgressRow(positionMs, durationMs int64, paused bool, width int) string {
	if durationMs <= 0 {
		return string(headPaused)
	}
	head := headPlay
	if paused {
		head = headPaused
	}

	filled := int(float64(positionMs) / float64(durationMs) * float64(width-1))
	filled = max(0, min(filled, width-1))
	return strings.Repeat(string(fillChar), filled) + string(head)
}

// MarkRow renders one marker per mark at its column, e.g. "  |   ||      |".
// marks must be sorted ascending. A mark landing on the column of the marker
// just drawn is not drawn again, so dense clusters hide marks.
func MarkRow(marks []int64, durationMs int64, width int) string {
	if durationMs <= 0 || width < 2 {
		return ""
	}

	colWidth := float64(durationMs) / float64(width-1)
	var b strings.Builder
	for _, m := range marks {
		col := min(int(float64(m)/colWidth), width-1)
		if col < b.Len() {
			continue
		}
		b.WriteString(strings.Repeat(" ", col-b.Len()))
		b.WriteByte(markerChar)
	}
	return b.String()
}
