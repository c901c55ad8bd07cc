package timeutil

import (
	"fmt"
)

// FormatTime formats a millisecond offset as M:SS, or H:MM:SS once an hour
// has elapsed (e.g. 1:05, 1:01:01). Hours are not padded.
// With showSubsecond the milliseconds are appended as .mmm (e.g. 0:01.500).
func FormatTime(ms int64, showSubsecond bool) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60

	var s string
	if hours > 0 {
		s = fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	} else {
		s = fmt.Sprintf("%d:%02d", mins, secs)
	}
	if showSubsecond {
		s += fmt.Sprintf(".%03d", ms%1000)
	}
	return s
}

// FormatSeconds renders milliseconds as seconds with millisecond precision
// (12345 -> "12.345"), the form ffmpeg accepts for -ss and -to.
func FormatSeconds(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}
