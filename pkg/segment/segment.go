package segment

import (
	"errors"
	"fmt"
	"slices"

	"github.com/user/clark/pkg/timeutil"
)

// Mode selects how marks are turned into cut ranges.
type Mode int

const (
	// ModeNone exports nothing.
	ModeNone Mode = iota
	// ModeSplit cuts at every mark: before the first, between each pair, after the last.
	ModeSplit
	// ModeTrim keeps only what lies between exactly two marks.
	ModeTrim
)

// String returns the mode name used on the command line and in history.
func (m Mode) String() string {
	switch m {
	case ModeSplit:
		return "split"
	case ModeTrim:
		return "trim"
	default:
		return "none"
	}
}

// ErrTrimCount is returned when trim is asked for with a mark count other than 2.
var ErrTrimCount = errors.New("--trim requires exactly 2 timestamps")

// Range is one segment to cut, in milliseconds. When ToEnd is set the segment
// runs to the end of the file and End is ignored.
type Range struct {
	Start int64
	End   int64
	ToEnd bool
}

// StartSeconds returns Start as seconds.milliseconds.
func (r Range) StartSeconds() string {
	return timeutil.FormatSeconds(r.Start)
}

// EndSeconds returns End as seconds.milliseconds, or "" for a range that
// runs to the end of the file.
func (r Range) EndSeconds() string {
	if r.ToEnd {
		return ""
	}
	return timeutil.FormatSeconds(r.End)
}

// String renders the range for logs and reports, e.g. "1.000-5.000" or "5.000-end".
func (r Range) String() string {
	end := r.EndSeconds()
	if end == "" {
		end = "end"
	}
	return r.StartSeconds() + "-" + end
}

// Plan computes the cut ranges for marks, in ascending order.
//
// Split yields k+1 ranges for k marks (none when there are no marks).
// Trim yields the single range between the two marks and fails with
// ErrTrimCount for any other count.
func Plan(marks []int64, mode Mode) ([]Range, error) {
	sorted := slices.Clone(marks)
	slices.Sort(sorted)

	switch mode {
	case ModeSplit:
		if len(sorted) == 0 {
			return nil, nil
		}
		ranges := make([]Range, 0, len(sorted)+1)
		var start int64
		for _, m := range sorted {
			ranges = append(ranges, Range{Start: start, End: m})
			start = m
		}
		return append(ranges, Range{Start: start, ToEnd: true}), nil

	case ModeTrim:
		if len(sorted) != 2 {
			return nil, fmt.Errorf("%w, got %d", ErrTrimCount, len(sorted))
		}
		return []Range{{Start: sorted[0], End: sorted[1]}}, nil

	default:
		return nil, nil
	}
}
