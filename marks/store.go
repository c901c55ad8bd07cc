// Package marks holds the timestamps marked during a session.
//
// Marks are stored in insertion order, which is also the order deletion
// works in. Display and navigation reason about the value-sorted view, which
// is always derived from storage on demand. The selection is an insertion
// index that is re-resolved from a value whenever navigation jumps to a mark.
package marks

import "slices"

// noSelection is the sentinel for an absent selection.
const noSelection = -1

// Store is the ordered set of marks plus the selected mark.
// It is not safe for concurrent use; the UI loop owns it.
type Store struct {
	marks    []int64
	selected int
}

// New returns an empty store with nothing selected.
func New() *Store {
	return &Store{selected: noSelection}
}

// Mark appends positionMs and selects it. It returns the new insertion index.
func (s *Store) Mark(positionMs int64) int {
	s.marks = append(s.marks, positionMs)
	s.selected = len(s.marks) - 1
	return s.selected
}

// Delete removes the selected mark and selects its insertion-order
// predecessor (clamped to 0), or nothing once the store is empty.
// Without a selection it is a no-op and reports false.
func (s *Store) Delete() (int64, bool) {
	if s.selected == noSelection {
		return 0, false
	}
	i := s.selected
	removed := s.marks[i]
	s.marks = slices.Delete(s.marks, i, i+1)

	if len(s.marks) == 0 {
		s.selected = noSelection
	} else {
		s.selected = max(i-1, 0)
	}
	return removed, true
}

// Sorted returns the marks in ascending order. The result is a fresh slice.
func (s *Store) Sorted() []int64 {
	sorted := slices.Clone(s.marks)
	slices.Sort(sorted)
	return sorted
}

// NearestAbove returns the smallest mark strictly greater than value.
func (s *Store) NearestAbove(value int64) (int64, bool) {
	for _, m := range s.Sorted() {
		if m > value {
			return m, true
		}
	}
	return 0, false
}

// NearestBelow returns the largest mark strictly less than value.
func (s *Store) NearestBelow(value int64) (int64, bool) {
	sorted := s.Sorted()
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] < value {
			return sorted[i], true
		}
	}
	return 0, false
}

// SelectValue selects the first mark in insertion order equal to value.
// It reports false and leaves the selection alone when no mark matches.
func (s *Store) SelectValue(value int64) bool {
	i := slices.Index(s.marks, value)
	if i < 0 {
		return false
	}
	s.selected = i
	return true
}

// Selected returns the insertion index of the selected mark.
func (s *Store) Selected() (int, bool) {
	if s.selected == noSelection {
		return 0, false
	}
	return s.selected, true
}

// SelectedMark returns the value of the selected mark.
func (s *Store) SelectedMark() (int64, bool) {
	if s.selected == noSelection {
		return 0, false
	}
	return s.marks[s.selected], true
}

// RankOfSelected returns the 1-based rank of the selected mark within the
// sorted view and the total mark count, or (0, 0) without a selection.
func (s *Store) RankOfSelected() (rank, count int) {
	v, ok := s.SelectedMark()
	if !ok {
		return 0, 0
	}
	return slices.Index(s.Sorted(), v) + 1, len(s.marks)
}

// Len returns the number of marks.
func (s *Store) Len() int {
	return len(s.marks)
}

// Marks returns a copy of the marks in insertion order.
func (s *Store) Marks() []int64 {
	return slices.Clone(s.marks)
}
