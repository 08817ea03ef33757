package guideline

import "strings"

// Set is an ordered guideline list with a selection flag per entry.
// It replaces the process-wide checkbox bindings of a desktop front-end.
type Set struct {
	items    []Guideline
	selected []bool
}

// NewSet returns a set with every guideline selected.
func NewSet(items []Guideline) *Set {
	set := &Set{}
	set.Replace(items)
	return set
}

// Replace swaps in a new guideline list, selecting every entry.
func (s *Set) Replace(items []Guideline) {
	s.items = append([]Guideline(nil), items...)
	s.selected = make([]bool, len(items))
	for i := range s.selected {
		s.selected[i] = true
	}
}

// Len returns the number of guidelines.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the guideline at index i.
func (s *Set) At(i int) Guideline {
	return s.items[i]
}

// All returns a copy of every guideline in load order.
func (s *Set) All() []Guideline {
	if s == nil {
		return nil
	}
	return append([]Guideline(nil), s.items...)
}

// IsSelected reports whether the guideline at index i is selected.
func (s *Set) IsSelected(i int) bool {
	if s == nil || i < 0 || i >= len(s.selected) {
		return false
	}
	return s.selected[i]
}

// SetSelected changes the selection of the guideline at index i.
func (s *Set) SetSelected(i int, selected bool) {
	if s == nil || i < 0 || i >= len(s.selected) {
		return
	}
	s.selected[i] = selected
}

// Toggle flips the selection of the guideline at index i.
func (s *Set) Toggle(i int) {
	s.SetSelected(i, !s.IsSelected(i))
}

// SelectAll sets every selection flag to selected.
func (s *Set) SelectAll(selected bool) {
	if s == nil {
		return
	}
	for i := range s.selected {
		s.selected[i] = selected
	}
}

// SelectOnly selects the guidelines whose titles match (case-insensitively)
// and returns the titles that matched nothing.
func (s *Set) SelectOnly(titles []string) []string {
	if s == nil {
		return titles
	}
	wanted := make(map[string]bool, len(titles))
	for _, title := range titles {
		wanted[FoldExist(title)] = false
	}
	for i, item := range s.items {
		key := FoldExist(item.Title)
		_, ok := wanted[key]
		s.selected[i] = ok
		if ok {
			wanted[key] = true
		}
	}
	var unknown []string
	for _, title := range titles {
		if !wanted[FoldExist(title)] {
			unknown = append(unknown, strings.TrimSpace(title))
		}
	}
	return unknown
}

// Selected returns the selected guidelines in load order.
func (s *Set) Selected() []Guideline {
	if s == nil {
		return nil
	}
	out := make([]Guideline, 0, len(s.items))
	for i, item := range s.items {
		if s.selected[i] {
			out = append(out, item)
		}
	}
	return out
}
