package guideline

import "fmt"

// Loader reads guidelines from a file path.
type Loader func(path string) ([]Guideline, error)

// Store owns the current guideline Set and the file it came from.
type Store struct {
	set    *Set
	source string
	load   Loader
}

// NewStore returns an empty store using Load, or loader when non-nil.
func NewStore(loader Loader) *Store {
	if loader == nil {
		loader = Load
	}
	return &Store{set: NewSet(nil), load: loader}
}

// Set returns the current guideline set.
func (s *Store) Set() *Set {
	return s.set
}

// Source returns the path of the last successfully loaded file.
func (s *Store) Source() string {
	return s.source
}

// Reload loads path and replaces the current set wholesale.
// On error the previous set is left untouched.
func (s *Store) Reload(path string) error {
	items, err := s.load(path)
	if err != nil {
		return fmt.Errorf("load guidelines %s: %w", path, err)
	}
	s.set = NewSet(items)
	s.source = path
	return nil
}
