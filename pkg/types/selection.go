package types

import "path/filepath"

// Selection is an ordered set of user-picked paths. Order is insertion
// order, which is also the order files appear in the output. Paths are
// cleaned on insert so the same entry picked twice stays one entry.
type Selection struct {
	paths []string
	index map[string]int
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{index: make(map[string]int)}
}

// Add appends a path unless it is already selected.
func (s *Selection) Add(path string) {
	path = filepath.Clean(path)
	if _, ok := s.index[path]; ok {
		return
	}
	s.index[path] = len(s.paths)
	s.paths = append(s.paths, path)
}

// Remove drops a path from the selection, preserving the order of the rest.
func (s *Selection) Remove(path string) {
	path = filepath.Clean(path)
	pos, ok := s.index[path]
	if !ok {
		return
	}
	s.paths = append(s.paths[:pos], s.paths[pos+1:]...)
	delete(s.index, path)
	for i := pos; i < len(s.paths); i++ {
		s.index[s.paths[i]] = i
	}
}

// Contains reports whether a path is selected.
func (s *Selection) Contains(path string) bool {
	_, ok := s.index[filepath.Clean(path)]
	return ok
}

// Paths returns the selected paths in insertion order. The returned slice is
// a copy.
func (s *Selection) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// Len returns the number of selected paths.
func (s *Selection) Len() int {
	return len(s.paths)
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	return len(s.paths) == 0
}

// Clear removes every path from the selection.
func (s *Selection) Clear() {
	s.paths = nil
	s.index = make(map[string]int)
}
