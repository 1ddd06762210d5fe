package driver

import (
	"path/filepath"
	"sync"
)

// VisitedSet records the canonical paths of every file that has been
// scheduled for parsing. It is shared by all workers of a Driver.
type VisitedSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func NewVisitedSet() *VisitedSet {
	return &VisitedSet{paths: make(map[string]struct{})}
}

// Visit adds path and reports whether it was new. The check and the insert
// happen under one lock, so exactly one caller wins for each path.
func (s *VisitedSet) Visit(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.paths[path]; ok {
		return false
	}
	s.paths[path] = struct{}{}
	return true
}

func (s *VisitedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

// Canonical makes path absolute and resolves symlinks when the file exists,
// so that one file reached through different spellings is visited once.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// resolve interprets an import path relative to the directory of the file
// that contains the import.
func resolve(importer, target string) string {
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(importer), target)
	}
	return Canonical(target)
}
