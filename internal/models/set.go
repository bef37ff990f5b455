package models

// DependencySet collects dependencies keyed by name, keeping first-declaration
// order. Putting a name again overwrites the earlier entry in place.
type DependencySet struct {
	key   func(string) string
	index map[string]int
	deps  []Dependency
}

// NewDependencySet returns an empty set. key normalizes names for
// comparison; nil compares names verbatim.
func NewDependencySet(key func(string) string) *DependencySet {
	if key == nil {
		key = func(s string) string { return s }
	}
	return &DependencySet{key: key, index: make(map[string]int)}
}

// Put adds d, overwriting any entry with the same key.
func (s *DependencySet) Put(d Dependency) {
	k := s.key(d.Name)
	if i, ok := s.index[k]; ok {
		s.deps[i] = d
		return
	}
	s.index[k] = len(s.deps)
	s.deps = append(s.deps, d)
}

// PutAll adds deps in order.
func (s *DependencySet) PutAll(deps []Dependency) {
	for _, d := range deps {
		s.Put(d)
	}
}

// Len returns the number of distinct dependencies.
func (s *DependencySet) Len() int {
	return len(s.deps)
}

// List returns the dependencies in order. The result is never nil.
func (s *DependencySet) List() []Dependency {
	out := make([]Dependency, len(s.deps))
	copy(out, s.deps)
	return out
}
