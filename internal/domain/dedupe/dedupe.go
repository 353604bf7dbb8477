// Package dedupe tracks the people already placed on a meeting date so no
// one fills two slots the same day.
package dedupe

// Set records names in insertion order. A Set lives for one meeting date
// and is not safe for concurrent use.
type Set struct {
	seen  map[string]struct{}
	order []string
}

// New creates an empty Set.
func New(opts ...Option) *Set {
	s := &Set{}
	for _, opt := range opts {
		opt(s)
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	return s
}

// SeenAndRecord reports whether name was already recorded, recording it if not.
func (s *Set) SeenAndRecord(name string) bool {
	if _, ok := s.seen[name]; ok {
		return true
	}
	s.seen[name] = struct{}{}
	s.order = append(s.order, name)
	return false
}

// Contains reports whether name was recorded.
func (s *Set) Contains(name string) bool {
	_, ok := s.seen[name]
	return ok
}

// Size returns the number of recorded names.
func (s *Set) Size() int {
	return len(s.order)
}

// Names returns the recorded names in insertion order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
