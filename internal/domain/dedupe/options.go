package dedupe

// Option applies a configuration option to the Set.
type Option func(*Set)

// WithCapacity preallocates room for n names (typically the slot count).
func WithCapacity(n int) Option {
	return func(s *Set) {
		if n > 0 && s.seen == nil {
			s.seen = make(map[string]struct{}, n)
			s.order = make([]string, 0, n)
		}
	}
}

// WithNames seeds the set, e.g. with people unavailable on the date.
func WithNames(names ...string) Option {
	return func(s *Set) {
		if s.seen == nil {
			s.seen = make(map[string]struct{}, len(names))
		}
		for _, n := range names {
			if _, ok := s.seen[n]; !ok {
				s.seen[n] = struct{}{}
				s.order = append(s.order, n)
			}
		}
	}
}
