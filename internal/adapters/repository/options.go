package repository

import "github.com/okian/rota/pkg/logger"

// RosterOption applies a configuration option to the RosterLoader.
type RosterOption func(*RosterLoader)

// WithNameColumn sets the header of the person name column.
func WithNameColumn(name string) RosterOption {
	return func(l *RosterLoader) {
		if name != "" {
			l.name = headerKey(name)
		}
	}
}

// WithActiveColumn sets the header of the active flag column.
func WithActiveColumn(name string) RosterOption {
	return func(l *RosterLoader) {
		if name != "" {
			l.active = headerKey(name)
		}
	}
}

// WithGenderColumn sets the header of the gender column.
func WithGenderColumn(name string) RosterOption {
	return func(l *RosterLoader) {
		if name != "" {
			l.gender = headerKey(name)
		}
	}
}

// WithModifierSuffix sets the suffix that marks a weight column.
func WithModifierSuffix(suffix string) RosterOption {
	return func(l *RosterLoader) {
		if suffix != "" {
			l.modSuffix = suffix
		}
	}
}

// WithLogger reports rows the loader drops. Without one they are dropped
// silently.
func WithLogger(l logger.Logger) RosterOption {
	return func(rl *RosterLoader) {
		rl.logger = l
	}
}
