package service

import (
	"io"

	"github.com/okian/rota/internal/domain/roles"
	"github.com/okian/rota/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithNormalizer sets the role grouping.
func WithNormalizer(n *roles.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.roles = n
		}
	}
}

// WithPlanner sets the meeting structure.
func WithPlanner(p Planner) Option {
	return func(s *Service) {
		if p != nil {
			s.planner = p
		}
	}
}

// WithPrompter sets where operator answers come from.
func WithPrompter(p Prompter) Option {
	return func(s *Service) {
		if p != nil {
			s.prompter = p
		}
	}
}

// WithOutput sets where lists and messages are written.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithStore sets the ledger store checkpointed after every date.
func WithStore(store Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSink sets where the final table is written.
func WithSink(sink Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithOverflow enables the auxiliary room question.
func WithOverflow(enabled bool) Option {
	return func(s *Service) {
		s.overflow = enabled
	}
}

// WithEmptySkips accepts a bare Enter at the candidate list as a skip.
func WithEmptySkips(enabled bool) Option {
	return func(s *Service) {
		s.emptySkips = enabled
	}
}

// WithRecentLimit bounds the grouped records shown per candidate.
func WithRecentLimit(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.recentLimit = n
		}
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}
