package selection

import "io"

// Option applies a configuration option to the Protocol.
type Option func(*Protocol)

// WithOutput sets where candidate lists and messages are written.
func WithOutput(w io.Writer) Option {
	return func(p *Protocol) {
		if w != nil {
			p.out = w
		}
	}
}

// WithHistory enables the grouped-record lines for grouped roles.
func WithHistory(h History) Option {
	return func(p *Protocol) {
		p.history = h
	}
}

// WithRecentLimit bounds the grouped records shown per candidate.
func WithRecentLimit(n int) Option {
	return func(p *Protocol) {
		if n >= 0 {
			p.recentLimit = n
		}
	}
}

// WithRecorder sets the sink for rejected answers.
func WithRecorder(r Recorder) Option {
	return func(p *Protocol) {
		if r != nil {
			p.recorder = r
		}
	}
}
