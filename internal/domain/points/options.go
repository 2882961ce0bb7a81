package points

import "time"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClock sets the time source stamped on results.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithValidator replaces the default validator.
func WithValidator(v Validator) Option {
	return func(e *Engine) {
		if v != nil {
			e.validator = v
		}
	}
}
