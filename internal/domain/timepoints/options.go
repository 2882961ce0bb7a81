package timepoints

import "github.com/okian/skipoints/internal/domain/model"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithPenaltyDivisor sets the divisor of the field-strength formula.
func WithPenaltyDivisor(divisor float64) Option {
	return func(e *Engine) {
		if divisor > 0 {
			e.penaltyDivisor = divisor
		}
	}
}

// WithPenaltySampleSize sets how many best values each penalty sum takes.
func WithPenaltySampleSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.sampleSize = n
		}
	}
}

// WithEventCoefficients replaces the event-level coefficient table.
func WithEventCoefficients(coefficients map[model.EventLevel]float64) Option {
	return func(e *Engine) {
		if len(coefficients) == 0 {
			return
		}
		// Copy the table to avoid external modifications
		e.coefficients = make(map[model.EventLevel]float64, len(coefficients))
		for level, c := range coefficients {
			if c > 0 {
				e.coefficients[level] = c
			}
		}
	}
}
