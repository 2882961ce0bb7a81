package season

import (
	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/registry"
)

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithContinuationRate sets the share of season points carried into the
// next season's baseline.
func WithContinuationRate(rate float64) Option {
	return func(a *Aggregator) {
		if rate > 0 && rate <= 1 {
			a.continuationRate = rate
		}
	}
}

// WithBestCount sets how many best results count for a scoring system.
func WithBestCount(system model.SystemType, n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.bestCount[system] = n
		}
	}
}

// WithDefaultBaseline sets the baseline used when a lower-is-better record
// carries none.
func WithDefaultBaseline(fn func(registry.Discipline) float64) Option {
	return func(a *Aggregator) {
		if fn != nil {
			a.defaultBaseline = fn
		}
	}
}
