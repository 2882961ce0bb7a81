package rankpoints

import "github.com/okian/skipoints/internal/domain/model"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTierCeilings replaces the points awarded to the winner of each tier.
func WithTierCeilings(ceilings map[model.CategoryTier]float64) Option {
	return func(e *Engine) {
		if len(ceilings) == 0 {
			return
		}
		e.ceilings = make(map[model.CategoryTier]float64, len(ceilings))
		for tier, c := range ceilings {
			if c > 0 {
				e.ceilings[tier] = c
			}
		}
	}
}

// WithCutoffRank sets the last rank that still scores. Ranks beyond it earn zero.
func WithCutoffRank(rank int) Option {
	return func(e *Engine) {
		if rank > 0 {
			e.cutoff = rank
		}
	}
}
