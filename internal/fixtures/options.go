package fixtures

import "time"

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random source. Equal seeds produce equal fixtures.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithAthletes sets the size of the athlete pool.
func WithAthletes(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.athletes = n
		}
	}
}

// WithSeasonStart sets the date of the first race.
func WithSeasonStart(t time.Time) Option {
	return func(g *Generator) {
		if !t.IsZero() {
			g.start = t
		}
	}
}

// WithSeason sets the season label stamped on records.
func WithSeason(label string) Option {
	return func(g *Generator) {
		if label != "" {
			g.season = label
		}
	}
}
