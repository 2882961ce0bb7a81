// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// WorkerCount sets the number of batch workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory batch job queue.
	QueueSize int `koanf:"queue_size"`

	// PenaltyDivisor divides the field-strength sum (sumA + sumB - sumC).
	PenaltyDivisor float64 `koanf:"penalty_divisor"`

	// PenaltySampleSize is how many best values each penalty sum takes.
	PenaltySampleSize int `koanf:"penalty_sample_size"`

	// ContinuationRate is the share of season points carried to next season.
	ContinuationRate float64 `koanf:"continuation_rate"`

	// TimeBestCount and RankingBestCount set how many results count per season.
	TimeBestCount    int `koanf:"time_best_count"`
	RankingBestCount int `koanf:"ranking_best_count"`

	// RankCutoff is the last rank that earns ranking points.
	RankCutoff int `koanf:"rank_cutoff"`

	// EventCoefficients maps event levels (A, B, C) to multipliers.
	EventCoefficients map[string]float64 `koanf:"event_coefficients"`

	// TierCeilings maps category tiers to the winner's points.
	TierCeilings map[string]float64 `koanf:"tier_ceilings"`

	// TimeFactors and MaxPoints override per-discipline constants, keyed by
	// discipline code or alias. Empty maps keep the rulebook values.
	TimeFactors map[string]float64 `koanf:"time_factors"`
	MaxPoints   map[string]float64 `koanf:"max_points"`
}

// New creates a Config with the rulebook defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		WorkerCount:       runtime.NumCPU() * 2,
		QueueSize:         1024,
		PenaltyDivisor:    10,
		PenaltySampleSize: 5,
		ContinuationRate:  0.5,
		TimeBestCount:     2,
		RankingBestCount:  5,
		RankCutoff:        30,
		EventCoefficients: map[string]float64{
			"A": 1.0,
			"B": 0.6,
			"C": 0.3,
		},
		TierCeilings: map[string]float64{
			"CATEGORY_1": 360,
			"CATEGORY_2": 240,
			"CATEGORY_3": 120,
		},
		TimeFactors: map[string]float64{},
		MaxPoints:   map[string]float64{},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.PenaltyDivisor <= 0:
		return fmt.Errorf("%w: penalty_divisor must be positive, got %v", ErrInvalidConfig, c.PenaltyDivisor)
	case c.PenaltySampleSize < 1:
		return fmt.Errorf("%w: penalty_sample_size must be at least 1, got %d", ErrInvalidConfig, c.PenaltySampleSize)
	case c.ContinuationRate <= 0 || c.ContinuationRate > 1:
		return fmt.Errorf("%w: continuation_rate must be in (0, 1], got %v", ErrInvalidConfig, c.ContinuationRate)
	case c.TimeBestCount < 1 || c.RankingBestCount < 1:
		return fmt.Errorf("%w: best counts must be at least 1", ErrInvalidConfig)
	case c.RankCutoff < 1:
		return fmt.Errorf("%w: rank_cutoff must be at least 1, got %d", ErrInvalidConfig, c.RankCutoff)
	case c.QueueSize < 0:
		return fmt.Errorf("%w: queue_size must not be negative, got %d", ErrInvalidConfig, c.QueueSize)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}

	for name, table := range map[string]map[string]float64{
		"event_coefficients": c.EventCoefficients,
		"tier_ceilings":      c.TierCeilings,
		"time_factors":       c.TimeFactors,
		"max_points":         c.MaxPoints,
	} {
		for key, v := range table {
			if v <= 0 {
				return fmt.Errorf("%w: %s[%s] must be positive, got %v", ErrInvalidConfig, name, key, v)
			}
		}
	}
	return nil
}
