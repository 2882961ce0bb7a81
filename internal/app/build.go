package service

import (
	"sort"
	"strings"

	"github.com/okian/skipoints/internal/config"
	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/points"
	"github.com/okian/skipoints/internal/domain/rankpoints"
	"github.com/okian/skipoints/internal/domain/registry"
	"github.com/okian/skipoints/internal/domain/season"
	"github.com/okian/skipoints/internal/domain/timepoints"
	"github.com/okian/skipoints/internal/domain/validation"
)

// components are the domain engines wired from one configuration.
type components struct {
	registry *registry.Registry
	time     *timepoints.Engine
	rank     *rankpoints.Engine
	engine   *points.Engine
}

func buildComponents(cfg *config.Config, opts ...points.Option) components {
	reg := registry.New(registryOptions(cfg)...)

	levels := make(map[model.EventLevel]float64, len(cfg.EventCoefficients))
	for k, v := range cfg.EventCoefficients {
		levels[model.EventLevel(strings.ToUpper(k))] = v
	}
	tiers := make(map[model.CategoryTier]float64, len(cfg.TierCeilings))
	for k, v := range cfg.TierCeilings {
		tiers[model.CategoryTier(strings.ToUpper(k))] = v
	}

	tp := timepoints.New(
		timepoints.WithPenaltyDivisor(cfg.PenaltyDivisor),
		timepoints.WithPenaltySampleSize(cfg.PenaltySampleSize),
		timepoints.WithEventCoefficients(levels),
	)
	rp := rankpoints.New(
		rankpoints.WithTierCeilings(tiers),
		rankpoints.WithCutoffRank(cfg.RankCutoff),
	)

	v := validation.New(reg, sortedKeys(levels), sortedKeys(tiers))
	opts = append([]points.Option{points.WithValidator(v)}, opts...)

	return components{
		registry: reg,
		time:     tp,
		rank:     rp,
		engine:   points.New(reg, tp, rp, opts...),
	}
}

// registryOptions maps per-discipline overrides, keyed by code or alias, to
// registry options. Keys that name no discipline are ignored.
func registryOptions(cfg *config.Config) []registry.Option {
	base := registry.New()
	var opts []registry.Option
	for key, factor := range cfg.TimeFactors {
		if d, err := base.Resolve(model.DisciplineCode(key)); err == nil {
			opts = append(opts, registry.WithTimeFactor(d.Code, factor))
		}
	}
	for key, limit := range cfg.MaxPoints {
		if d, err := base.Resolve(model.DisciplineCode(key)); err == nil {
			opts = append(opts, registry.WithMaxPoints(d.Code, limit))
		}
	}
	return opts
}

func seasonOptions(cfg *config.Config) []season.Option {
	return []season.Option{
		season.WithContinuationRate(cfg.ContinuationRate),
		season.WithBestCount(model.AlpinePoints, cfg.TimeBestCount),
		season.WithBestCount(model.SnowboardAlpinePoints, cfg.TimeBestCount),
		season.WithBestCount(model.SnowboardRankingPoints, cfg.RankingBestCount),
		season.WithBestCount(model.FreestyleRankingPoints, cfg.RankingBestCount),
	}
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
