// Package validation checks performance records before they are scored.
// It never panics and reports every problem it finds.
package validation

import (
	"math"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/registry"
)

// Resolver maps a discipline code to its scoring system.
type Resolver interface {
	ResolveSystem(code model.DisciplineCode) (registry.ScoringSystem, error)
}

// Validator checks AthletePerformance records against the registry and the
// configured event levels and tiers.
type Validator struct {
	resolver Resolver
	levels   map[model.EventLevel]struct{}
	tiers    map[model.CategoryTier]struct{}
}

// New creates a validator. Empty level or tier lists fall back to A/B/C and
// CATEGORY_1..3.
func New(resolver Resolver, levels []model.EventLevel, tiers []model.CategoryTier) *Validator {
	if len(levels) == 0 {
		levels = []model.EventLevel{model.EventLevelA, model.EventLevelB, model.EventLevelC}
	}
	if len(tiers) == 0 {
		tiers = []model.CategoryTier{model.Category1, model.Category2, model.Category3}
	}
	v := &Validator{
		resolver: resolver,
		levels:   make(map[model.EventLevel]struct{}, len(levels)),
		tiers:    make(map[model.CategoryTier]struct{}, len(tiers)),
	}
	for _, l := range levels {
		v.levels[l] = struct{}{}
	}
	for _, t := range tiers {
		v.tiers[t] = struct{}{}
	}
	return v
}

// Validate returns every problem with p. Valid is true only when Errors is empty.
func (v *Validator) Validate(p model.AthletePerformance) model.ValidationResult {
	var errs []error

	if p.AthleteID == "" {
		errs = append(errs, &model.MissingFieldError{Field: "athlete_id"})
	}
	if p.CompetitionID == "" {
		errs = append(errs, &model.MissingFieldError{Field: "competition_id"})
	}
	if p.CompetitionDate.IsZero() {
		errs = append(errs, &model.MissingFieldError{Field: "competition_date"})
	}

	if p.Discipline == "" {
		errs = append(errs, &model.MissingFieldError{Field: "discipline"})
		return result(errs)
	}
	sys, err := v.resolver.ResolveSystem(p.Discipline)
	if err != nil {
		errs = append(errs, err)
		return result(errs)
	}

	switch sys.(type) {
	case registry.TimeBased:
		errs = append(errs, v.timeErrors(p)...)
	case registry.RankingBased:
		errs = append(errs, v.rankingErrors(p)...)
	}
	return result(errs)
}

func (v *Validator) timeErrors(p model.AthletePerformance) []error {
	var errs []error
	athleteOK := checkPositive(&errs, "athlete_time", p.AthleteTime)
	referenceOK := checkPositive(&errs, "reference_time", p.ReferenceTime)
	if athleteOK && referenceOK && p.AthleteTime < p.ReferenceTime {
		errs = append(errs, &model.InvalidTimeError{
			Field:  "athlete_time",
			Value:  p.AthleteTime,
			Reason: "faster than reference time",
		})
	}

	switch {
	case p.EventLevel == "":
		errs = append(errs, &model.MissingFieldError{Field: "event_level"})
	case !v.hasLevel(p.EventLevel):
		errs = append(errs, &model.UnknownEventLevelError{Level: p.EventLevel})
	}
	return errs
}

func (v *Validator) rankingErrors(p model.AthletePerformance) []error {
	var errs []error
	if p.Rank < 1 {
		errs = append(errs, &model.InvalidRankError{Rank: p.Rank})
	}
	switch {
	case p.Tier == "":
		errs = append(errs, &model.MissingFieldError{Field: "category_tier"})
	case !v.hasTier(p.Tier):
		errs = append(errs, &model.UnknownTierError{Tier: p.Tier})
	}
	return errs
}

func (v *Validator) hasLevel(l model.EventLevel) bool {
	_, ok := v.levels[l]
	return ok
}

func (v *Validator) hasTier(t model.CategoryTier) bool {
	_, ok := v.tiers[t]
	return ok
}

func checkPositive(errs *[]error, field string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		*errs = append(*errs, &model.InvalidTimeError{Field: field, Value: value, Reason: "must be positive"})
		return false
	}
	return true
}

func result(errs []error) model.ValidationResult {
	return model.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
