// Package points is the single entry point for scoring a performance. It
// resolves the discipline, validates the record and dispatches to the
// time-based or ranking-based engine.
package points

import (
	"fmt"
	"sort"
	"time"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/rankpoints"
	"github.com/okian/skipoints/internal/domain/registry"
	"github.com/okian/skipoints/internal/domain/timepoints"
	"github.com/okian/skipoints/internal/domain/validation"
)

// Validator checks a performance before it is scored.
type Validator interface {
	Validate(p model.AthletePerformance) model.ValidationResult
}

// Engine dispatches performances to the scoring system of their discipline.
// It keeps no mutable state and is safe for concurrent use.
type Engine struct {
	registry  *registry.Registry
	time      *timepoints.Engine
	rank      *rankpoints.Engine
	validator Validator
	now       func() time.Time
}

// New creates a dispatcher over the given registry and engines.
func New(reg *registry.Registry, tp *timepoints.Engine, rp *rankpoints.Engine, opts ...Option) *Engine {
	e := &Engine{
		registry:  reg,
		time:      tp,
		rank:      rp,
		validator: validation.New(reg, nil, nil),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ResolveSystem returns the scoring system of a discipline.
func (e *Engine) ResolveSystem(code model.DisciplineCode) (registry.ScoringSystem, error) {
	sys, err := e.registry.ResolveSystem(code)
	if err != nil {
		return nil, fmt.Errorf("resolve system: %w", err)
	}
	return sys, nil
}

// ComputePoints scores one performance.
func (e *Engine) ComputePoints(p model.AthletePerformance) (model.PointsResult, error) {
	d, err := e.registry.Resolve(p.Discipline)
	if err != nil {
		return model.PointsResult{}, err
	}

	if res := e.validator.Validate(p); !res.Valid {
		return model.PointsResult{}, fmt.Errorf("%w: %w", model.ErrValidation, res.Errors[0])
	}

	out := model.PointsResult{
		AthleteID:       p.AthleteID,
		Discipline:      d.Code,
		CompetitionID:   p.CompetitionID,
		CompetitionDate: p.CompetitionDate,
		System:          d.System.SystemType(),
		Direction:       d.System.Direction(),
		CalculatedAt:    e.now(),
	}

	switch sys := d.System.(type) {
	case registry.TimeBased:
		o, err := e.time.Compute(timepoints.Input{
			Factor:        sys.Factor,
			MaxPoints:     sys.MaxPoints,
			AthleteTime:   p.AthleteTime,
			ReferenceTime: p.ReferenceTime,
			EventLevel:    p.EventLevel,
			Field:         p.Field,
		})
		if err != nil {
			return model.PointsResult{}, err
		}
		out.Points = o.Points
		out.Breakdown = model.TimeBreakdown{
			Factor:           sys.Factor,
			BaseRacePoints:   o.Base,
			Penalty:          o.Penalty,
			EventLevel:       p.EventLevel,
			EventCoefficient: o.Coefficient,
			RawPoints:        o.Raw,
			MaxPoints:        sys.MaxPoints,
			Capped:           o.Capped,
		}
	case registry.RankingBased:
		pts, err := e.rank.PointsForRank(p.Rank, p.Tier)
		if err != nil {
			return model.PointsResult{}, err
		}
		ceiling, _ := e.rank.Ceiling(p.Tier)
		pct, _ := e.rank.Percentage(p.Rank)
		out.Points = pts
		out.Breakdown = model.RankingBreakdown{
			Tier:           p.Tier,
			Rank:           p.Rank,
			TierCeiling:    ceiling,
			RankPercentage: pct,
		}
	default:
		return model.PointsResult{}, fmt.Errorf("unsupported scoring system %T", sys)
	}
	return out, nil
}

// ComputeBatch scores performances sequentially. results has the length of
// ps and keeps its order; failed slots hold zero values and are reported in
// a *model.BatchError.
func (e *Engine) ComputeBatch(ps []model.AthletePerformance) ([]model.PointsResult, error) {
	results := make([]model.PointsResult, len(ps))
	var failed []*model.ItemError
	for i, p := range ps {
		r, err := e.ComputePoints(p)
		if err != nil {
			failed = append(failed, &model.ItemError{Index: i, Err: err})
			continue
		}
		results[i] = r
	}
	if len(failed) > 0 {
		return results, &model.BatchError{Items: failed}
	}
	return results, nil
}

// ComputeRace scores every finisher of one race from the full field
// snapshot. Results are ordered best first. Entries that cannot be scored
// are reported by entry index in a *model.BatchError.
func (e *Engine) ComputeRace(race model.Race) ([]model.PointsResult, error) {
	d, err := e.registry.Resolve(race.Discipline)
	if err != nil {
		return nil, err
	}

	var perfs []indexed
	var failed []*model.ItemError
	switch sys := d.System.(type) {
	case registry.TimeBased:
		perfs, failed = e.timeRace(race, sys)
	case registry.RankingBased:
		perfs = rankingRace(race)
	}

	results := make([]model.PointsResult, 0, len(perfs))
	for _, ip := range perfs {
		r, err := e.ComputePoints(ip.perf)
		if err != nil {
			failed = append(failed, &model.ItemError{Index: ip.index, Err: err})
			continue
		}
		results = append(results, r)
	}

	dir := d.System.Direction()
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Points != results[j].Points {
			return dir.Better(results[i].Points, results[j].Points)
		}
		return results[i].AthleteID < results[j].AthleteID
	})

	if len(failed) > 0 {
		sort.Slice(failed, func(i, j int) bool { return failed[i].Index < failed[j].Index })
		return results, &model.BatchError{Items: failed}
	}
	return results, nil
}

type indexed struct {
	index int
	perf  model.AthletePerformance
}

func (e *Engine) timeRace(race model.Race, sys registry.TimeBased) ([]indexed, []*model.ItemError) {
	ref := race.ReferenceTime
	if ref <= 0 {
		ref = fastest(race.Entries)
	}

	var failed []*model.ItemError
	field := make([]timepoints.FieldEntry, 0, len(race.Entries))
	perfs := make([]indexed, 0, len(race.Entries))
	for i, en := range race.Entries {
		base, err := e.time.Base(en.Time, ref, sys.Factor)
		if err != nil {
			failed = append(failed, &model.ItemError{Index: i, Err: err})
			continue
		}
		field = append(field, timepoints.FieldEntry{BasePoints: base, PrePoints: en.PrePoints})
		perfs = append(perfs, indexed{index: i, perf: model.AthletePerformance{
			AthleteID:       en.AthleteID,
			Discipline:      race.Discipline,
			CompetitionID:   race.CompetitionID,
			CompetitionDate: race.CompetitionDate,
			AthleteTime:     en.Time,
			ReferenceTime:   ref,
			EventLevel:      race.EventLevel,
		}})
	}

	// The penalty needs every base value, so it is derived once per race.
	fs := e.time.FieldPenalty(field)
	for i := range perfs {
		perfs[i].perf.Field = &fs
	}
	return perfs, failed
}

// rankingRace ranks a judged field by score when no entry carries a rank.
// Supplied ranks are kept as given; an entry left without one then fails
// validation on its own.
func rankingRace(race model.Race) []indexed {
	ranks := make([]int, len(race.Entries))
	ranked := false
	for i, en := range race.Entries {
		ranks[i] = en.Rank
		if en.Rank != 0 {
			ranked = true
		}
	}
	if !ranked {
		ranks = ranksByScore(race.Entries)
	}

	perfs := make([]indexed, len(race.Entries))
	for i, en := range race.Entries {
		perfs[i] = indexed{index: i, perf: model.AthletePerformance{
			AthleteID:       en.AthleteID,
			Discipline:      race.Discipline,
			CompetitionID:   race.CompetitionID,
			CompetitionDate: race.CompetitionDate,
			Rank:            ranks[i],
			Tier:            race.Tier,
			FinalScore:      en.Score,
		}}
	}
	return perfs
}

// ranksByScore assigns competition ranks (1, 1, 3) by descending score.
func ranksByScore(entries []model.RaceEntry) []int {
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return entries[order[a]].Score > entries[order[b]].Score })

	ranks := make([]int, len(entries))
	for pos, idx := range order {
		if pos > 0 && entries[idx].Score == entries[order[pos-1]].Score {
			ranks[idx] = ranks[order[pos-1]]
			continue
		}
		ranks[idx] = pos + 1
	}
	return ranks
}

func fastest(entries []model.RaceEntry) float64 {
	best := 0.0
	for _, en := range entries {
		if en.Time > 0 && (best == 0 || en.Time < best) {
			best = en.Time
		}
	}
	return best
}
