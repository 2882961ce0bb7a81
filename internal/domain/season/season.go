// Package season folds an athlete's race results into season points and the
// baseline carried into the next season.
//
// Lower-is-better systems average the best results and fall back on the
// baseline when data is sparse. Higher-is-better systems sum the best
// results and carry nothing over.
package season

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/skipoints/internal/domain/dedupe"
	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/registry"
	"github.com/okian/skipoints/internal/domain/rounding"
)

// Default aggregation configuration constants.
const (
	defaultContinuationRate = 0.5
	defaultTimeBestCount    = 2
	defaultRankingBestCount = 5
)

// Scorer computes the points of one performance.
type Scorer interface {
	ComputePoints(p model.AthletePerformance) (model.PointsResult, error)
}

// Resolver looks up a discipline.
type Resolver interface {
	Resolve(code model.DisciplineCode) (registry.Discipline, error)
}

// Aggregator computes season summaries. It is safe for concurrent use.
type Aggregator struct {
	scorer           Scorer
	resolver         Resolver
	continuationRate float64
	bestCount        map[model.SystemType]int
	defaultBaseline  func(registry.Discipline) float64
}

// New creates an aggregator with rulebook defaults and options.
func New(scorer Scorer, resolver Resolver, opts ...Option) *Aggregator {
	a := &Aggregator{
		scorer:           scorer,
		resolver:         resolver,
		continuationRate: defaultContinuationRate,
		bestCount: map[model.SystemType]int{
			model.AlpinePoints:           defaultTimeBestCount,
			model.SnowboardAlpinePoints:  defaultTimeBestCount,
			model.SnowboardRankingPoints: defaultRankingBestCount,
			model.FreestyleRankingPoints: defaultRankingBestCount,
		},
		defaultBaseline: maxPointsBaseline,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Prepared holds the performances of one season record that still need
// scoring. Indices maps each of them back into rec.Performances.
type Prepared struct {
	Performances      []model.AthletePerformance
	Indices           []int
	Failed            []*model.ItemError
	DuplicatesSkipped int
}

// Prepare drops repeated competition ids, fills in the season discipline
// and rejects performances of another discipline.
func (a *Aggregator) Prepare(ctx context.Context, rec model.SeasonRecord) (Prepared, error) { //nolint:gocritic // hugeParam: value semantics for callers
	d, err := a.resolver.Resolve(rec.Discipline)
	if err != nil {
		return Prepared{}, err
	}

	seen := dedupe.NewInMemoryDeduper()
	prep := Prepared{
		Performances: make([]model.AthletePerformance, 0, len(rec.Performances)),
		Indices:      make([]int, 0, len(rec.Performances)),
	}
	for i, p := range rec.Performances {
		if err := ctx.Err(); err != nil {
			return Prepared{}, fmt.Errorf("summarize season: %w", err)
		}
		if p.CompetitionID != "" && seen.SeenAndRecord(ctx, p.CompetitionID) {
			prep.DuplicatesSkipped++
			continue
		}
		if p.Discipline == "" {
			p.Discipline = d.Code
		}
		if pd, err := a.resolver.Resolve(p.Discipline); err == nil && pd.Code != d.Code {
			prep.Failed = append(prep.Failed, &model.ItemError{Index: i, Err: fmt.Errorf(
				"%w: performance discipline %s differs from season discipline %s", model.ErrValidation, pd.Code, d.Code)})
			continue
		}
		prep.Performances = append(prep.Performances, p)
		prep.Indices = append(prep.Indices, i)
	}
	return prep, nil
}

// Summarize scores every performance of rec and folds the results. A
// repeated competition id counts once. Any performance that fails to score
// fails the summary with a *model.BatchError indexed into rec.Performances.
func (a *Aggregator) Summarize(ctx context.Context, rec model.SeasonRecord) (model.SeasonSummary, error) { //nolint:gocritic // hugeParam: value semantics for callers
	prep, err := a.Prepare(ctx, rec)
	if err != nil {
		return model.SeasonSummary{}, err
	}

	results := make([]model.PointsResult, len(prep.Performances))
	errs := make([]error, len(prep.Performances))
	for i, p := range prep.Performances {
		results[i], errs[i] = a.scorer.ComputePoints(p)
	}
	return a.Complete(rec, prep, results, errs)
}

// Complete folds the scored performances of a prepared record. results and
// errs are parallel to prep.Performances; a non-nil error fails the summary.
func (a *Aggregator) Complete(rec model.SeasonRecord, prep Prepared, results []model.PointsResult, errs []error) (model.SeasonSummary, error) { //nolint:gocritic // hugeParam: value semantics for callers
	failed := append([]*model.ItemError(nil), prep.Failed...)
	scored := make([]model.PointsResult, 0, len(results))
	for i, r := range results {
		if i < len(errs) && errs[i] != nil {
			failed = append(failed, &model.ItemError{Index: prep.Indices[i], Err: errs[i]})
			continue
		}
		scored = append(scored, r)
	}
	if len(failed) > 0 {
		sort.Slice(failed, func(i, j int) bool { return failed[i].Index < failed[j].Index })
		return model.SeasonSummary{}, &model.BatchError{Items: failed}
	}

	summary, err := a.SummarizeResults(rec, scored)
	if err != nil {
		return model.SeasonSummary{}, err
	}
	summary.DuplicatesSkipped = prep.DuplicatesSkipped
	return summary, nil
}

// SummarizeResults folds already computed results of one season.
func (a *Aggregator) SummarizeResults(rec model.SeasonRecord, results []model.PointsResult) (model.SeasonSummary, error) {
	d, err := a.resolver.Resolve(rec.Discipline)
	if err != nil {
		return model.SeasonSummary{}, err
	}

	sys := d.System
	summary := model.SeasonSummary{
		Season:     rec.Season,
		AthleteID:  rec.AthleteID,
		Discipline: d.Code,
		System:     sys.SystemType(),
		Direction:  sys.Direction(),
		Entries:    len(results),
		AllResults: make([]model.CountingResult, len(results)),
	}
	for i, r := range results {
		summary.AllResults[i] = counting(r)
	}

	// Best first under the system's direction, earlier date on ties.
	ranked := make([]model.CountingResult, len(summary.AllResults))
	copy(ranked, summary.AllResults)
	dir := sys.Direction()
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return dir.Better(ranked[i].Points, ranked[j].Points)
		}
		return ranked[i].CompetitionDate.Before(ranked[j].CompetitionDate)
	})

	n := a.bestCount[sys.SystemType()]
	if n <= 0 {
		n = 1
	}
	best := ranked[:min(n, len(ranked))]

	switch sys.(type) {
	case registry.RankingBased:
		for _, r := range results {
			if r.Points > 0 {
				summary.ValidResults++
			}
		}
		summary.Counting = best
		summary.FinalPoints = rounding.Sum(pointsOf(best))
	default:
		summary.ValidResults = len(results)
		a.foldLowerIsBetter(&summary, rec, d, best)
		next := rounding.Mul(summary.FinalPoints, a.continuationRate)
		summary.NextBaseline = &next
	}
	return summary, nil
}

func (a *Aggregator) foldLowerIsBetter(s *model.SeasonSummary, rec model.SeasonRecord, d registry.Discipline, best []model.CountingResult) {
	baseline := a.defaultBaseline(d)
	if rec.Baseline != nil {
		baseline = *rec.Baseline
	}
	baselineEntry := model.CountingResult{CompetitionID: model.BaselineSource, Points: baseline}

	switch len(best) {
	case 0:
		s.FinalPoints = rounding.Round2(baseline)
		s.Counting = []model.CountingResult{baselineEntry}
		s.BaselineApplied = true
	case 1:
		s.FinalPoints = rounding.Mean([]float64{best[0].Points, baseline})
		s.Counting = []model.CountingResult{best[0], baselineEntry}
		s.BaselineApplied = true
	default:
		avg := rounding.Mean(pointsOf(best))
		s.FinalPoints = avg
		s.Counting = best
		if baseline < avg {
			s.FinalPoints = rounding.Round2(baseline)
			s.Counting = []model.CountingResult{baselineEntry}
			s.BaselineApplied = true
		}
	}
}

func maxPointsBaseline(d registry.Discipline) float64 {
	if tb, ok := d.System.(registry.TimeBased); ok {
		return tb.MaxPoints
	}
	return 0
}

func counting(r model.PointsResult) model.CountingResult {
	return model.CountingResult{
		CompetitionID:   r.CompetitionID,
		CompetitionDate: r.CompetitionDate,
		Points:          r.Points,
	}
}

func pointsOf(rs []model.CountingResult) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Points
	}
	return out
}
