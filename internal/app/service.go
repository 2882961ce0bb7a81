// Package service wires the scoring engines, the batch queue and the worker
// pool into one application service.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/skipoints/internal/adapters/mq/queue"
	"github.com/okian/skipoints/internal/adapters/mq/worker"
	"github.com/okian/skipoints/internal/config"
	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/points"
	"github.com/okian/skipoints/internal/domain/rankpoints"
	"github.com/okian/skipoints/internal/domain/registry"
	"github.com/okian/skipoints/internal/domain/season"
	"github.com/okian/skipoints/internal/domain/standings"
	"github.com/okian/skipoints/internal/domain/timepoints"
	"github.com/okian/skipoints/pkg/logger"
	"github.com/okian/skipoints/pkg/metrics"
)

const stopTimeout = 10 * time.Second

// meteredScorer records metrics around every computation, whether it runs
// on a worker or inline.
type meteredScorer struct {
	engine *points.Engine
}

func (m meteredScorer) ComputePoints(p model.AthletePerformance) (model.PointsResult, error) { //nolint:gocritic // hugeParam: matches the engine signature
	start := time.Now()
	r, err := m.engine.ComputePoints(p)
	metrics.RecordComputeLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		metrics.RecordComputationError(errorKind(err))
		return r, err
	}
	metrics.RecordComputation(string(r.System))
	return r, nil
}

// Service computes points, races, seasons and standings.
type Service struct {
	mu sync.RWMutex

	cfg         *config.Config
	workerCount int
	queueSize   int
	now         func() time.Time

	registry   *registry.Registry
	time       *timepoints.Engine
	rank       *rankpoints.Engine
	engine     *points.Engine
	scorer     meteredScorer
	aggregator *season.Aggregator

	queue  queue.Queue
	pool   *worker.Pool
	cancel context.CancelFunc

	started bool
	logger  logger.Logger
}

// New constructs a Service. Without WithConfig the rulebook defaults apply.
func New(opts ...Option) *Service {
	s := &Service{now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	if s.cfg == nil {
		s.cfg = config.New()
	}
	if s.workerCount == 0 {
		s.workerCount = s.cfg.WorkerCount
	}
	if s.queueSize == 0 {
		s.queueSize = s.cfg.QueueSize
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	c := buildComponents(s.cfg, points.WithClock(s.now))
	s.registry = c.registry
	s.time = c.time
	s.rank = c.rank
	s.engine = c.engine
	s.scorer = meteredScorer{engine: c.engine}
	s.aggregator = season.New(s.scorer, c.registry, seasonOptions(s.cfg)...)

	return s
}

// Start creates the batch queue and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting points service...")

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s.scorer)
	s.pool.Start(runCtx)

	s.started = true
	s.logger.Info(ctx, "points service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queue_size", s.queueSize),
	)
	return nil
}

// Stop drains the queue and stops the workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping points service...")
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not stop cleanly", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "points service stopped", logger.Any("processed", s.pool.Processed()))
}

// ResolveSystem returns the scoring system of a discipline code or alias.
func (s *Service) ResolveSystem(code model.DisciplineCode) (registry.ScoringSystem, error) {
	return s.engine.ResolveSystem(code)
}

// Disciplines lists the registered discipline codes per system.
func (s *Service) Disciplines() map[model.SystemType][]model.DisciplineCode {
	return s.registry.Disciplines()
}

// Discipline resolves a code or alias to its registry entry.
func (s *Service) Discipline(code model.DisciplineCode) (registry.Discipline, error) {
	return s.registry.Resolve(code)
}

// ComputePoints scores one performance.
func (s *Service) ComputePoints(ctx context.Context, p model.AthletePerformance) (model.PointsResult, error) { //nolint:gocritic // hugeParam: value semantics for callers
	if err := ctx.Err(); err != nil {
		return model.PointsResult{}, fmt.Errorf("compute points: %w", err)
	}
	r, err := s.scorer.ComputePoints(p)
	if err != nil {
		s.logger.Debug(ctx, "performance rejected",
			logger.String("athlete_id", p.AthleteID),
			logger.String("discipline", string(p.Discipline)),
			logger.Error(err),
		)
	}
	return r, err
}

// ComputeBatch scores performances on the worker pool. Results keep the
// order of ps; failed slots hold zero values and are reported in a
// *model.BatchError. Jobs the queue cannot take are computed inline.
func (s *Service) ComputeBatch(ctx context.Context, ps []model.AthletePerformance) ([]model.PointsResult, error) {
	metrics.RecordBatchSize(len(ps))
	results := make([]model.PointsResult, len(ps))
	if len(ps) == 0 {
		return results, nil
	}

	s.mu.RLock()
	q, started := s.queue, s.started
	s.mu.RUnlock()

	// Buffered for the whole batch so workers never block on a caller that
	// has given up.
	reply := make(chan model.BatchOutcome, len(ps))
	for i, p := range ps {
		if started {
			err := q.Enqueue(ctx, model.BatchJob{Index: i, Performance: p, Reply: reply})
			if err == nil {
				continue
			}
			if !errors.Is(err, queue.ErrFull) && !errors.Is(err, queue.ErrClosed) {
				return nil, fmt.Errorf("compute batch: %w", err)
			}
			metrics.RecordInlineFallback()
		}
		r, err := s.scorer.ComputePoints(p)
		reply <- model.BatchOutcome{Index: i, Result: r, Err: err}
	}

	var failed []*model.ItemError
	for range ps {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("compute batch: %w", ctx.Err())
		case out := <-reply:
			if out.Err != nil {
				failed = append(failed, &model.ItemError{Index: out.Index, Err: out.Err})
				continue
			}
			results[out.Index] = out.Result
		}
	}

	if len(failed) > 0 {
		sort.Slice(failed, func(i, j int) bool { return failed[i].Index < failed[j].Index })
		return results, &model.BatchError{Items: failed}
	}
	return results, nil
}

// ComputeRace scores a whole race from its field snapshot.
func (s *Service) ComputeRace(ctx context.Context, race model.Race) ([]model.PointsResult, error) { //nolint:gocritic // hugeParam: value semantics for callers
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compute race: %w", err)
	}

	start := time.Now()
	results, err := s.engine.ComputeRace(race)
	metrics.RecordComputeLatency(float64(time.Since(start).Microseconds()) / 1000)
	for _, r := range results {
		metrics.RecordComputation(string(r.System))
	}
	if err != nil {
		metrics.RecordComputationError(errorKind(err))
		s.logger.Warn(ctx, "race scored with errors",
			logger.String("competition_id", race.CompetitionID),
			logger.Int("scored", len(results)),
			logger.Error(err),
		)
	}
	return results, err
}

// SummarizeSeason folds one athlete's season into points and the next
// season's baseline.
func (s *Service) SummarizeSeason(ctx context.Context, rec model.SeasonRecord) (model.SeasonSummary, error) { //nolint:gocritic // hugeParam: value semantics for callers
	sum, err := s.aggregator.Summarize(ctx, rec)
	return s.observeSummary(ctx, rec, sum, err)
}

// SummarizeSeasons scores the performances of every record in one batch on
// the worker pool, then folds each record. Summaries keep the order of recs;
// failed records are reported in a *model.BatchError indexed into recs.
func (s *Service) SummarizeSeasons(ctx context.Context, recs []model.SeasonRecord) ([]model.SeasonSummary, error) {
	out := make([]model.SeasonSummary, len(recs))
	errs := make([]error, len(recs))

	preps := make([]season.Prepared, len(recs))
	offsets := make([]int, len(recs))
	var all []model.AthletePerformance
	for i := range recs {
		offsets[i] = len(all)
		preps[i], errs[i] = s.aggregator.Prepare(ctx, recs[i])
		if errs[i] != nil {
			continue
		}
		all = append(all, preps[i].Performances...)
	}

	results, err := s.ComputeBatch(ctx, all)
	itemErrs := make([]error, len(all))
	if err != nil {
		var batchErr *model.BatchError
		if !errors.As(err, &batchErr) {
			return nil, fmt.Errorf("summarize seasons: %w", err)
		}
		for _, item := range batchErr.Items {
			itemErrs[item.Index] = item.Err
		}
	}

	var failed []*model.ItemError
	for i := range recs {
		if errs[i] == nil {
			lo, hi := offsets[i], offsets[i]+len(preps[i].Performances)
			out[i], errs[i] = s.aggregator.Complete(recs[i], preps[i], results[lo:hi], itemErrs[lo:hi])
		}
		out[i], errs[i] = s.observeSummary(ctx, recs[i], out[i], errs[i])
		if errs[i] != nil {
			failed = append(failed, &model.ItemError{Index: i, Err: errs[i]})
		}
	}
	if len(failed) > 0 {
		return out, &model.BatchError{Items: failed}
	}
	return out, nil
}

func (s *Service) observeSummary(ctx context.Context, rec model.SeasonRecord, sum model.SeasonSummary, err error) (model.SeasonSummary, error) { //nolint:gocritic // hugeParam: value semantics for callers
	if err != nil {
		s.logger.Debug(ctx, "season summary failed",
			logger.String("athlete_id", rec.AthleteID),
			logger.String("discipline", string(rec.Discipline)),
			logger.Error(err),
		)
		return sum, err
	}

	if sum.DuplicatesSkipped > 0 {
		metrics.RecordDuplicatesSkipped(sum.DuplicatesSkipped)
		s.logger.Warn(ctx, "duplicate competitions skipped",
			logger.String("athlete_id", rec.AthleteID),
			logger.String("discipline", string(sum.Discipline)),
			logger.Int("duplicates", sum.DuplicatesSkipped),
		)
	}
	metrics.RecordSeasonSummary(string(sum.System))
	return sum, nil
}

// Standings ranks season summaries per discipline.
func (s *Service) Standings(ctx context.Context, summaries []model.SeasonSummary) ([]standings.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("standings: %w", err)
	}
	return standings.Rank(summaries), nil
}

// Trend analyses an athlete's results in one discipline over time.
func (s *Service) Trend(code model.DisciplineCode, results []model.PointsResult) (season.TrendAnalysis, error) {
	sys, err := s.engine.ResolveSystem(code)
	if err != nil {
		return season.TrendAnalysis{}, err
	}
	return season.Trend(sys.Direction(), results), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}

	if s.started {
		stats["queueLength"] = s.queue.Len(context.Background())
		stats["processed"] = s.pool.Processed()
		metrics.UpdateWorkerCount(s.pool.Size())
	}

	return stats
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, model.ErrUnknownDiscipline):
		return "unknown_discipline"
	case errors.Is(err, model.ErrInvalidTime):
		return "invalid_time"
	case errors.Is(err, model.ErrInvalidRank):
		return "invalid_rank"
	case errors.Is(err, model.ErrUnknownEventLevel):
		return "unknown_event_level"
	case errors.Is(err, model.ErrUnknownTier):
		return "unknown_tier"
	case errors.Is(err, model.ErrMissingField):
		return "missing_field"
	case errors.Is(err, model.ErrValidation):
		return "validation"
	default:
		return "other"
	}
}
