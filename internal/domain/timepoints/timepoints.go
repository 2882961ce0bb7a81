// Package timepoints computes lower-is-better race points from elapsed time.
//
// Final race points are (base + penalty) * coefficient, capped at the
// discipline maximum, where base = F * (t/ref - 1) and penalty is the
// field-strength adjustment (sumA + sumB - sumC) / divisor.
package timepoints

import (
	"math"
	"sort"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/rounding"
)

// Default engine configuration constants.
const (
	defaultPenaltyDivisor = 10
	defaultSampleSize     = 5
	topFinishers          = 10
)

// DefaultEventCoefficients returns the rulebook event-level multipliers.
func DefaultEventCoefficients() map[model.EventLevel]float64 {
	return map[model.EventLevel]float64{
		model.EventLevelA: 1.0,
		model.EventLevelB: 0.6,
		model.EventLevelC: 0.3,
	}
}

// Input holds one athlete's time-based performance with its discipline constants.
type Input struct {
	Factor        float64
	MaxPoints     float64 // zero disables the cap
	AthleteTime   float64
	ReferenceTime float64
	EventLevel    model.EventLevel
	Field         *model.FieldStrength
}

// Outcome is the result of a time-based computation. Every value is rounded.
type Outcome struct {
	Base        float64
	Penalty     float64
	Coefficient float64
	Raw         float64
	Points      float64
	Capped      bool
}

// FieldEntry is one finisher's data for deriving the field strength.
type FieldEntry struct {
	BasePoints float64
	PrePoints  *float64
}

// Engine computes time-based points. It holds configuration only and is
// safe for concurrent use.
type Engine struct {
	penaltyDivisor float64
	sampleSize     int
	coefficients   map[model.EventLevel]float64
}

// New creates a time-based engine with rulebook defaults and options.
func New(opts ...Option) *Engine {
	e := &Engine{
		penaltyDivisor: defaultPenaltyDivisor,
		sampleSize:     defaultSampleSize,
		coefficients:   DefaultEventCoefficients(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// PenaltyDivisor returns the configured penalty divisor.
func (e *Engine) PenaltyDivisor() float64 { return e.penaltyDivisor }

// Base computes F * (athleteTime/referenceTime - 1), floored at zero.
func (e *Engine) Base(athleteTime, referenceTime, factor float64) (float64, error) {
	if err := checkTimes(athleteTime, referenceTime); err != nil {
		return 0, err
	}
	return math.Max(0, rounding.RelativeGap(factor, athleteTime, referenceTime)), nil
}

// Penalty computes the field-strength adjustment. A nil field, or one with
// fewer than the sample size in any list, yields zero.
func (e *Engine) Penalty(field *model.FieldStrength) float64 {
	if field == nil {
		return 0
	}
	n := e.sampleSize
	if len(field.Top10Best5Points) < n || len(field.AllBest5Points) < n || len(field.AllBest5RacePoints) < n {
		return 0
	}
	sumA := rounding.Sum(field.Top10Best5Points[:n])
	sumB := rounding.Sum(field.AllBest5Points[:n])
	sumC := rounding.Sum(field.AllBest5RacePoints[:n])

	penalty := rounding.Quo(rounding.Sum([]float64{sumA, sumB, -sumC}), e.penaltyDivisor)
	return math.Max(0, penalty)
}

// Coefficient returns the multiplier for an event level.
func (e *Engine) Coefficient(level model.EventLevel) (float64, error) {
	c, ok := e.coefficients[level]
	if !ok {
		return 0, &model.UnknownEventLevelError{Level: level}
	}
	return c, nil
}

// Compute returns the final race points for one performance.
func (e *Engine) Compute(in Input) (Outcome, error) {
	base, err := e.Base(in.AthleteTime, in.ReferenceTime, in.Factor)
	if err != nil {
		return Outcome{}, err
	}
	coefficient, err := e.Coefficient(in.EventLevel)
	if err != nil {
		return Outcome{}, err
	}
	penalty := e.Penalty(in.Field)

	raw := rounding.MulAdd(base, penalty, coefficient)
	out := Outcome{
		Base:        base,
		Penalty:     penalty,
		Coefficient: coefficient,
		Raw:         raw,
		Points:      raw,
	}
	if in.MaxPoints > 0 && raw > in.MaxPoints {
		out.Points = in.MaxPoints
		out.Capped = true
	}
	return out, nil
}

// FieldPenalty derives the penalty inputs from a complete race snapshot.
// It must be called once the base points of every finisher are known.
// Entries without pre-race points are skipped for sums A and B.
func (e *Engine) FieldPenalty(entries []FieldEntry) model.FieldStrength {
	sorted := make([]FieldEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].BasePoints < sorted[j].BasePoints })

	top := sorted
	if len(top) > topFinishers {
		top = top[:topFinishers]
	}

	return model.FieldStrength{
		Top10Best5Points:   e.bestPrePoints(top),
		AllBest5Points:     e.bestPrePoints(sorted),
		AllBest5RacePoints: e.bestOf(basePointsOf(sorted)),
	}
}

// TimeForPoints returns the time that would earn targetPoints, ignoring
// penalty, rounded to hundredths of a second.
func (e *Engine) TimeForPoints(referenceTime, targetPoints, factor, coefficient float64) float64 {
	if factor <= 0 || coefficient <= 0 {
		return referenceTime
	}
	ratio := (targetPoints/coefficient)/factor + 1
	return rounding.Round2(referenceTime * ratio)
}

// ImprovementNeeded returns how many seconds currentTime must drop to earn
// targetPoints, or zero when it already does.
func (e *Engine) ImprovementNeeded(currentTime, referenceTime, targetPoints, factor, coefficient float64) float64 {
	required := e.TimeForPoints(referenceTime, targetPoints, factor, coefficient)
	return rounding.Round2(math.Max(0, currentTime-required))
}

// IsValidPoints reports whether points lie within [0, maxPoints].
func IsValidPoints(points, maxPoints float64) bool {
	return points >= 0 && points <= maxPoints
}

func (e *Engine) bestPrePoints(entries []FieldEntry) []float64 {
	values := make([]float64, 0, len(entries))
	for _, en := range entries {
		if en.PrePoints != nil {
			values = append(values, *en.PrePoints)
		}
	}
	return e.bestOf(values)
}

// bestOf returns the sample-size lowest values in ascending order.
func (e *Engine) bestOf(values []float64) []float64 {
	sort.Float64s(values)
	if len(values) > e.sampleSize {
		values = values[:e.sampleSize]
	}
	return values
}

func basePointsOf(entries []FieldEntry) []float64 {
	out := make([]float64, len(entries))
	for i, en := range entries {
		out[i] = en.BasePoints
	}
	return out
}

func checkTimes(athleteTime, referenceTime float64) error {
	if math.IsNaN(referenceTime) || referenceTime <= 0 {
		return &model.InvalidTimeError{Field: "reference_time", Value: referenceTime, Reason: "must be positive"}
	}
	if math.IsNaN(athleteTime) || athleteTime <= 0 {
		return &model.InvalidTimeError{Field: "athlete_time", Value: athleteTime, Reason: "must be positive"}
	}
	if athleteTime < referenceTime {
		return &model.InvalidTimeError{Field: "athlete_time", Value: athleteTime, Reason: "faster than reference time"}
	}
	return nil
}
