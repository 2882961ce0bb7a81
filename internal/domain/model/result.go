package model

import "time"

// Breakdown explains how a points value was derived. The set of variants is
// closed: TimeBreakdown and RankingBreakdown.
type Breakdown interface {
	breakdown()
}

// TimeBreakdown details a time-based computation.
type TimeBreakdown struct {
	Factor           float64
	BaseRacePoints   float64
	Penalty          float64
	EventLevel       EventLevel
	EventCoefficient float64
	RawPoints        float64 // (base + penalty) * coefficient before the cap
	MaxPoints        float64
	Capped           bool
}

func (TimeBreakdown) breakdown() {}

// RankingBreakdown details a ranking-based computation.
type RankingBreakdown struct {
	Tier           CategoryTier
	Rank           int
	TierCeiling    float64
	RankPercentage float64
}

func (RankingBreakdown) breakdown() {}

// PointsResult is the normalized output of one computation.
type PointsResult struct {
	AthleteID       string
	Discipline      DisciplineCode
	CompetitionID   string
	CompetitionDate time.Time
	System          SystemType
	Direction       Direction
	Points          float64
	CalculatedAt    time.Time
	Breakdown       Breakdown
}

// ValidationResult collects every problem found in a performance record.
type ValidationResult struct {
	Valid  bool
	Errors []error
}
