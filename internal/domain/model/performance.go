package model

import "time"

// FieldStrength carries the pre-collected inputs of the field-strength
// adjustment. Each list is expected best-first.
type FieldStrength struct {
	Top10Best5Points   []float64 // pre-race points of the five best among the top-10 finishers
	AllBest5Points     []float64 // pre-race points of the five best among all entrants
	AllBest5RacePoints []float64 // five best base race points of this race
}

// AthletePerformance is one race result for one athlete in one discipline.
// Time fields are seconds.
type AthletePerformance struct {
	AthleteID       string
	Discipline      DisciplineCode
	CompetitionID   string
	CompetitionDate time.Time

	// Time-based disciplines.
	AthleteTime   float64
	ReferenceTime float64 // winning time
	EventLevel    EventLevel
	Field         *FieldStrength

	// Ranking-based disciplines.
	Rank       int
	Tier       CategoryTier
	FinalScore float64 // judged score, informational
}

// RaceEntry is one finisher of a race. For time-based races Time is set;
// for ranking-based races either Rank or Score is set.
type RaceEntry struct {
	AthleteID string
	Time      float64
	PrePoints *float64 // points held before the race, nil when unranked
	Rank      int
	Score     float64
}

// Race is a complete field snapshot for one competition in one discipline.
type Race struct {
	CompetitionID   string
	CompetitionDate time.Time
	Discipline      DisciplineCode
	EventLevel      EventLevel
	Tier            CategoryTier
	ReferenceTime   float64 // zero means the fastest entry time
	Entries         []RaceEntry
}
