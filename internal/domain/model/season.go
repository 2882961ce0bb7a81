package model

import "time"

// BaselineSource marks a counting entry that stands in for a missing result.
const BaselineSource = "baseline"

// SeasonRecord is one athlete's season in one discipline.
type SeasonRecord struct {
	Season       string // e.g. "2025-2026"
	AthleteID    string
	Discipline   DisciplineCode
	Performances []AthletePerformance
	Baseline     *float64 // carried over from the previous season
}

// CountingResult is a result that contributed to a season total.
type CountingResult struct {
	CompetitionID   string
	CompetitionDate time.Time
	Points          float64
}

// SeasonSummary is derived entirely from a SeasonRecord.
type SeasonSummary struct {
	Season            string
	AthleteID         string
	Discipline        DisciplineCode
	System            SystemType
	Direction         Direction
	Entries           int
	ValidResults      int
	AllResults        []CountingResult
	Counting          []CountingResult
	FinalPoints       float64
	NextBaseline      *float64 // nil when the system does not carry over
	BaselineApplied   bool
	DuplicatesSkipped int
}
