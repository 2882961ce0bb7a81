package registry

import "github.com/okian/skipoints/internal/domain/model"

// ScoringSystem is the scoring regime a discipline routes to. The variant
// set is closed: TimeBased and RankingBased.
type ScoringSystem interface {
	SystemType() model.SystemType
	Direction() model.Direction
	sealed()
}

// TimeBased is a lower-is-better regime computed from elapsed time.
type TimeBased struct {
	Type      model.SystemType
	Factor    float64 // discipline time factor F in F * (t/ref - 1)
	MaxPoints float64 // ceiling on final race points
}

func (s TimeBased) SystemType() model.SystemType { return s.Type }
func (TimeBased) Direction() model.Direction     { return model.LowerIsBetter }
func (TimeBased) sealed()                        {}

// RankingBased is a higher-is-better regime computed from finishing rank.
type RankingBased struct {
	Type model.SystemType
}

func (s RankingBased) SystemType() model.SystemType { return s.Type }
func (RankingBased) Direction() model.Direction     { return model.HigherIsBetter }
func (RankingBased) sealed()                        {}

// Discipline binds a code to its scoring system.
type Discipline struct {
	Code   model.DisciplineCode
	Name   string
	System ScoringSystem
}
