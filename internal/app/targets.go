package service

import (
	"fmt"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/rankpoints"
	"github.com/okian/skipoints/internal/domain/registry"
)

// TimeTarget is the finishing time that earns a points goal.
type TimeTarget struct {
	Discipline   model.DisciplineCode
	TargetPoints float64
	Time         float64
	// Improvement is how many seconds CurrentTime must drop by. Zero when
	// no current time was given or the goal is already met.
	Improvement float64
}

// TimeTarget returns the time needed at a time-based discipline to score
// targetPoints against referenceTime at the given event level. Field
// strength is not taken into account.
func (s *Service) TimeTarget(code model.DisciplineCode, referenceTime, targetPoints float64, level model.EventLevel, currentTime float64) (TimeTarget, error) {
	d, err := s.registry.Resolve(code)
	if err != nil {
		return TimeTarget{}, err
	}
	sys, ok := d.System.(registry.TimeBased)
	if !ok {
		return TimeTarget{}, fmt.Errorf("%w: discipline %s is not time-based", model.ErrValidation, d.Code)
	}
	if referenceTime <= 0 {
		return TimeTarget{}, &model.InvalidTimeError{Field: "reference_time", Value: referenceTime, Reason: "must be positive"}
	}
	if targetPoints < 0 {
		return TimeTarget{}, fmt.Errorf("%w: target points must not be negative, got %v", model.ErrValidation, targetPoints)
	}
	coef, err := s.time.Coefficient(level)
	if err != nil {
		return TimeTarget{}, err
	}

	t := TimeTarget{
		Discipline:   d.Code,
		TargetPoints: targetPoints,
		Time:         s.time.TimeForPoints(referenceTime, targetPoints, sys.Factor, coef),
	}
	if currentTime > 0 {
		t.Improvement = s.time.ImprovementNeeded(currentTime, referenceTime, targetPoints, sys.Factor, coef)
	}
	return t, nil
}

// RankTable lists the ranking scale of a tier down to maxRank.
func (s *Service) RankTable(maxRank int, tier model.CategoryTier) ([]rankpoints.TableRow, error) {
	return s.rank.Table(maxRank, tier)
}

// RankImprovement returns the points gained by moving between two ranks.
func (s *Service) RankImprovement(currentRank, targetRank int, tier model.CategoryTier) (float64, error) {
	return s.rank.RankImprovement(currentRank, targetRank, tier)
}

// RankCutoff returns the last rank that still scores.
func (s *Service) RankCutoff() int { return s.rank.Cutoff() }
