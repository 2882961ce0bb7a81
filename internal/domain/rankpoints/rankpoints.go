// Package rankpoints computes higher-is-better points from a finishing rank
// and a competition category tier.
package rankpoints

import (
	"math"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/rounding"
)

const (
	defaultCutoff = 30
	topRanks      = 10
	stepPerRank   = 0.015
	minPercentage = 0.0012
)

// Share of the tier ceiling for ranks 1 through 10.
var topPercentages = [topRanks]float64{1.00, 0.80, 0.60, 0.50, 0.45, 0.40, 0.36, 0.32, 0.29, 0.26} //nolint:gochecknoglobals // immutable rule table

// DefaultTierCeilings returns the winner's points per category tier.
func DefaultTierCeilings() map[model.CategoryTier]float64 {
	return map[model.CategoryTier]float64{
		model.Category1: 360,
		model.Category2: 240,
		model.Category3: 120,
	}
}

// TableRow is one line of a points scale.
type TableRow struct {
	Rank       int
	Percentage float64
	Points     float64
}

// Engine computes ranking-based points. It is safe for concurrent use.
type Engine struct {
	ceilings map[model.CategoryTier]float64
	cutoff   int
}

// New creates a ranking engine with the default scale and options.
func New(opts ...Option) *Engine {
	e := &Engine{
		ceilings: DefaultTierCeilings(),
		cutoff:   defaultCutoff,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Cutoff returns the last scoring rank.
func (e *Engine) Cutoff() int { return e.cutoff }

// Ceiling returns the points awarded for first place in tier.
func (e *Engine) Ceiling(tier model.CategoryTier) (float64, error) {
	c, ok := e.ceilings[tier]
	if !ok {
		return 0, &model.UnknownTierError{Tier: tier}
	}
	return c, nil
}

// Percentage returns the share of the ceiling a rank earns, zero past the cutoff.
func (e *Engine) Percentage(rank int) (float64, error) {
	if rank < 1 {
		return 0, &model.InvalidRankError{Rank: rank}
	}
	if rank > e.cutoff {
		return 0, nil
	}
	if rank <= topRanks {
		return topPercentages[rank-1], nil
	}
	pct := topPercentages[topRanks-1] - float64(rank-topRanks)*stepPerRank
	return math.Max(minPercentage, rounding.Round(pct, 4)), nil
}

// PointsForRank returns the points for finishing at rank in a tier-rated event.
func (e *Engine) PointsForRank(rank int, tier model.CategoryTier) (float64, error) {
	pct, err := e.Percentage(rank)
	if err != nil {
		return 0, err
	}
	ceiling, err := e.Ceiling(tier)
	if err != nil {
		return 0, err
	}
	return rounding.Round2(ceiling * pct), nil
}

// Table lists the scale for ranks 1 through maxRank.
func (e *Engine) Table(maxRank int, tier model.CategoryTier) ([]TableRow, error) {
	if _, err := e.Ceiling(tier); err != nil {
		return nil, err
	}
	rows := make([]TableRow, 0, max(maxRank, 0))
	for rank := 1; rank <= maxRank; rank++ {
		pct, _ := e.Percentage(rank)
		pts, _ := e.PointsForRank(rank, tier)
		rows = append(rows, TableRow{Rank: rank, Percentage: pct, Points: pts})
	}
	return rows, nil
}

// RankImprovement returns the points gained by moving from currentRank to
// targetRank. A worse target yields a negative value.
func (e *Engine) RankImprovement(currentRank, targetRank int, tier model.CategoryTier) (float64, error) {
	current, err := e.PointsForRank(currentRank, tier)
	if err != nil {
		return 0, err
	}
	target, err := e.PointsForRank(targetRank, tier)
	if err != nil {
		return 0, err
	}
	return rounding.Round2(target - current), nil
}
