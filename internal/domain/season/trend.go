package season

import (
	"math"
	"sort"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/rounding"
)

// TrendDirection classifies how results moved over a season.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// Average change per race needed to leave the stable band.
const (
	lowerIsBetterThreshold  = 2
	higherIsBetterThreshold = 10
	podiumRank              = 3
)

// TrendAnalysis describes the progression of results in date order.
// Changes are signed so that a positive value is always an improvement.
type TrendAnalysis struct {
	Trend           TrendDirection
	AverageChange   float64
	BestImprovement float64
	WorstDecline    float64
	Consistency     float64 // 1 / (1 + stddev/mean), 1 for identical results
	Podiums         int     // ranking-based results at rank 3 or better
}

// Trend analyses results of a single system in chronological order.
func Trend(dir model.Direction, results []model.PointsResult) TrendAnalysis {
	ordered := make([]model.PointsResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CompetitionDate.Before(ordered[j].CompetitionDate)
	})

	out := TrendAnalysis{Trend: TrendStable, Consistency: 1}
	values := make([]float64, len(ordered))
	for i, r := range ordered {
		values[i] = r.Points
		if bd, ok := r.Breakdown.(model.RankingBreakdown); ok && bd.Rank >= 1 && bd.Rank <= podiumRank {
			out.Podiums++
		}
	}
	if len(values) < 2 {
		return out
	}

	var total float64
	for i := 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		if dir == model.LowerIsBetter {
			change = -change
		}
		total += change
		out.BestImprovement = math.Max(out.BestImprovement, change)
		out.WorstDecline = math.Min(out.WorstDecline, change)
	}
	avg := total / float64(len(values)-1)

	threshold := float64(higherIsBetterThreshold)
	if dir == model.LowerIsBetter {
		threshold = lowerIsBetterThreshold
	}
	switch {
	case avg > threshold:
		out.Trend = TrendImproving
	case avg < -threshold:
		out.Trend = TrendDeclining
	}

	out.AverageChange = rounding.Round2(avg)
	out.BestImprovement = rounding.Round2(out.BestImprovement)
	out.WorstDecline = rounding.Round2(out.WorstDecline)
	out.Consistency = rounding.Round2(consistency(values))
	return out
}

func consistency(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean <= 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return 1 / (1 + math.Sqrt(variance)/mean)
}
