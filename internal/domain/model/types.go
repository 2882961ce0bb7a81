// Package model contains domain models passed between layers.
package model

// DisciplineCode identifies a competition discipline, e.g. "ALPINE_DH".
type DisciplineCode string

// Registered discipline codes.
const (
	AlpineDownhill      DisciplineCode = "ALPINE_DH"
	AlpineSlalom        DisciplineCode = "ALPINE_SL"
	AlpineGiantSlalom   DisciplineCode = "ALPINE_GS"
	AlpineSuperG        DisciplineCode = "ALPINE_SG"
	AlpineCombined      DisciplineCode = "ALPINE_AC"
	SnowboardParallelSL DisciplineCode = "SNOWBOARD_PSL"
	SnowboardParallelGS DisciplineCode = "SNOWBOARD_PGS"
	SnowboardBigAir     DisciplineCode = "SNOWBOARD_BA"
	SnowboardSlopestyle DisciplineCode = "SNOWBOARD_SS"
	SnowboardHalfpipe   DisciplineCode = "SNOWBOARD_HP"
	FreestyleBigAir     DisciplineCode = "FREESTYLE_BA"
	FreestyleSlopestyle DisciplineCode = "FREESTYLE_SS"
	FreestyleHalfpipe   DisciplineCode = "FREESTYLE_HP"
)

// SystemType names one of the four national scoring regimes.
type SystemType string

const (
	AlpinePoints           SystemType = "ALPINE_POINTS"
	SnowboardAlpinePoints  SystemType = "SNOWBOARD_ALPINE_POINTS"
	SnowboardRankingPoints SystemType = "SNOWBOARD_RANKING_POINTS"
	FreestyleRankingPoints SystemType = "FREESTYLE_RANKING_POINTS"
)

// Direction tells whether a lower or a higher point value ranks better.
type Direction int

const (
	LowerIsBetter Direction = iota + 1
	HigherIsBetter
)

func (d Direction) String() string {
	switch d {
	case LowerIsBetter:
		return "lower_is_better"
	case HigherIsBetter:
		return "higher_is_better"
	default:
		return "unknown"
	}
}

// Better reports whether a ranks strictly ahead of b under d.
func (d Direction) Better(a, b float64) bool {
	if d == HigherIsBetter {
		return a > b
	}
	return a < b
}

// EventLevel is the prestige tier of a time-based competition.
type EventLevel string

const (
	EventLevelA EventLevel = "A"
	EventLevelB EventLevel = "B"
	EventLevelC EventLevel = "C"
)

// CategoryTier is the points category of a ranking-based competition.
type CategoryTier string

const (
	Category1 CategoryTier = "CATEGORY_1"
	Category2 CategoryTier = "CATEGORY_2"
	Category3 CategoryTier = "CATEGORY_3"
)
