// Package fixtures generates deterministic synthetic races and seasons for
// demos and tests.
package fixtures

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/registry"
)

// Default generator configuration constants.
const (
	defaultAthletes = 12
	defaultSeed     = 1
	defaultSeason   = "2025-2026"
	raceSpacing     = 7 * 24 * time.Hour
)

// Ranges for generated values.
const (
	maxTimeGap      = 0.08 // slowest finisher is at most 8% behind the winner
	rankedShare     = 0.8  // share of entrants holding pre-race points
	maxPrePoints    = 120.0
	minJudgedScore  = 40.0
	judgedScoreSpan = 59.0
	baselineShare   = 0.5
)

// Winning times in seconds for the time-based disciplines.
var winningTimes = map[model.DisciplineCode]float64{ //nolint:gochecknoglobals // immutable fixture table
	model.AlpineDownhill:      112.4,
	model.AlpineSuperG:        78.9,
	model.AlpineGiantSlalom:   71.3,
	model.AlpineSlalom:        52.6,
	model.AlpineCombined:      131.8,
	model.SnowboardParallelGS: 44.7,
	model.SnowboardParallelSL: 36.2,
}

var eventLevels = []model.EventLevel{model.EventLevelA, model.EventLevelB, model.EventLevelC} //nolint:gochecknoglobals // immutable fixture table

var tiers = []model.CategoryTier{model.Category1, model.Category2, model.Category3} //nolint:gochecknoglobals // immutable fixture table

// Athlete is a generated competitor.
type Athlete struct {
	ID     string
	Name   string
	Nation string
}

// Generator produces synthetic races. It is not safe for concurrent use.
type Generator struct {
	seed     int64
	athletes int
	season   string
	start    time.Time

	faker  *gofakeit.Faker
	pool   []Athlete
	issued int
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed:     defaultSeed,
		athletes: defaultAthletes,
		season:   defaultSeason,
		start:    time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.faker = gofakeit.New(uint64(g.seed)) //nolint:gosec // seeds are small non-negative values
	g.pool = make([]Athlete, g.athletes)
	for i := range g.pool {
		g.pool[i] = Athlete{
			ID:     fmt.Sprintf("athlete-%03d", i+1),
			Name:   g.faker.FirstName() + " " + g.faker.LastName(),
			Nation: g.faker.CountryAbr(),
		}
	}
	return g
}

// Season returns the season label.
func (g *Generator) Season() string { return g.season }

// Athletes returns the athlete pool.
func (g *Generator) Athletes() []Athlete {
	out := make([]Athlete, len(g.pool))
	copy(out, g.pool)
	return out
}

// AthleteIDs returns the ids of the athlete pool.
func (g *Generator) AthleteIDs() []string {
	ids := make([]string, len(g.pool))
	for i, a := range g.pool {
		ids[i] = a.ID
	}
	return ids
}

// Races generates n races of discipline d, one week apart, each entered by
// the whole athlete pool.
func (g *Generator) Races(d registry.Discipline, n int) []model.Race {
	races := make([]model.Race, n)
	for i := range races {
		races[i] = g.race(d, g.start.Add(time.Duration(i)*raceSpacing))
	}
	return races
}

func (g *Generator) race(d registry.Discipline, date time.Time) model.Race {
	race := model.Race{
		CompetitionID:   g.competitionID(d.Code),
		CompetitionDate: date,
		Discipline:      d.Code,
	}

	ids := g.AthleteIDs()
	race.Entries = make([]model.RaceEntry, len(ids))

	switch d.System.(type) {
	case registry.TimeBased:
		race.EventLevel = eventLevels[g.faker.Number(0, len(eventLevels)-1)]
		winner := winningTimes[d.Code]
		for i, id := range ids {
			race.Entries[i] = model.RaceEntry{
				AthleteID: id,
				Time:      hundredths(winner * (1 + g.faker.Float64Range(0, maxTimeGap))),
				PrePoints: g.prePoints(),
			}
		}
	case registry.RankingBased:
		race.Tier = tiers[g.faker.Number(0, len(tiers)-1)]
		for i, id := range ids {
			race.Entries[i] = model.RaceEntry{
				AthleteID: id,
				Score:     quarters(g.faker.Float64Range(minJudgedScore, minJudgedScore+judgedScoreSpan)),
			}
		}
	}
	return race
}

// Records turns races into one season record per athlete. About half of the
// athletes carry a baseline from the previous season.
func (g *Generator) Records(d registry.Discipline, races []model.Race) []model.SeasonRecord {
	byAthlete := make(map[string][]model.AthletePerformance)
	for _, race := range races {
		for _, p := range Performances(race) {
			byAthlete[p.AthleteID] = append(byAthlete[p.AthleteID], p)
		}
	}

	ids := g.AthleteIDs()
	recs := make([]model.SeasonRecord, 0, len(ids))
	for _, id := range ids {
		rec := model.SeasonRecord{
			Season:       g.season,
			AthleteID:    id,
			Discipline:   d.Code,
			Performances: byAthlete[id],
		}
		if _, ok := d.System.(registry.TimeBased); ok && g.faker.Float64Range(0, 1) < baselineShare {
			b := hundredths(g.faker.Float64Range(0, maxPrePoints))
			rec.Baseline = &b
		}
		recs = append(recs, rec)
	}
	return recs
}

// Performances flattens a race into per-athlete performances. Time-based
// performances use the fastest time as reference and carry no field
// strength. Ranking-based performances get competition ranks from the
// judged scores.
func Performances(race model.Race) []model.AthletePerformance {
	out := make([]model.AthletePerformance, len(race.Entries))

	ref := race.ReferenceTime
	if ref <= 0 {
		ref = math.Inf(1)
		for _, e := range race.Entries {
			if e.Time > 0 && e.Time < ref {
				ref = e.Time
			}
		}
	}
	ranks := scoreRanks(race.Entries)

	for i, e := range race.Entries {
		p := model.AthletePerformance{
			AthleteID:       e.AthleteID,
			Discipline:      race.Discipline,
			CompetitionID:   race.CompetitionID,
			CompetitionDate: race.CompetitionDate,
		}
		if e.Time > 0 {
			p.AthleteTime = e.Time
			p.ReferenceTime = ref
			p.EventLevel = race.EventLevel
		} else {
			p.Rank = e.Rank
			if p.Rank == 0 {
				p.Rank = ranks[i]
			}
			p.Tier = race.Tier
			p.FinalScore = e.Score
		}
		out[i] = p
	}
	return out
}

// scoreRanks assigns competition ranks (1, 1, 3) by descending score.
func scoreRanks(entries []model.RaceEntry) []int {
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return entries[order[a]].Score > entries[order[b]].Score })

	ranks := make([]int, len(entries))
	for pos, idx := range order {
		if pos > 0 && entries[idx].Score == entries[order[pos-1]].Score {
			ranks[idx] = ranks[order[pos-1]]
			continue
		}
		ranks[idx] = pos + 1
	}
	return ranks
}

func (g *Generator) prePoints() *float64 {
	if g.faker.Float64Range(0, 1) >= rankedShare {
		return nil
	}
	v := hundredths(g.faker.Float64Range(0, maxPrePoints))
	return &v
}

// competitionID derives a name-based uuid so ids repeat per seed.
func (g *Generator) competitionID(code model.DisciplineCode) string {
	g.issued++
	name := fmt.Sprintf("%d/%s/%s/%d", g.seed, g.season, code, g.issued)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func hundredths(v float64) float64 { return math.Round(v*100) / 100 }

func quarters(v float64) float64 { return math.Round(v*4) / 4 }
