// Package registry maps discipline codes to their scoring systems and the
// constants those systems use. It is the only place a discipline is resolved.
package registry

import (
	"sort"
	"strings"

	"github.com/okian/skipoints/internal/domain/model"
)

type timeConstants struct {
	factor    float64
	maxPoints float64
}

// Default time factors and point ceilings per time-based discipline.
var defaultTimeConstants = map[model.DisciplineCode]timeConstants{ //nolint:gochecknoglobals // immutable rule table
	model.AlpineDownhill:      {factor: 1250, maxPoints: 330},
	model.AlpineSlalom:        {factor: 730, maxPoints: 165},
	model.AlpineGiantSlalom:   {factor: 1010, maxPoints: 220},
	model.AlpineSuperG:        {factor: 1190, maxPoints: 270},
	model.AlpineCombined:      {factor: 1360, maxPoints: 270},
	model.SnowboardParallelSL: {factor: 600, maxPoints: 200},
	model.SnowboardParallelGS: {factor: 730, maxPoints: 220},
}

type entry struct {
	code   model.DisciplineCode
	name   string
	system model.SystemType
}

var defaultEntries = []entry{ //nolint:gochecknoglobals // immutable rule table
	{model.AlpineDownhill, "Alpine Downhill", model.AlpinePoints},
	{model.AlpineSlalom, "Alpine Slalom", model.AlpinePoints},
	{model.AlpineGiantSlalom, "Alpine Giant Slalom", model.AlpinePoints},
	{model.AlpineSuperG, "Alpine Super-G", model.AlpinePoints},
	{model.AlpineCombined, "Alpine Combined", model.AlpinePoints},
	{model.SnowboardParallelSL, "Snowboard Parallel Slalom", model.SnowboardAlpinePoints},
	{model.SnowboardParallelGS, "Snowboard Parallel Giant Slalom", model.SnowboardAlpinePoints},
	{model.SnowboardBigAir, "Snowboard Big Air", model.SnowboardRankingPoints},
	{model.SnowboardSlopestyle, "Snowboard Slopestyle", model.SnowboardRankingPoints},
	{model.SnowboardHalfpipe, "Snowboard Halfpipe", model.SnowboardRankingPoints},
	{model.FreestyleBigAir, "Freestyle Big Air", model.FreestyleRankingPoints},
	{model.FreestyleSlopestyle, "Freestyle Slopestyle", model.FreestyleRankingPoints},
	{model.FreestyleHalfpipe, "Freestyle Halfpipe", model.FreestyleRankingPoints},
}

// Short codes that name exactly one discipline. BA, SS and HP exist in both
// snowboard and freestyle and are deliberately absent.
var defaultAliases = map[string]model.DisciplineCode{ //nolint:gochecknoglobals // immutable rule table
	"DH":  model.AlpineDownhill,
	"SL":  model.AlpineSlalom,
	"GS":  model.AlpineGiantSlalom,
	"SG":  model.AlpineSuperG,
	"AC":  model.AlpineCombined,
	"PSL": model.SnowboardParallelSL,
	"PGS": model.SnowboardParallelGS,
}

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithTimeFactor overrides the time factor of a time-based discipline.
func WithTimeFactor(code model.DisciplineCode, factor float64) Option {
	return func(r *Registry) {
		if c, ok := r.timeConsts[code]; ok && factor > 0 {
			c.factor = factor
			r.timeConsts[code] = c
		}
	}
}

// WithMaxPoints overrides the points ceiling of a time-based discipline.
func WithMaxPoints(code model.DisciplineCode, maxPoints float64) Option {
	return func(r *Registry) {
		if c, ok := r.timeConsts[code]; ok && maxPoints > 0 {
			c.maxPoints = maxPoints
			r.timeConsts[code] = c
		}
	}
}

// Registry is an immutable discipline table. It is safe for concurrent use.
type Registry struct {
	timeConsts  map[model.DisciplineCode]timeConstants
	disciplines map[model.DisciplineCode]Discipline
	aliases     map[string]model.DisciplineCode
}

// New builds the registry with the rulebook defaults and any overrides.
func New(opts ...Option) *Registry {
	r := &Registry{
		timeConsts:  make(map[model.DisciplineCode]timeConstants, len(defaultTimeConstants)),
		disciplines: make(map[model.DisciplineCode]Discipline, len(defaultEntries)),
		aliases:     defaultAliases,
	}
	for code, c := range defaultTimeConstants {
		r.timeConsts[code] = c
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, e := range defaultEntries {
		var sys ScoringSystem
		switch e.system {
		case model.AlpinePoints, model.SnowboardAlpinePoints:
			c := r.timeConsts[e.code]
			sys = TimeBased{Type: e.system, Factor: c.factor, MaxPoints: c.maxPoints}
		default:
			sys = RankingBased{Type: e.system}
		}
		r.disciplines[e.code] = Discipline{Code: e.code, Name: e.name, System: sys}
	}
	return r
}

// Resolve looks up a discipline by canonical code or unambiguous alias.
// Codes are matched case-insensitively.
func (r *Registry) Resolve(code model.DisciplineCode) (Discipline, error) {
	key := model.DisciplineCode(strings.ToUpper(strings.TrimSpace(string(code))))
	if d, ok := r.disciplines[key]; ok {
		return d, nil
	}
	if canonical, ok := r.aliases[string(key)]; ok {
		return r.disciplines[canonical], nil
	}
	return Discipline{}, &model.UnknownDisciplineError{Code: code}
}

// ResolveSystem returns the scoring system a discipline routes to.
func (r *Registry) ResolveSystem(code model.DisciplineCode) (ScoringSystem, error) {
	d, err := r.Resolve(code)
	if err != nil {
		return nil, err
	}
	return d.System, nil
}

// Disciplines lists the registered disciplines grouped by system type,
// codes sorted within each group.
func (r *Registry) Disciplines() map[model.SystemType][]model.DisciplineCode {
	out := make(map[model.SystemType][]model.DisciplineCode)
	for code, d := range r.disciplines {
		t := d.System.SystemType()
		out[t] = append(out[t], code)
	}
	for t := range out {
		sort.Slice(out[t], func(i, j int) bool { return out[t][i] < out[t][j] })
	}
	return out
}
