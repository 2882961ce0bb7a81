// Package standings orders season summaries into per-discipline rankings.
package standings

import (
	"sort"

	"github.com/okian/skipoints/internal/domain/model"
)

// Entry represents one line of a discipline ranking.
type Entry struct {
	Rank       int
	AthleteID  string
	Discipline model.DisciplineCode
	Points     float64
}

// Rank orders summaries per discipline, best first under each discipline's
// direction. Equal points share a rank and the next rank is skipped (1, 1, 3).
// The result is grouped by discipline code in ascending order.
func Rank(summaries []model.SeasonSummary) []Entry {
	byDiscipline := make(map[model.DisciplineCode][]model.SeasonSummary)
	for _, s := range summaries {
		byDiscipline[s.Discipline] = append(byDiscipline[s.Discipline], s)
	}

	codes := make([]model.DisciplineCode, 0, len(byDiscipline))
	for code := range byDiscipline {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	out := make([]Entry, 0, len(summaries))
	for _, code := range codes {
		out = append(out, rankDiscipline(byDiscipline[code])...)
	}
	return out
}

// TopN returns the first n entries of one discipline. A negative n yields
// no entries.
func TopN(entries []Entry, discipline model.DisciplineCode, n int) []Entry {
	n = max(n, 0)
	out := make([]Entry, 0, n)
	for _, e := range entries {
		if len(out) >= n {
			break
		}
		if e.Discipline == discipline {
			out = append(out, e)
		}
	}
	return out
}

func rankDiscipline(group []model.SeasonSummary) []Entry {
	dir := group[0].Direction
	sort.Slice(group, func(i, j int) bool {
		if group[i].FinalPoints != group[j].FinalPoints {
			return dir.Better(group[i].FinalPoints, group[j].FinalPoints)
		}
		return group[i].AthleteID < group[j].AthleteID
	})

	entries := make([]Entry, len(group))
	for i, s := range group {
		rank := i + 1
		if i > 0 && s.FinalPoints == group[i-1].FinalPoints {
			rank = entries[i-1].Rank
		}
		entries[i] = Entry{Rank: rank, AthleteID: s.AthleteID, Discipline: s.Discipline, Points: s.FinalPoints}
	}
	return entries
}
