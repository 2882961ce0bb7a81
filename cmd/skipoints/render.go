package main

import (
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/okian/skipoints/internal/domain/model"
)

var (
	headingColor  = color.New(color.FgCyan, color.Bold) //nolint:gochecknoglobals // shared palette
	warningColor  = color.New(color.FgYellow)           //nolint:gochecknoglobals // shared palette
	highlightText = color.New(color.FgGreen)            //nolint:gochecknoglobals // shared palette
)

func printHeading(w io.Writer, format string, args ...any) {
	_, _ = headingColor.Fprintf(w, "\n"+format+"\n", args...)
}

func printWarning(w io.Writer, format string, args ...any) {
	_, _ = warningColor.Fprintf(w, format+"\n", args...)
}

// renderTable writes rows under headers with numbers right-aligned.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func fmtPoints(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func fmtPercent(v float64) string { return strconv.FormatFloat(v*100, 'f', 2, 64) + "%" }

// fmtBreakdown summarizes how a result was derived.
func fmtBreakdown(r model.PointsResult) string { //nolint:gocritic // hugeParam: read-only formatting
	switch b := r.Breakdown.(type) {
	case model.TimeBreakdown:
		s := "base " + fmtPoints(b.BaseRacePoints) + " + pen " + fmtPoints(b.Penalty) + " x " + strconv.FormatFloat(b.EventCoefficient, 'f', -1, 64)
		if b.Capped {
			s += " (capped)"
		}
		return s
	case model.RankingBreakdown:
		return "rank " + strconv.Itoa(b.Rank) + " x " + fmtPercent(b.RankPercentage) + " of " + fmtPoints(b.TierCeiling)
	default:
		return ""
	}
}

func fmtCounting(rs []model.CountingResult) string {
	s := ""
	for i, r := range rs {
		if i > 0 {
			s += ", "
		}
		if r.CompetitionID == model.BaselineSource {
			s += highlightText.Sprint("baseline " + fmtPoints(r.Points))
			continue
		}
		s += fmtPoints(r.Points)
	}
	return s
}
