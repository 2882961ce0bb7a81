package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/standings"
	"github.com/okian/skipoints/internal/fixtures"
	"github.com/okian/skipoints/pkg/metrics"
	"github.com/spf13/cobra"
)

type demoOptions struct {
	discipline string
	races      int
	athletes   int
	seed       int64
	top        int
	metrics    bool
}

func newDemoCmd(a *app) *cobra.Command {
	o := &demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Score a synthetic season and print races, summaries and standings.",
		Long: `Generate a deterministic season for one discipline and run it through the points engine.

Prints:
- Every race, scored from its full field
- One season summary per athlete
- The resulting standings
- With --metrics, the engine metrics gathered during the run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd, o)
		},
	}

	cmd.Flags().StringVarP(&o.discipline, "discipline", "d", "GS", "Discipline code or alias")
	cmd.Flags().IntVar(&o.races, "races", 4, "Number of races in the season")
	cmd.Flags().IntVar(&o.athletes, "athletes", 8, "Number of athletes in every field")
	cmd.Flags().Int64Var(&o.seed, "seed", 1, "Random seed; equal seeds print equal seasons")
	cmd.Flags().IntVar(&o.top, "top", 10, "Standings rows to print")
	cmd.Flags().BoolVar(&o.metrics, "metrics", false, "Print the engine metrics after the run")
	return cmd
}

func (a *app) runDemo(cmd *cobra.Command, o *demoOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	d, err := a.svc.Discipline(model.DisciplineCode(o.discipline))
	if err != nil {
		return err
	}
	if o.races < 1 || o.athletes < 1 {
		return errors.New("races and athletes must be at least 1")
	}
	if o.top < 0 {
		return errors.New("top must not be negative")
	}

	if err := a.svc.Start(ctx); err != nil {
		return err
	}
	defer a.svc.Stop()

	gen := fixtures.New(fixtures.WithSeed(o.seed), fixtures.WithAthletes(o.athletes))
	races := gen.Races(d, o.races)

	for i, race := range races {
		results, err := a.svc.ComputeRace(ctx, race)
		if err != nil {
			return fmt.Errorf("race %d: %w", i+1, err)
		}
		printHeading(out, "Race %d: %s on %s (%s)", i+1, d.Name, race.CompetitionDate.Format("2006-01-02"), raceClass(race))
		rows := make([][]string, len(results))
		for j, r := range results {
			rows[j] = []string{strconv.Itoa(j + 1), r.AthleteID, fmtPoints(r.Points), fmtBreakdown(r)}
		}
		if err := renderTable(out, []string{"Pos", "Athlete", "Points", "Breakdown"}, rows); err != nil {
			return err
		}
	}

	recs := gen.Records(d, races)
	scored := 0
	for _, rec := range recs {
		scored += len(rec.Performances)
	}
	sums, err := a.svc.SummarizeSeasons(ctx, recs)
	if err != nil {
		return err
	}

	printHeading(out, "Season %s: %s (%s, %s)", gen.Season(), d.Name, d.System.SystemType(), d.System.Direction())
	rows := make([][]string, len(sums))
	for i, s := range sums {
		next := "-"
		if s.NextBaseline != nil {
			next = fmtPoints(*s.NextBaseline)
		}
		rows[i] = []string{s.AthleteID, strconv.Itoa(s.Entries), strconv.Itoa(s.ValidResults), fmtCounting(s.Counting), fmtPoints(s.FinalPoints), next}
	}
	if err := renderTable(out, []string{"Athlete", "Entries", "Valid", "Counting", "Final", "Next baseline"}, rows); err != nil {
		return err
	}

	entries, err := a.svc.Standings(ctx, sums)
	if err != nil {
		return err
	}
	names := make(map[string]fixtures.Athlete, o.athletes)
	for _, ath := range gen.Athletes() {
		names[ath.ID] = ath
	}
	top := standings.TopN(entries, d.Code, o.top)
	printHeading(out, "Standings: %s", d.Name)
	rows = make([][]string, len(top))
	for i, e := range top {
		ath := names[e.AthleteID]
		rows[i] = []string{strconv.Itoa(e.Rank), e.AthleteID, ath.Name, ath.Nation, fmtPoints(e.Points)}
	}
	if err := renderTable(out, []string{"Rank", "Athlete", "Name", "Nation", "Points"}, rows); err != nil {
		return err
	}

	stats := a.svc.GetStats()
	if _, err := fmt.Fprintf(out, "\nScored %d season performances on %v workers (%v jobs processed).\n",
		scored, stats["workerCount"], stats["processed"]); err != nil {
		return err
	}

	if o.metrics {
		return printMetrics(out)
	}
	return nil
}

func printMetrics(out io.Writer) error {
	samples, err := metrics.Snapshot()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	printHeading(out, "Metrics")
	rows := make([][]string, len(samples))
	for i, sm := range samples {
		rows[i] = []string{sm.Name, sm.Labels, strconv.FormatFloat(sm.Value, 'f', -1, 64)}
	}
	return renderTable(out, []string{"Metric", "Labels", "Value"}, rows)
}

func raceClass(r model.Race) string { //nolint:gocritic // hugeParam: read-only formatting
	if r.Tier != "" {
		return string(r.Tier)
	}
	return "level " + string(r.EventLevel)
}
