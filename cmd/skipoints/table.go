package main

import (
	"fmt"
	"strconv"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/spf13/cobra"
)

func newTableCmd(a *app) *cobra.Command {
	var (
		tier     string
		ranks    int
		from, to int
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the ranking points scale of a category tier.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			t := model.CategoryTier(tier)
			if ranks <= 0 {
				ranks = a.svc.RankCutoff()
			}

			rows, err := a.svc.RankTable(ranks, t)
			if err != nil {
				return err
			}
			printHeading(out, "%s ranking scale", t)
			data := make([][]string, len(rows))
			for i, r := range rows {
				data[i] = []string{strconv.Itoa(r.Rank), fmtPercent(r.Percentage), fmtPoints(r.Points)}
			}
			if err := renderTable(out, []string{"Rank", "Share", "Points"}, data); err != nil {
				return err
			}

			if from > 0 && to > 0 {
				gain, err := a.svc.RankImprovement(from, to, t)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "\nMoving from rank %d to rank %d changes points by %s.\n", from, to, fmtPoints(gain))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tier, "tier", "t", string(model.Category1), "Category tier")
	cmd.Flags().IntVar(&ranks, "ranks", 0, "Last rank to print (defaults to the scoring cutoff)")
	cmd.Flags().IntVar(&from, "from", 0, "Current rank for an improvement estimate")
	cmd.Flags().IntVar(&to, "to", 0, "Target rank for an improvement estimate")
	return cmd
}
