package main

import (
	"fmt"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/spf13/cobra"
)

func newTargetCmd(a *app) *cobra.Command {
	var (
		discipline string
		level      string
		reference  float64
		points     float64
		current    float64
	)

	cmd := &cobra.Command{
		Use:   "target",
		Short: "Print the finishing time that earns a points goal.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.svc.TimeTarget(model.DisciplineCode(discipline), reference, points, model.EventLevel(level), current)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "%s: %s points need %.2fs against a %.2fs winning time.\n",
				t.Discipline, fmtPoints(t.TargetPoints), t.Time, reference); err != nil {
				return err
			}
			if current > 0 {
				if t.Improvement == 0 {
					printWarning(out, "%.2fs already meets the goal.", current)
					return nil
				}
				_, err = fmt.Fprintf(out, "From %.2fs that is %.2fs faster.\n", current, t.Improvement)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&discipline, "discipline", "d", "GS", "Time-based discipline code or alias")
	cmd.Flags().StringVarP(&level, "level", "l", string(model.EventLevelA), "Event level (A, B, C)")
	cmd.Flags().Float64Var(&reference, "reference", 0, "Winning time in seconds")
	cmd.Flags().Float64Var(&points, "points", 0, "Points goal")
	cmd.Flags().Float64Var(&current, "current", 0, "Current time in seconds")
	_ = cmd.MarkFlagRequired("reference")
	return cmd
}
