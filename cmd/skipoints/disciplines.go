package main

import (
	"sort"
	"strconv"

	"github.com/okian/skipoints/internal/domain/model"
	"github.com/okian/skipoints/internal/domain/registry"
	"github.com/spf13/cobra"
)

func newDisciplinesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "disciplines",
		Short: "List registered disciplines and their scoring systems.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bySystem := a.svc.Disciplines()
			systems := make([]model.SystemType, 0, len(bySystem))
			for s := range bySystem {
				systems = append(systems, s)
			}
			sort.Slice(systems, func(i, j int) bool { return systems[i] < systems[j] })

			var rows [][]string
			for _, s := range systems {
				for _, code := range bySystem[s] {
					d, err := a.svc.Discipline(code)
					if err != nil {
						return err
					}
					factor, limit := "-", "-"
					if tb, ok := d.System.(registry.TimeBased); ok {
						factor = strconv.FormatFloat(tb.Factor, 'f', -1, 64)
						limit = fmtPoints(tb.MaxPoints)
					}
					rows = append(rows, []string{string(code), d.Name, string(s), d.System.Direction().String(), factor, limit})
				}
			}
			return renderTable(cmd.OutOrStdout(), []string{"Code", "Name", "System", "Direction", "Factor", "Max points"}, rows)
		},
	}
}
