package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and validate weight profiles",
	}
	cmd.AddCommand(newProfilePresetsCmd(), newProfileValidateCmd())
	return cmd
}

func newProfilePresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in weight presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINFRA\tTIMETABLE\tPOPULATION\tFOCUS")
			for _, name := range scoring.PresetNames() {
				p, _ := scoring.Preset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%s\n",
					name, p.InfrastructureWeight, p.TimetableWeight, p.PopulationRiskWeight, p.FocusArea)
			}
			return w.Flush()
		},
	}
}

func newProfileValidateCmd() *cobra.Command {
	var (
		infra      float64
		timetable  float64
		population float64
		focus      string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a weight triple against the profile invariants",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := scoring.WeightProfile{
				InfrastructureWeight: infra,
				TimetableWeight:      timetable,
				PopulationRiskWeight: population,
				FocusArea:            scoring.FocusArea(focus),
			}
			if err := scoring.Validate(p); err != nil {
				return err
			}

			w := scoring.ResolveEffectiveWeights(p)
			fmt.Printf("valid; effective weights infra=%.2f timetable=%.2f population=%.2f\n",
				w.Infrastructure, w.Timetable, w.PopulationRisk)
			return nil
		},
	}

	cmd.Flags().Float64Var(&infra, "infra", 0.34, "Infrastructure weight")
	cmd.Flags().Float64Var(&timetable, "timetable", 0.33, "Timetable weight")
	cmd.Flags().Float64Var(&population, "population", 0.33, "Population risk weight")
	cmd.Flags().StringVar(&focus, "focus", string(scoring.FocusBalanced), "Focus area")

	return cmd
}
