package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

func newScoreCmd() *cobra.Command {
	var (
		seedPath  string
		preset    string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score all corridor stations by upgrade priority",
		Long:  `Loads the corridor seed, scores every station under the chosen weight preset and prints a priority ranking.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), seedPath, preset, outputFmt)
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", "corridor.yaml", "Path to corridor seed file")
	cmd.Flags().StringVar(&preset, "preset", scoring.PresetBalanced, "Weight preset to score under")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

func runScore(ctx context.Context, seedPath, preset, outputFmt string) error {
	seed, err := corridor.LoadSeed(seedPath)
	if err != nil {
		return err
	}

	p, ok := scoring.Preset(preset)
	if !ok {
		return fmt.Errorf("unknown preset %q (known: %v)", preset, scoring.PresetNames())
	}

	source := corridor.NewSeedSource(seed)
	engine := scoring.NewEngine(source, 0) // no throttle against a local seed

	scores, err := engine.ScoreBatch(ctx, seed.Stations, p, time.Now())
	if err != nil {
		return err
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].Metrics.CompositeScore > scores[j].Metrics.CompositeScore
	})

	if outputFmt == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scores)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSTATION\tTRAFFIC\tCAPACITY\tSTRATEGIC\tFACILITY\tCOMPOSITE")
	for i, sc := range scores {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%d\n",
			i+1, sc.Name,
			sc.Metrics.TrafficVolume, sc.Metrics.CapacityConstraints,
			sc.Metrics.StrategicImportance, sc.Metrics.FacilityDeficits,
			sc.Metrics.CompositeScore)
	}
	return w.Flush()
}
