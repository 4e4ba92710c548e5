package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/fragility"
)

func newFragilityCmd() *cobra.Command {
	var (
		seedPath  string
		outputFmt string
		minScore  int
	)

	cmd := &cobra.Command{
		Use:   "fragility",
		Short: "Rate all seeded connections by fragility",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := corridor.LoadSeed(seedPath)
			if err != nil {
				return err
			}

			source := corridor.NewSeedSource(seed)
			analyzer := fragility.NewAnalyzer(source, source)

			var records []fragility.Record
			for _, conn := range seed.Connections {
				rec := analyzer.Analyze(cmd.Context(), conn)
				if rec.FragilityScore >= minScore {
					records = append(records, rec)
				}
			}

			sort.Slice(records, func(i, j int) bool {
				return records[i].FragilityScore > records[j].FragilityScore
			})

			if outputFmt == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FROM\tTO\tBUFFER\tFRAGILITY\tCASCADE\tROUTES\tRECOMMENDATIONS")
			for _, rec := range records {
				from, to := rec.FromStationID, rec.ToStationID
				if st := seed.Station(from); st != nil {
					from = st.Name
				}
				if st := seed.Station(to); st != nil {
					to = st.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%.0fm\t%d\t%d\t%d\t%s\n",
					from, to, rec.BufferMinutes,
					rec.FragilityScore, rec.CascadeRisk, rec.AlternativeRouteCount,
					strings.Join(rec.Recommendations, "; "))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", "corridor.yaml", "Path to corridor seed file")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	cmd.Flags().IntVar(&minScore, "min-score", 0, "Only show connections at or above this fragility score")

	return cmd
}
