package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
)

func newStationsCmd() *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "stations",
		Short: "List the seeded corridor stations",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := corridor.LoadSeed(seedPath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKM\tCATEGORY\tPLATFORMS\tHUB")
			for _, st := range seed.Stations {
				hub := ""
				if st.IsStrategicHub {
					hub = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%d\t%d\t%s\n",
					st.ID, st.Name, st.DistanceKM, st.Category, st.PlatformCount, hub)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", "corridor.yaml", "Path to corridor seed file")
	return cmd
}
