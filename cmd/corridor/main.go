// Package main provides the corridor CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "corridor",
		Short: "Upgrade-priority and fragility analysis for the Berlin-Hamburg corridor",
		Long: `Corridor scores railway stations by upgrade priority and rates inter-station
connections by fragility, working offline against a corridor seed file.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newFragilityCmd(),
		newStationsCmd(),
		newProfileCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
