// Package cli implements the Spotter command-line interface using Cobra.
// Each subcommand maps to one engine capability (log, stats, rank, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spotter",
	Short: "Spotter — gym accountability engine",
	Long: `Spotter keeps score on your workouts so your gym buddy doesn't have to.
Log workouts, build streaks, earn badges, and get called out when you slack.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
