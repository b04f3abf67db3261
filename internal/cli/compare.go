package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spotter-app/spotter/internal/app/leaderboard"
	"github.com/spotter-app/spotter/internal/daemon"
)

func init() {
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare USER OTHER",
	Short: "Head-to-head comparison between two users",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	v, err := d.Tracker.Compare(args[0], args[1])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "METRIC\t%s\t%s\tWINNER\n", args[0], args[1])
	for _, m := range v.Metrics {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", m.Metric, m.A, m.B, winnerName(m.Winner, args[0], args[1]))
	}
	fmt.Fprintf(w, "\nOverall:\t%s\n", winnerName(v.Overall, args[0], args[1]))
	return w.Flush()
}

func winnerName(o leaderboard.Outcome, a, b string) string {
	switch o {
	case leaderboard.OutcomeA:
		return a
	case leaderboard.OutcomeB:
		return b
	default:
		return "tie"
	}
}
