package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spotter-app/spotter/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats USER",
	Short: "Show a user's derived stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	stats, err := d.Tracker.Stats(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "User:\t%s (%s)\n", stats.UserName, stats.UserID)
	fmt.Fprintf(w, "Level:\t%d\n", stats.Level)
	fmt.Fprintf(w, "Points:\t%d total / %d this week / %d this month\n",
		stats.TotalPoints, stats.WeeklyPoints, stats.MonthlyPoints)
	fmt.Fprintf(w, "Workouts:\t%d total / %d this week / %d this month\n",
		stats.TotalWorkouts, stats.WeeklyWorkouts, stats.MonthlyWorkouts)
	fmt.Fprintf(w, "Streak:\t%d current / %d longest\n", stats.CurrentStreak, stats.LongestStreak)
	fmt.Fprintf(w, "Multiplier:\t%.2fx\n", stats.ConsistencyMultiplier)
	return w.Flush()
}
