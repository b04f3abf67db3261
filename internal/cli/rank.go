package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spotter-app/spotter/internal/daemon"
)

func init() {
	rootCmd.AddCommand(rankCmd)
}

var rankCmd = &cobra.Command{
	Use:     "rank",
	Aliases: []string{"leaderboard"},
	Short:   "Show the leaderboard",
	RunE:    runRank,
}

func runRank(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	board, err := d.Tracker.Leaderboard()
	if err != nil {
		return err
	}
	if len(board) == 0 {
		fmt.Println("Nobody on the board yet. Run 'spotter log <user>' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tUSER\tPOINTS\tSTREAK\tLEVEL\tWORKOUTS")
	for _, s := range board {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\n",
			s.Rank, s.UserName, s.TotalPoints, s.CurrentStreak, s.Level, s.TotalWorkouts)
	}
	return w.Flush()
}
