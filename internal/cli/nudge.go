package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spotter-app/spotter/internal/daemon"
)

func init() {
	rootCmd.AddCommand(nudgeCmd)
}

var nudgeCmd = &cobra.Command{
	Use:   "nudge USER",
	Short: "Ask the engine what it thinks of a user's behavior",
	RunE:  runNudge,
	Args:  cobra.ExactArgs(1),
}

func runNudge(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	n, err := d.Tracker.Nudge(context.Background(), args[0])
	if err != nil {
		return err
	}
	if n == nil {
		fmt.Println("Nothing to say today. Keep it up.")
		return nil
	}

	fmt.Printf("[%s/%s] %s\n", n.Classification.Event, n.Classification.Severity, n.Message)
	return nil
}
