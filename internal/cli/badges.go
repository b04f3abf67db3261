package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spotter-app/spotter/internal/daemon"
)

func init() {
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges USER",
	Short: "List a user's earned badges",
	Args:  cobra.ExactArgs(1),
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	items, err := d.Tracker.Badges(args[0])
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No badges yet. First one drops with the first workout.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BADGE\tRARITY\tEARNED")
	for _, it := range items {
		fmt.Fprintf(w, "%s %s\t%s\t%s\n",
			it.Badge.Icon, it.Badge.Name, it.Badge.Rarity, it.AwardedAt.Format("2006-01-02"))
	}
	return w.Flush()
}
