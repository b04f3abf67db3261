package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spotter-app/spotter/internal/daemon"
	"github.com/spotter-app/spotter/internal/domain"
)

func init() {
	joinCmd.Flags().StringVar(&joinName, "name", "", "Display name (default: the user id)")
	joinCmd.Flags().StringVar(&joinTimezone, "timezone", "UTC", "IANA timezone for display")
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(buddyCmd)
}

var (
	joinName     string
	joinTimezone string
)

var joinCmd = &cobra.Command{
	Use:   "join USER",
	Short: "Register a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runJoin,
}

func runJoin(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	name := joinName
	if name == "" {
		name = args[0]
	}
	u := domain.User{
		ID:        args[0],
		Name:      name,
		Timezone:  joinTimezone,
		CreatedAt: time.Now().UTC(),
	}
	if err := d.DB.UpsertUser(u); err != nil {
		return err
	}
	fmt.Printf("Registered %s\n", u.ID)
	return nil
}

var buddyCmd = &cobra.Command{
	Use:   "buddy USER PARTNER",
	Short: "Pair two users as accountability buddies",
	Args:  cobra.ExactArgs(2),
	RunE:  runBuddy,
}

func runBuddy(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.DB.SetPartner(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("%s and %s are now accountability buddies\n", args[0], args[1])
	return nil
}
