package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spotter-app/spotter/internal/daemon"
	"github.com/spotter-app/spotter/internal/domain"
)

func init() {
	logCmd.Flags().StringVar(&logAt, "at", "", "Completion time, RFC3339 or YYYY-MM-DD (default: now)")
	logCmd.Flags().IntVar(&logDuration, "duration", 0, "Workout duration in minutes")
	logCmd.Flags().StringVar(&logEventID, "event-id", "", "Explicit event id for replays")
	rootCmd.AddCommand(logCmd)
}

var (
	logAt       string
	logDuration int
	logEventID  string
)

var logCmd = &cobra.Command{
	Use:   "log USER",
	Short: "Record a completed workout",
	Long: `Record a completed workout for a user.

Replaying the same --event-id is safe: the workout counts once.`,
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	completedAt := time.Now()
	if logAt != "" {
		t, err := parseWhen(logAt)
		if err != nil {
			return err
		}
		completedAt = t
	}

	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Tracker.RecordWorkout(context.Background(), domain.RawWorkout{
		EventID:         logEventID,
		UserID:          args[0],
		CompletedAt:     completedAt,
		DurationMinutes: logDuration,
	})
	if errors.Is(err, domain.ErrDuplicateEvent) {
		fmt.Println("Already counted — nothing to do.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Logged workout for %s: +%d points (%.2fx), streak %d\n",
		args[0], res.Entry.Amount, res.Entry.Multiplier, res.Streak.CurrentStreak)
	for _, b := range res.NewBadges {
		fmt.Printf("  %s %s (%s)\n", b.Icon, b.Name, b.Rarity)
	}
	if res.LeveledUp {
		fmt.Println("  ⬆ Level up!")
	}
	return nil
}

// parseWhen accepts RFC3339 or a bare calendar date.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (want RFC3339 or YYYY-MM-DD)", s)
}
