package cli

import (
	"fmt"
	"strconv"

	"github.com/iremince/garden-project/internal/cli/formatter"
	"github.com/iremince/garden-project/internal/clock"
	"github.com/iremince/garden-project/internal/domain"
	"github.com/spf13/cobra"
)

func newSlotsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List planting spots and whether each has a flower today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Garden.Refresh(app.now())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSlots(app.Garden.Slots()))
			return nil
		},
	}
}

func newFlowersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "flowers",
		Short: "List flower kinds and today's progress toward the premium unlock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			rows := make([]formatter.FlowerRow, 0, len(domain.Flowers))
			for _, f := range domain.Flowers {
				rows = append(rows, formatter.FlowerRow{Spec: f, Status: app.Garden.IsUnlocked(f.Kind, now)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFlowers(rows, app.Garden.TodayWorkMinutes(now), app.Garden.Policy().ThresholdMinutes))
			return nil
		},
	}
}

func newSessionsCmd(app *App) *cobra.Command {
	var today bool
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List planted work sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			log := app.Garden.Sessions()
			if today {
				filtered := log[:0]
				for _, s := range log {
					if clock.SameDay(s.PlantedAt, now) {
						filtered = append(filtered, s)
					}
				}
				log = filtered
			}
			if limit > 0 && len(log) > limit {
				log = log[len(log)-limit:]
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessions(log, now))
			return nil
		},
	}
	cmd.Flags().BoolVar(&today, "today", false, "Only sessions planted today")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many of the newest sessions")

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show SESSION_ID",
		Short: "Show one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id %q", args[0])
			}
			s, ok := app.Garden.Session(id)
			if !ok {
				return fmt.Errorf("session %d not found", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(s, app.now()))
			return nil
		},
	}
}
