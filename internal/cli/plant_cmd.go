package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iremince/garden-project/internal/cli/formatter"
	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/garden"
	"github.com/spf13/cobra"
)

func newPlantCmd(app *App) *cobra.Command {
	var (
		slot, flower, activity string
		minutes                int
		hours, customMinutes   int
		at                     positionValue
	)

	cmd := &cobra.Command{
		Use:   "plant",
		Short: "Plant a flower for a finished work session",
		Long: `Plant a flower in a free spot. The duration is one of the presets
(15, 30, 45, 60, 90 or 120 minutes) or a custom --hours/--custom-minutes pair.
Run without flags in a terminal to fill in a form instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			app.Garden.Refresh(now)

			custom := cmd.Flags().Changed("hours") || cmd.Flags().Changed("custom-minutes")
			dur := garden.PresetDuration(minutes)
			if custom {
				dur = garden.CustomDuration(hours, customMinutes)
			}

			if app.IsInteractive && (slot == "" || strings.TrimSpace(activity) == "") {
				v := plantFormValues{Slot: slot, Flower: flower, Activity: activity, Preset: minutes}
				if v.Flower == "" {
					v.Flower = string(domain.DefaultFlower)
				}
				if custom {
					v.Preset = customPreset
				}
				if err := app.runForm(plantForm(app, now, &v)); err != nil {
					return err
				}
				slot, flower, activity = v.Slot, v.Flower, v.Activity
				dur = v.duration()
			}

			if slot == "" {
				return errors.New(`--slot is required (run "garden slots" to list free spots)`)
			}

			var kind domain.FlowerKind
			if flower != "" {
				k, err := domain.ParseFlowerKind(flower)
				if err != nil {
					return err
				}
				kind = k
			}

			res, err := app.Garden.Plant(cmd.Context(), garden.PlantRequest{
				SlotID:   slot,
				Position: at.pos,
				Kind:     kind,
				Activity: activity,
				Duration: dur,
				Now:      now,
			})
			if err != nil {
				return fmt.Errorf("planting in %s: %w", slot, err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlantResult(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&slot, "slot", "", "Spot to plant in, e.g. B2")
	cmd.Flags().Var(&at, "at", "Exact point inside the spot (defaults to its center)")
	cmd.Flags().StringVar(&flower, "flower", "", "Flower kind or name (Daisy, Tulip, Lotus)")
	cmd.Flags().StringVarP(&activity, "activity", "a", "", "What you worked on")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", garden.DefaultPresetMinutes, "Preset duration in minutes")
	cmd.Flags().IntVar(&hours, "hours", 0, "Custom duration hours")
	cmd.Flags().IntVar(&customMinutes, "custom-minutes", 0, "Custom duration minutes")
	cmd.MarkFlagsMutuallyExclusive("minutes", "hours")
	cmd.MarkFlagsMutuallyExclusive("minutes", "custom-minutes")

	return cmd
}
