package cli

import (
	"fmt"

	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/export"
	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every flower and all statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			confirmed := yes
			asked := false
			if !yes && app.IsInteractive {
				asked = true
				if err := app.runForm(resetConfirmForm(app.now(), &confirmed)); err != nil {
					return err
				}
			}
			if asked && !confirmed {
				fmt.Fprintln(out, "Reset cancelled. Your garden is unchanged.")
				return nil
			}

			err := app.Garden.ResetAll(cmd.Context(), confirmed)
			switch {
			case domain.CodeOf(err) == domain.ErrCodeResetNotConfirmed:
				return fmt.Errorf("%w (pass --yes to reset without a prompt)", err)
			case err != nil:
				return fmt.Errorf("garden cleared for this run but stored data was not: %w", err)
			}
			fmt.Fprintln(out, "Garden reset. All flowers and statistics were removed.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write sessions and statistics to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := app.Garden.Sessions()
			if err := export.WriteXLSX(path, log, app.now()); err != nil {
				return fmt.Errorf("exporting to %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", len(log), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "out", "o", "garden.xlsx", "Workbook path")

	return cmd
}
