package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/iremince/garden-project/internal/garden"
	"github.com/spf13/cobra"
)

// Weather reports the current sky over the garden. *weather.Scheduler
// implements it.
type Weather interface {
	Raining() bool
}

// App holds what the commands need to run.
type App struct {
	Garden *garden.Core
	// Weather is nil when the weather cycle is disabled.
	Weather Weather
	// IsInteractive enables forms for missing input and the reset prompt.
	IsInteractive bool

	// RunForm and RunProgram default to running against the terminal.
	RunForm    func(*huh.Form) error
	RunProgram func(tea.Model) error
}

func (a *App) now() time.Time { return a.Garden.Now() }

func (a *App) raining() bool {
	return a.Weather != nil && a.Weather.Raining()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// ConfigFlag is the persistent flag naming the YAML config file. main reads
// it before the App exists.
const ConfigFlag = "config"

// NewRootCmd creates the top-level "garden" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "garden",
		Short:         "Grow a flower for every finished work session",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(ConfigFlag, "", "Path to a YAML config file")

	root.AddCommand(
		newPlantCmd(app),
		newStatsCmd(app),
		newChartCmd(app),
		newSlotsCmd(app),
		newFlowersCmd(app),
		newSessionsCmd(app),
		newShowCmd(app),
		newResetCmd(app),
		newExportCmd(app),
		newWatchCmd(app),
	)

	return root
}
