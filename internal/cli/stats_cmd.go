package cli

import (
	"fmt"

	"github.com/iremince/garden-project/internal/cli/formatter"
	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	period := newPeriodValue(domain.PeriodToday)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show work time, sessions and flowers per period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			snap := app.Garden.Snapshot(now)
			out := cmd.OutOrStdout()

			if !cmd.Flags().Changed("period") {
				fmt.Fprint(out, formatter.FormatSnapshot(snap))
				return nil
			}
			p := period.period
			fmt.Fprintln(out, formatter.RenderThemedBox(formatter.ThemeAt(now), formatter.PeriodTitle(p), formatter.FormatPeriodStats(snap.Period(p))))
			return nil
		},
	}
	cmd.Flags().Var(period, "period", "Only this period: today, weekly or monthly")

	return cmd
}

func newChartCmd(app *App) *cobra.Command {
	period := newPeriodValue(domain.PeriodWeekly)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart minutes worked per weekday, per day of month or today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			series := app.Garden.Series(app.now(), period.period)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(formatter.PeriodTitle(series.Period)))
			fmt.Fprint(out, formatter.FormatSeries(series))
			fmt.Fprintln(out, formatter.FormatSummary(stats.Summarize(series)))
			return nil
		},
	}
	cmd.Flags().Var(period, "period", "today, weekly or monthly")

	return cmd
}
