package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/iremince/garden-project/internal/cli/formatter"
	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/stats"
	"github.com/spf13/cobra"
)

const dashboardTick = time.Second

type dashboardKeys struct {
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next period")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev period")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Help, k.Quit}
}

func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Refresh, k.Help, k.Quit}}
}

type dashboardTickMsg time.Time

// dashboardModel is the live view behind "garden watch". Each tick refreshes
// occupancy so a running dashboard rolls over at midnight.
type dashboardModel struct {
	app    *App
	keys   dashboardKeys
	help   help.Model
	period int
	width  int

	now      time.Time
	snapshot stats.Snapshot
	series   stats.Series
	freeSpot int
	raining  bool
}

func newDashboardModel(app *App) *dashboardModel {
	m := &dashboardModel{app: app, keys: newDashboardKeys(), help: help.New()}
	m.refresh()
	return m
}

func (m *dashboardModel) currentPeriod() domain.Period {
	return domain.Periods[m.period]
}

func (m *dashboardModel) refresh() {
	m.now = m.app.now()
	m.app.Garden.Refresh(m.now)
	m.snapshot = m.app.Garden.Snapshot(m.now)
	m.series = m.app.Garden.Series(m.now, m.currentPeriod())
	m.raining = m.app.raining()
	m.freeSpot = 0
	for _, s := range m.app.Garden.Slots() {
		if !s.Occupied {
			m.freeSpot++
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(dashboardTick, func(t time.Time) tea.Msg { return dashboardTickMsg(t) })
}

func (m *dashboardModel) Init() tea.Cmd {
	return tickCmd()
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case dashboardTickMsg:
		m.refresh()
		return m, tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.period = (m.period + 1) % len(domain.Periods)
			m.refresh()
		case key.Matches(msg, m.keys.Prev):
			m.period = (m.period + len(domain.Periods) - 1) % len(domain.Periods)
			m.refresh()
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *dashboardModel) tabs(theme formatter.Theme) string {
	active := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Underline(true)
	parts := make([]string, 0, len(domain.Periods))
	for i, p := range domain.Periods {
		label := formatter.PeriodTitle(p)
		if i == m.period {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, formatter.Dim(label))
		}
	}
	return strings.Join(parts, "   ")
}

func (m *dashboardModel) View() string {
	theme := formatter.ThemeAt(m.now)
	p := m.currentPeriod()

	header := fmt.Sprintf("%s  %s  %s",
		theme.Title("✿ GARDEN"),
		formatter.WeatherBadge(m.raining, theme),
		formatter.Dim(m.now.Format("Mon Jan 2 15:04:05")),
	)

	statsBox := formatter.RenderThemedBox(theme, formatter.PeriodTitle(p), formatter.FormatPeriodStats(m.snapshot.Period(p)))
	spots := formatter.Dim(fmt.Sprintf("%d free spots today", m.freeSpot))
	left := lipgloss.JoinVertical(lipgloss.Left, statsBox, spots)

	chart := formatter.FormatSeries(m.series) + formatter.FormatSummary(stats.Summarize(m.series))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", chart)
	if m.width > 0 && lipgloss.Width(body) > m.width {
		body = lipgloss.JoinVertical(lipgloss.Left, left, chart)
	}

	return strings.Join([]string{header, m.tabs(theme), body, m.help.View(m.keys)}, "\n\n") + "\n"
}

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Open a live dashboard of today's garden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runProgram(newDashboardModel(app))
		},
	}
}
