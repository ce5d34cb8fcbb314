package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iremince/garden-project/internal/clock"
	"github.com/iremince/garden-project/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorNight  = lipgloss.Color("#458588")
	ColorMoon   = lipgloss.Color("#bdae93")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Theme is the accent set for one time of day.
type Theme struct {
	Name   string
	Accent lipgloss.Color
	Border lipgloss.Color
	Icon   string
}

var (
	DayTheme   = Theme{Name: "day", Accent: ColorHeader, Border: ColorDim, Icon: "☀"}
	NightTheme = Theme{Name: "night", Accent: ColorNight, Border: ColorMoon, Icon: "☾"}
)

// ThemeAt picks the night theme in the evening and early morning.
func ThemeAt(now time.Time) Theme {
	if clock.IsNight(now) {
		return NightTheme
	}
	return DayTheme
}

// Title renders text in the theme's accent.
func (t Theme) Title(text string) string {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(text)
}

// flowerStyles colors each kind in lists and badges.
var flowerStyles = map[domain.FlowerKind]lipgloss.Style{
	domain.Flower1: StyleFg,
	domain.Flower2: StyleRed,
	domain.Flower3: StylePurple,
}

// FlowerBadge renders a kind as a colored "✿ Name" label.
func FlowerBadge(kind domain.FlowerKind) string {
	spec, ok := kind.Spec()
	if !ok {
		return StyleDim.Render("✿ " + string(kind))
	}
	style, ok := flowerStyles[kind]
	if !ok {
		style = StyleFg
	}
	return style.Render("✿ " + spec.Name)
}

// WeatherBadge describes the sky for the dashboard header.
func WeatherBadge(raining bool, theme Theme) string {
	if raining {
		return StyleBlue.Render("☂ Raining")
	}
	if theme.Name == NightTheme.Name {
		return lipgloss.NewStyle().Foreground(ColorMoon).Render(theme.Icon + " Clear night")
	}
	return StyleYellow.Render(theme.Icon + " Clear")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
