package cli

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/iremince/garden-project/internal/cli/formatter"
	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/garden"
)

// gardenHuhTheme follows the day/night palette used by the dashboard.
func gardenHuhTheme(now time.Time) *huh.Theme {
	theme := formatter.ThemeAt(now)
	t := huh.ThemeBase()

	accent := lipgloss.NewStyle().Foreground(theme.Accent)
	fg := lipgloss.NewStyle().Foreground(formatter.ColorFg)
	dim := lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Focused.Title = accent.Bold(true)
	t.Focused.SelectSelector = accent
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = fg
	t.Focused.FocusedButton = fg.Background(theme.Accent).Padding(0, 1)
	t.Focused.BlurredButton = dim.Padding(0, 1)
	t.Focused.TextInput.Cursor = accent
	t.Focused.TextInput.Prompt = accent
	t.Focused.TextInput.Text = fg
	t.Focused.TextInput.Placeholder = dim
	t.Focused.Description = dim
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = dim
	t.Blurred.SelectSelector = dim
	t.Blurred.SelectedOption = dim
	t.Blurred.UnselectedOption = dim
	t.Blurred.TextInput.Prompt = dim
	t.Blurred.TextInput.Text = dim

	return t
}

func validateActivity(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("describe what you worked on")
	}
	return nil
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return errors.New("enter a whole number, 0 or more")
	}
	return nil
}

// atoiOrZero parses form text already checked by validateNonNegativeInt.
func atoiOrZero(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// customPreset marks the "Custom" choice in the duration select.
const customPreset = 0

// plantFormValues backs the interactive plant form.
type plantFormValues struct {
	Slot     string
	Flower   string
	Activity string
	Preset   int
	Hours    string
	Minutes  string
}

func (v plantFormValues) duration() garden.Duration {
	if v.Preset == customPreset {
		return garden.CustomDuration(atoiOrZero(v.Hours), atoiOrZero(v.Minutes))
	}
	return garden.PresetDuration(v.Preset)
}

func durationOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(garden.PresetMinutes)+1)
	for _, m := range garden.PresetMinutes {
		opts = append(opts, huh.NewOption(formatter.FormatMinutes(m), m))
	}
	return append(opts, huh.NewOption("Custom", customPreset))
}

// plantForm asks for whatever a planting still needs. Only free slots are
// offered and locked flowers fail validation with the unlock hint.
func plantForm(app *App, now time.Time, v *plantFormValues) *huh.Form {
	var slots []huh.Option[string]
	for _, s := range app.Garden.Slots() {
		if !s.Occupied {
			slots = append(slots, huh.NewOption(s.ID, s.ID))
		}
	}

	flowers := make([]huh.Option[string], 0, len(domain.Flowers))
	for _, f := range domain.Flowers {
		label := f.Name
		if !app.Garden.IsUnlocked(f.Kind, now).Unlocked {
			label += " (locked)"
		}
		flowers = append(flowers, huh.NewOption(label, string(f.Kind)))
	}

	validateFlower := func(s string) error {
		st := app.Garden.IsUnlocked(domain.FlowerKind(s), now)
		if !st.Unlocked {
			return errors.New(st.Hint())
		}
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Spot").Options(slots...).Value(&v.Slot),
			huh.NewSelect[string]().Title("Flower").Options(flowers...).Value(&v.Flower).Validate(validateFlower),
			huh.NewInput().Title("What did you work on?").Value(&v.Activity).Validate(validateActivity),
			huh.NewSelect[int]().Title("Duration").Options(durationOptions()...).Value(&v.Preset),
		),
		huh.NewGroup(
			huh.NewInput().Title("Hours").Placeholder("0").Value(&v.Hours).Validate(validateNonNegativeInt),
			huh.NewInput().Title("Minutes").Placeholder("0").Value(&v.Minutes).Validate(validateNonNegativeInt),
		).WithHideFunc(func() bool { return v.Preset != customPreset }),
	).WithTheme(gardenHuhTheme(now)).WithShowHelp(false)
}

// resetConfirmForm is the destructive-action prompt for "garden reset".
func resetConfirmForm(now time.Time, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset all garden data?").
				Description("Every flower and statistic will be removed. This cannot be undone.").
				Affirmative("Reset").
				Negative("Keep my garden").
				Value(confirmed),
		),
	).WithTheme(gardenHuhTheme(now)).WithShowHelp(false)
}
