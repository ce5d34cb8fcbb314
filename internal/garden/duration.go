package garden

import (
	"fmt"

	"github.com/iremince/garden-project/internal/domain"
)

// PresetMinutes are the work lengths offered without custom entry.
var PresetMinutes = []int{15, 30, 45, 60, 90, 120}

// DefaultPresetMinutes is preselected for a new planting.
const DefaultPresetMinutes = 30

// Duration is how long a session lasted: either a preset number of minutes
// or a custom hours+minutes entry.
type Duration struct {
	Preset  int
	Custom  bool
	Hours   int
	Minutes int
}

// PresetDuration returns a preset Duration.
func PresetDuration(minutes int) Duration {
	return Duration{Preset: minutes}
}

// CustomDuration returns a custom hours+minutes Duration.
func CustomDuration(hours, minutes int) Duration {
	return Duration{Custom: true, Hours: hours, Minutes: minutes}
}

// Resolve returns the total in minutes. Negative custom parts and
// non-positive totals are InvalidDuration.
func (d Duration) Resolve() (int, error) {
	if !d.Custom {
		if d.Preset <= 0 {
			return 0, domain.NewError(domain.ErrCodeInvalidDuration,
				fmt.Sprintf("preset of %d minutes is not positive", d.Preset), nil)
		}
		return d.Preset, nil
	}
	if d.Hours < 0 || d.Minutes < 0 {
		return 0, domain.NewError(domain.ErrCodeInvalidDuration,
			fmt.Sprintf("custom time %dh %dm has a negative part", d.Hours, d.Minutes), nil)
	}
	total := d.Hours*60 + d.Minutes
	if total <= 0 {
		return 0, domain.NewError(domain.ErrCodeInvalidDuration, "please enter a valid custom time", nil)
	}
	return total, nil
}
