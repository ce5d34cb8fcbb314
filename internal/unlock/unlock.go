// Package unlock decides which flower kinds can be planted.
package unlock

import (
	"fmt"
	"time"

	"github.com/iremince/garden-project/internal/clock"
	"github.com/iremince/garden-project/internal/domain"
)

// DefaultThresholdMinutes is five hours of work in one day.
const DefaultThresholdMinutes = 300

// Status is the unlock state of one flower kind.
type Status struct {
	Unlocked         bool
	RemainingMinutes int
}

// Policy unlocks premium kinds once enough work has been logged today.
type Policy struct {
	ThresholdMinutes int
}

// NewPolicy returns a Policy, falling back to the default threshold when
// minutes is not positive.
func NewPolicy(minutes int) Policy {
	if minutes <= 0 {
		minutes = DefaultThresholdMinutes
	}
	return Policy{ThresholdMinutes: minutes}
}

// TodayWorkMinutes sums the minutes of sessions planted on now's calendar day.
func TodayWorkMinutes(log domain.SessionLog, now time.Time) int {
	total := 0
	for _, s := range log {
		if clock.SameDay(s.PlantedAt, now) {
			total += s.Minutes
		}
	}
	return total
}

// IsUnlocked evaluates kind against log at now. Unknown kinds are locked.
func (p Policy) IsUnlocked(kind domain.FlowerKind, log domain.SessionLog, now time.Time) Status {
	spec, ok := kind.Spec()
	if !ok {
		return Status{}
	}
	if !spec.Premium {
		return Status{Unlocked: true}
	}
	remaining := p.ThresholdMinutes - TodayWorkMinutes(log, now)
	if remaining <= 0 {
		return Status{Unlocked: true}
	}
	return Status{RemainingMinutes: remaining}
}

// Hint is the message shown next to a locked flower, or "" when there is
// nothing left to earn.
func (s Status) Hint() string {
	if s.Unlocked || s.RemainingMinutes <= 0 {
		return ""
	}
	return fmt.Sprintf("Work for %d more minutes today to unlock!", s.RemainingMinutes)
}
