// Package stats folds the session log into period totals and chart series.
//
// Everything is recomputed from the full log on each call. Period membership
// uses independent boundary checks, so a session can count toward today, the
// week and the month at once, and the week can start in the previous month.
package stats

import (
	"fmt"
	"time"

	"github.com/iremince/garden-project/internal/clock"
	"github.com/iremince/garden-project/internal/domain"
)

// PeriodStats are the totals for one period. Time is in seconds; every
// session plants exactly one flower, so Flowers always equals Sessions.
type PeriodStats struct {
	Time     int
	Sessions int
	Flowers  int
}

func (p *PeriodStats) add(s domain.WorkSession) {
	p.Time += s.WorkSeconds()
	p.Sessions++
	p.Flowers++
}

// Snapshot holds the totals of every period at one instant.
type Snapshot struct {
	Today   PeriodStats
	Weekly  PeriodStats
	Monthly PeriodStats
}

// Period returns the totals for p.
func (s Snapshot) Period(p domain.Period) PeriodStats {
	switch p {
	case domain.PeriodWeekly:
		return s.Weekly
	case domain.PeriodMonthly:
		return s.Monthly
	default:
		return s.Today
	}
}

// IsZero reports whether no session counts toward any period.
func (s Snapshot) IsZero() bool {
	return s == Snapshot{}
}

// Aggregate computes the snapshot of log at now.
func Aggregate(log domain.SessionLog, now time.Time) Snapshot {
	dayStart := clock.StartOfDay(now)
	weekStart := clock.StartOfWeek(now)
	monthStart := clock.StartOfMonth(now)

	var snap Snapshot
	for _, s := range log {
		if clock.Since(s.PlantedAt, monthStart) {
			snap.Monthly.add(s)
		}
		if clock.Since(s.PlantedAt, weekStart) {
			snap.Weekly.add(s)
		}
		if clock.Since(s.PlantedAt, dayStart) {
			snap.Today.add(s)
		}
	}
	return snap
}

// FormatClock renders a duration in seconds as HH:MM:SS. Hours are not
// wrapped at 24.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
