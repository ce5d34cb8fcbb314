package stats

import (
	"strconv"
	"time"

	"github.com/iremince/garden-project/internal/clock"
	"github.com/iremince/garden-project/internal/domain"
)

// WeekdayLabels are the weekly chart labels, Sunday first.
var WeekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// TodayLabel is the only label of the today chart.
const TodayLabel = "Today"

// Series is a chart-ready list of minute totals. Labels and Values have the
// same length.
type Series struct {
	Period domain.Period
	Labels []string
	Values []int
}

// Total sums every bucket, in minutes.
func (s Series) Total() int {
	total := 0
	for _, v := range s.Values {
		total += v
	}
	return total
}

// BuildSeries buckets log minutes for period at now. Any period other than
// weekly or monthly is charted as today.
func BuildSeries(log domain.SessionLog, now time.Time, period domain.Period) Series {
	switch period {
	case domain.PeriodWeekly:
		return weeklySeries(log, now)
	case domain.PeriodMonthly:
		return monthlySeries(log, now)
	default:
		return todaySeries(log, now)
	}
}

func weeklySeries(log domain.SessionLog, now time.Time) Series {
	start := clock.StartOfWeek(now)
	values := make([]int, len(WeekdayLabels))
	for _, s := range log {
		if !clock.Since(s.PlantedAt, start) {
			continue
		}
		day := (int(s.PlantedAt.In(now.Location()).Weekday()) - int(clock.WeekStart) + 7) % 7
		values[day] += s.Minutes
	}
	labels := make([]string, len(WeekdayLabels))
	copy(labels, WeekdayLabels)
	return Series{Period: domain.PeriodWeekly, Labels: labels, Values: values}
}

func monthlySeries(log domain.SessionLog, now time.Time) Series {
	days := clock.DaysInMonth(now)
	labels := make([]string, days)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	values := make([]int, days)
	for _, s := range log {
		if !clock.SameMonth(s.PlantedAt, now) {
			continue
		}
		values[s.PlantedAt.In(now.Location()).Day()-1] += s.Minutes
	}
	return Series{Period: domain.PeriodMonthly, Labels: labels, Values: values}
}

func todaySeries(log domain.SessionLog, now time.Time) Series {
	start := clock.StartOfDay(now)
	total := 0
	for _, s := range log {
		if clock.Since(s.PlantedAt, start) {
			total += s.Minutes
		}
	}
	return Series{Period: domain.PeriodToday, Labels: []string{TodayLabel}, Values: []int{total}}
}
