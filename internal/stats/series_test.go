package stats

import (
	"testing"
	"time"

	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeries_Weekly(t *testing.T) {
	log := domain.SessionLog{
		session(20, testutil.DaysAgo(3, 9)),  // Sun
		session(30, testutil.DaysAgo(1, 9)),  // Tue
		session(15, testutil.DaysAgo(1, 18)), // Tue
		session(60, testutil.At(10, 0)),      // Wed
		session(90, testutil.DaysAgo(5, 9)),  // previous Fri
	}

	s := BuildSeries(log, testutil.Now, domain.PeriodWeekly)
	assert.Equal(t, domain.PeriodWeekly, s.Period)
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, s.Labels)
	assert.Equal(t, []int{20, 0, 45, 60, 0, 0, 0}, s.Values)
}

func TestBuildSeries_WeeklySumMatchesSnapshot(t *testing.T) {
	var log domain.SessionLog
	for i, m := range []int{15, 30, 45, 60, 90, 120} {
		log = append(log, session(m, testutil.DaysAgo(i%4, 7+i)))
	}

	snap := Aggregate(log, testutil.Now)
	s := BuildSeries(log, testutil.Now, domain.PeriodWeekly)
	assert.Equal(t, snap.Weekly.Time/60, s.Total())
}

func TestBuildSeries_Monthly(t *testing.T) {
	log := domain.SessionLog{
		session(10, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)),
		session(20, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)),
		session(5, time.Date(2026, 10, 14, 11, 0, 0, 0, time.UTC)),
		session(40, time.Date(2026, 10, 31, 20, 0, 0, 0, time.UTC)),
		session(80, time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)), // last year
		session(70, time.Date(2026, 9, 30, 9, 0, 0, 0, time.UTC)),
	}

	s := BuildSeries(log, testutil.Now, domain.PeriodMonthly)
	require.Len(t, s.Labels, 31)
	require.Len(t, s.Values, 31)
	assert.Equal(t, "1", s.Labels[0])
	assert.Equal(t, "31", s.Labels[30])
	assert.Equal(t, 10, s.Values[0])
	assert.Equal(t, 25, s.Values[13])
	assert.Equal(t, 40, s.Values[30])
	assert.Equal(t, 75, s.Total())
}

func TestBuildSeries_MonthLengths(t *testing.T) {
	tests := []struct {
		now  time.Time
		days int
	}{
		{time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 28},
		{time.Date(2028, 2, 10, 0, 0, 0, 0, time.UTC), 29},
		{time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), 30},
	}
	for _, tt := range tests {
		t.Run(tt.now.Format("2006-01"), func(t *testing.T) {
			s := BuildSeries(nil, tt.now, domain.PeriodMonthly)
			assert.Len(t, s.Labels, tt.days)
			assert.Len(t, s.Values, tt.days)
		})
	}
}

func TestBuildSeries_Today(t *testing.T) {
	log := domain.SessionLog{
		session(180, testutil.At(9, 0)),
		session(130, testutil.At(14, 0)),
		session(500, testutil.DaysAgo(1, 23)),
	}

	s := BuildSeries(log, testutil.Now, domain.PeriodToday)
	assert.Equal(t, []string{"Today"}, s.Labels)
	assert.Equal(t, []int{310}, s.Values)
}

func TestSummarize(t *testing.T) {
	s := Series{
		Period: domain.PeriodWeekly,
		Labels: WeekdayLabels,
		Values: []int{0, 30, 0, 90, 20, 0, 0},
	}

	sum := Summarize(s)
	assert.Equal(t, 140, sum.Total)
	assert.InDelta(t, 20.0, sum.Mean, 1e-9)
	assert.InDelta(t, 0.0, sum.Median, 1e-9)
	assert.Equal(t, 90, sum.Best)
	assert.Equal(t, "Wed", sum.BestLabel)
	assert.Equal(t, 3, sum.ActiveBuckets)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(Series{}))
	assert.Equal(t, "", Summarize(BuildSeries(nil, testutil.Now, domain.PeriodToday)).BestLabel)
}
