package formatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/garden"
	"github.com/iremince/garden-project/internal/stats"
	"github.com/iremince/garden-project/internal/testutil"
	"github.com/iremince/garden-project/internal/unlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSnapshot(t *testing.T) {
	snap := stats.Snapshot{
		Today:   stats.PeriodStats{Time: 18600, Sessions: 2, Flowers: 2},
		Weekly:  stats.PeriodStats{Time: 18600, Sessions: 2, Flowers: 2},
		Monthly: stats.PeriodStats{Time: 22200, Sessions: 3, Flowers: 3},
	}
	got := stripANSI(FormatSnapshot(snap))

	assert.Contains(t, got, "PERIOD")
	assert.Contains(t, got, "05:10:00")
	assert.Contains(t, got, "06:10:00")
	assert.Contains(t, got, "This month")
}

func TestFormatPeriodStats(t *testing.T) {
	got := stripANSI(FormatPeriodStats(stats.PeriodStats{Time: 3661, Sessions: 1, Flowers: 1}))
	assert.Contains(t, got, "01:01:01")
	assert.Contains(t, got, "Sessions  1")
}

func TestFormatSeries_ScalesToPeak(t *testing.T) {
	s := stats.Series{
		Period: domain.PeriodWeekly,
		Labels: stats.WeekdayLabels,
		Values: []int{0, 0, 0, 90, 45, 0, 0},
	}
	lines := strings.Split(strings.TrimRight(stripANSI(FormatSeries(s)), "\n"), "\n")
	require.Len(t, lines, 7)

	assert.True(t, strings.HasPrefix(lines[3], "Wed "))
	assert.Equal(t, chartBarWidth, strings.Count(lines[3], filledBlock))
	assert.Equal(t, chartBarWidth/2, strings.Count(lines[4], filledBlock))
	assert.Equal(t, 0, strings.Count(lines[0], filledBlock))
	assert.True(t, strings.HasSuffix(lines[3], "1h 30m"))
}

func TestFormatSummary(t *testing.T) {
	assert.Contains(t, stripANSI(FormatSummary(stats.Summary{})), "No work recorded")

	got := stripANSI(FormatSummary(stats.Summary{Total: 140, Mean: 20, Median: 0, Best: 90, BestLabel: "Wed"}))
	assert.Contains(t, got, "Total 2h 20m")
	assert.Contains(t, got, "Best Wed (1h 30m)")
}

func TestFormatSessions_NewestFirst(t *testing.T) {
	log := domain.SessionLog{
		testutil.NewTestSession(30, testutil.WithID(1), testutil.WithActivity("first"), testutil.WithPlantedAt(testutil.At(9, 0))),
		testutil.NewTestSession(60, testutil.WithID(2), testutil.WithActivity("second"), testutil.WithKind(domain.Flower3), testutil.WithPlantedAt(testutil.DaysAgo(1, 10))),
	}
	got := stripANSI(FormatSessions(log, testutil.Now))

	assert.Less(t, strings.Index(got, "second"), strings.Index(got, "first"))
	assert.Contains(t, got, "Lotus")
	assert.Contains(t, got, "Yesterday 10:00")
	assert.Contains(t, got, "Today 09:00")

	assert.Contains(t, stripANSI(FormatSessions(nil, testutil.Now)), "No flowers planted yet")
}

func TestFormatSession(t *testing.T) {
	s := testutil.NewTestSession(45, testutil.WithID(42), testutil.WithActivity("Read"), testutil.WithPosition(-1.5, 0.5, 3))
	got := stripANSI(FormatSession(s, testutil.Now))

	assert.Contains(t, got, "SESSION 42")
	assert.Contains(t, got, "Daisy")
	assert.Contains(t, got, "45m")
	assert.Contains(t, got, "-1.50, 0.50, 3.00")
}

func TestFormatSlots(t *testing.T) {
	got := stripANSI(FormatSlots([]garden.SlotState{
		{ID: "A1", Anchor: domain.Position{X: -4.5, Y: 0.5, Z: -3}},
		{ID: "A2", Occupied: true},
	}))
	assert.Contains(t, got, "A1    free")
	assert.Contains(t, got, "A2    planted")
}

func TestFormatFlowers(t *testing.T) {
	rows := []FlowerRow{
		{Spec: domain.Flowers[0], Status: unlock.Status{Unlocked: true}},
		{Spec: domain.Flowers[2], Status: unlock.Status{RemainingMinutes: 120}},
	}
	got := stripANSI(FormatFlowers(rows, 180, 300))

	assert.Contains(t, got, "available")
	assert.Contains(t, got, "locked Work for 120 more minutes today to unlock!")
	assert.Contains(t, got, " 60%")
	assert.Contains(t, got, "3h / 5h")
}

func TestFormatPlantResult(t *testing.T) {
	res := garden.PlantResult{
		SlotID:   "B2",
		Session:  testutil.NewTestSession(30, testutil.WithID(7)),
		Snapshot: stats.Snapshot{Today: stats.PeriodStats{Time: 1800, Sessions: 1, Flowers: 1}},
	}
	got := stripANSI(FormatPlantResult(res))
	assert.Contains(t, got, "Planted ✿ Daisy in B2 for 30m (session 7)")
	assert.Contains(t, got, "00:30:00 worked, 1 flowers today")
	assert.NotContains(t, got, "Warning")

	res.SaveErr = errors.New("disk full")
	assert.Contains(t, stripANSI(FormatPlantResult(res)), "Warning: garden was not saved: disk full")
}
