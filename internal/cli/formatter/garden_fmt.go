package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/garden"
	"github.com/iremince/garden-project/internal/stats"
	"github.com/iremince/garden-project/internal/unlock"
)

var periodTitles = map[domain.Period]string{
	domain.PeriodToday:   "Today",
	domain.PeriodWeekly:  "This week",
	domain.PeriodMonthly: "This month",
}

// PeriodTitle is the heading shown for a statistics period.
func PeriodTitle(p domain.Period) string {
	if t, ok := periodTitles[p]; ok {
		return t
	}
	return string(p)
}

// FormatPeriodStats renders one period's counters as labelled lines.
func FormatPeriodStats(ps stats.PeriodStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("Time    "), Bold(stats.FormatClock(ps.Time)))
	fmt.Fprintf(&b, "%s  %d\n", Dim("Sessions"), ps.Sessions)
	fmt.Fprintf(&b, "%s  %d", Dim("Flowers "), ps.Flowers)
	return b.String()
}

// FormatSnapshot renders every period side by side in a table.
func FormatSnapshot(snap stats.Snapshot) string {
	rows := make([][]string, 0, len(domain.Periods))
	for _, p := range domain.Periods {
		ps := snap.Period(p)
		rows = append(rows, []string{
			PeriodTitle(p),
			stats.FormatClock(ps.Time),
			strconv.Itoa(ps.Sessions),
			strconv.Itoa(ps.Flowers),
		})
	}
	return RenderAlignedTable(
		[]string{"PERIOD", "TIME", "SESSIONS", "FLOWERS"},
		rows,
		[]Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	)
}

const chartBarWidth = 24

// FormatSeries renders a horizontal bar chart, one row per bucket, scaled to
// the busiest bucket.
func FormatSeries(s stats.Series) string {
	labelWidth := 0
	peak := 0
	for i, l := range s.Labels {
		labelWidth = max(labelWidth, len(l))
		if i < len(s.Values) {
			peak = max(peak, s.Values[i])
		}
	}

	var b strings.Builder
	for i, l := range s.Labels {
		v := 0
		if i < len(s.Values) {
			v = s.Values[i]
		}
		fmt.Fprintf(&b, "%-*s %s %s\n", labelWidth, l, RenderBar(v, peak, chartBarWidth), Dim(FormatMinutes(v)))
	}
	return b.String()
}

// FormatSummary renders the one-line digest under a chart.
func FormatSummary(sum stats.Summary) string {
	if sum.Total == 0 {
		return Dim("No work recorded yet.")
	}
	return fmt.Sprintf("Total %s  %s  Mean %s  Median %s  Best %s (%s)",
		Bold(FormatMinutes(sum.Total)),
		Dim("·"),
		FormatMinutes(int(sum.Mean+0.5)),
		FormatMinutes(int(sum.Median+0.5)),
		sum.BestLabel,
		FormatMinutes(sum.Best),
	)
}

// FormatSessions lists sessions newest first.
func FormatSessions(log domain.SessionLog, now time.Time) string {
	if len(log) == 0 {
		return Dim("No flowers planted yet.") + "\n"
	}
	rows := make([][]string, 0, len(log))
	for i := len(log) - 1; i >= 0; i-- {
		s := log[i]
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			FlowerBadge(s.Kind),
			Truncate(s.Activity, 40),
			FormatMinutes(s.Minutes),
			HumanDateTime(s.PlantedAt, now),
		})
	}
	return RenderAlignedTable(
		[]string{"ID", "FLOWER", "ACTIVITY", "DURATION", "PLANTED"},
		rows,
		[]Align{AlignRight, AlignLeft, AlignLeft, AlignRight},
	)
}

// FormatSession renders one session in detail.
func FormatSession(s domain.WorkSession, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Flower  "), FlowerBadge(s.Kind))
	fmt.Fprintf(&b, "%s %s\n", Dim("Activity"), s.Activity)
	fmt.Fprintf(&b, "%s %s\n", Dim("Duration"), FormatMinutes(s.Minutes))
	fmt.Fprintf(&b, "%s %s\n", Dim("Planted "), HumanDateTime(s.PlantedAt, now))
	fmt.Fprintf(&b, "%s %s", Dim("Position"), FormatPosition(s.Position))
	return RenderBox(fmt.Sprintf("Session %d", s.ID), b.String())
}

// FormatPosition prints a point as "x, y, z" with two decimals.
func FormatPosition(p domain.Position) string {
	return fmt.Sprintf("%.2f, %.2f, %.2f", p.X, p.Y, p.Z)
}

// FormatSlots renders the planting spots and whether each is taken today.
func FormatSlots(slots []garden.SlotState) string {
	rows := make([][]string, 0, len(slots))
	for _, s := range slots {
		state := StyleGreen.Render("free")
		if s.Occupied {
			state = StyleYellow.Render("planted")
		}
		rows = append(rows, []string{s.ID, state, FormatPosition(s.Anchor)})
	}
	return RenderTable([]string{"SPOT", "STATE", "ANCHOR"}, rows)
}

// FlowerRow pairs a kind with its unlock state for listing.
type FlowerRow struct {
	Spec   domain.FlowerSpec
	Status unlock.Status
}

// FormatFlowers renders the plantable kinds and a progress bar toward the
// premium unlock.
func FormatFlowers(rows []FlowerRow, todayMinutes, threshold int) string {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		status := StyleGreen.Render("available")
		if !r.Status.Unlocked {
			status = StyleRed.Render("locked") + " " + Dim(r.Status.Hint())
		}
		table = append(table, []string{FlowerBadge(r.Spec.Kind), string(r.Spec.Kind), status})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"FLOWER", "KEY", "STATUS"}, table))
	if threshold > 0 {
		fmt.Fprintf(&b, "\n%s %s  %s / %s\n",
			Dim("Premium unlock"),
			RenderProgress(float64(todayMinutes)/float64(threshold), 20),
			FormatMinutes(todayMinutes),
			FormatMinutes(threshold),
		)
	}
	return b.String()
}

// FormatPlantResult confirms a planting and warns when it was not saved.
func FormatPlantResult(res garden.PlantResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Planted %s in %s for %s (session %d)\n",
		StyleGreen.Render("✓"),
		FlowerBadge(res.Session.Kind),
		Bold(res.SlotID),
		FormatMinutes(res.Session.Minutes),
		res.Session.ID,
	)
	today := res.Snapshot.Today
	fmt.Fprintf(&b, "%s %s worked, %d flowers today\n", Dim("Today:"), stats.FormatClock(today.Time), today.Flowers)
	if res.SaveErr != nil {
		fmt.Fprintf(&b, "%s %v\n", StyleYellow.Render("Warning: garden was not saved:"), res.SaveErr)
	}
	return b.String()
}
