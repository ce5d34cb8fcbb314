// Package export writes the garden history to a spreadsheet.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/stats"
	"github.com/iremince/garden-project/internal/store"
	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetSessions = "Sessions"
	SheetSummary  = "Summary"
)

var sessionHeaders = []string{"ID", "Flower", "Activity", "Minutes", "X", "Y", "Z", "Planted"}

// SeriesSheet names the chart sheet for a period, e.g. "Weekly".
func SeriesSheet(p domain.Period) string {
	switch p {
	case domain.PeriodWeekly:
		return "Weekly"
	case domain.PeriodMonthly:
		return "Monthly"
	default:
		return "Today"
	}
}

// Workbook builds a workbook with every session, the period totals at now and
// one sheet per chart series. The caller must Close it.
func Workbook(log domain.SessionLog, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSessions); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeSessions(f, log); err != nil {
		f.Close()
		return nil, fmt.Errorf("sessions sheet: %w", err)
	}
	if err := writeSummary(f, stats.Aggregate(log, now)); err != nil {
		f.Close()
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	for _, p := range []domain.Period{domain.PeriodWeekly, domain.PeriodMonthly, domain.PeriodToday} {
		if err := writeSeries(f, stats.BuildSeries(log, now, p)); err != nil {
			f.Close()
			return nil, fmt.Errorf("%s sheet: %w", p, err)
		}
	}

	idx, err := f.GetSheetIndex(SheetSessions)
	if err == nil && idx != -1 {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// WriteXLSX saves the workbook to path.
func WriteXLSX(path string, log domain.SessionLog, now time.Time) error {
	f, err := Workbook(log, now)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Write streams the workbook to w.
func Write(w io.Writer, log domain.SessionLog, now time.Time) error {
	f, err := Workbook(log, now)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	for c, v := range values {
		cell, err := excelize.CoordinatesToCellName(c+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func headerRow(headers []string) []any {
	out := make([]any, len(headers))
	for i, h := range headers {
		out[i] = h
	}
	return out
}

func writeSessions(f *excelize.File, log domain.SessionLog) error {
	if err := writeRow(f, SheetSessions, 1, headerRow(sessionHeaders)...); err != nil {
		return err
	}
	for i, s := range log {
		name := string(s.Kind)
		if spec, ok := s.Kind.Spec(); ok {
			name = spec.Name
		}
		date := s.DateText
		if date == "" {
			date = store.FormatDate(s.PlantedAt)
		}
		err := writeRow(f, SheetSessions, i+2,
			s.ID, name, s.Activity, s.Minutes,
			s.Position.X, s.Position.Y, s.Position.Z, date)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, snap stats.Snapshot) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	if err := writeRow(f, SheetSummary, 1, "Period", "Time", "Seconds", "Sessions", "Flowers"); err != nil {
		return err
	}
	for i, p := range domain.Periods {
		ps := snap.Period(p)
		if err := writeRow(f, SheetSummary, i+2, string(p), stats.FormatClock(ps.Time), ps.Time, ps.Sessions, ps.Flowers); err != nil {
			return err
		}
	}
	return nil
}

func writeSeries(f *excelize.File, s stats.Series) error {
	sheet := SeriesSheet(s.Period)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Label", "Minutes"); err != nil {
		return err
	}
	for i, label := range s.Labels {
		if err := writeRow(f, sheet, i+2, label, s.Values[i]); err != nil {
			return err
		}
	}
	return nil
}
