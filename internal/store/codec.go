package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iremince/garden-project/internal/domain"
)

// dateLayout matches the browser's Date.toISOString output, which is what
// the garden has always written. PlantedAt is stored in UTC.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// parseLayouts are tried in order when reading a stored date.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type wireDocument struct {
	Sessions []json.RawMessage `json:"sessions"`
}

type wirePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type wireSession struct {
	ID         int64         `json:"id"`
	FlowerType string        `json:"flowerType"`
	Activity   string        `json:"activity"`
	WorkTime   int           `json:"workTime"`
	Position   *wirePosition `json:"position"`
	Date       string        `json:"date"`
}

// FormatDate renders t the way it is persisted.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDate reads a persisted date.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Encode serializes the full log. Dates read from storage are written back
// verbatim so a load→save cycle reproduces the stored strings.
func Encode(log domain.SessionLog) ([]byte, error) {
	doc := struct {
		Sessions []wireSession `json:"sessions"`
	}{Sessions: make([]wireSession, 0, len(log))}

	for _, s := range log {
		date := s.DateText
		if date == "" {
			date = FormatDate(s.PlantedAt)
		}
		doc.Sessions = append(doc.Sessions, wireSession{
			ID:         s.ID,
			FlowerType: string(s.Kind),
			Activity:   s.Activity,
			WorkTime:   s.Minutes,
			Position:   &wirePosition{X: s.Position.X, Y: s.Position.Y, Z: s.Position.Z},
			Date:       date,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding sessions: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// RecordError describes one stored session that could not be decoded.
type RecordError struct {
	Index int
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("session %d: %v", e.Index, e.Err)
}

// Decode parses a stored document. A document that is not valid JSON fails
// as a whole with ErrCorruptPersistedData; individually malformed sessions are
// dropped and reported in skipped.
func Decode(data []byte) (log domain.SessionLog, skipped []RecordError, err error) {
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, domain.NewError(domain.ErrCodeCorruptPersistedData, "decoding stored garden", err)
	}

	log = make(domain.SessionLog, 0, len(doc.Sessions))
	seen := make(map[int64]bool, len(doc.Sessions))
	for i, raw := range doc.Sessions {
		s, recErr := decodeSession(raw)
		if recErr == nil && seen[s.ID] {
			recErr = fmt.Errorf("%w: %d", domain.ErrDuplicateID, s.ID)
		}
		if recErr != nil {
			skipped = append(skipped, RecordError{Index: i, Err: recErr})
			continue
		}
		seen[s.ID] = true
		log = append(log, s)
	}
	return log, skipped, nil
}

func decodeSession(raw json.RawMessage) (domain.WorkSession, error) {
	var w wireSession
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.WorkSession{}, err
	}

	kind := domain.FlowerKind(w.FlowerType)
	if !kind.Valid() {
		return domain.WorkSession{}, fmt.Errorf("unknown flower type %q", w.FlowerType)
	}
	if w.WorkTime <= 0 {
		return domain.WorkSession{}, fmt.Errorf("work time %d is not positive", w.WorkTime)
	}
	if w.Position == nil {
		return domain.WorkSession{}, fmt.Errorf("missing position")
	}
	plantedAt, err := ParseDate(w.Date)
	if err != nil {
		return domain.WorkSession{}, err
	}

	return domain.WorkSession{
		ID:        w.ID,
		Kind:      kind,
		Activity:  w.Activity,
		Minutes:   w.WorkTime,
		Position:  domain.Position{X: w.Position.X, Y: w.Position.Y, Z: w.Position.Z},
		PlantedAt: plantedAt,
		DateText:  w.Date,
	}, nil
}
