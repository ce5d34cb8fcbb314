package testutil

import (
	"sync/atomic"
	"time"

	"github.com/iremince/garden-project/internal/domain"
)

// Now is the reference instant used across tests: Wednesday 2026-10-14 16:00 UTC.
var Now = time.Date(2026, 10, 14, 16, 0, 0, 0, time.UTC)

// At returns a time on Now's calendar day at the given hour and minute.
func At(hour, minute int) time.Time {
	y, m, d := Now.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, Now.Location())
}

// DaysAgo returns Now shifted back by n calendar days at the given hour.
func DaysAgo(n, hour int) time.Time {
	y, m, d := Now.Date()
	return time.Date(y, m, d-n, hour, 0, 0, 0, Now.Location())
}

var testSessionID atomic.Int64

// SessionOption customizes a test session.
type SessionOption func(*domain.WorkSession)

func WithKind(k domain.FlowerKind) SessionOption {
	return func(s *domain.WorkSession) {
		s.Kind = k
	}
}

func WithActivity(a string) SessionOption {
	return func(s *domain.WorkSession) {
		s.Activity = a
	}
}

func WithPlantedAt(t time.Time) SessionOption {
	return func(s *domain.WorkSession) {
		s.PlantedAt = t
	}
}

func WithPosition(x, y, z float64) SessionOption {
	return func(s *domain.WorkSession) {
		s.Position = domain.Position{X: x, Y: y, Z: z}
	}
}

func WithID(id int64) SessionOption {
	return func(s *domain.WorkSession) {
		s.ID = id
	}
}

// NewTestSession returns a flower1 session of the given length planted at Now.
func NewTestSession(minutes int, opts ...SessionOption) domain.WorkSession {
	s := domain.WorkSession{
		ID:        testSessionID.Add(1),
		Kind:      domain.Flower1,
		Activity:  "Test work",
		Minutes:   minutes,
		PlantedAt: Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
