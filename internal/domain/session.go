package domain

import "time"

// Position is a point in garden space. Slots are regions that contain positions.
type Position struct {
	X float64
	Y float64
	Z float64
}

// WorkSession is one completed unit of work, represented by one planted flower.
// Sessions are never modified after creation.
type WorkSession struct {
	ID        int64
	Kind      FlowerKind
	Activity  string
	Minutes   int
	Position  Position
	PlantedAt time.Time

	// DateText is the stored form of PlantedAt as it was read back from
	// persistence. Empty for sessions planted during the current run.
	DateText string
}

// WorkSeconds is the session duration as shown in statistics.
func (s WorkSession) WorkSeconds() int {
	return s.Minutes * 60
}

// SessionLog is the ordered history of plantings, oldest first.
type SessionLog []WorkSession

// Len returns the number of sessions in the log.
func (l SessionLog) Len() int { return len(l) }

// Contains reports whether a session with the given id is present.
func (l SessionLog) Contains(id int64) bool {
	for _, s := range l {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Find returns the session with the given id.
func (l SessionLog) Find(id int64) (WorkSession, bool) {
	for _, s := range l {
		if s.ID == id {
			return s, true
		}
	}
	return WorkSession{}, false
}

// LastID returns the largest id in the log, or 0 for an empty log.
func (l SessionLog) LastID() int64 {
	var last int64
	for _, s := range l {
		if s.ID > last {
			last = s.ID
		}
	}
	return last
}

// NextID picks a fresh id for a session planted at now: epoch millis, bumped
// past the last id so ids stay unique and increasing within the log.
func (l SessionLog) NextID(now time.Time) int64 {
	id := now.UnixMilli()
	if last := l.LastID(); id <= last {
		id = last + 1
	}
	return id
}
