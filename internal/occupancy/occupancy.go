// Package occupancy tracks which soil slots carry a flower.
//
// Only sessions planted on the current calendar day claim a slot. Older
// sessions still count in statistics but their beds are free again, so the
// garden can be replanted every day.
package occupancy

import (
	"sync"
	"time"

	"github.com/iremince/garden-project/internal/clock"
	"github.com/iremince/garden-project/internal/domain"
)

// Geometry resolves positions to slots. *layout.Layout implements it.
type Geometry interface {
	Contains(slotID string, p domain.Position) bool
	SlotsAt(p domain.Position) []string
}

// IsOccupied reports whether any session planted on now's day lies inside slotID.
func IsOccupied(slotID string, log domain.SessionLog, now time.Time, geo Geometry) bool {
	for _, s := range log {
		if clock.SameDay(s.PlantedAt, now) && geo.Contains(slotID, s.Position) {
			return true
		}
	}
	return false
}

// Tracker holds explicit slot claims so callers need not rescan the log on
// every query.
type Tracker struct {
	mu      sync.RWMutex
	claimed map[string]bool
}

func NewTracker() *Tracker {
	return &Tracker{claimed: make(map[string]bool)}
}

func (t *Tracker) Claim(slotID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.claimed[slotID] = true
}

func (t *Tracker) Release(slotID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.claimed, slotID)
}

// ReleaseAll frees every slot.
func (t *Tracker) ReleaseAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.claimed = make(map[string]bool)
}

func (t *Tracker) Claimed(slotID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.claimed[slotID]
}

// Count returns the number of claimed slots.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.claimed)
}

// Rebuild discards current claims and re-derives them from log. Each session
// planted on now's day claims every slot containing its position, matching
// IsOccupied; sessions outside every slot claim nothing.
func (t *Tracker) Rebuild(log domain.SessionLog, now time.Time, geo Geometry) {
	claimed := make(map[string]bool)
	for _, s := range log {
		if !clock.SameDay(s.PlantedAt, now) {
			continue
		}
		for _, id := range geo.SlotsAt(s.Position) {
			claimed[id] = true
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.claimed = claimed
}
