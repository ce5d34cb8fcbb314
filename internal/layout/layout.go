// Package layout owns the garden's slot geometry: named soil beds, each an
// axis-aligned box in garden space.
package layout

import (
	"fmt"
	"strings"

	"github.com/iremince/garden-project/internal/domain"
)

// Box is an axis-aligned region. Both bounds are inclusive.
type Box struct {
	Min domain.Position
	Max domain.Position
}

// Contains reports whether p lies inside the box or on its surface.
func (b Box) Contains(p domain.Position) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center is where a flower is placed when no click point was given. Flowers
// sit on the soil, so the anchor uses the top of the box.
func (b Box) Center() domain.Position {
	return domain.Position{
		X: (b.Min.X + b.Max.X) / 2,
		Y: b.Max.Y,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Inverted reports whether any Min coordinate exceeds its Max.
func (b Box) Inverted() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Slot is one plantable soil bed.
type Slot struct {
	ID  string
	Box Box
}

// Layout is an ordered set of slots. Boxes may overlap; a point inside
// several boxes belongs to each of them.
type Layout struct {
	slots []Slot
	index map[string]int
}

// New validates slots and builds a Layout.
func New(slots []Slot) (*Layout, error) {
	l := &Layout{
		slots: make([]Slot, 0, len(slots)),
		index: make(map[string]int, len(slots)),
	}
	for _, s := range slots {
		if s.ID == "" {
			return nil, fmt.Errorf("slot %d has no id", len(l.slots))
		}
		if _, dup := l.index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate slot id %q", s.ID)
		}
		if s.Box.Inverted() {
			return nil, fmt.Errorf("slot %q: min corner exceeds max corner", s.ID)
		}
		l.index[s.ID] = len(l.slots)
		l.slots = append(l.slots, s)
	}
	return l, nil
}

// Slots returns the slots in layout order.
func (l *Layout) Slots() []Slot {
	out := make([]Slot, len(l.slots))
	copy(out, l.slots)
	return out
}

// Len returns the number of slots.
func (l *Layout) Len() int { return len(l.slots) }

// Contains reports whether p falls inside the named slot. Unknown slots
// contain nothing.
func (l *Layout) Contains(slotID string, p domain.Position) bool {
	i, ok := l.index[slotID]
	return ok && l.slots[i].Box.Contains(p)
}

// Resolve maps user input to a slot id. An exact match wins; otherwise the
// first id equal under case folding is returned.
func (l *Layout) Resolve(slotID string) (string, bool) {
	if _, ok := l.index[slotID]; ok {
		return slotID, true
	}
	for _, s := range l.slots {
		if strings.EqualFold(s.ID, slotID) {
			return s.ID, true
		}
	}
	return "", false
}

// SlotsAt returns every slot containing p, in layout order.
func (l *Layout) SlotsAt(p domain.Position) []string {
	var ids []string
	for _, s := range l.slots {
		if s.Box.Contains(p) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Anchor returns the default planting point of the named slot.
func (l *Layout) Anchor(slotID string) (domain.Position, bool) {
	i, ok := l.index[slotID]
	if !ok {
		return domain.Position{}, false
	}
	return l.slots[i].Box.Center(), true
}
