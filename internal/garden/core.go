// Package garden is the planting orchestrator. A Core owns the session log
// and every piece of state derived from it; the presentation layer talks to
// the garden only through a Core.
package garden

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iremince/garden-project/internal/clock"
	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/layout"
	"github.com/iremince/garden-project/internal/occupancy"
	"github.com/iremince/garden-project/internal/stats"
	"github.com/iremince/garden-project/internal/store"
	"github.com/iremince/garden-project/internal/unlock"
)

// Geometry is the slot layout the Core plants into. *layout.Layout
// implements it.
type Geometry interface {
	occupancy.Geometry
	Resolve(slotID string) (string, bool)
	Anchor(slotID string) (domain.Position, bool)
	Slots() []layout.Slot
}

// Persister loads and saves the session log. *store.Store implements it.
type Persister interface {
	Load(ctx context.Context) domain.SessionLog
	Save(ctx context.Context, log domain.SessionLog) error
	Reset(ctx context.Context) (domain.SessionLog, error)
}

// PlantRequest describes one planting attempt.
type PlantRequest struct {
	SlotID string
	// Position is where in the slot the flower goes. Nil uses the slot anchor.
	Position *domain.Position
	// Kind defaults to domain.DefaultFlower when empty.
	Kind     domain.FlowerKind
	Activity string
	Duration Duration
	// Now defaults to the Core's clock when zero.
	Now time.Time
}

// PlantResult is a successful planting. SaveErr is set when the session was
// recorded in memory but could not be persisted.
type PlantResult struct {
	// SlotID is the slot's id as the layout spells it.
	SlotID   string
	Session  domain.WorkSession
	Snapshot stats.Snapshot
	SaveErr  error
}

// SlotState is one slot as shown to the user.
type SlotState struct {
	ID       string
	Anchor   domain.Position
	Occupied bool
}

// Core is safe for concurrent use.
type Core struct {
	mu       sync.Mutex
	store    Persister
	geo      Geometry
	tracker  *occupancy.Tracker
	policy   unlock.Policy
	observer UseCaseObserver
	now      clock.Func
	log      domain.SessionLog
}

// Option configures a Core.
type Option func(*Core)

func WithPolicy(p unlock.Policy) Option {
	return func(c *Core) { c.policy = p }
}

func WithObserver(o UseCaseObserver) Option {
	return func(c *Core) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithClock replaces time.Now as the source of "now" for operations that
// are not given one.
func WithClock(f clock.Func) Option {
	return func(c *Core) {
		if f != nil {
			c.now = f
		}
	}
}

// New builds a Core with an empty log. Call Load to read persisted history.
func New(st Persister, geo Geometry, opts ...Option) *Core {
	c := &Core{
		store:    st,
		geo:      geo,
		tracker:  occupancy.NewTracker(),
		policy:   unlock.NewPolicy(unlock.DefaultThresholdMinutes),
		observer: NoopUseCaseObserver{},
		now:      time.Now,
		log:      domain.SessionLog{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open builds a Core and loads its history.
func Open(ctx context.Context, st Persister, geo Geometry, opts ...Option) *Core {
	c := New(st, geo, opts...)
	c.Load(ctx)
	return c
}

func (c *Core) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	c.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		RequestID: uuid.NewString(),
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// Load replaces the in-memory log with persisted history and re-derives
// today's slot claims. It never fails; unreadable data loads as empty.
func (c *Core) Load(ctx context.Context) {
	startedAt := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log = c.store.Load(ctx)
	now := c.now()
	c.tracker.Rebuild(c.log, now, c.geo)
	c.observe(ctx, "load", startedAt, nil, map[string]any{
		"sessions":      len(c.log),
		"claimed_slots": c.tracker.Count(),
	})
}

// Plant validates req, records the new session, claims its slot and
// persists the log. Validation failures leave the Core untouched and are
// checked in order: activity, duration, slot, flower.
func (c *Core) Plant(ctx context.Context, req PlantRequest) (res PlantResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"slot": req.SlotID, "flower": string(req.Kind)}
	defer func() {
		if res.SaveErr != nil {
			fields["save_error"] = res.SaveErr.Error()
		}
		c.observe(ctx, "plant", startedAt, err, fields)
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	now := req.Now
	if now.IsZero() {
		now = c.now()
	}

	activity := strings.TrimSpace(req.Activity)
	if activity == "" {
		return PlantResult{}, domain.ErrEmptyActivity
	}

	minutes, err := req.Duration.Resolve()
	if err != nil {
		return PlantResult{}, err
	}
	fields["minutes"] = minutes

	slotID, pos, err := c.resolvePosition(req.SlotID, req.Position)
	if err != nil {
		return PlantResult{}, err
	}
	fields["slot"] = slotID
	if c.occupied(slotID, now) {
		return PlantResult{}, domain.NewError(domain.ErrCodeSlotOccupied,
			fmt.Sprintf("spot %s already has a flower", slotID), nil)
	}

	kind := req.Kind
	if kind == "" {
		kind = domain.DefaultFlower
	}
	if status := c.policy.IsUnlocked(kind, c.log, now); !status.Unlocked {
		msg := fmt.Sprintf("%s is locked", kind)
		if hint := status.Hint(); hint != "" {
			msg = hint
		}
		return PlantResult{}, domain.NewError(domain.ErrCodeFlowerLocked, msg, nil)
	}

	session := domain.WorkSession{
		ID:        c.log.NextID(now),
		Kind:      kind,
		Activity:  activity,
		Minutes:   minutes,
		Position:  pos,
		PlantedAt: now,
	}
	next, err := store.Append(c.log, session)
	if err != nil {
		return PlantResult{}, err
	}

	c.log = next
	// pos lies in slotID, so this claims it along with any overlapping slot.
	for _, id := range c.geo.SlotsAt(pos) {
		c.tracker.Claim(id)
	}
	fields["session_id"] = session.ID

	return PlantResult{
		SlotID:   slotID,
		Session:  session,
		Snapshot: stats.Aggregate(c.log, now),
		SaveErr:  c.store.Save(ctx, c.log),
	}, nil
}

// resolvePosition maps the requested slot to its layout id, ignoring case,
// and picks the planting point.
func (c *Core) resolvePosition(requested string, p *domain.Position) (string, domain.Position, error) {
	slotID, ok := c.geo.Resolve(requested)
	if !ok {
		return "", domain.Position{}, domain.NewError(domain.ErrCodeUnknownSlot,
			fmt.Sprintf("no planting spot named %q", requested), nil)
	}
	if p == nil {
		anchor, _ := c.geo.Anchor(slotID)
		return slotID, anchor, nil
	}
	if !c.geo.Contains(slotID, *p) {
		return "", domain.Position{}, domain.NewError(domain.ErrCodeUnknownSlot,
			fmt.Sprintf("point (%g, %g, %g) is outside spot %s", p.X, p.Y, p.Z, slotID), nil)
	}
	return slotID, *p, nil
}

func (c *Core) occupied(slotID string, now time.Time) bool {
	return c.tracker.Claimed(slotID) || occupancy.IsOccupied(slotID, c.log, now, c.geo)
}

// ResetAll wipes every session, frees every slot and clears storage. It
// refuses to run unless confirmed. The in-memory reset happens even when
// clearing storage fails; that failure is returned as PersistenceFailure.
func (c *Core) ResetAll(ctx context.Context, confirmed bool) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		c.observe(ctx, "reset", startedAt, err, fields)
	}()

	if !confirmed {
		return domain.ErrResetNotConfirmed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fields["sessions"] = len(c.log)
	empty, err := c.store.Reset(ctx)
	c.log = empty
	c.tracker.ReleaseAll()
	return err
}

// Refresh re-derives slot claims at now, freeing beds planted on earlier
// days. Call it when the calendar day may have changed.
func (c *Core) Refresh(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracker.Rebuild(c.log, now, c.geo)
}

// Snapshot returns period totals at now.
func (c *Core) Snapshot(now time.Time) stats.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return stats.Aggregate(c.log, now)
}

// Series returns the chart series for period at now.
func (c *Core) Series(now time.Time, period domain.Period) stats.Series {
	c.mu.Lock()
	defer c.mu.Unlock()
	return stats.BuildSeries(c.log, now, period)
}

// IsSlotOccupied reports the current claim on slotID, matched ignoring case.
func (c *Core) IsSlotOccupied(slotID string) bool {
	if id, ok := c.geo.Resolve(slotID); ok {
		slotID = id
	}
	return c.tracker.Claimed(slotID)
}

// IsUnlocked reports whether kind can be planted at now.
func (c *Core) IsUnlocked(kind domain.FlowerKind, now time.Time) unlock.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.policy.IsUnlocked(kind, c.log, now)
}

// TodayWorkMinutes sums today's work at now.
func (c *Core) TodayWorkMinutes(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return unlock.TodayWorkMinutes(c.log, now)
}

// Sessions returns a copy of the log, oldest first.
func (c *Core) Sessions() domain.SessionLog {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(domain.SessionLog, len(c.log))
	copy(out, c.log)
	return out
}

// Session looks up one session by id.
func (c *Core) Session(id int64) (domain.WorkSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Find(id)
}

// Slots lists every slot in layout order with its current claim.
func (c *Core) Slots() []SlotState {
	slots := c.geo.Slots()
	out := make([]SlotState, 0, len(slots))
	for _, s := range slots {
		anchor, _ := c.geo.Anchor(s.ID)
		out = append(out, SlotState{ID: s.ID, Anchor: anchor, Occupied: c.tracker.Claimed(s.ID)})
	}
	return out
}

// Policy returns the unlock policy in effect.
func (c *Core) Policy() unlock.Policy { return c.policy }

// Now reads the Core's clock.
func (c *Core) Now() time.Time { return c.now() }
