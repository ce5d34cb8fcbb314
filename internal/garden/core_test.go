package garden

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/iremince/garden-project/internal/clock"
	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/layout"
	"github.com/iremince/garden-project/internal/store"
	"github.com/iremince/garden-project/internal/testutil"
	"github.com/iremince/garden-project/internal/unlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name
	}
	return out
}

func newTestCore(t *testing.T, opts ...Option) (*Core, *store.MemoryBackend) {
	t.Helper()
	backend := store.NewMemoryBackend()
	opts = append([]Option{WithClock(clock.Fixed(testutil.Now))}, opts...)
	return Open(context.Background(), store.New(backend), layout.Default(), opts...), backend
}

func plantReq(slot string, minutes int) PlantRequest {
	return PlantRequest{SlotID: slot, Activity: "Focus block", Duration: PresetDuration(minutes)}
}

func TestPlant_IncrementsTodayCounters(t *testing.T) {
	core, _ := newTestCore(t)
	ctx := context.Background()
	before := core.Snapshot(testutil.Now)

	res, err := core.Plant(ctx, plantReq("A1", 45))
	require.NoError(t, err)
	require.NoError(t, res.SaveErr)

	after := core.Snapshot(testutil.Now)
	assert.Equal(t, before.Today.Sessions+1, after.Today.Sessions)
	assert.Equal(t, before.Today.Flowers+1, after.Today.Flowers)
	assert.Equal(t, before.Today.Time+45*60, after.Today.Time)
	assert.Equal(t, after, res.Snapshot)

	assert.Equal(t, domain.Flower1, res.Session.Kind)
	assert.Equal(t, "Focus block", res.Session.Activity)
	assert.Equal(t, testutil.Now, res.Session.PlantedAt)
	assert.Equal(t, testutil.Now.UnixMilli(), res.Session.ID)
	assert.True(t, core.IsSlotOccupied("A1"))
}

func TestPlant_UsesAnchorOrClickPoint(t *testing.T) {
	core, _ := newTestCore(t)
	ctx := context.Background()
	geo := layout.Default()

	res, err := core.Plant(ctx, plantReq("B2", 30))
	require.NoError(t, err)
	anchor, _ := geo.Anchor("B2")
	assert.Equal(t, anchor, res.Session.Position)

	b3, _ := geo.Anchor("B3")
	click := domain.Position{X: b3.X + 0.5, Y: b3.Y, Z: b3.Z - 0.5}
	req := plantReq("B3", 30)
	req.Position = &click
	res, err = core.Plant(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, click, res.Session.Position)
}

func TestPlant_PersistsLog(t *testing.T) {
	core, backend := newTestCore(t)
	ctx := context.Background()
	_, err := core.Plant(ctx, plantReq("A1", 30))
	require.NoError(t, err)

	reloaded := store.New(backend).Load(ctx)
	require.Len(t, reloaded, 1)
	assert.Equal(t, core.Sessions()[0].ID, reloaded[0].ID)
}

func TestPlant_ValidationOrder(t *testing.T) {
	core, _ := newTestCore(t)
	ctx := context.Background()
	_, err := core.Plant(ctx, plantReq("A1", 30))
	require.NoError(t, err)

	tests := []struct {
		name string
		req  PlantRequest
		want error
	}{
		{
			name: "empty activity beats everything",
			req:  PlantRequest{SlotID: "A1", Activity: "   ", Kind: domain.Flower3},
			want: domain.ErrEmptyActivity,
		},
		{
			name: "duration before slot",
			req:  PlantRequest{SlotID: "A1", Activity: "x", Duration: CustomDuration(0, 0), Kind: domain.Flower3},
			want: domain.ErrInvalidDuration,
		},
		{
			name: "slot before flower",
			req:  PlantRequest{SlotID: "A1", Activity: "x", Duration: PresetDuration(30), Kind: domain.Flower3},
			want: domain.ErrSlotOccupied,
		},
		{
			name: "locked flower",
			req:  PlantRequest{SlotID: "A2", Activity: "x", Duration: PresetDuration(30), Kind: domain.Flower3},
			want: domain.ErrFlowerLocked,
		},
		{
			name: "unknown flower",
			req:  PlantRequest{SlotID: "A2", Activity: "x", Duration: PresetDuration(30), Kind: "cactus"},
			want: domain.ErrFlowerLocked,
		},
		{
			name: "unknown slot",
			req:  PlantRequest{SlotID: "Z9", Activity: "x", Duration: PresetDuration(30)},
			want: domain.ErrUnknownSlot,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.Plant(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Len(t, core.Sessions(), 1, "failed plant must not mutate the log")
		})
	}
}

func TestPlant_SecondPlantingInSameSlotFails(t *testing.T) {
	core, backend := newTestCore(t)
	ctx := context.Background()
	geo := layout.Default()

	_, err := core.Plant(ctx, plantReq("C2", 30))
	require.NoError(t, err)
	saved, err := backend.Read(ctx, store.DefaultKey)
	require.NoError(t, err)

	corner := geo.Slots()[9].Box.Max // C2
	req := plantReq("C2", 60)
	req.Position = &corner
	_, err = core.Plant(ctx, req)
	require.ErrorIs(t, err, domain.ErrSlotOccupied)

	assert.Len(t, core.Sessions(), 1)
	after, err := backend.Read(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, saved, after, "storage untouched by a rejected plant")
}

func TestPlant_PositionOutsideSlot(t *testing.T) {
	core, _ := newTestCore(t)
	req := plantReq("A1", 30)
	req.Position = &domain.Position{X: 100, Y: 0, Z: 100}

	_, err := core.Plant(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnknownSlot)
	assert.False(t, core.IsSlotOccupied("A1"))
}

func TestPlant_PremiumUnlocksAfterFiveHours(t *testing.T) {
	core, _ := newTestCore(t)
	ctx := context.Background()

	status := core.IsUnlocked(domain.Flower3, testutil.Now)
	require.False(t, status.Unlocked)
	assert.Equal(t, 300, status.RemainingMinutes)

	morning := plantReq("A1", 180)
	morning.Now = testutil.At(9, 0)
	_, err := core.Plant(ctx, morning)
	require.NoError(t, err)

	_, err = core.Plant(ctx, PlantRequest{SlotID: "A2", Activity: "x", Duration: PresetDuration(30), Kind: domain.Flower3})
	require.ErrorIs(t, err, domain.ErrFlowerLocked)
	assert.Contains(t, err.Error(), "Work for 120 more minutes today to unlock!")

	afternoon := PlantRequest{SlotID: "A3", Activity: "Review", Duration: CustomDuration(2, 10), Now: testutil.At(14, 0)}
	_, err = core.Plant(ctx, afternoon)
	require.NoError(t, err)

	assert.Equal(t, 310, core.TodayWorkMinutes(testutil.Now))
	assert.True(t, core.IsUnlocked(domain.Flower3, testutil.Now).Unlocked)
	assert.Equal(t, 18600, core.Snapshot(testutil.Now).Today.Time)

	res, err := core.Plant(ctx, PlantRequest{SlotID: "A4", Activity: "Bonus", Duration: PresetDuration(15), Kind: domain.Flower3})
	require.NoError(t, err)
	assert.Equal(t, domain.Flower3, res.Session.Kind)
}

func TestPlant_CustomThreshold(t *testing.T) {
	core, _ := newTestCore(t, WithPolicy(unlock.NewPolicy(30)))
	_, err := core.Plant(context.Background(), plantReq("A1", 30))
	require.NoError(t, err)
	assert.True(t, core.IsUnlocked(domain.Flower3, testutil.Now).Unlocked)
}

func TestPlant_SaveFailureKeepsSessionInMemory(t *testing.T) {
	core, backend := newTestCore(t)
	backend.FailWrites = errors.New("quota exceeded")

	res, err := core.Plant(context.Background(), plantReq("A1", 30))
	require.NoError(t, err)
	require.ErrorIs(t, res.SaveErr, domain.ErrPersistenceFailure)
	assert.Len(t, core.Sessions(), 1)
	assert.True(t, core.IsSlotOccupied("A1"))
	assert.Equal(t, 1, res.Snapshot.Today.Sessions)

	// The next successful save carries both sessions.
	backend.FailWrites = nil
	res, err = core.Plant(context.Background(), plantReq("A2", 30))
	require.NoError(t, err)
	require.NoError(t, res.SaveErr)
	assert.Len(t, store.New(backend).Load(context.Background()), 2)
}

func TestPlant_IDsIncreaseWithinSameMillisecond(t *testing.T) {
	core, _ := newTestCore(t)
	ctx := context.Background()
	a, err := core.Plant(ctx, plantReq("A1", 30))
	require.NoError(t, err)
	b, err := core.Plant(ctx, plantReq("A2", 30))
	require.NoError(t, err)
	assert.Greater(t, b.Session.ID, a.Session.ID)
}

func TestLoad_PriorDaySessionsFreeTheirSlots(t *testing.T) {
	backend := store.NewMemoryBackend()
	ctx := context.Background()
	geo := layout.Default()
	a1, _ := geo.Anchor("A1")
	a2, _ := geo.Anchor("A2")
	history := domain.SessionLog{
		testutil.NewTestSession(60, testutil.WithPosition(a1.X, a1.Y, a1.Z), testutil.WithPlantedAt(testutil.DaysAgo(1, 10))),
		testutil.NewTestSession(30, testutil.WithPosition(a2.X, a2.Y, a2.Z), testutil.WithPlantedAt(testutil.At(9, 0))),
	}
	require.NoError(t, store.New(backend).Save(ctx, history))

	core := Open(ctx, store.New(backend), geo, WithClock(clock.Fixed(testutil.Now)))
	assert.False(t, core.IsSlotOccupied("A1"))
	assert.True(t, core.IsSlotOccupied("A2"))

	snap := core.Snapshot(testutil.Now)
	assert.Equal(t, 1, snap.Today.Sessions)
	assert.Equal(t, 2, snap.Weekly.Sessions, "yesterday still counts toward the week")

	_, err := core.Plant(ctx, plantReq("A1", 15))
	assert.NoError(t, err, "yesterday's bed can be replanted")
}

func TestPlant_SlotIDMatchedIgnoringCase(t *testing.T) {
	core, _ := newTestCore(t)

	res, err := core.Plant(context.Background(), plantReq("c2", 30))
	require.NoError(t, err)
	assert.Equal(t, "C2", res.SlotID)
	assert.True(t, core.IsSlotOccupied("C2"))
	assert.True(t, core.IsSlotOccupied("c2"))

	_, err = core.Plant(context.Background(), plantReq("C2", 30))
	assert.ErrorIs(t, err, domain.ErrSlotOccupied)
}

func TestLoad_OverlappingSlotsStayClaimed(t *testing.T) {
	backend := store.NewMemoryBackend()
	ctx := context.Background()
	geo, err := layout.New([]layout.Slot{
		{ID: "A", Box: layout.Box{Max: domain.Position{X: 2, Y: 1, Z: 2}}},
		{ID: "B", Box: layout.Box{Min: domain.Position{X: 1}, Max: domain.Position{X: 3, Y: 1, Z: 2}}},
	})
	require.NoError(t, err)

	first := Open(ctx, store.New(backend), geo, WithClock(clock.Fixed(testutil.Now)))
	req := plantReq("B", 30)
	req.Position = &domain.Position{X: 1.5, Y: 1, Z: 1}
	_, err = first.Plant(ctx, req)
	require.NoError(t, err)
	require.True(t, first.IsSlotOccupied("B"))
	require.True(t, first.IsSlotOccupied("A"), "the shared point lies in A as well")

	reloaded := Open(ctx, store.New(backend), geo, WithClock(clock.Fixed(testutil.Now)))
	assert.True(t, reloaded.IsSlotOccupied("B"), "the slot planted into survives a reload")
	assert.True(t, reloaded.IsSlotOccupied("A"))
}

func TestRefresh_FreesSlotsAtMidnight(t *testing.T) {
	core, _ := newTestCore(t)
	_, err := core.Plant(context.Background(), plantReq("A1", 30))
	require.NoError(t, err)

	core.Refresh(testutil.Now.Add(2 * time.Hour))
	assert.True(t, core.IsSlotOccupied("A1"))

	core.Refresh(testutil.DaysAgo(-1, 0))
	assert.False(t, core.IsSlotOccupied("A1"))
}

func TestResetAll_RequiresConfirmation(t *testing.T) {
	core, _ := newTestCore(t)
	_, err := core.Plant(context.Background(), plantReq("A1", 30))
	require.NoError(t, err)

	err = core.ResetAll(context.Background(), false)
	require.ErrorIs(t, err, domain.ErrResetNotConfirmed)
	assert.Len(t, core.Sessions(), 1)
}

func TestResetAll_ZeroesEverything(t *testing.T) {
	core, backend := newTestCore(t)
	ctx := context.Background()
	for _, slot := range []string{"A1", "B2", "C3"} {
		_, err := core.Plant(ctx, plantReq(slot, 30))
		require.NoError(t, err)
	}

	require.NoError(t, core.ResetAll(ctx, true))
	assert.Empty(t, core.Sessions())
	assert.True(t, core.Snapshot(testutil.Now).IsZero())
	for _, s := range core.Slots() {
		assert.False(t, s.Occupied, "slot %s", s.ID)
	}
	_, err := backend.Read(ctx, store.DefaultKey)
	assert.ErrorIs(t, err, store.ErrNotStored)
}

func TestResetAll_StorageFailureStillClearsMemory(t *testing.T) {
	core, backend := newTestCore(t)
	ctx := context.Background()
	_, err := core.Plant(ctx, plantReq("A1", 30))
	require.NoError(t, err)
	backend.FailWrites = errors.New("read-only")

	err = core.ResetAll(ctx, true)
	assert.ErrorIs(t, err, domain.ErrPersistenceFailure)
	assert.Empty(t, core.Sessions())
	assert.False(t, core.IsSlotOccupied("A1"))
}

func TestSeries_WeeklySumMatchesSnapshot(t *testing.T) {
	core, _ := newTestCore(t)
	ctx := context.Background()
	for i, slot := range []string{"A1", "A2", "A3"} {
		req := plantReq(slot, 20*(i+1))
		req.Now = testutil.At(8+i, 0)
		_, err := core.Plant(ctx, req)
		require.NoError(t, err)
	}

	series := core.Series(testutil.Now, domain.PeriodWeekly)
	assert.Equal(t, core.Snapshot(testutil.Now).Weekly.Time/60, series.Total())
	assert.Equal(t, 120, series.Values[3])
}

func TestSessionLookupAndSlots(t *testing.T) {
	core, _ := newTestCore(t)
	res, err := core.Plant(context.Background(), plantReq("B1", 30))
	require.NoError(t, err)

	s, ok := core.Session(res.Session.ID)
	require.True(t, ok)
	assert.Equal(t, res.Session, s)
	_, ok = core.Session(42)
	assert.False(t, ok)

	slots := core.Slots()
	require.Len(t, slots, layout.GridRows*layout.GridColumns)
	for _, st := range slots {
		assert.Equal(t, st.ID == "B1", st.Occupied, "slot %s", st.ID)
	}
}

func TestObserver_RecordsUseCases(t *testing.T) {
	obs := &recordingObserver{}
	core, _ := newTestCore(t, WithObserver(obs))
	ctx := context.Background()

	_, err := core.Plant(ctx, plantReq("A1", 30))
	require.NoError(t, err)
	_, err = core.Plant(ctx, plantReq("A1", 30))
	require.Error(t, err)
	require.NoError(t, core.ResetAll(ctx, true))

	assert.Equal(t, []string{"load", "plant", "plant", "reset"}, obs.names())
	ids := map[string]bool{}
	for _, e := range obs.events {
		assert.NotEmpty(t, e.RequestID)
		ids[e.RequestID] = true
	}
	assert.Len(t, ids, len(obs.events), "request ids are unique")
	assert.True(t, obs.events[1].Success)
	assert.False(t, obs.events[2].Success)
	assert.ErrorIs(t, obs.events[2].Err, domain.ErrSlotOccupied)
	assert.Equal(t, 30, obs.events[1].Fields["minutes"])
}

func TestCore_ConcurrentPlanting(t *testing.T) {
	core, _ := newTestCore(t)
	ctx := context.Background()
	slots := layout.Default().Slots()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		for _, s := range slots {
			wg.Add(1)
			go func(id string, n int) {
				defer wg.Done()
				_, _ = core.Plant(ctx, PlantRequest{SlotID: id, Activity: fmt.Sprintf("try %d", n), Duration: PresetDuration(15)})
				_ = core.Snapshot(testutil.Now)
			}(s.ID, i)
		}
	}
	wg.Wait()

	assert.Len(t, core.Sessions(), len(slots), "each slot planted exactly once")
	seen := map[int64]bool{}
	for _, s := range core.Sessions() {
		assert.False(t, seen[s.ID])
		seen[s.ID] = true
	}
}
