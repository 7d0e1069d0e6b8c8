package render

import (
	"strings"
	"testing"
	"time"

	"github.com/piresc/fleetmap/internal/pkg/loop"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	sched    *loop.Manual
	backend  *fakeBackend
	renderer *Renderer
	clicks   []int64
}

func newFixture() *fixture {
	f := &fixture{
		sched:   loop.NewManual(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)),
		backend: newFakeBackend(),
	}
	content := func(v models.VehicleRecord) models.MarkerContent {
		return models.MarkerContent{Icon: "vehicle", Label: v.Name, Heading: v.Heading}
	}
	f.renderer = NewRenderer(f.sched, f.backend, content, func(id int64) { f.clicks = append(f.clicks, id) }, Options{})
	return f
}

// ready runs a first empty pass so the marker library is loaded
func (f *fixture) ready(t *testing.T) {
	t.Helper()
	f.renderer.RenderPass(nil)
	f.sched.Advance(DefaultDebounce)
	require.Equal(t, 1, f.backend.loadRequests)
	f.backend.loaded()
}

// pass renders vehicles and drains every batch frame
func (f *fixture) pass(vehicles []models.VehicleRecord) {
	f.renderer.RenderPass(vehicles)
	f.sched.Advance(DefaultDebounce)
	for f.sched.PendingFrames() > 0 {
		f.sched.Frame()
	}
}

func fleet(from, n int) []models.VehicleRecord {
	out := make([]models.VehicleRecord, 0, n)
	for i := 0; i < n; i++ {
		id := int64(from + i)
		out = append(out, models.VehicleRecord{ID: id, Position: models.LatLng{Lat: 52.5, Lng: 13.4 + float64(i)*0.001}})
	}
	return out
}

func placedIDs(r *Renderer) []int64 {
	var out []int64
	for _, h := range r.Placed() {
		out = append(out, h.VehicleID())
	}
	return out
}

func assertConserved(t *testing.T, r *Renderer) {
	t.Helper()
	s := r.Stats()
	assert.Equal(t, s.Constructed, s.Placed+s.Pooled, "handles lost or leaked: %+v", s)
}

func TestRenderer_LibraryLoadedOnce(t *testing.T) {
	f := newFixture()

	f.renderer.RenderPass(fleet(1, 3))
	f.sched.Advance(DefaultDebounce)
	f.renderer.RenderPass(fleet(10, 2))
	f.sched.Advance(DefaultDebounce)

	assert.Equal(t, 1, f.backend.loadRequests)
	assert.Empty(t, f.backend.markers, "nothing is placed before the library loads")

	f.backend.loaded()
	assert.Equal(t, []int64{10, 11}, placedIDs(f.renderer), "the latest list is placed once loaded")

	f.backend.loaded()
	assert.Equal(t, 1, f.backend.loadRequests)
	assert.Len(t, f.backend.markers, 2)
}

func TestRenderer_DebounceLatestWins(t *testing.T) {
	f := newFixture()
	f.ready(t)

	f.renderer.RenderPass(fleet(1, 4))
	f.sched.Advance(60 * time.Millisecond)
	f.renderer.RenderPass(fleet(20, 2))
	f.sched.Advance(60 * time.Millisecond)
	f.renderer.RenderPass(fleet(30, 3))

	assert.Empty(t, f.renderer.Placed())
	f.sched.Advance(DefaultDebounce - time.Millisecond)
	assert.Empty(t, f.renderer.Placed())

	f.sched.Advance(time.Millisecond)
	assert.Equal(t, []int64{30, 31, 32}, placedIDs(f.renderer))
	assert.Len(t, f.backend.markers, 3, "superseded lists never reach the backend")
}

func TestRenderer_BatchesPerFrame(t *testing.T) {
	f := newFixture()
	f.ready(t)
	vehicles := fleet(1, 37)

	f.renderer.RenderPass(vehicles)
	f.sched.Advance(DefaultDebounce)

	assert.Len(t, f.renderer.Placed(), 20, "first batch is placed synchronously")
	assert.Equal(t, 1, f.sched.PendingFrames())
	assert.True(t, f.renderer.Busy())

	assert.Equal(t, 1, f.sched.Frame())
	assert.Len(t, f.renderer.Placed(), 37)
	assert.Equal(t, 0, f.sched.PendingFrames())
	assert.False(t, f.renderer.Busy())

	seen := map[int64]bool{}
	for _, id := range placedIDs(f.renderer) {
		assert.False(t, seen[id], "vehicle %d placed twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, 37)
	assertConserved(t, f.renderer)
}

func TestRenderer_ReleasesBeforeAcquiring(t *testing.T) {
	f := newFixture()
	f.ready(t)
	f.pass(fleet(1, 15))
	f.backend.ops = nil

	f.pass(fleet(100, 15))

	firstPlace := -1
	lastDetach := -1
	for i, op := range f.backend.ops {
		if strings.HasPrefix(op, "place") && firstPlace < 0 {
			firstPlace = i
		}
		if strings.HasPrefix(op, "detach") {
			lastDetach = i
		}
	}
	require.GreaterOrEqual(t, firstPlace, 0)
	assert.Less(t, lastDetach, firstPlace, "every detach happens before any placement")
	assert.Equal(t, 15, f.renderer.Stats().Constructed, "handles are reused, not reallocated")
}

func TestRenderer_PoolConservationAcrossPasses(t *testing.T) {
	f := newFixture()
	f.ready(t)

	for i, n := range []int{5, 30, 12, 0, 45, 45, 3} {
		f.renderer.RenderPass(fleet(i*100, n))
		f.sched.Advance(DefaultDebounce)
		assertConserved(t, f.renderer)

		for f.sched.PendingFrames() > 0 {
			f.sched.Frame()
			assertConserved(t, f.renderer)
		}
		assert.Len(t, f.renderer.Placed(), n)
		assert.Equal(t, n, f.backend.attached())
	}
	assert.Equal(t, 45, f.renderer.Stats().Constructed)
}

func TestRenderer_NoStaleListeners(t *testing.T) {
	f := newFixture()
	f.ready(t)
	f.pass(fleet(1, 10))
	f.pass(fleet(500, 6))

	for _, h := range f.renderer.Placed() {
		m := f.backend.marker(h.ID())
		require.NotNil(t, m)
		assert.Equal(t, 1, m.listeners)

		f.clicks = nil
		require.True(t, m.tap())
		assert.Equal(t, []int64{h.VehicleID()}, f.clicks)
	}

	for _, m := range f.backend.markers {
		if !m.attached {
			assert.False(t, m.tap(), "pooled marker %s kept a listener", m.id)
			assert.Equal(t, 0, m.listeners)
		}
	}
}

func TestRenderer_NewPassSupersedesPendingBatches(t *testing.T) {
	f := newFixture()
	f.ready(t)

	f.renderer.RenderPass(fleet(1, 37))
	f.sched.Advance(DefaultDebounce)
	require.Equal(t, 1, f.sched.PendingFrames())

	f.renderer.RenderPass(fleet(900, 5))
	f.sched.Advance(DefaultDebounce)
	assert.Equal(t, 0, f.sched.PendingFrames())

	f.sched.Frame()
	assert.Equal(t, []int64{900, 901, 902, 903, 904}, placedIDs(f.renderer))
	assert.Equal(t, 5, f.backend.attached())
	assertConserved(t, f.renderer)
}

func TestRenderer_DetachFailureDoesNotAbortRelease(t *testing.T) {
	f := newFixture()
	f.ready(t)
	f.pass(fleet(1, 4))
	f.backend.failDetach["m2"] = true

	f.pass(fleet(50, 2))

	assert.Equal(t, []int64{50, 51}, placedIDs(f.renderer))
	assert.Equal(t, Stats{Placed: 2, Pooled: 2, Constructed: 4}, f.renderer.Stats())
}

func TestRenderer_PlacementFailureReturnsHandle(t *testing.T) {
	f := newFixture()
	f.ready(t)
	f.backend.failPlace["m1"] = true

	f.pass(fleet(1, 3))

	assert.Empty(t, f.renderer.Placed())
	assert.Equal(t, Stats{Placed: 0, Pooled: 1, Constructed: 1}, f.renderer.Stats(), "the failed handle is pooled, not leaked")

	f.backend.failPlace["m1"] = false
	f.pass(fleet(1, 3))
	assert.Equal(t, []int64{1, 2, 3}, placedIDs(f.renderer))
	assertConserved(t, f.renderer)
}

func TestRenderer_TeardownIsIdempotent(t *testing.T) {
	f := newFixture()
	f.ready(t)
	f.renderer.RenderPass(fleet(1, 37))
	f.sched.Advance(DefaultDebounce)
	f.renderer.RenderPass(fleet(1, 10))

	f.renderer.Teardown()
	f.renderer.Teardown()

	assert.Equal(t, 0, f.backend.attached())
	assert.Equal(t, Stats{}, f.renderer.Stats())
	assert.Equal(t, 0, f.sched.PendingFrames())
	assert.Equal(t, 0, f.sched.ActiveTimers())
	assert.False(t, f.renderer.Busy())

	f.renderer.RenderPass(fleet(1, 3))
	f.sched.Advance(DefaultDebounce)
	f.sched.Frame()
	assert.Empty(t, f.renderer.Placed())
}

func TestRenderer_TeardownBeforeLoad(t *testing.T) {
	f := newFixture()
	f.renderer.RenderPass(fleet(1, 3))
	f.sched.Advance(DefaultDebounce)

	f.renderer.Teardown()
	f.backend.loaded()

	assert.Empty(t, f.backend.markers)
}
