package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/fleetmap/internal/pkg/loop"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/services/fleetmap"
	"github.com/piresc/fleetmap/services/fleetmap/cache"
	"github.com/piresc/fleetmap/services/fleetmap/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFreshness = models.FreshnessConfig{
	RentalTTL:   2 * time.Second,
	TrackingTTL: 5 * time.Second,
	DefaultTTL:  30 * time.Second,
}

func vehicles(ids ...int64) []models.VehicleRecord {
	out := make([]models.VehicleRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.VehicleRecord{ID: id, Status: models.VehicleStatusFree})
	}
	return out
}

func ids(list []models.VehicleRecord) []int64 {
	out := make([]int64, 0, len(list))
	for _, v := range list {
		out = append(out, v.ID)
	}
	return out
}

type fixture struct {
	sched   *loop.Manual
	gw      *mocks.MockVehicleGW
	poller  *Poller
	updates int
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		sched: loop.NewManual(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)),
		gw:    mocks.NewMockVehicleGW(ctrl),
	}
	f.poller = New(context.Background(), f.sched, f.gw, testFreshness, nil, func() { f.updates++ })
	return f
}

func TestInterval_MatchesTTLLadder(t *testing.T) {
	assert.Equal(t, 2*time.Second, Interval(testFreshness, true, true))
	assert.Equal(t, 5*time.Second, Interval(testFreshness, false, true))
	assert.Equal(t, 30*time.Second, Interval(testFreshness, false, false))
}

func TestSchedule_CustomerFetchesAllVehicles(t *testing.T) {
	f := newFixture(t)
	f.gw.EXPECT().AllVehicles(gomock.Any()).Return(vehicles(1, 2, 3), nil).Times(1)

	f.poller.Schedule(models.RoleCustomer, false, false)
	assert.True(t, f.poller.InFlight())
	require.Equal(t, 1, f.sched.RunPending())

	assert.False(t, f.poller.InFlight())
	assert.Equal(t, []int64{1, 2, 3}, ids(f.poller.Vehicles()))
	assert.Equal(t, 1, f.updates)
}

func TestPoll_InFlightLatchDropsOverlappingRequests(t *testing.T) {
	f := newFixture(t)
	f.gw.EXPECT().AllVehicles(gomock.Any()).Return(vehicles(1), nil).Times(1)

	f.poller.Schedule(models.RoleCustomer, true, false)
	f.poller.Kick()
	f.sched.Advance(2 * time.Second)
	f.poller.Kick()

	assert.Equal(t, 1, f.sched.Pending(), "overlapping requests are dropped, not queued")
	f.sched.RunPending()
	assert.Equal(t, 0, f.sched.Pending())
}

func TestPoll_TicksAtInterval(t *testing.T) {
	f := newFixture(t)
	f.gw.EXPECT().AllVehicles(gomock.Any()).Return(vehicles(1), nil).Times(3)

	f.poller.Schedule(models.RoleCustomer, false, false)
	f.sched.RunPending()

	f.sched.Advance(29 * time.Second)
	assert.Equal(t, 0, f.sched.Pending())

	f.sched.Advance(time.Second)
	assert.Equal(t, 1, f.sched.Pending())
	f.sched.RunPending()

	f.sched.Advance(30 * time.Second)
	assert.Equal(t, 1, f.sched.Pending())
	f.sched.RunPending()
	assert.Equal(t, 3, f.updates)
}

func TestPoll_TicksAtIntervalWithFetchLatency(t *testing.T) {
	f := newFixture(t)
	fetches := 0
	f.gw.EXPECT().AllVehicles(gomock.Any()).DoAndReturn(func(context.Context) ([]models.VehicleRecord, error) {
		fetches++
		return vehicles(1), nil
	}).AnyTimes()

	f.poller.Schedule(models.RoleCustomer, true, false)
	for i := 0; i < 10; i++ {
		f.sched.Advance(50 * time.Millisecond)
		require.Equal(t, 1, f.sched.RunPending(), "tick %d fetched", i)
		f.sched.Advance(1950 * time.Millisecond)
	}
	f.sched.RunPending()

	assert.Equal(t, 11, fetches, "initial fetch plus one per 2s tick over 20s")
}

func TestKick_IgnoresFreshness(t *testing.T) {
	f := newFixture(t)
	f.gw.EXPECT().AllVehicles(gomock.Any()).Return(vehicles(1), nil).Times(2)

	f.poller.Schedule(models.RoleCustomer, false, false)
	f.sched.RunPending()

	f.poller.Kick()
	assert.Equal(t, 1, f.sched.Pending())
	f.sched.RunPending()
}

func TestSchedule_KeepsSingleInterval(t *testing.T) {
	f := newFixture(t)
	f.gw.EXPECT().AllVehicles(gomock.Any()).Return(vehicles(1), nil).AnyTimes()

	cancelFirst := f.poller.Schedule(models.RoleCustomer, false, false)
	f.sched.RunPending()
	f.poller.Schedule(models.RoleCustomer, true, false)
	f.sched.RunPending()
	f.poller.Schedule(models.RoleCustomer, false, false)

	assert.Equal(t, 1, f.sched.ActiveTimers())

	cancelFirst()
	assert.Equal(t, 1, f.sched.ActiveTimers(), "a stale cancel token must not stop the current interval")
}

func TestSchedule_RentalTransitionRefetches(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.gw.EXPECT().AllVehicles(gomock.Any()).Return(vehicles(1, 2), nil),
		f.gw.EXPECT().AllVehicles(gomock.Any()).Return(vehicles(2), nil),
	)

	f.poller.Schedule(models.RoleCustomer, false, false)
	f.sched.RunPending()
	f.sched.Advance(3 * time.Second)

	f.poller.Schedule(models.RoleCustomer, true, false)
	assert.Empty(t, f.poller.Vehicles(), "entries from before the rental are gone")
	require.Equal(t, 1, f.sched.RunPending())
	assert.Equal(t, []int64{2}, ids(f.poller.Vehicles()))
}

func TestApply_StateChangedMidFlightIsDiscarded(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.gw.EXPECT().AllVehicles(gomock.Any()).Return(vehicles(1), nil),
		f.gw.EXPECT().AllVehicles(gomock.Any()).Return(vehicles(9), nil),
	)

	f.poller.Schedule(models.RoleCustomer, false, false)
	f.poller.Schedule(models.RoleCustomer, true, false)

	require.Equal(t, 1, f.sched.RunPending())
	assert.Empty(t, f.poller.Vehicles())
	assert.Equal(t, 1, f.sched.Pending(), "a fresh fetch replaces the discarded one")

	f.sched.RunPending()
	assert.Equal(t, []int64{9}, ids(f.poller.Vehicles()))
}

func TestPoll_FailureKeepsLastKnownData(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.gw.EXPECT().AllVehicles(gomock.Any()).Return(vehicles(1, 2), nil),
		f.gw.EXPECT().AllVehicles(gomock.Any()).Return(nil, errors.New("502 bad gateway")),
	)

	f.poller.Schedule(models.RoleCustomer, false, false)
	f.sched.RunPending()
	f.poller.Kick()
	f.sched.RunPending()

	assert.Equal(t, []int64{1, 2}, ids(f.poller.Vehicles()))
	assert.Equal(t, 1, f.updates)
	assert.False(t, f.poller.InFlight())
}

func TestPoll_MechanicWithoutDeliveryStoresNilEntry(t *testing.T) {
	f := newFixture(t)
	f.gw.EXPECT().MechanicVehicles(gomock.Any()).Return(vehicles(4, 5), nil)
	f.gw.EXPECT().CurrentDelivery(gomock.Any()).Return(nil, fleetmap.ErrNoCurrentDelivery)

	f.poller.Schedule(models.RoleMechanic, false, false)
	f.sched.RunPending()

	entry, ok := f.poller.Delivery()
	require.True(t, ok, "no delivery is stored, not left missing")
	assert.Nil(t, entry.Data)
	assert.Equal(t, []int64{4, 5}, ids(f.poller.Vehicles()))
	assert.Equal(t, 1, f.updates)
}

func TestPoll_MechanicMergesDeliveryFirst(t *testing.T) {
	f := newFixture(t)
	delivery := models.VehicleRecord{ID: 5, Status: models.VehicleStatusDelivering}
	f.gw.EXPECT().MechanicVehicles(gomock.Any()).Return(vehicles(4, 5, 6), nil)
	f.gw.EXPECT().CurrentDelivery(gomock.Any()).Return(&delivery, nil)

	f.poller.Schedule(models.RoleMechanic, false, true)
	f.sched.RunPending()

	got := f.poller.Vehicles()
	assert.Equal(t, []int64{5, 4, 6}, ids(got))
	assert.Equal(t, models.VehicleStatusDelivering, got[0].Status)
	assert.Equal(t, 1, f.sched.ActiveTimers())
}

func TestPoll_MechanicPartialFailure(t *testing.T) {
	f := newFixture(t)
	f.gw.EXPECT().MechanicVehicles(gomock.Any()).Return(nil, errors.New("timeout"))
	f.gw.EXPECT().CurrentDelivery(gomock.Any()).Return(&models.VehicleRecord{ID: 8}, nil)

	f.poller.Schedule(models.RoleMechanic, false, false)
	f.sched.RunPending()

	assert.Equal(t, []int64{8}, ids(f.poller.Vehicles()))
	_, ok := f.poller.vehicles.Peek(cache.SourceMechanicVehicles, false)
	assert.False(t, ok)
}

func TestStop_IsIdempotentAndIgnoresLateResults(t *testing.T) {
	f := newFixture(t)
	f.gw.EXPECT().AllVehicles(gomock.Any()).Return(vehicles(1), nil)

	f.poller.Schedule(models.RoleCustomer, false, false)
	f.poller.Stop()
	f.poller.Stop()

	assert.Equal(t, 0, f.sched.ActiveTimers())
	f.sched.RunPending()
	assert.Equal(t, 0, f.updates)
	assert.Empty(t, f.poller.Vehicles())

	f.poller.Kick()
	assert.Equal(t, 0, f.sched.Pending())
}
