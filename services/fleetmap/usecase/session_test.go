package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/piresc/fleetmap/internal/pkg/loop"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/internal/utils"
	"github.com/piresc/fleetmap/services/fleetmap"
	"github.com/piresc/fleetmap/services/fleetmap/mocks"
	"github.com/piresc/fleetmap/services/fleetmap/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var berlin = models.Viewport{
	Bounds: models.Bounds{
		NorthEast: models.LatLng{Lat: 52.60, Lng: 13.50},
		SouthWest: models.LatLng{Lat: 52.40, Lng: 13.30},
	},
	Zoom: 16,
}

func testConfig() *models.Config {
	return &models.Config{
		Map: models.MapConfig{
			RenderCap:       150,
			BatchSize:       20,
			ViewportPadding: 0.2,
			Debounce:        100 * time.Millisecond,
			FrameInterval:   16 * time.Millisecond,
		},
		Freshness: models.FreshnessConfig{
			RentalTTL:   2 * time.Second,
			TrackingTTL: 5 * time.Second,
			DefaultTTL:  30 * time.Second,
		},
	}
}

func fleet() []models.VehicleRecord {
	return []models.VehicleRecord{
		{ID: 1, Position: models.LatLng{Lat: 52.50, Lng: 13.40}, Status: models.VehicleStatusFree, Name: "B-CS 101"},
		{ID: 2, Position: models.LatLng{Lat: 52.51, Lng: 13.41}, Status: models.VehicleStatusFree, Name: "B-CS 102"},
		{ID: 3, Position: models.LatLng{Lat: 52.52, Lng: 13.42}, Status: models.VehicleStatusInUse, Name: "B-CS 103"},
	}
}

type fixture struct {
	sched     *loop.Manual
	backend   *fakeBackend
	vehicleGW *mocks.MockVehicleGW
	viewerGW  *mocks.MockViewerGW
	repo      *mocks.MockTrackingRepo
	uc        *MapUC
	viewerID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		sched:     loop.NewManual(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)),
		backend:   &fakeBackend{viewport: berlin},
		vehicleGW: mocks.NewMockVehicleGW(ctrl),
		viewerGW:  mocks.NewMockViewerGW(ctrl),
		repo:      mocks.NewMockTrackingRepo(ctrl),
		viewerID:  uuid.New(),
	}
	f.uc = NewMapUC(testConfig(), f.vehicleGW, f.viewerGW, f.repo, style.NewResolver(style.DefaultTable()), nil)
	return f
}

func (f *fixture) open(t *testing.T, viewer models.Viewer) *Session {
	f.viewerGW.EXPECT().CurrentViewer(gomock.Any()).Return(&viewer, nil).Times(1)
	sess, err := f.uc.OpenSession(context.Background(), f.viewerID, viewer.Role, f.backend, f.sched)
	require.NoError(t, err)
	return sess.(*Session)
}

// settle runs queued fetches and lets the debounce and every batch frame pass
func (f *fixture) settle() {
	for f.sched.Pending() > 0 {
		f.sched.RunPending()
	}
	f.sched.Advance(100 * time.Millisecond)
	for f.sched.PendingFrames() > 0 {
		f.sched.Frame()
	}
}

func (f *fixture) tap(t *testing.T, s *Session, vehicleID int64) {
	for _, h := range s.renderer.Placed() {
		if h.VehicleID() == vehicleID {
			m := f.backend.marker(h.ID())
			require.NotNil(t, m.click)
			m.click()
			return
		}
	}
	t.Fatalf("vehicle %d is not on the map", vehicleID)
}

func placedVehicles(s *Session) []int64 {
	var ids []int64
	for _, h := range s.renderer.Placed() {
		ids = append(ids, h.VehicleID())
	}
	return ids
}

func TestOpenSession_IdentityComesFromToken(t *testing.T) {
	f := newFixture(t)
	upstream := models.Viewer{ID: uuid.New(), Role: models.RoleMechanic}
	f.viewerGW.EXPECT().CurrentViewer(gomock.Any()).Return(&upstream, nil).Times(1)

	sess, err := f.uc.OpenSession(context.Background(), f.viewerID, models.RoleCustomer, f.backend, f.sched)
	require.NoError(t, err)

	s := sess.(*Session)
	assert.Equal(t, f.viewerID, s.viewer.ID)
	assert.Equal(t, models.RoleCustomer, s.viewer.Role)
	assert.Equal(t, 1, f.uc.ActiveSessions())
}

func TestOpenSession_ViewerLoadFails(t *testing.T) {
	f := newFixture(t)
	f.viewerGW.EXPECT().CurrentViewer(gomock.Any()).Return(nil, errors.New("upstream down")).Times(1)

	sess, err := f.uc.OpenSession(context.Background(), f.viewerID, models.RoleCustomer, f.backend, f.sched)

	assert.Error(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, 0, f.uc.ActiveSessions())
}

func TestSession_CustomerRendersFleet(t *testing.T) {
	f := newFixture(t)
	f.vehicleGW.EXPECT().AllVehicles(gomock.Any()).Return(fleet(), nil).Times(1)

	s := f.open(t, models.Viewer{Role: models.RoleCustomer})
	s.Start()
	f.settle()

	assert.Equal(t, 1, f.backend.libraries)
	assert.ElementsMatch(t, []int64{1, 2, 3}, placedVehicles(s))
	for _, m := range f.backend.markers {
		assert.Equal(t, 32, m.content.Style.Width)
		assert.Empty(t, m.content.Style.ColorFilter, "customers see no status colors")
	}
}

func TestSession_ViewportChangeRestyles(t *testing.T) {
	f := newFixture(t)
	f.vehicleGW.EXPECT().AllVehicles(gomock.Any()).Return(fleet(), nil).Times(1)

	s := f.open(t, models.Viewer{Role: models.RoleCustomer})
	s.Start()
	f.settle()

	zoomedOut := berlin
	zoomedOut.Zoom = 12
	f.backend.pan(zoomedOut)
	f.settle()

	require.Len(t, s.renderer.Placed(), 3)
	for _, h := range s.renderer.Placed() {
		assert.Equal(t, 24, h.Content().Style.Width)
	}
	assert.Equal(t, 3, s.renderer.Stats().Constructed, "markers are recycled between passes")
}

func TestSession_ClickOpensSurfaceAndCloseRefreshes(t *testing.T) {
	f := newFixture(t)
	f.vehicleGW.EXPECT().AllVehicles(gomock.Any()).Return(fleet(), nil).Times(3)

	s := f.open(t, models.Viewer{Role: models.RoleCustomer})
	s.Start()
	f.settle()

	f.tap(t, s, 2)
	require.Len(t, f.backend.surfaces, 1)
	assert.Equal(t, "start_rental", f.backend.surfaces[0].surface)
	assert.Equal(t, int64(2), f.backend.surfaces[0].vehicle.ID)

	f.tap(t, s, 1)
	assert.Len(t, f.backend.surfaces, 1, "only one surface at a time")

	rented := models.Viewer{Role: models.RoleCustomer, Rental: &models.Rental{ID: 77, VehicleID: 2, Status: models.RentalStatusReserved}}
	f.viewerGW.EXPECT().CurrentViewer(gomock.Any()).Return(&rented, nil).Times(1)
	f.backend.surfaces[0].close()
	f.backend.surfaces[0].close()
	assert.True(t, s.dispatcher.Busy(), "busy until the refresh lands")

	f.settle()
	assert.False(t, s.dispatcher.Busy())
	assert.True(t, s.viewer.HasActiveRental())
	assert.Equal(t, f.viewerID, s.viewer.ID)

	// the rental shortens the poll interval
	f.sched.Advance(2 * time.Second)
	assert.Equal(t, 1, f.sched.Pending())
	f.sched.RunPending()

	f.tap(t, s, 2)
	require.Len(t, f.backend.surfaces, 2)
	assert.Equal(t, "waiting_for_pickup", f.backend.surfaces[1].surface)
}

func TestSession_DeepLinkWaitsForFleet(t *testing.T) {
	f := newFixture(t)
	f.vehicleGW.EXPECT().AllVehicles(gomock.Any()).Return(fleet(), nil).Times(1)

	s := f.open(t, models.Viewer{Role: models.RoleCustomer})
	s.DeepLink(3)
	assert.Empty(t, f.backend.surfaces)

	s.Start()
	f.settle()

	require.Len(t, f.backend.surfaces, 1)
	assert.Equal(t, int64(3), f.backend.surfaces[0].vehicle.ID)
	assert.Zero(t, s.dispatcher.PendingDeepLink())
}

func TestSession_DeepLinkUnknownVehicleStaysPending(t *testing.T) {
	f := newFixture(t)
	f.vehicleGW.EXPECT().AllVehicles(gomock.Any()).Return(fleet(), nil).Times(1)

	s := f.open(t, models.Viewer{Role: models.RoleCustomer})
	s.Start()
	f.settle()

	s.DeepLink(99)
	assert.Empty(t, f.backend.surfaces)
	assert.Equal(t, int64(99), s.dispatcher.PendingDeepLink())
}

func TestSession_PinIsMechanicOnly(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, models.Viewer{Role: models.RoleCustomer})

	assert.ErrorIs(t, s.PinVehicle(1), fleetmap.ErrForbidden)
	assert.ErrorIs(t, s.ClearPin(), fleetmap.ErrForbidden)
}

func (f *fixture) expectMechanicFleet() {
	f.vehicleGW.EXPECT().MechanicVehicles(gomock.Any()).Return(fleet(), nil).AnyTimes()
	f.vehicleGW.EXPECT().CurrentDelivery(gomock.Any()).Return(nil, fleetmap.ErrNoCurrentDelivery).AnyTimes()
}

func TestSession_MechanicPinsVehicle(t *testing.T) {
	f := newFixture(t)
	f.expectMechanicFleet()
	f.repo.EXPECT().GetPin(gomock.Any(), f.viewerID).Return(int64(0), fleetmap.ErrNoPin).Times(1)
	f.repo.EXPECT().SetPin(gomock.Any(), f.viewerID, int64(3)).Return(nil).Times(1)
	f.repo.EXPECT().ClearPin(gomock.Any(), f.viewerID).Return(nil).Times(1)

	s := f.open(t, models.Viewer{Role: models.RoleMechanic})
	s.Start()
	f.settle()

	require.NoError(t, s.PinVehicle(3))
	f.settle()
	assert.Equal(t, int64(3), s.pin)

	// tracking polls every five seconds
	f.sched.Advance(5 * time.Second)
	assert.Equal(t, 1, f.sched.Pending())
	f.settle()

	f.tap(t, s, 3)
	require.Len(t, f.backend.surfaces, 1)
	assert.Equal(t, "tracking", f.backend.surfaces[0].surface)

	require.NoError(t, s.ClearPin())
	f.settle()
	assert.Zero(t, s.pin)
}

func TestSession_MechanicRestoresPin(t *testing.T) {
	f := newFixture(t)
	f.expectMechanicFleet()
	f.repo.EXPECT().GetPin(gomock.Any(), f.viewerID).Return(int64(2), nil).Times(1)

	s := f.open(t, models.Viewer{Role: models.RoleMechanic})
	s.Start()
	f.settle()

	assert.Equal(t, int64(2), s.pin)
	assert.Contains(t, placedVehicles(s), int64(2))

	// the restored pin switches polling to the tracking interval
	f.sched.Advance(4800 * time.Millisecond)
	assert.Equal(t, 0, f.sched.Pending())
	f.sched.Advance(200 * time.Millisecond)
	assert.Equal(t, 1, f.sched.Pending())
	f.settle()
}

func TestSession_RestoredPinOutranksFreeVehiclesOverCap(t *testing.T) {
	f := newFixture(t)
	f.uc.deps.cfg.Map.RenderCap = 2
	f.expectMechanicFleet()
	f.repo.EXPECT().GetPin(gomock.Any(), f.viewerID).Return(int64(2), nil).Times(1)

	s := f.open(t, models.Viewer{Role: models.RoleMechanic})
	s.Start()
	f.settle()

	assert.ElementsMatch(t, []int64{2, 3}, placedVehicles(s), "the free vehicle ahead of the pin is culled")
}

func TestFleetChanged_KicksOnlyOverlappingSessions(t *testing.T) {
	f := newFixture(t)
	f.vehicleGW.EXPECT().AllVehicles(gomock.Any()).Return(fleet(), nil).Times(3)

	s := f.open(t, models.Viewer{Role: models.RoleCustomer})
	s.Start()
	f.settle()

	munich := utils.EncodeCell(models.LatLng{Lat: 48.137, Lng: 11.575}, utils.CellPrecision)
	f.uc.FleetChanged(models.FleetChangedEvent{Cells: []string{munich}})
	assert.Equal(t, 0, f.sched.Pending())

	mitte := utils.EncodeCell(models.LatLng{Lat: 52.52, Lng: 13.40}, utils.CellPrecision)
	f.uc.FleetChanged(models.FleetChangedEvent{Cells: []string{munich, mitte}})
	assert.Equal(t, 1, f.sched.Pending())
	f.settle()

	f.uc.FleetChanged(models.FleetChangedEvent{})
	assert.Equal(t, 1, f.sched.Pending(), "an event without cells touches everyone")
	f.settle()
}

func TestSession_CloseTearsDown(t *testing.T) {
	f := newFixture(t)
	f.vehicleGW.EXPECT().AllVehicles(gomock.Any()).Return(fleet(), nil).Times(1)

	s := f.open(t, models.Viewer{Role: models.RoleCustomer})
	s.Start()
	f.settle()
	require.Equal(t, 1, f.uc.ActiveSessions())

	s.Close()
	s.Close()

	assert.Equal(t, 1, f.backend.disposed)
	assert.Equal(t, 0, f.uc.ActiveSessions())
	for _, m := range f.backend.markers {
		assert.False(t, m.attached)
	}
	assert.Error(t, s.ctx.Err())

	f.sched.Advance(time.Minute)
	assert.Equal(t, 0, f.sched.Pending(), "no polling after close")
	assert.Equal(t, 0, f.sched.ActiveTimers())
}

func TestSession_CloseDropsLateFetch(t *testing.T) {
	f := newFixture(t)
	f.vehicleGW.EXPECT().AllVehicles(gomock.Any()).Return(fleet(), nil).Times(1)

	s := f.open(t, models.Viewer{Role: models.RoleCustomer})
	s.Start()
	s.Close()
	f.settle()

	assert.Empty(t, f.backend.markers)
}
