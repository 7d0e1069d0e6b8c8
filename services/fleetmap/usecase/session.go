package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/loop"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/internal/utils"
	"github.com/piresc/fleetmap/services/fleetmap"
	"github.com/piresc/fleetmap/services/fleetmap/culling"
	"github.com/piresc/fleetmap/services/fleetmap/dispatch"
	"github.com/piresc/fleetmap/services/fleetmap/poller"
	"github.com/piresc/fleetmap/services/fleetmap/render"
	"github.com/piresc/fleetmap/services/fleetmap/style"
	"go.uber.org/zap"
)

// Session is one viewer's live map. It composes the poller, culler,
// renderer and dispatcher and is driven entirely from its loop.
type Session struct {
	id     uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc
	sched  loop.Scheduler
	log    *zap.Logger

	viewer   models.Viewer
	pin      int64
	viewport models.Viewport
	fleet    []models.VehicleRecord
	padding  float64

	viewerGW     fleetmap.ViewerGW
	trackingRepo fleetmap.TrackingRepo
	backend      fleetmap.MapBackend

	poller     *poller.Poller
	culler     culling.Culler
	styles     *style.Resolver
	renderer   *render.Renderer
	dispatcher *dispatch.Dispatcher

	disposers []func()
	started   bool
	closed    bool
	onClose   func()
}

type sessionDeps struct {
	cfg          *models.Config
	vehicleGW    fleetmap.VehicleGW
	viewerGW     fleetmap.ViewerGW
	trackingRepo fleetmap.TrackingRepo
	styles       *style.Resolver
	nrApp        *newrelic.Application
}

func newSession(ctx context.Context, viewer models.Viewer, backend fleetmap.MapBackend, sched loop.Scheduler, deps sessionDeps) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		id:           uuid.New(),
		ctx:          ctx,
		cancel:       cancel,
		sched:        sched,
		viewer:       viewer,
		padding:      deps.cfg.Map.ViewportPadding,
		viewerGW:     deps.viewerGW,
		trackingRepo: deps.trackingRepo,
		backend:      backend,
		culler:       culling.New(deps.cfg.Map.RenderCap, deps.cfg.Map.ViewportPadding),
		styles:       deps.styles,
	}
	s.log = logger.GetGlobalLogger().WithSession(s.id.String(), viewer.ID.String(), viewer.Role)

	s.poller = poller.New(ctx, sched, deps.vehicleGW, deps.cfg.Freshness, deps.nrApp, s.onFleetUpdate)
	s.renderer = render.NewRenderer(sched, backend, s.content, s.onMarkerClick, render.Options{
		Debounce:  deps.cfg.Map.Debounce,
		BatchSize: deps.cfg.Map.BatchSize,
	})
	s.dispatcher = dispatch.NewDispatcher(surfaceOpener{backend}, s.currentViewer, s.currentPin, s.refreshViewer)
	return s
}

// surfaceOpener hands resolved surfaces to the backend by name
type surfaceOpener struct {
	backend fleetmap.MapBackend
}

func (o surfaceOpener) OpenSurface(surface dispatch.Surface, vehicle models.VehicleRecord, onClose func()) {
	o.backend.OpenSurface(surface.String(), vehicle, onClose)
}

// ID identifies the session
func (s *Session) ID() uuid.UUID { return s.id }

// Start subscribes to the backend and begins polling
func (s *Session) Start() {
	if s.started || s.closed {
		return
	}
	s.started = true

	s.viewport = s.backend.Viewport()
	s.disposers = append(s.disposers, s.backend.OnViewportChange(s.onViewport))

	if s.viewer.Role == models.RoleMechanic {
		s.restorePin()
	}
	s.reschedule()
	s.log.Info("Map session started")
}

func (s *Session) restorePin() {
	s.sched.Go(func() {
		pin, err := s.trackingRepo.GetPin(s.ctx, s.viewer.ID)
		s.sched.Post(func() {
			if s.closed {
				return
			}
			if err != nil {
				if !errors.Is(err, fleetmap.ErrNoPin) {
					s.log.Warn("Failed to restore tracking pin", logger.Err(err))
				}
				return
			}
			if s.pin != 0 {
				return
			}
			s.pin = pin
			s.log.Debug("Tracking pin restored", logger.VehicleID(pin))
			s.reschedule()
			s.render()
		})
	})
}

func (s *Session) reschedule() {
	s.poller.Schedule(s.viewer.Role, s.viewer.HasActiveRental(), s.pin != 0)
}

func (s *Session) currentViewer() models.Viewer { return s.viewer }

func (s *Session) currentPin() int64 { return s.pin }

func (s *Session) focus() []int64 {
	var ids []int64
	if id, ok := s.viewer.RentedVehicleID(); ok {
		ids = append(ids, id)
	}
	if s.pin != 0 {
		ids = append(ids, s.pin)
	}
	return ids
}

func (s *Session) content(v models.VehicleRecord) models.MarkerContent {
	return s.styles.Content(s.viewport.Zoom, v, s.viewer.Role)
}

func (s *Session) render() {
	if s.closed {
		return
	}
	s.renderer.RenderPass(s.culler.Cull(s.fleet, s.viewport, s.focus()...))
}

func (s *Session) onFleetUpdate() {
	if s.closed {
		return
	}
	s.fleet = s.poller.Vehicles()
	s.render()
	s.dispatcher.ResolvePending(s.fleet)
}

func (s *Session) onViewport(vp models.Viewport) {
	if s.closed {
		return
	}
	s.viewport = vp
	s.render()
}

func (s *Session) onMarkerClick(vehicleID int64) {
	if s.closed {
		return
	}
	v, ok := models.FindVehicle(vehicleID, s.fleet)
	if !ok {
		return
	}
	surface := s.dispatcher.Activate(v)
	s.log.Debug("Marker activated",
		logger.VehicleID(vehicleID),
		logger.String("surface", surface.String()))
}

// DeepLink opens the interaction for vehicleID once it is loaded
func (s *Session) DeepLink(vehicleID int64) {
	if s.closed || vehicleID <= 0 {
		return
	}
	s.dispatcher.RequestDeepLink(vehicleID)
	s.dispatcher.ResolvePending(s.fleet)
}

// PinVehicle enters tracking mode on vehicleID. Mechanics only.
func (s *Session) PinVehicle(vehicleID int64) error {
	if s.viewer.Role != models.RoleMechanic {
		return fleetmap.ErrForbidden
	}
	if vehicleID <= 0 || s.closed || s.pin == vehicleID {
		return nil
	}
	s.pin = vehicleID
	s.persist(func(ctx context.Context) error { return s.trackingRepo.SetPin(ctx, s.viewer.ID, vehicleID) })
	s.reschedule()
	s.render()
	return nil
}

// ClearPin leaves tracking mode. Mechanics only.
func (s *Session) ClearPin() error {
	if s.viewer.Role != models.RoleMechanic {
		return fleetmap.ErrForbidden
	}
	if s.closed || s.pin == 0 {
		return nil
	}
	s.pin = 0
	s.persist(func(ctx context.Context) error { return s.trackingRepo.ClearPin(ctx, s.viewer.ID) })
	s.reschedule()
	s.render()
	return nil
}

func (s *Session) persist(write func(ctx context.Context) error) {
	s.sched.Go(func() {
		if err := write(s.ctx); err != nil {
			s.log.Warn("Failed to persist tracking pin", logger.Err(err))
		}
	})
}

// refreshViewer reloads the viewer session and calls done on the loop
func (s *Session) refreshViewer(done func()) {
	s.sched.Go(func() {
		v, err := s.viewerGW.CurrentViewer(s.ctx)
		s.sched.Post(func() {
			defer done()
			if s.closed {
				return
			}
			if err != nil {
				s.log.Warn("Viewer session refresh failed", logger.Err(err))
				return
			}
			s.applyViewer(*v)
		})
	})
}

func (s *Session) applyViewer(v models.Viewer) {
	hadRental := s.viewer.HasActiveRental()
	prevRented, _ := s.viewer.RentedVehicleID()

	s.viewer.Rental = v.Rental
	s.viewer.Assignment = v.Assignment

	if s.viewer.HasActiveRental() != hadRental {
		s.log.Info("Rental state changed", logger.Bool("active_rental", s.viewer.HasActiveRental()))
		s.reschedule()
	}
	if rented, _ := s.viewer.RentedVehicleID(); rented != prevRented {
		s.render()
	}
}

// OnFleetChanged polls early when the change touches the padded viewport
func (s *Session) OnFleetChanged(evt models.FleetChangedEvent) {
	if s.closed || !s.started {
		return
	}
	if !s.viewport.Bounds.IsZero() && !utils.AnyCellIntersects(evt.Cells, s.viewport.Bounds.Pad(s.padding)) {
		return
	}
	s.poller.Kick()
}

// Close tears the session down. Safe to call repeatedly.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for _, dispose := range s.disposers {
		dispose()
	}
	s.disposers = nil
	s.poller.Stop()
	s.renderer.Teardown()
	s.cancel()

	if s.onClose != nil {
		s.onClose()
	}
	s.log.Info("Map session closed")
}
