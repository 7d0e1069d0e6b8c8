package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/loop"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/services/fleetmap"
	"github.com/piresc/fleetmap/services/fleetmap/style"
)

// MapUC implements the map use case interface
type MapUC struct {
	deps sessionDeps

	mu       sync.RWMutex
	sessions map[uuid.UUID]sessionRef
}

type sessionRef struct {
	session *Session
	sched   loop.Scheduler
}

// NewMapUC creates a new map use case
func NewMapUC(
	cfg *models.Config,
	vehicleGW fleetmap.VehicleGW,
	viewerGW fleetmap.ViewerGW,
	trackingRepo fleetmap.TrackingRepo,
	styles *style.Resolver,
	nrApp *newrelic.Application,
) *MapUC {
	return &MapUC{
		deps: sessionDeps{
			cfg:          cfg,
			vehicleGW:    vehicleGW,
			viewerGW:     viewerGW,
			trackingRepo: trackingRepo,
			styles:       styles,
			nrApp:        nrApp,
		},
		sessions: make(map[uuid.UUID]sessionRef),
	}
}

// OpenSession loads the viewer's session state and registers a new map session.
// The session is not started; call Start on its loop.
func (uc *MapUC) OpenSession(ctx context.Context, viewerID uuid.UUID, role models.Role, backend fleetmap.MapBackend, sched loop.Scheduler) (fleetmap.MapSession, error) {
	viewer, err := uc.deps.viewerGW.CurrentViewer(ctx)
	if err != nil {
		logger.Error("Failed to load viewer session",
			logger.ViewerID(viewerID),
			logger.Err(err))
		return nil, fmt.Errorf("failed to load viewer session: %w", err)
	}

	// identity comes from the verified token, not the upstream payload
	v := *viewer
	v.ID = viewerID
	v.Role = role

	s := newSession(ctx, v, backend, sched, uc.deps)
	s.onClose = func() { uc.unregister(s.id) }

	uc.mu.Lock()
	uc.sessions[s.id] = sessionRef{session: s, sched: sched}
	total := len(uc.sessions)
	uc.mu.Unlock()

	logger.Info("Map session opened",
		logger.String("session_id", s.id.String()),
		logger.ViewerID(viewerID),
		logger.String("role", string(role)),
		logger.Int("active_sessions", total))
	return s, nil
}

// FleetChanged posts the event to every session's loop
func (uc *MapUC) FleetChanged(evt models.FleetChangedEvent) {
	uc.mu.RLock()
	refs := make([]sessionRef, 0, len(uc.sessions))
	for _, ref := range uc.sessions {
		refs = append(refs, ref)
	}
	uc.mu.RUnlock()

	for _, ref := range refs {
		s := ref.session
		ref.sched.Post(func() { s.OnFleetChanged(evt) })
	}
	logger.Debug("Fleet change fanned out",
		logger.Int("sessions", len(refs)),
		logger.Int("cells", len(evt.Cells)))
}

// ActiveSessions returns the number of open sessions
func (uc *MapUC) ActiveSessions() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.sessions)
}

func (uc *MapUC) unregister(id uuid.UUID) {
	uc.mu.Lock()
	delete(uc.sessions, id)
	uc.mu.Unlock()
}
