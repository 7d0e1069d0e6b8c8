package fleetmap

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/fleetmap/internal/pkg/loop"
	"github.com/piresc/fleetmap/internal/pkg/models"
)

// MapUC opens and tracks live map sessions
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/fleetmap/services/fleetmap MapUC,MapSession
type MapUC interface {
	// OpenSession loads the viewer's session state and builds a map session
	// bound to backend and sched. ctx carries the viewer's bearer token.
	OpenSession(ctx context.Context, viewerID uuid.UUID, role models.Role, backend MapBackend, sched loop.Scheduler) (MapSession, error)
	// FleetChanged fans a fleet change notification out to every open session
	FleetChanged(evt models.FleetChangedEvent)
	ActiveSessions() int
}

// MapSession is one viewer's live map. Every method must run on the session loop.
type MapSession interface {
	ID() uuid.UUID
	Start()
	DeepLink(vehicleID int64)
	PinVehicle(vehicleID int64) error
	ClearPin() error
	Close()
}
