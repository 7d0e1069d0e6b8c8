package fleetmap

import (
	"context"

	"github.com/piresc/fleetmap/internal/pkg/models"
)

// VehicleGW is the fleet vehicle data source. The viewer's bearer token travels in ctx.
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/fleetmap/services/fleetmap VehicleGW,ViewerGW,FleetEventsGW
type VehicleGW interface {
	AllVehicles(ctx context.Context) ([]models.VehicleRecord, error)
	MechanicVehicles(ctx context.Context) ([]models.VehicleRecord, error)
	// CurrentDelivery returns ErrNoCurrentDelivery when the mechanic has no delivery
	CurrentDelivery(ctx context.Context) (*models.VehicleRecord, error)
}

// ViewerGW reads the viewer's session state (rental, assignment)
type ViewerGW interface {
	CurrentViewer(ctx context.Context) (*models.Viewer, error)
}

// FleetEventsGW carries fleet change notifications between instances
type FleetEventsGW interface {
	SubscribeFleetChanged(handler func(models.FleetChangedEvent)) (unsubscribe func(), err error)
	PublishFleetChanged(ctx context.Context, evt models.FleetChangedEvent) error
}
