package fleetmap

import (
	"context"

	"github.com/google/uuid"
)

// TrackingRepo persists a mechanic's tracking pin across reconnects
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/fleetmap/services/fleetmap TrackingRepo
type TrackingRepo interface {
	SetPin(ctx context.Context, viewerID uuid.UUID, vehicleID int64) error
	ClearPin(ctx context.Context, viewerID uuid.UUID) error
	// GetPin returns ErrNoPin when nothing is pinned
	GetPin(ctx context.Context, viewerID uuid.UUID) (int64, error)
}
