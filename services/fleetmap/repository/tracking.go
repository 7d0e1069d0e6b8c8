package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/piresc/fleetmap/internal/pkg/constants"
	"github.com/piresc/fleetmap/internal/pkg/database"
	"github.com/piresc/fleetmap/services/fleetmap"
)

// TrackingRepo stores tracking pins in Redis
type TrackingRepo struct {
	redisClient *database.RedisClient
}

// NewTrackingRepo creates a Redis backed TrackingRepo
func NewTrackingRepo(redisClient *database.RedisClient) fleetmap.TrackingRepo {
	return &TrackingRepo{redisClient: redisClient}
}

func pinKey(viewerID uuid.UUID) string {
	return fmt.Sprintf(constants.KeyTrackingPin, viewerID.String())
}

// SetPin pins vehicleID for viewerID
func (r *TrackingRepo) SetPin(ctx context.Context, viewerID uuid.UUID, vehicleID int64) error {
	if vehicleID <= 0 {
		return fmt.Errorf("invalid vehicle id %d", vehicleID)
	}
	if err := r.redisClient.Set(ctx, pinKey(viewerID), vehicleID, constants.TrackingPinTTL); err != nil {
		return fmt.Errorf("failed to store tracking pin: %w", err)
	}
	return nil
}

// ClearPin removes the viewer's pin. Clearing a missing pin is not an error.
func (r *TrackingRepo) ClearPin(ctx context.Context, viewerID uuid.UUID) error {
	if err := r.redisClient.Delete(ctx, pinKey(viewerID)); err != nil {
		return fmt.Errorf("failed to clear tracking pin: %w", err)
	}
	return nil
}

// GetPin returns the pinned vehicle id or fleetmap.ErrNoPin
func (r *TrackingRepo) GetPin(ctx context.Context, viewerID uuid.UUID) (int64, error) {
	val, err := r.redisClient.Get(ctx, pinKey(viewerID))
	if errors.Is(err, redis.Nil) {
		return 0, fleetmap.ErrNoPin
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read tracking pin: %w", err)
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt tracking pin %q: %w", val, err)
	}
	return id, nil
}
