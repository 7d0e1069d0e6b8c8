package nats

import (
	"fmt"

	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/services/fleetmap"
)

// Handler feeds fleet change events from NATS into the map sessions
type Handler struct {
	mapUC       fleetmap.MapUC
	events      fleetmap.FleetEventsGW
	unsubscribe []func()
}

// NewHandler creates a new NATS handler and subscribes its consumers
func NewHandler(mapUC fleetmap.MapUC, events fleetmap.FleetEventsGW) (*Handler, error) {
	h := &Handler{
		mapUC:  mapUC,
		events: events,
	}

	if err := h.initConsumers(); err != nil {
		return nil, fmt.Errorf("failed to initialize NATS consumers: %w", err)
	}
	return h, nil
}

func (h *Handler) initConsumers() error {
	unsubscribe, err := h.events.SubscribeFleetChanged(h.mapUC.FleetChanged)
	if err != nil {
		return fmt.Errorf("failed to subscribe to fleet changes: %w", err)
	}
	h.unsubscribe = append(h.unsubscribe, unsubscribe)
	logger.Info("Subscribed to fleet change events")
	return nil
}

// Close unsubscribes from all NATS subscriptions
func (h *Handler) Close() {
	for _, unsubscribe := range h.unsubscribe {
		unsubscribe()
	}
	h.unsubscribe = nil
}
