package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/fleetmap/internal/pkg/constants"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/models"
	natspkg "github.com/piresc/fleetmap/internal/pkg/nats"
	"github.com/piresc/fleetmap/services/fleetmap"
)

// fleetEventsGW receives fleet change notifications over NATS
type fleetEventsGW struct {
	natsClient *natspkg.Client
}

// NewFleetEventsGW creates a NATS backed FleetEventsGW
func NewFleetEventsGW(client *natspkg.Client) fleetmap.FleetEventsGW {
	return &fleetEventsGW{natsClient: client}
}

// SubscribeFleetChanged delivers every decodable fleet change event to handler
func (g *fleetEventsGW) SubscribeFleetChanged(handler func(models.FleetChangedEvent)) (func(), error) {
	sub, err := g.natsClient.Subscribe(constants.SubjectFleetChanged, DecodeFleetChanged(handler))
	if err != nil {
		return nil, err
	}
	return func() {
		if err := sub.Unsubscribe(); err != nil {
			logger.Debug("Fleet change unsubscribe failed", logger.Err(err))
		}
	}, nil
}

// PublishFleetChanged announces a fleet change to every map instance
func (g *fleetEventsGW) PublishFleetChanged(ctx context.Context, evt models.FleetChangedEvent) error {
	if err := g.natsClient.PublishJSON(constants.SubjectFleetChanged, evt); err != nil {
		logger.Error("Failed to publish fleet change",
			logger.Int("cells", len(evt.Cells)),
			logger.Err(err))
		return fmt.Errorf("failed to publish fleet change: %w", err)
	}
	return nil
}

// DecodeFleetChanged adapts handler to raw message payloads
func DecodeFleetChanged(handler func(models.FleetChangedEvent)) natspkg.MessageHandler {
	return func(data []byte) error {
		var evt models.FleetChangedEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			return fmt.Errorf("failed to decode fleet change event: %w", err)
		}
		handler(evt)
		return nil
	}
}
