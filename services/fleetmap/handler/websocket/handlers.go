package websocket

import (
	"encoding/json"
	"errors"

	"github.com/piresc/fleetmap/internal/pkg/constants"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/services/fleetmap"
)

// handleMessage decodes one client message on the read goroutine and posts
// the resulting work onto the session loop
func (cn *conn) handleMessage(msg []byte) error {
	var wsMsg models.WSMessage
	if err := json.Unmarshal(msg, &wsMsg); err != nil {
		return cn.client.SendError(constants.ErrorInvalidFormat, "Invalid message format")
	}

	switch wsMsg.Event {
	case constants.EventPing:
		return cn.client.Send(constants.EventPong, struct{}{})
	case constants.EventViewport:
		return cn.handleViewport(wsMsg.Data)
	case constants.EventMarkerClick:
		return cn.handleMarkerClick(wsMsg.Data)
	case constants.EventLibraryLoaded:
		cn.loop.Post(cn.backend.libraryLoaded)
		return nil
	case constants.EventSurfaceClosed:
		cn.loop.Post(cn.backend.surfaceClosed)
		return nil
	case constants.EventDeepLink:
		return cn.handleDeepLink(wsMsg.Data)
	case constants.EventTrackingPin:
		return cn.handleTrackingPin(wsMsg.Data)
	case constants.EventTrackingClear:
		cn.loop.Post(func() { cn.replyPinResult(cn.session.ClearPin()) })
		return nil
	default:
		return cn.client.SendError(constants.ErrorInvalidFormat, "Unknown event type")
	}
}

func (cn *conn) handleViewport(data json.RawMessage) error {
	var evt models.ViewportEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return cn.client.SendError(constants.ErrorInvalidFormat, "Invalid viewport format")
	}
	if err := cn.handler.validate.Struct(evt); err != nil ||
		evt.Bounds.NorthEast.Lat < evt.Bounds.SouthWest.Lat {
		return cn.client.SendError(constants.ErrorInvalidFormat, "Invalid viewport")
	}

	vp := models.Viewport{Bounds: evt.Bounds, Zoom: evt.Zoom}
	cn.loop.Post(func() { cn.backend.setViewport(vp) })
	return nil
}

func (cn *conn) handleMarkerClick(data json.RawMessage) error {
	var evt models.MarkerClickEvent
	if err := json.Unmarshal(data, &evt); err != nil || evt.MarkerID == "" {
		return cn.client.SendError(constants.ErrorInvalidFormat, "Invalid marker click format")
	}

	cn.loop.Post(func() {
		if !cn.backend.click(evt.MarkerID) {
			logger.Debug("Click on unknown or detached marker", logger.String("marker_id", evt.MarkerID))
		}
	})
	return nil
}

func (cn *conn) handleDeepLink(data json.RawMessage) error {
	var evt models.DeepLinkEvent
	if err := json.Unmarshal(data, &evt); err != nil || evt.VehicleID <= 0 {
		return cn.client.SendError(constants.ErrorInvalidFormat, "Invalid deep link format")
	}

	cn.loop.Post(func() { cn.session.DeepLink(evt.VehicleID) })
	return nil
}

func (cn *conn) handleTrackingPin(data json.RawMessage) error {
	var evt models.TrackingPinEvent
	if err := json.Unmarshal(data, &evt); err != nil || evt.VehicleID <= 0 {
		return cn.client.SendError(constants.ErrorInvalidFormat, "Invalid tracking pin format")
	}

	cn.loop.Post(func() { cn.replyPinResult(cn.session.PinVehicle(evt.VehicleID)) })
	return nil
}

func (cn *conn) replyPinResult(err error) {
	switch {
	case err == nil:
	case errors.Is(err, fleetmap.ErrForbidden):
		_ = cn.client.SendError(constants.ErrorForbidden, "Tracking is only available to mechanics")
	default:
		logger.Warn("Tracking pin update failed", logger.Err(err))
		_ = cn.client.SendError(constants.ErrorInternalError, "Tracking update failed")
	}
}
