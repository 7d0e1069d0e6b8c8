package http

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/middleware"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/internal/utils"
	"github.com/piresc/fleetmap/services/fleetmap"
)

// FleetHandler accepts fleet change notifications from upstream services
type FleetHandler struct {
	mapUC    fleetmap.MapUC
	events   fleetmap.FleetEventsGW
	validate *validator.Validate
}

// fleetChangeRequest lets callers announce raw positions instead of cells
type fleetChangeRequest struct {
	models.FleetChangedEvent
	Positions []models.LatLng `json:"positions,omitempty" validate:"dive"`
}

// NewFleetHandler creates a new fleet handler. With a nil events gateway
// changes are delivered to this instance only.
func NewFleetHandler(mapUC fleetmap.MapUC, events fleetmap.FleetEventsGW) *FleetHandler {
	return &FleetHandler{
		mapUC:    mapUC,
		events:   events,
		validate: validator.New(),
	}
}

// FleetChanged handles fleet change notifications
func (h *FleetHandler) FleetChanged(c echo.Context) error {
	var req fleetChangeRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.BadRequestResponse(c, "Position out of range")
	}
	for _, cell := range req.Cells {
		if cell == "" {
			return utils.BadRequestResponse(c, "Empty geohash cell")
		}
	}

	evt := req.FleetChangedEvent
	seen := make(map[string]bool, len(evt.Cells))
	for _, cell := range evt.Cells {
		seen[cell] = true
	}
	for _, p := range req.Positions {
		cell := utils.EncodeCell(p, utils.CellPrecision)
		if !seen[cell] {
			seen[cell] = true
			evt.Cells = append(evt.Cells, cell)
		}
	}
	if evt.ChangedAt.IsZero() {
		evt.ChangedAt = time.Now().UTC()
	}

	if h.events == nil {
		h.mapUC.FleetChanged(evt)
		return utils.SuccessResponse(c, http.StatusAccepted, "Fleet change delivered", nil)
	}

	if err := h.events.PublishFleetChanged(c.Request().Context(), evt); err != nil {
		middleware.NoticeError(c, err)
		logger.Warn("Publishing fleet change failed, delivering locally", logger.Err(err))
		h.mapUC.FleetChanged(evt)
		return utils.SuccessResponse(c, http.StatusAccepted, "Fleet change delivered locally", nil)
	}
	return utils.SuccessResponse(c, http.StatusAccepted, "Fleet change published", nil)
}

// Sessions reports how many map sessions this instance serves
func (h *FleetHandler) Sessions(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "Active map sessions", map[string]int{
		"active_sessions": h.mapUC.ActiveSessions(),
	})
}
