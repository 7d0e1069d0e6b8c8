package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetmap/internal/pkg/database"
	"github.com/piresc/fleetmap/internal/pkg/middleware"
	"github.com/piresc/fleetmap/internal/pkg/models"
	httphandler "github.com/piresc/fleetmap/services/fleetmap/handler/http"
	"github.com/piresc/fleetmap/services/fleetmap/handler/websocket"
)

// Handler wires the map service's HTTP and WebSocket endpoints
type Handler struct {
	mapHandler   *websocket.MapHandler
	fleetHandler *httphandler.FleetHandler
	cfg          models.ServerConfig
	redis        *database.RedisClient
}

// NewHandler creates the map service handler. redis may be nil, which
// disables connection rate limiting.
func NewHandler(mapHandler *websocket.MapHandler, fleetHandler *httphandler.FleetHandler, cfg models.ServerConfig, redis *database.RedisClient) *Handler {
	return &Handler{
		mapHandler:   mapHandler,
		fleetHandler: fleetHandler,
		cfg:          cfg,
		redis:        redis,
	}
}

// RegisterRoutes registers the map service routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Map sessions (JWT authentication)
	var wsMiddleware []echo.MiddlewareFunc
	if h.redis != nil && h.cfg.ConnectRateLimit > 0 {
		wsMiddleware = append(wsMiddleware, middleware.IPRateLimiter(h.cfg.ConnectRateLimit, time.Minute, h.redis))
	}
	e.GET("/ws/map", h.mapHandler.HandleWebSocket, wsMiddleware...)

	// Service-to-service routes (API key authentication)
	internal := e.Group("/internal")
	internal.Use(middleware.ValidateAPIKey(h.cfg.InternalAPIKey))
	internal.POST("/fleet/changed", h.fleetHandler.FleetChanged)
	internal.GET("/sessions", h.fleetHandler.Sessions)
}
