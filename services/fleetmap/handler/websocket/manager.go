package websocket

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetmap/internal/pkg/constants"
	httpclient "github.com/piresc/fleetmap/internal/pkg/http"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/loop"
	"github.com/piresc/fleetmap/internal/pkg/middleware"
	"github.com/piresc/fleetmap/internal/pkg/models"
	wspkg "github.com/piresc/fleetmap/internal/pkg/websocket"
	"github.com/piresc/fleetmap/services/fleetmap"
)

const closeTimeout = 5 * time.Second

// MapHandler serves live map sessions over WebSocket
type MapHandler struct {
	mapUC         fleetmap.MapUC
	ws            *wspkg.Manager
	frameInterval time.Duration
	validate      *validator.Validate
}

// NewMapHandler creates a new map WebSocket handler
func NewMapHandler(mapUC fleetmap.MapUC, jwtConfig models.JWTConfig, frameInterval time.Duration) *MapHandler {
	return &MapHandler{
		mapUC:         mapUC,
		ws:            wspkg.NewManager(jwtConfig),
		frameInterval: frameInterval,
		validate:      validator.New(),
	}
}

// Connections reports how many map sockets are open
func (h *MapHandler) Connections() int {
	return h.ws.Connections()
}

// HandleWebSocket handles new WebSocket connections
func (h *MapHandler) HandleWebSocket(c echo.Context) error {
	return h.ws.HandleConnection(c, func(client *wspkg.Client) error {
		middleware.SetViewer(c, client.ViewerID.String(), string(client.Role))
		return h.serveClient(client)
	})
}

// conn is one socket bound to its session loop
type conn struct {
	handler *MapHandler
	client  *wspkg.Client
	loop    *loop.Loop
	backend *backend
	session fleetmap.MapSession
}

func (h *MapHandler) serveClient(client *wspkg.Client) error {
	ctx, cancel := context.WithCancel(httpclient.WithBearerToken(context.Background(), client.Token))
	defer cancel()

	lp := loop.New("map-"+client.ViewerID.String(), h.frameInterval)
	go lp.Run(ctx)
	defer lp.Close()

	b := newBackend(client)
	session, err := h.mapUC.OpenSession(ctx, client.ViewerID, client.Role, b, lp)
	if err != nil {
		_ = client.SendError(constants.ErrorInternalError, "Failed to load viewer session")
		return nil
	}

	cn := &conn{handler: h, client: client, loop: lp, backend: b, session: session}
	lp.Post(session.Start)
	defer cn.close()

	return cn.readLoop()
}

func (cn *conn) readLoop() error {
	for {
		_, msg, err := cn.client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read failed",
					logger.ViewerID(cn.client.ViewerID),
					logger.Err(err))
			}
			return nil
		}

		if err := cn.handleMessage(msg); err != nil {
			logger.Warn("Error handling map message",
				logger.ViewerID(cn.client.ViewerID),
				logger.Err(err))
		}
	}
}

// close runs the session teardown on its loop and waits for it
func (cn *conn) close() {
	done := make(chan struct{})
	cn.loop.Post(func() {
		cn.session.Close()
		close(done)
	})

	select {
	case <-done:
	case <-cn.loop.Done():
	case <-time.After(closeTimeout):
		logger.Warn("Map session close timed out",
			logger.String("session_id", cn.session.ID().String()))
	}
}
