package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetmap/internal/pkg/constants"
	jwtpkg "github.com/piresc/fleetmap/internal/pkg/jwt"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/models"
)

const writeWait = 10 * time.Second

// Client is one authenticated map connection. Writes are serialised so the
// session loop and the read loop can both send.
type Client struct {
	ViewerID uuid.UUID
	Role     models.Role
	Token    string
	Conn     *websocket.Conn

	writeMu sync.Mutex
}

// Send writes one event to the client
func (c *Client) Send(event string, data interface{}) error {
	if c == nil || c.Conn == nil {
		return nil
	}

	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteJSON(models.WSMessage{Event: event, Data: rawData})
}

// SendError writes an error event to the client
func (c *Client) SendError(code, message string) error {
	return c.Send(constants.EventError, models.WSErrorMessage{Code: code, Message: message})
}

// Manager authenticates and upgrades map connections
type Manager struct {
	cfg         models.JWTConfig
	upgrader    websocket.Upgrader
	connections atomic.Int64
}

// NewManager creates a new WebSocket manager
func NewManager(jwtConfig models.JWTConfig) *Manager {
	return &Manager{
		cfg: jwtConfig,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection authenticates, upgrades and hands the connection to
// handleClient. The connection is closed when handleClient returns.
func (m *Manager) HandleConnection(c echo.Context, handleClient func(*Client) error) error {
	client, err := m.authenticateClient(c)
	if err != nil {
		return err
	}

	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	client.Conn = ws
	m.connections.Add(1)
	defer m.connections.Add(-1)

	return handleClient(client)
}

// Connections reports how many connections are open
func (m *Manager) Connections() int {
	return int(m.connections.Load())
}

// authenticateClient reads the bearer token from the Authorization header,
// or from the token query parameter for browsers that cannot set headers
func (m *Manager) authenticateClient(c echo.Context) (*Client, error) {
	token, err := bearerToken(c)
	if err != nil {
		return nil, err
	}

	claims, err := jwtpkg.ValidateToken(token, m.cfg)
	if err != nil {
		logger.Warn("Token validation failed",
			logger.String("remote_ip", c.RealIP()),
			logger.Err(err))
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return &Client{
		ViewerID: claims.ViewerID,
		Role:     claims.Role,
		Token:    token,
	}, nil
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if token := c.QueryParam("token"); token != "" {
			return token, nil
		}
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
	}
	return parts[1], nil
}
