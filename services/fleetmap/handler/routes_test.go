package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetmap/internal/pkg/database"
	"github.com/piresc/fleetmap/internal/pkg/middleware"
	"github.com/piresc/fleetmap/internal/pkg/models"
	httphandler "github.com/piresc/fleetmap/services/fleetmap/handler/http"
	"github.com/piresc/fleetmap/services/fleetmap/handler/websocket"
	"github.com/piresc/fleetmap/services/fleetmap/mocks"
	"github.com/stretchr/testify/assert"
)

func newEcho(t *testing.T, uc *mocks.MockMapUC, cfg models.ServerConfig, rdb *database.RedisClient) *echo.Echo {
	e := echo.New()
	h := NewHandler(
		websocket.NewMapHandler(uc, models.JWTConfig{Secret: "s"}, 0),
		httphandler.NewFleetHandler(uc, nil),
		cfg,
		rdb,
	)
	h.RegisterRoutes(e)
	return e
}

func TestRegisterRoutes_InternalRequiresAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockMapUC(ctrl)
	e := newEcho(t, uc, models.ServerConfig{InternalAPIKey: "internal-key"}, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/sessions", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	uc.EXPECT().FleetChanged(gomock.Any()).Times(1)
	req := httptest.NewRequest(http.MethodPost, "/internal/fleet/changed", strings.NewReader(`{"cells":["u33db2"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.APIKeyHeader, "internal-key")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestRegisterRoutes_MapSocketNeedsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	e := newEcho(t, mocks.NewMockMapUC(ctrl), models.ServerConfig{}, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/map", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterRoutes_MapSocketRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := database.WrapRedisClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctrl := gomock.NewController(t)
	e := newEcho(t, mocks.NewMockMapUC(ctrl), models.ServerConfig{ConnectRateLimit: 1}, rdb)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/map", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/map", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
