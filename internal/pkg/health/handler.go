package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetmap/internal/pkg/database"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/nats"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Checker verifies one dependency
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a plain function to Checker
type CheckerFunc func(ctx context.Context) error

// CheckHealth calls f
func (f CheckerFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// NewRedisChecker pings Redis
func NewRedisChecker(client *database.RedisClient) Checker {
	return CheckerFunc(func(ctx context.Context) error {
		return client.GetClient().Ping(ctx).Err()
	})
}

// NewNATSChecker reports whether the NATS connection is up
func NewNATSChecker(client *nats.Client) Checker {
	return CheckerFunc(func(ctx context.Context) error {
		if conn := client.GetConn(); conn == nil || !conn.IsConnected() {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "NATS not connected")
		}
		return nil
	})
}

// BuildInfo describes the running binary
type BuildInfo struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// DependencyInfo is the outcome of one check
type DependencyInfo struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Response is the detailed health payload
type Response struct {
	Status         string                    `json:"status"`
	Service        string                    `json:"service"`
	Timestamp      time.Time                 `json:"timestamp"`
	ActiveSessions int                       `json:"active_sessions"`
	Dependencies   map[string]DependencyInfo `json:"dependencies"`
}

// Service runs the registered checks
type Service struct {
	serviceName string
	checkers    map[string]Checker
	sessions    func() int
}

// NewService creates a health service. sessions may be nil.
func NewService(serviceName string, sessions func() int) *Service {
	return &Service{
		serviceName: serviceName,
		checkers:    make(map[string]Checker),
		sessions:    sessions,
	}
}

// AddChecker registers a dependency check under name
func (s *Service) AddChecker(name string, checker Checker) {
	s.checkers[name] = checker
}

// Check runs every checker in name order
func (s *Service) Check(ctx context.Context) Response {
	resp := Response{
		Status:       StatusHealthy,
		Service:      s.serviceName,
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyInfo, len(s.checkers)),
	}
	if s.sessions != nil {
		resp.ActiveSessions = s.sessions()
	}

	names := make([]string, 0, len(s.checkers))
	for name := range s.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.checkers[name].CheckHealth(ctx); err != nil {
			logger.Error("Health check failed",
				logger.String("dependency", name),
				logger.Err(err))
			resp.Dependencies[name] = DependencyInfo{Status: StatusUnhealthy, Error: err.Error()}
			resp.Status = StatusUnhealthy
			continue
		}
		resp.Dependencies[name] = DependencyInfo{Status: StatusHealthy}
	}

	return resp
}

func buildInfo(serviceName string) BuildInfo {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	info := BuildInfo{
		Version:     "development",
		GitCommit:   "unknown",
		ServiceName: serviceName,
		GoVersion:   runtime.Version(),
		Hostname:    hostname,
	}
	if v := os.Getenv("VERSION"); v != "" {
		info.Version = v
	}
	if c := os.Getenv("GIT_COMMIT"); c != "" {
		info.GitCommit = c
	}
	return info
}

// RegisterHealthEndpoints mounts /ping and the /health group
func RegisterHealthEndpoints(e *echo.Echo, svc *Service) {
	info := buildInfo(svc.serviceName)

	e.GET("/ping", func(c echo.Context) error {
		out := info
		out.ServerTime = time.Now()
		return c.JSON(http.StatusOK, out)
	})

	g := e.Group("/health")

	g.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": svc.serviceName,
		})
	})

	g.GET("/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "alive",
			"service": svc.serviceName,
		})
	})

	g.GET("/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		resp := svc.Check(ctx)
		if resp.Status == StatusUnhealthy {
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ready",
			"service": svc.serviceName,
		})
	})

	g.GET("/detailed", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		resp := svc.Check(ctx)
		code := http.StatusOK
		if resp.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, resp)
	})
}
