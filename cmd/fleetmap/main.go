package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/fleetmap/internal/pkg/config"
	"github.com/piresc/fleetmap/internal/pkg/database"
	"github.com/piresc/fleetmap/internal/pkg/health"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/middleware"
	natspkg "github.com/piresc/fleetmap/internal/pkg/nats"
	nrpkg "github.com/piresc/fleetmap/internal/pkg/newrelic"
	"github.com/piresc/fleetmap/internal/pkg/server"
	"github.com/piresc/fleetmap/services/fleetmap"
	"github.com/piresc/fleetmap/services/fleetmap/gateway"
	"github.com/piresc/fleetmap/services/fleetmap/handler"
	httpHandler "github.com/piresc/fleetmap/services/fleetmap/handler/http"
	natsHandler "github.com/piresc/fleetmap/services/fleetmap/handler/nats"
	wsHandler "github.com/piresc/fleetmap/services/fleetmap/handler/websocket"
	"github.com/piresc/fleetmap/services/fleetmap/repository"
	"github.com/piresc/fleetmap/services/fleetmap/style"
	"github.com/piresc/fleetmap/services/fleetmap/usecase"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/fleetmap.env", "path to the env file loaded in the local environment")
	flag.Parse()

	configs, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appName := configs.App.Name

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.NewZapLogger(configs.Logger, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Style table
	table, err := style.LoadTable(configs.Map.StyleTablePath)
	if err != nil {
		zapLogger.Fatal("Failed to load marker style table", zap.Error(err))
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize NATS, optional for single instance deployments
	var natsClient *natspkg.Client
	var fleetEvents fleetmap.FleetEventsGW
	if configs.NATS.URL != "" {
		natsClient, err = natspkg.NewClient(configs.NATS.URL, appName)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		fleetEvents = gateway.NewFleetEventsGW(natsClient)
	} else {
		zapLogger.Warn("NATS_URL not set, fleet changes are delivered to this instance only")
	}

	// Initialize repository and gateways
	trackingRepo := repository.NewTrackingRepo(redisClient)
	fleetGW := gateway.NewHTTPGateway(configs.FleetAPI)

	// Initialize usecase
	mapUC := usecase.NewMapUC(configs, fleetGW, fleetGW, trackingRepo, style.NewResolver(table), nrApp)

	// Handlers
	mapHandler := wsHandler.NewMapHandler(mapUC, configs.JWT, configs.Map.FrameInterval)
	fleetHandler := httpHandler.NewFleetHandler(mapUC, fleetEvents)
	routes := handler.NewHandler(mapHandler, fleetHandler, configs.Server, redisClient)

	var natsConsumers *natsHandler.Handler
	if fleetEvents != nil {
		natsConsumers, err = natsHandler.NewHandler(mapUC, fleetEvents)
		if err != nil {
			zapLogger.Fatal("Failed to initialize NATS consumers", zap.Error(err))
		}
	}

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Register health endpoints
	healthSvc := health.NewService(appName, mapUC.ActiveSessions)
	healthSvc.AddChecker("redis", health.NewRedisChecker(redisClient))
	if natsClient != nil {
		healthSvc.AddChecker("nats", health.NewNATSChecker(natsClient))
	}
	health.RegisterHealthEndpoints(e, healthSvc)

	// Register service routes
	routes.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server)
	srv.Components().Register("redis", func(context.Context) error {
		return redisClient.Close()
	})
	if natsClient != nil {
		srv.Components().Register("nats", func(context.Context) error {
			natsClient.Close()
			return nil
		})
	}
	if natsConsumers != nil {
		srv.Components().Register("nats-consumers", func(context.Context) error {
			natsConsumers.Close()
			return nil
		})
	}
	if nrApp != nil {
		srv.Components().Register("newrelic", func(context.Context) error {
			nrApp.Shutdown(5 * time.Second)
			return nil
		})
	}

	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with errors",
			zap.String("app", appName),
			zap.Error(err),
		)
	}
}
