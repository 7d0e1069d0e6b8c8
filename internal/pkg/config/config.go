package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/piresc/fleetmap/internal/pkg/models"
)

// InitConfig loads configuration from the environment. In the local
// environment the file at configPath is loaded into the environment first.
func InitConfig(configPath string) (*models.Config, error) {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	configs := loadConfigFromEnv()
	if err := Validate(configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// Validate checks struct constraints, including the freshness TTL ladder
func Validate(configs *models.Config) error {
	v := validator.New()
	sections := []interface{}{configs.App, configs.Server, configs.FleetAPI, configs.Map, configs.Freshness}
	for _, section := range sections {
		if err := v.Struct(section); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "fleetmap")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9995)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 10)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 10)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 10)
	configs.Server.InternalAPIKey = GetEnv("INTERNAL_API_KEY", "")
	configs.Server.ConnectRateLimit = GetEnvAsInt("CONNECT_RATE_LIMIT", 30)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "localhost")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 60)

	// Fleet API config
	configs.FleetAPI.BaseURL = GetEnv("FLEET_API_URL", "http://localhost:9990")
	configs.FleetAPI.APIKey = GetEnv("FLEET_API_KEY", "")
	configs.FleetAPI.Timeout = GetEnvAsDuration("FLEET_API_TIMEOUT", 10*time.Second)

	// Map engine config
	configs.Map.RenderCap = GetEnvAsInt("MAP_RENDER_CAP", 150)
	configs.Map.BatchSize = GetEnvAsInt("MAP_BATCH_SIZE", 20)
	configs.Map.ViewportPadding = GetEnvAsFloat("MAP_VIEWPORT_PADDING", 0.2)
	configs.Map.Debounce = GetEnvAsDuration("MAP_RENDER_DEBOUNCE", 100*time.Millisecond)
	configs.Map.FrameInterval = GetEnvAsDuration("MAP_FRAME_INTERVAL", 16*time.Millisecond)
	configs.Map.StyleTablePath = GetEnv("MAP_STYLE_TABLE", "")

	// Freshness config
	configs.Freshness.RentalTTL = GetEnvAsDuration("FRESHNESS_RENTAL_TTL", 2*time.Second)
	configs.Freshness.TrackingTTL = GetEnvAsDuration("FRESHNESS_TRACKING_TTL", 5*time.Second)
	configs.Freshness.DefaultTTL = GetEnvAsDuration("FRESHNESS_DEFAULT_TTL", 30*time.Second)

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDuration parses Go duration strings such as "250ms" or "5s"
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
