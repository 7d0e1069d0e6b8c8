package models

import "time"

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Redis     RedisConfig
	NATS      NATSConfig
	JWT       JWTConfig
	FleetAPI  FleetAPIConfig
	Map       MapConfig
	Freshness FreshnessConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string `validate:"required"`
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int `validate:"gt=0,lte=65535"`
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int

	InternalAPIKey   string // guards the service-to-service routes
	ConnectRateLimit int    // map socket upgrades per client IP per minute
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration int // minutes
}

// FleetAPIConfig points at the carsharing REST API that serves vehicles and sessions
type FleetAPIConfig struct {
	BaseURL string        `validate:"required,url"`
	APIKey  string
	Timeout time.Duration `validate:"gt=0"`
}

// MapConfig tunes the marker rendering engine
type MapConfig struct {
	RenderCap       int           `validate:"gt=0"`
	BatchSize       int           `validate:"gt=0"`
	ViewportPadding float64       `validate:"gte=0,lte=1"`
	Debounce        time.Duration `validate:"gt=0"`
	FrameInterval   time.Duration `validate:"gt=0"`
	StyleTablePath  string
}

// FreshnessConfig holds the state dependent cache TTLs, which double as poll intervals.
// The ladder must satisfy RentalTTL < TrackingTTL < DefaultTTL.
type FreshnessConfig struct {
	RentalTTL   time.Duration `validate:"gt=0"`
	TrackingTTL time.Duration `validate:"gtfield=RentalTTL"`
	DefaultTTL  time.Duration `validate:"gtfield=TrackingTTL"`
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
