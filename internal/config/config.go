package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config captures runtime configuration for the API service.
type Config struct {
	HTTP      HTTPConfig
	Mongo     MongoConfig
	JWT       JWTConfig
	Telemetry TelemetryConfig
	Service   ServiceConfig
}

type HTTPConfig struct {
	Port          int
	ShutdownGrace int
}

type MongoConfig struct {
	URI           string
	Database      string
	Collection    string
	EnsureIndexes bool
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type TelemetryConfig struct {
	LogLevel      string
	OTelEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

const (
	defaultHTTPPort       = 8080
	defaultShutdownGrace  = 15
	defaultDatabase       = "orders_db"
	defaultCollection     = "orders"
	defaultEnsureIndexes  = true
	defaultJWTSecret      = "dev-secret-change-me"
	defaultTokenTTL       = 30 * time.Minute
	defaultServiceName    = "orders-api"
	defaultServiceVersion = "0.1.0"
	defaultEnvironment    = "development"
	defaultLogLevel       = "info"
	defaultOTelSampleRate = 1.0
)

// Load reads configuration from environment variables, applying defaults
// when needed.
func Load() (*Config, error) {
	httpCfg, err := loadHTTPConfig()
	if err != nil {
		return nil, fmt.Errorf("loading HTTP config: %w", err)
	}

	mongoCfg := loadMongoConfig()

	jwtCfg, err := loadJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("loading JWT config: %w", err)
	}

	telCfg, err := loadTelemetryConfig()
	if err != nil {
		return nil, fmt.Errorf("loading telemetry config: %w", err)
	}

	return &Config{
		HTTP:      httpCfg,
		Mongo:     mongoCfg,
		JWT:       jwtCfg,
		Telemetry: telCfg,
		Service:   loadServiceConfig(),
	}, nil
}

func loadHTTPConfig() (HTTPConfig, error) {
	port := defaultHTTPPort
	if value, ok := os.LookupEnv("API_HTTP_PORT"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid API_HTTP_PORT: %w", err)
		}
		port = parsed
	}

	shutdownGrace := defaultShutdownGrace
	if value, ok := os.LookupEnv("API_SHUTDOWN_GRACE_SECONDS"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid API_SHUTDOWN_GRACE_SECONDS: %w", err)
		}
		shutdownGrace = parsed
	}

	return HTTPConfig{
		Port:          port,
		ShutdownGrace: shutdownGrace,
	}, nil
}

func loadMongoConfig() MongoConfig {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = buildMongoURI()
	}

	ensureIndexes := defaultEnsureIndexes
	if value, ok := os.LookupEnv("MONGO_ENSURE_INDEXES"); ok {
		ensureIndexes = value == "true"
	}

	return MongoConfig{
		URI:           uri,
		Database:      getEnvOrDefault("MONGO_DATABASE", defaultDatabase),
		Collection:    getEnvOrDefault("MONGO_COLLECTION", defaultCollection),
		EnsureIndexes: ensureIndexes,
	}
}

func loadJWTConfig() (JWTConfig, error) {
	ttl := defaultTokenTTL
	if value, ok := os.LookupEnv("JWT_TOKEN_TTL_MINUTES"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return JWTConfig{}, fmt.Errorf("invalid JWT_TOKEN_TTL_MINUTES: %w", err)
		}
		ttl = time.Duration(parsed) * time.Minute
	}

	return JWTConfig{
		Secret:   getEnvOrDefault("JWT_SECRET", defaultJWTSecret),
		TokenTTL: ttl,
	}, nil
}

func loadTelemetryConfig() (TelemetryConfig, error) {
	sampleRate := defaultOTelSampleRate
	if value, ok := os.LookupEnv("OTEL_SAMPLE_RATE"); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE: %w", err)
		}
		sampleRate = parsed
	}

	return TelemetryConfig{
		LogLevel:      getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
		OTelEndpoint:  getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		EnableTracing: getBoolEnv("OTEL_ENABLE_TRACING", true),
		EnableMetrics: getBoolEnv("OTEL_ENABLE_METRICS", true),
		SampleRate:    sampleRate,
	}, nil
}

func loadServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:        getEnvOrDefault("API_SERVICE_NAME", defaultServiceName),
		Version:     getEnvOrDefault("SERVICE_VERSION", defaultServiceVersion),
		Environment: getEnvOrDefault("ENVIRONMENT", defaultEnvironment),
	}
}

func buildMongoURI() string {
	host := getEnvOrDefault("MONGO_HOST", "localhost")
	port := getEnvOrDefault("MONGO_PORT", "27017")
	user := os.Getenv("MONGO_USER")
	password := os.Getenv("MONGO_PASSWORD")

	if user != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s", user, password, host, port)
	}
	return fmt.Sprintf("mongodb://%s:%s", host, port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return value == "true"
	}
	return defaultValue
}
