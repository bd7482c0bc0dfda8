package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultJWTSecret = "change-me-surfdims-secret"

// Notification recomputation triggers.
const (
	TriggerViewerChange  = "viewer_change"
	TriggerEverySnapshot = "every_snapshot"
)

type Config struct {
	ServiceName            string        `mapstructure:"SERVICE_NAME"`
	HTTPPort               string        `mapstructure:"HTTP_PORT"`
	MongoURI               string        `mapstructure:"MONGO_URI"`
	MongoDatabase          string        `mapstructure:"MONGO_DATABASE"`
	RedisAddress           string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword          string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB                int           `mapstructure:"REDIS_DB"`
	NATSURL                string        `mapstructure:"NATS_URL"`
	MinIOEndpoint          string        `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey         string        `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey         string        `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket            string        `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL            bool          `mapstructure:"MINIO_USE_SSL"`
	JWTSecret              string        `mapstructure:"JWT_SECRET"`
	PrometheusMetricsPort  string        `mapstructure:"PROMETHEUS_METRICS_PORT"`
	LogLevel               string        `mapstructure:"LOG_LEVEL"`
	LogFormat              string        `mapstructure:"LOG_FORMAT"`
	OTExporterOTLPEndpoint string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LifecycleSweepInterval time.Duration `mapstructure:"LIFECYCLE_SWEEP_INTERVAL"`
	SnapshotCacheTTL       time.Duration `mapstructure:"SNAPSHOT_CACHE_TTL"`
	SessionTTL             time.Duration `mapstructure:"SESSION_TTL"`
	NotificationTrigger    string        `mapstructure:"NOTIFICATION_TRIGGER"`
	CORSAllowedOrigins     []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitRPS           float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst         int           `mapstructure:"RATE_LIMIT_BURST"`
	ShutdownTimeout        time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "surfdims")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "surfdims")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET", "board-images")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("PROMETHEUS_METRICS_PORT", "9095")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("LIFECYCLE_SWEEP_INTERVAL", time.Hour)
	v.SetDefault("SNAPSHOT_CACHE_TTL", 30*time.Second)
	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("NOTIFICATION_TRIGGER", TriggerViewerChange)
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("RATE_LIMIT_RPS", 20.0)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("SHUTDOWN_TIMEOUT", 15*time.Second)
}

// LoadConfig reads the environment on top of the defaults. A .env file, if
// any, is loaded by main before this runs.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == defaultJWTSecret {
		appLogger.Warn("JWT_SECRET is using the built-in default, set a strong secret")
	}
	appLogger.Debug("configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("redis_address", cfg.RedisAddress),
		zap.String("nats_url", cfg.NATSURL),
		zap.String("minio_endpoint", cfg.MinIOEndpoint),
		zap.Duration("lifecycle_sweep_interval", cfg.LifecycleSweepInterval),
		zap.String("notification_trigger", cfg.NotificationTrigger),
	)
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.MongoDatabase == "" {
		return fmt.Errorf("MONGO_DATABASE is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	c.NotificationTrigger = strings.ToLower(strings.TrimSpace(c.NotificationTrigger))
	switch c.NotificationTrigger {
	case TriggerViewerChange, TriggerEverySnapshot:
	default:
		return fmt.Errorf("NOTIFICATION_TRIGGER must be %q or %q, got %q", TriggerViewerChange, TriggerEverySnapshot, c.NotificationTrigger)
	}
	if c.LifecycleSweepInterval <= 0 {
		return fmt.Errorf("LIFECYCLE_SWEEP_INTERVAL must be positive")
	}
	return nil
}
