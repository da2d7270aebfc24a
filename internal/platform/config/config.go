package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string

	DBDriver    string
	PostgresDSN string
	SQLitePath  string

	JWTSecret    string
	JWTExpiresIn time.Duration

	AdminUsernames     []string
	BootstrapAdmin     string
	BootstrapPassword  string
	RateLimitPerMinute int
	EnableSwagger      bool

	KafkaBrokers       []string
	PostEventsTopic    string
	OutboxPollInterval time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment, optionally layered over the
// file named by CONFIG_FILE.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVICE_NAME", "scribe")
	v.SetDefault("HTTP_PORT", "3000")
	v.SetDefault("DB_DRIVER", DriverMemory)
	v.SetDefault("SQLITE_PATH", "scribe.db")
	v.SetDefault("JWT_EXPIRES_IN", 24*time.Hour)
	v.SetDefault("ADMIN_USERNAMES", "admin,dev-admin")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 100)
	v.SetDefault("ENABLE_SWAGGER", true)
	v.SetDefault("POST_EVENTS_TOPIC", "blog.posts")
	v.SetDefault("OUTBOX_POLL_INTERVAL", 2*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	if file := strings.TrimSpace(v.GetString("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	dsn := v.GetString("DB_URL")
	if dsn == "" {
		dsn = v.GetString("POSTGRES_DSN")
	}

	cfg := Config{
		ServiceName: v.GetString("SERVICE_NAME"),
		HTTPPort:    v.GetString("HTTP_PORT"),

		DBDriver:    strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		PostgresDSN: dsn,
		SQLitePath:  v.GetString("SQLITE_PATH"),

		JWTSecret:    v.GetString("JWT_SECRET"),
		JWTExpiresIn: v.GetDuration("JWT_EXPIRES_IN"),

		AdminUsernames:     splitList(v.GetString("ADMIN_USERNAMES")),
		BootstrapAdmin:     strings.TrimSpace(v.GetString("BOOTSTRAP_ADMIN_USERNAME")),
		BootstrapPassword:  v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		EnableSwagger:      v.GetBool("ENABLE_SWAGGER"),

		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		PostEventsTopic:    v.GetString("POST_EVENTS_TOPIC"),
		OutboxPollInterval: v.GetDuration("OUTBOX_POLL_INTERVAL"),

		LogLevel:  strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat: strings.ToLower(v.GetString("LOG_FORMAT")),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("DB_URL or POSTGRES_DSN is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDriver != DriverMemory && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required outside the memory driver")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.BootstrapAdmin != "" && c.BootstrapPassword == "" {
		return errors.New("BOOTSTRAP_ADMIN_PASSWORD is required when BOOTSTRAP_ADMIN_USERNAME is set")
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

func splitList(raw string) []string {
	var values []string
	for _, value := range strings.Split(raw, ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			values = append(values, value)
		}
	}
	return values
}
