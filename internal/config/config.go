package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr string `mapstructure:"http_addr"`
	GinMode  string `mapstructure:"gin_mode"`

	DBDriver     string `mapstructure:"db_driver"`
	DBHost       string `mapstructure:"db_host"`
	DBPort       string `mapstructure:"db_port"`
	DBUser       string `mapstructure:"db_user"`
	DBPassword   string `mapstructure:"db_password"`
	DBName       string `mapstructure:"db_name"`
	DBSQLitePath string `mapstructure:"db_sqlite_path"`
	DBLogLevel   string `mapstructure:"db_log_level"`

	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`

	SessionStore  string `mapstructure:"session_store"`
	SessionSecret string `mapstructure:"session_secret"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	RateLimitPerMinute int    `mapstructure:"rate_limit_per_minute"`
	RateLimitStore     string `mapstructure:"rate_limit_store"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// TasksVerifyAssignee enables an existence check on task assignees at creation.
	TasksVerifyAssignee bool `mapstructure:"tasks_verify_assignee"`

	// AuthRejectOAuthPlaceholder refuses password login with the "oauth"
	// placeholder stored on federated accounts.
	AuthRejectOAuthPlaceholder bool `mapstructure:"auth_reject_oauth_placeholder"`
}

const defaultSessionSecret = "default-secret-key-change-me"

var defaults = map[string]any{
	"http_addr":             ":8080",
	"gin_mode":              "debug",
	"db_driver":             "mysql",
	"db_host":               "localhost",
	"db_port":               "3306",
	"db_user":               "employeeuser",
	"db_password":           "employeepassword",
	"db_name":               "employee_management",
	"db_sqlite_path":        "employee.db",
	"db_log_level":          "warn",
	"redis_host":            "localhost",
	"redis_port":            "6379",
	"redis_password":        "",
	"session_store":         "redis",
	"session_secret":        defaultSessionSecret,
	"log_level":             "info",
	"log_format":            "text",
	"cors_allowed_origins":  "http://localhost:3000",
	"rate_limit_per_minute": 60,
	"rate_limit_store":      "memory",
	"shutdown_timeout":      "20s",
	"tasks_verify_assignee": false,

	"auth_reject_oauth_placeholder": false,
}

// Load reads configuration from defaults, an optional config.yaml and the
// environment. A .env file in the working directory is loaded first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Every key maps to its upper-cased env var (db_host -> DB_HOST).
	for key := range defaults {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("cors_allowed_origins"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be one of debug, release, test (got %q)", c.GinMode)
	}
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be one of mysql, postgres, sqlite (got %q)", c.DBDriver)
	}
	switch c.SessionStore {
	case "redis", "cookie":
	default:
		return fmt.Errorf("SESSION_STORE must be redis or cookie (got %q)", c.SessionStore)
	}
	switch c.RateLimitStore {
	case "memory", "redis":
	default:
		return fmt.Errorf("RATE_LIMIT_STORE must be memory or redis (got %q)", c.RateLimitStore)
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET must not be empty")
	}
	if c.IsProduction() && c.SessionSecret == defaultSessionSecret {
		return errors.New("SESSION_SECRET must be changed in release mode")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be greater than 0")
	}
	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// RedisAddr returns host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
