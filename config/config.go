// config/config.go - Application configuration
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped.
// CLUBHOUSE_SERVER_PORT becomes server.port.
const EnvPrefix = "CLUBHOUSE_"

type Config struct {
	App       AppConfig       `koanf:"app" validate:"required"`
	Server    ServerConfig    `koanf:"server" validate:"required"`
	Database  DatabaseConfig  `koanf:"database" validate:"required"`
	Auth      AuthConfig      `koanf:"auth" validate:"required"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

type AppConfig struct {
	Env      string `koanf:"env" validate:"required,oneof=development test production"`
	LogLevel string `koanf:"log_level" validate:"required"`
}

type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout int    `koanf:"write_timeout" validate:"min=1"`
	BodyLimit    int    `koanf:"body_limit" validate:"min=1024"`
	CORSOrigins  string `koanf:"cors_origins" validate:"required"`
	StaticDir    string `koanf:"static_dir"`
}

type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=postgres sqlite"`
	URL             string `koanf:"url"`
	Host            string `koanf:"host"`
	Port            string `koanf:"port"`
	User            string `koanf:"user"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name"`
	SSLMode         string `koanf:"sslmode"`
	Path            string `koanf:"path"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	LogQueries      bool   `koanf:"log_queries"`
}

type AuthConfig struct {
	JWTSecret     string `koanf:"jwt_secret" validate:"required,min=32"`
	TokenTTLHours int    `koanf:"token_ttl_hours" validate:"min=1"`
	Issuer        string `koanf:"issuer" validate:"required"`
}

type RateLimitConfig struct {
	Enabled           bool `koanf:"enabled"`
	MaxRequests       int  `koanf:"max_requests" validate:"min=1"`
	WindowSeconds     int  `koanf:"window_seconds" validate:"min=1"`
	AuthMaxRequests   int  `koanf:"auth_max_requests" validate:"min=1"`
	AuthWindowSeconds int  `koanf:"auth_window_seconds" validate:"min=1"`
}

// Default returns the configuration used when no environment overrides are present.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Env:      "development",
			LogLevel: "info",
		},
		Server: ServerConfig{
			Port:         "3000",
			ReadTimeout:  10,
			WriteTimeout: 10,
			BodyLimit:    4 * 1024 * 1024,
			CORSOrigins:  "http://localhost:3000",
			StaticDir:    "./static",
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Name:            "clubhouse",
			SSLMode:         "disable",
			Path:            "./data/clubhouse.db",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: 3600,
		},
		Auth: AuthConfig{
			TokenTTLHours: 8,
			Issuer:        "clubhouse",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			MaxRequests:       100,
			WindowSeconds:     900,
			AuthMaxRequests:   5,
			AuthWindowSeconds: 300,
		},
	}
}

// Load reads an optional .env file, then overlays CLUBHOUSE_* variables on the defaults.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return LoadFromEnv()
}

// LoadFromEnv builds the configuration from the process environment only.
func LoadFromEnv() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps CLUBHOUSE_DATABASE_MAX_OPEN_CONNS to database.max_open_conns.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		return fmt.Errorf("invalid config: database.path is required for sqlite")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// DSN returns the postgres connection string, preferring an explicit URL.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}
