package config

import (
	"errors"
	"fmt"
	"time"

	"kitnotes/utils"
)

type Config struct {
	Env         string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	Preferences PreferencesConfig
	Auth        AuthConfig
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	AllowedOrigins []string
	RateLimitRPS   int // per user or client IP, 0 disables
	RateLimitBurst int
	SessionIdleTTL time.Duration // 0 keeps session state forever
}

type DatabaseConfig struct {
	Driver          string // "mongo" or "memory"
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
	ConnectTimeout  time.Duration
}

type PreferencesConfig struct {
	Driver   string // "redis" or "memory"
	RedisURL string
}

type AuthConfig struct {
	JWTSecretKey string
	Issuer       string
}

// Load reads the configuration from the environment. Call godotenv.Load
// beforehand to pick up a .env file.
func Load() Config {
	return Config{
		Env:      utils.GetEnvAsString("GO_ENV", "development"),
		LogLevel: utils.GetEnvAsString("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:           utils.GetEnvAsString("PORT", "8080"),
			RequestTimeout: utils.GetEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second),
			AllowedOrigins: utils.GetEnvAsStrings("CORS_ALLOWED_ORIGINS", nil),
			RateLimitRPS:   utils.GetEnvAsInt("RATE_LIMIT_RPS", 20),
			RateLimitBurst: utils.GetEnvAsInt("RATE_LIMIT_BURST", 40),
			SessionIdleTTL: utils.GetEnvAsDuration("SESSION_IDLE_TTL", 30*time.Minute),
		},
		Database: LoadDatabaseConfig(),
		Preferences: PreferencesConfig{
			Driver:   utils.GetEnvAsString("PREFERENCES_DRIVER", "redis"),
			RedisURL: utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
		},
		Auth: AuthConfig{
			JWTSecretKey: utils.GetEnvAsString("JWT_SECRET_KEY", ""),
			Issuer:       utils.GetEnvAsString("JWT_ISSUER", "toolkit"),
		},
	}
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:          utils.GetEnvAsString("STORE_DRIVER", "mongo"),
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "toolkit"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
		ConnectTimeout:  utils.GetEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
	}
}

func (c Config) Validate() error {
	var errs []error

	switch c.Env {
	case "development", "test", "production":
	default:
		errs = append(errs, fmt.Errorf("GO_ENV must be development, test or production, got %q", c.Env))
	}

	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative"))
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst == 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive when rate limiting is on"))
	}
	if c.Server.SessionIdleTTL < 0 {
		errs = append(errs, errors.New("SESSION_IDLE_TTL must not be negative"))
	}
	if c.Auth.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}

	switch c.Database.Driver {
	case "mongo":
		if c.Database.URI == "" || c.Database.DatabaseName == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DB are required for the mongo driver"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Database.Driver))
	}

	switch c.Preferences.Driver {
	case "redis":
		if c.Preferences.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis driver"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown PREFERENCES_DRIVER %q", c.Preferences.Driver))
	}

	return errors.Join(errs...)
}
