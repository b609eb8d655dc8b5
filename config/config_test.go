package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Env:         "test",
		Server:      ServerConfig{Port: "8080"},
		Database:    DatabaseConfig{Driver: "memory"},
		Preferences: PreferencesConfig{Driver: "memory"},
		Auth:        AuthConfig{JWTSecretKey: "secret", Issuer: "toolkit"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown env", func(c *Config) { c.Env = "staging" }},
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"negative rate limit", func(c *Config) { c.Server.RateLimitRPS = -1 }},
		{"rate limit without burst", func(c *Config) { c.Server.RateLimitRPS = 10 }},
		{"negative session ttl", func(c *Config) { c.Server.SessionIdleTTL = -time.Second }},
		{"missing secret", func(c *Config) { c.Auth.JWTSecretKey = "" }},
		{"unknown store driver", func(c *Config) { c.Database.Driver = "bmob" }},
		{"mongo without uri", func(c *Config) { c.Database = DatabaseConfig{Driver: "mongo", DatabaseName: "toolkit"} }},
		{"unknown preferences driver", func(c *Config) { c.Preferences.Driver = "cookie" }},
		{"redis without url", func(c *Config) { c.Preferences = PreferencesConfig{Driver: "redis"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, ,http://127.0.0.1:3000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("MONGO_MAX_CONN_IDLE_TIME", "30")
	t.Setenv("PREFERENCES_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "s3cret")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 20, cfg.Server.RateLimitRPS)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionIdleTTL)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.Database.MaxConnIdleTime)
	assert.Equal(t, "toolkit", cfg.Auth.Issuer)
	assert.NoError(t, cfg.Validate())
}
