package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("VERIFY_PAYMENTS", "")
	t.Setenv("PUBLIC_BASE_URL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("GIN_MODE", "")

	cfg := Load()

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "sqlite://restaurant.db", cfg.DatabaseURL)
	assert.False(t, cfg.VerifyPayments)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.PublicBaseURL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 86400, cfg.SessionTTL)
	assert.Nil(t, cfg.TrustedProxies)
	assert.Equal(t, "release", cfg.GinMode)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_HOST", "0.0.0.0")
	t.Setenv("PORT", "9000")
	t.Setenv("VERIFY_PAYMENTS", "true")
	t.Setenv("SESSION_TTL", "not-a-number")
	t.Setenv("PUBLIC_BASE_URL", "https://eat.example.com/")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1")
	t.Setenv("GIN_MODE", "debug")

	cfg := Load()

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.True(t, cfg.VerifyPayments)
	assert.Equal(t, 86400, cfg.SessionTTL)
	assert.Equal(t, "https://eat.example.com", cfg.PublicBaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"10.0.0.1"}, cfg.TrustedProxies)
	assert.Equal(t, "debug", cfg.GinMode)
}

func TestLoadUnknownGinModeFallsBackToRelease(t *testing.T) {
	t.Setenv("GIN_MODE", "verbose")
	assert.Equal(t, "release", Load().GinMode)
}
