package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "http://localhost:8000/api", cfg.BackendURL)
	assert.Equal(t, float64(50), cfg.RateLimit)
	assert.Equal(t, 100, cfg.RateBurst)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BACKEND_URL", "http://backend:9000/api")
	t.Setenv("RATE_LIMIT", "10")
	t.Setenv("RATE_BURST", "20")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://backend:9000/api", cfg.BackendURL)
	assert.Equal(t, float64(10), cfg.RateLimit)
	assert.Equal(t, 20, cfg.RateBurst)
}

func TestBadNumbersFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT", "not-a-number")
	t.Setenv("RATE_BURST", "also-not")

	cfg := Load()

	assert.Equal(t, float64(50), cfg.RateLimit)
	assert.Equal(t, 100, cfg.RateBurst)
}
