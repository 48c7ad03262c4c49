package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 1000, cfg.SessionCapacity)
	assert.Equal(t, 60, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_CAPACITY", "50")
	t.Setenv("NATS_ENABLED", "false")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")

	cfg := Load()
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 50, cfg.SessionCapacity)
	assert.False(t, cfg.NATSEnabled)
	assert.Equal(t, 5*time.Second, cfg.ServerReadTimeout)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SESSION_CAPACITY", "many")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	cfg := Load()
	assert.Equal(t, 1000, cfg.SessionCapacity)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}
