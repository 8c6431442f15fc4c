package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadAppConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "BACKEND_URL", "BACKEND_TIMEOUT", "PHOTO_STATUS_ENABLED",
		"TOAST_MAX_VISIBLE", "TOAST_DWELL", "TOAST_LINGER", "AUTO_REFRESH_INTERVAL", "DB_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadAppConfigFromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.True(t, cfg.StatusEnabled)
	assert.Equal(t, 3, cfg.Toasts.MaxVisible)
	assert.Equal(t, 3*time.Second, cfg.Toasts.Dwell)
	assert.Equal(t, 300*time.Millisecond, cfg.Toasts.Linger)
	assert.Equal(t, time.Minute, cfg.AutoRefreshInterval)
	assert.Equal(t, "./photoframe.db", cfg.Database.Path)
}

func TestLoadAppConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://frame.local:5000/")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("PHOTO_STATUS_ENABLED", "off")
	t.Setenv("TOAST_MAX_VISIBLE", "5")
	t.Setenv("AUTO_REFRESH_INTERVAL", "0")

	cfg := LoadAppConfigFromEnv()

	assert.Equal(t, "http://frame.local:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.False(t, cfg.StatusEnabled)
	assert.Equal(t, 5, cfg.Toasts.MaxVisible)
	assert.Equal(t, time.Duration(0), cfg.AutoRefreshInterval)
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	t.Setenv("SOME_DURATION", "soon")
	t.Setenv("SOME_BOOL", "maybe")

	assert.Equal(t, 7, getEnvIntWithDefault("SOME_INT", 7))
	assert.Equal(t, time.Second, getEnvDurationWithDefault("SOME_DURATION", time.Second))
	assert.True(t, getEnvBoolWithDefault("SOME_BOOL", true))
}
