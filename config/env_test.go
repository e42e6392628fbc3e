package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsTimeDuration(t *testing.T) {
	t.Run("duration string", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "250ms")
		assert.Equal(t, 250*time.Millisecond, getEnvAsTimeDuration("TEST_DURATION", time.Second))
	})

	t.Run("bare seconds", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "30")
		assert.Equal(t, 30*time.Second, getEnvAsTimeDuration("TEST_DURATION", time.Second))
	})

	t.Run("garbage falls back to default", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "soon")
		assert.Equal(t, time.Second, getEnvAsTimeDuration("TEST_DURATION", time.Second))
	})
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", " a, b ,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsSlice("TEST_SLICE", nil))
	assert.Equal(t, []string{"x"}, getEnvAsSlice("TEST_SLICE_MISSING", []string{"x"}))
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("UPLOAD_MAX_IMAGE_KB", "1024")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := Load()
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, int64(1024*1024), cfg.Storage.MaxImageBytes)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "access_token", cfg.Auth.AccessCookieName)
}
