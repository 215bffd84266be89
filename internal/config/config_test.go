package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "not-a-number")
	t.Setenv("OTEL_ENABLED", "")

	cfg := Load()
	assert.Equal(t, 10*1024*1024, cfg.App.UploadMaxBytes)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("STORAGE_DRIVER", "gcs")
	t.Setenv("UPLOAD_MAX_BYTES", "2048")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "production")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "gcs", cfg.Storage.Driver)
	assert.Equal(t, 2048, cfg.App.UploadMaxBytes)
	assert.True(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.IsProduction())
}
