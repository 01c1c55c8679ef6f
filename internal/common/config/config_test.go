package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 10, cfg.ReadTimeout)
	assert.Equal(t, "migrations/001_init_builds.sql", cfg.MigrationsPath)
	assert.Equal(t, 2440.0, cfg.Costing.SheetWidth)
	assert.Empty(t, cfg.MinIO.Endpoint)
	assert.False(t, cfg.MinIO.UseSSL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "4100")
	t.Setenv("READ_TIMEOUT", "30")
	t.Setenv("WASTE_PERCENT", "12.5")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("KERF_WIDTH", "abc")

	cfg := Load()

	assert.Equal(t, "4100", cfg.Port)
	assert.Equal(t, 30, cfg.ReadTimeout)
	assert.Equal(t, 12.5, cfg.Costing.WastePercent)
	assert.Equal(t, "minio:9000", cfg.MinIO.Endpoint)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 3.0, cfg.Costing.Kerf)
}
