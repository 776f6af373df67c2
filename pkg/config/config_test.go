package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry())
	assert.Equal(t, 15*time.Minute, cfg.Storage.URLExpiry())
	assert.False(t, cfg.Storage.Enabled())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10, cfg.Worker.Concurrency)
	assert.Equal(t, "0 3 * * *", cfg.Worker.SweepCron)
	assert.Equal(t, 48, cfg.Worker.SweepLookbackHours)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("DATABASE_NAME", "estates")
	t.Setenv("STORAGE_PROVIDER", "S3")
	t.Setenv("STORAGE_BUCKET", "docs")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("WORKER_SWEEP_CRON", "*/30 * * * *")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Contains(t, cfg.Database.DSN(), "dbname=estates")
	assert.Equal(t, "s3", cfg.Storage.Provider)
	assert.True(t, cfg.Storage.Enabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "*/30 * * * *", cfg.Worker.SweepCron)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad cron", "WORKER_SWEEP_CRON", "every night"},
		{"negative lookback", "WORKER_SWEEP_LOOKBACK_HOURS", "-1"},
		{"unknown provider", "STORAGE_PROVIDER", "ftp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
