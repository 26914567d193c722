package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/golf-cup/internal/scoring"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/golf")
	for _, k := range []string{"PORT", "ENV", "DEBUG", "JWT_SECRET", "REDIS_URL", "TEE_TABLES_PATH", "POINTS_PER_MATCH", "TIE_POINTS", "MIGRATIONS_PATH", "CACHE_TTL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, scoring.DefaultPoints(), cfg.Points())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DEBUG", "true")
	t.Setenv("DATABASE_URL", "postgres://db/golf")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("POINTS_PER_MATCH", "2")
	t.Setenv("TIE_POINTS", "1")
	t.Setenv("CACHE_TTL", "30s")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.Debug)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, scoring.PointsConfig{PointsPerMatch: 2, TiePoints: 1}, cfg.Points())
	assert.Equal(t, []byte("s3cret"), cfg.JWTKey())
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := Config{Env: "production", DatabaseURL: "postgres://db", JWTSecret: "x", PointsPerMatch: 1, TiePoints: 0.5}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"missing database", func(c *Config) { c.DatabaseURL = "" }, "DATABASE_URL"},
		{"missing secret in production", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"zero match points", func(c *Config) { c.PointsPerMatch = 0 }, "POINTS_PER_MATCH"},
		{"tie worth more than a win", func(c *Config) { c.TiePoints = 2 }, "TIE_POINTS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	dev := base
	dev.Env = "development"
	dev.JWTSecret = ""
	dev.DatabaseURL = ""
	assert.NoError(t, dev.Validate())
}
