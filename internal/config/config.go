// Package config handles loading and validating runtime configuration for the Golf Cup API.
// Configuration values (like the database URL and API port) are read from environment variables
// rather than being hardcoded, so the same binary can run in development and production
// with nothing but a different environment.
package config

import (
	"errors"
	"time"

	// godotenv reads a .env file and loads its key=value pairs into the process environment.
	// In production there is usually no .env file and real environment variables are used instead.
	"github.com/joho/godotenv"
	// viper layers defaults under the environment and gives us typed getters
	// (GetBool, GetFloat64, GetDuration) so we don't hand-parse strings.
	"github.com/spf13/viper"

	"github.com/trentd187/golf-cup/internal/scoring"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	Env            string        // The runtime environment: "development", "staging", or "production"
	Debug          bool          // Lowers the log level to debug
	DatabaseURL    string        // PostgreSQL connection string; in development an empty value selects the in-memory store
	MigrationsPath string        // Source URL for golang-migrate (e.g., "file://migrations")
	JWTSecret      string        // HMAC secret used to verify bearer tokens
	RedisURL       string        // Optional; when empty leaderboards are memoized in-process
	CacheTTL       time.Duration // How long a memoized leaderboard lives in redis
	TeeTablesPath  string        // Optional TOML file overriding or adding tee tables
	PointsPerMatch float64       // Competition points for winning a match
	TiePoints      float64       // Competition points each side gets for a halved match
}

// Load reads configuration from a .env file (if present) and then from environment
// variables. Environment variables always win over .env values because godotenv
// never overwrites a variable that is already set.
func Load() *Config {
	// The error is intentionally ignored: a missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	// Sensible defaults for everything optional.
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DEBUG", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("POINTS_PER_MATCH", 1.0)
	v.SetDefault("TIE_POINTS", 0.5)

	return &Config{
		Port:           v.GetString("PORT"),
		Env:            v.GetString("ENV"),
		Debug:          v.GetBool("DEBUG"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		RedisURL:       v.GetString("REDIS_URL"),
		CacheTTL:       v.GetDuration("CACHE_TTL"),
		TeeTablesPath:  v.GetString("TEE_TABLES_PATH"),
		PointsPerMatch: v.GetFloat64("POINTS_PER_MATCH"),
		TiePoints:      v.GetFloat64("TIE_POINTS"),
	}
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Points returns the competition points configuration used by the scoring engine.
func (c *Config) Points() scoring.PointsConfig {
	return scoring.PointsConfig{PointsPerMatch: c.PointsPerMatch, TiePoints: c.TiePoints}
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

// Validate checks the settings the server cannot start without.
// DATABASE_URL and JWT_SECRET may only be left empty in development.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("config: DATABASE_URL must be set outside development"))
	}
	if c.JWTSecret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("config: JWT_SECRET must be set outside development"))
	}
	if c.PointsPerMatch <= 0 {
		errs = append(errs, errors.New("config: POINTS_PER_MATCH must be positive"))
	}
	if c.TiePoints < 0 || c.TiePoints > c.PointsPerMatch {
		errs = append(errs, errors.New("config: TIE_POINTS must be between 0 and POINTS_PER_MATCH"))
	}
	return errors.Join(errs...)
}
