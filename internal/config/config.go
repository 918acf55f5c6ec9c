package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// GoogleLinkPolicy decides what happens when a Google login matches an
// existing email-method account by email address.
type GoogleLinkPolicy string

const (
	// GoogleLinkReject refuses the login and reports a conflict.
	GoogleLinkReject GoogleLinkPolicy = "reject"
	// GoogleLinkLink attaches the Google subject to the existing account
	// and upgrades its login method.
	GoogleLinkLink GoogleLinkPolicy = "link"
)

type Config struct {
	Port        string
	Env         string
	FrontendURL string
	DatabaseDSN string

	JWTSecret string
	JWTExpiry time.Duration

	BcryptCost int

	GoogleLinkPolicy GoogleLinkPolicy

	// Optional admin bootstrap; all three must be set for the seed to run.
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:3000"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/reservetable?parseTime=true"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:        getDuration("JWT_EXPIRY", 7*24*time.Hour),
		BcryptCost:       getInt("BCRYPT_COST", 12),
		GoogleLinkPolicy: GoogleLinkPolicy(getEnv("GOOGLE_LINK_POLICY", string(GoogleLinkReject))),
		AdminName:        os.Getenv("ADMIN_NAME"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	if cfg.GoogleLinkPolicy != GoogleLinkReject && cfg.GoogleLinkPolicy != GoogleLinkLink {
		slog.Warn("unknown GOOGLE_LINK_POLICY, falling back to reject", "value", cfg.GoogleLinkPolicy)
		cfg.GoogleLinkPolicy = GoogleLinkReject
	}

	return cfg
}

// SeedAdmin reports whether the admin bootstrap is fully configured.
func (c Config) SeedAdmin() bool {
	return c.AdminName != "" && c.AdminEmail != "" && c.AdminPassword != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid integer env value, using fallback", "key", key, "value", v)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration env value, using fallback", "key", key, "value", v)
	}
	return fallback
}
