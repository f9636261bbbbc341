package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Admin secret sources.
const (
	SecretSourceStatic   = "static"
	SecretSourceDatabase = "database"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Storage
	Store       string // "postgres" or "memory"; empty picks postgres when DatabaseURL is set
	DatabaseURL string
	SeedOnStart bool // Load seed testimonials into an empty store at startup

	// Admin gate
	AdminPassword     string // env: ADMIN_PASSWORD, default: "adminadmin"
	AdminSecretSource string // "static" or "database"

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)
	SessionTTL    time.Duration
	RedisURL      string // Optional session storage; in-memory when empty

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Logging
	LogLevel  string
	LogFormat string // "json" or "console"

	// Email
	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "tls", "starttls"
	AdminEmail   string // Receives new-submission and digest emails

	// Background jobs
	DigestInterval time.Duration // 0 disables the pending digest

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Testimonials"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
	SiteLogoURL string // env: SITE_LOGO_URL, default: "" (no logo, text only)
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		Store:       getEnv("STORE", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SeedOnStart: getEnv("SEED_ON_START", "") != "",

		AdminPassword:     getEnv("ADMIN_PASSWORD", "adminadmin"),
		AdminSecretSource: getEnv("ADMIN_SECRET_SOURCE", SecretSourceStatic),

		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 8*time.Hour),
		RedisURL:      getEnv("REDIS_URL", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		SMTPEnabled:  getEnv("SMTP_ENABLED", "") != "",
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Testimonials"),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),

		DigestInterval: getEnvDuration("DIGEST_INTERVAL", 0),

		SiteTitle:   getEnv("SITE_TITLE", "Testimonials"),
		SiteTagline: getEnv("SITE_TAGLINE", "What our clients say about us"),
		SiteFooter:  getEnv("SITE_FOOTER", "Testimonials. All rights reserved."),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// StoreBackend resolves which record store to use.
func (c *Config) StoreBackend() string {
	switch c.Store {
	case StorePostgres, StoreMemory:
		return c.Store
	}
	if c.DatabaseURL != "" {
		return StorePostgres
	}
	return StoreMemory
}

// IsEmailEnabled returns true if SMTP is fully configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPEnabled && c.SMTPHost != "" && c.SMTPFrom != ""
}

// IsDigestEnabled returns true if the pending digest job should run.
func (c *Config) IsDigestEnabled() bool {
	return c.DigestInterval > 0 && c.IsEmailEnabled() && c.AdminEmail != ""
}
