package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	Database         DatabaseConfig
	Logto            LogtoConfig
	JWT              JWTConfig
	Session          SessionConfig
	Log              LogConfig
	CORS             CORSConfig
	MetricsEnabled   bool
	ExportSigningKey string
	AdminUsers       []string
	TestMode         bool
}

type DatabaseConfig struct {
	URL      string
	LogLevel string
}

type LogtoConfig struct {
	Endpoint      string
	AppID         string
	AppSecret     string
	RedirectURI   string
	PostLogoutURI string
}

// Enabled reports whether OIDC login through Logto is configured.
func (c LogtoConfig) Enabled() bool {
	return c.Endpoint != "" && c.AppID != ""
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type SessionConfig struct {
	Secret string
	Secure bool
}

type LogConfig struct {
	Level       string
	Format      string
	Development bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	godotenv.Load()

	jwtExpiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			LogLevel: getEnv("DB_LOG_LEVEL", "silent"),
		},
		Logto: LogtoConfig{
			Endpoint:      getEnv("LOGTO_ENDPOINT", ""),
			AppID:         getEnv("LOGTO_APP_ID", ""),
			AppSecret:     getEnv("LOGTO_APP_SECRET", ""),
			RedirectURI:   getEnv("LOGTO_REDIRECT_URI", ""),
			PostLogoutURI: getEnv("LOGTO_POST_LOGOUT_URI", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Expiry: jwtExpiry,
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			Secure: getEnv("SESSION_SECURE", "false") == "true",
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Format:      getEnv("LOG_FORMAT", "json"),
			Development: getEnv("LOG_DEV", "false") == "true",
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		MetricsEnabled:   getEnv("METRICS_ENABLED", "true") == "true",
		ExportSigningKey: getEnv("EXPORT_SIGNING_KEY", ""),
		AdminUsers:       splitList(os.Getenv("ADMIN_USERS")),
		TestMode:         getEnv("TEST_MODE", "false") == "true",
	}, nil
}

// Validate checks the settings the HTTP server cannot run without.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" && !c.TestMode {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.Expiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	if c.Logto.Enabled() && c.Session.Secret == "" {
		return errors.New("SESSION_SECRET is required when Logto is configured")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
