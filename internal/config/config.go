package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with development defaults.
type Config struct {
	// Server
	Port        int
	Environment string // "development" or "production"
	LogLevel    string

	// Database. Driver selects the backend: "sqlite" (embedded file,
	// development) or "postgres" (networked server, production).
	DBDriver   string
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth
	JWTSecret string
	JWTTTL    time.Duration

	// CORS
	CORSOrigins []string

	// Rate limiting. The production policy is a deployment decision:
	// defaults are conservative and the loopback exemption is opt-in.
	RateLimitRPS      float64
	RateLimitBurst    int
	RateLimitExemptLo bool
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:        getEnvInt("PORT", 4001),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		SQLitePath: getEnv("SQLITE_PATH", "crm.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USERNAME", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_DATABASE", "crm"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret"),
		JWTTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),

		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:4173"}),

		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitExemptLo: getEnv("RATE_LIMIT_EXEMPT_LOOPBACK", "false") == "true",
	}
}

// IsProduction reports whether the app runs in production mode.
// Error responses include detail only outside production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
