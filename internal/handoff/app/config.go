package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/handoff/pkg/httpx"
)

type Config struct {
	DataKey     string // Optional: base64 32-byte data encryption key
	DataKeyFile string // Optional: file holding key material (raw, base64 or passphrase)

	TokenTTL          time.Duration // Handoff token lifetime (default: 5m)
	BaseURL           string        // Prefix of redemption URLs (default: http://localhost:8080)
	AllowManualSecret bool          // Permit caller-supplied secrets (default: false)
	PasswordLength    int           // Default generated length (default: 12)
	PasswordPreset    string        // Default preset: alpha, alnum, full (default: full)
	QRSize            int           // QR code edge in pixels (default: 256)

	JWKSURL         string        // Identity provider JWKS endpoint, refreshed periodically
	JWKSFile        string        // Identity provider JWKS on disk; used when no URL is set
	JWKSRefresh     time.Duration // JWKS refresh interval (default: 15m)
	JWTAlgorithm    string        // EdDSA, ES256 or RS256 (default: EdDSA)
	JWTIssuer       string        // Optional: required iss claim
	JWTAudience     []string      // Optional: required aud values, comma separated
	DatabaseFile    string        // Path to SQLite database file (default: handoff.db)
	RateLimits      httpx.RateLimits
	Env             string        // Environment (dev, staging, prod) (default: dev)
	LogLevel        string        // Log level (debug, info, warn, error) (default: info)
	LogFormat       string        // Log format (json, text) (default: json)
	Port            int           // HTTP server port (default: 8080)
	ShutdownGrace   time.Duration // Graceful shutdown timeout (default: 10s)
	SweepInterval   time.Duration // Expired token sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		DataKey:           os.Getenv("HANDOFF_DATA_KEY"),
		DataKeyFile:       os.Getenv("HANDOFF_DATA_KEY_FILE"),
		TokenTTL:          getEnvDurationOrDefault("HANDOFF_TOKEN_TTL", 5*time.Minute),
		BaseURL:           getEnvOrDefault("HANDOFF_BASE_URL", "http://localhost:8080"),
		AllowManualSecret: getEnvBoolOrDefault("HANDOFF_ALLOW_MANUAL_SECRET", false),
		PasswordLength:    getEnvIntOrDefault("HANDOFF_PASSWORD_LENGTH", 12),
		PasswordPreset:    getEnvOrDefault("HANDOFF_PASSWORD_PRESET", "full"),
		QRSize:            getEnvIntOrDefault("HANDOFF_QR_SIZE", 256),
		JWKSURL:           os.Getenv("HANDOFF_JWKS_URL"),
		JWKSFile:          os.Getenv("HANDOFF_JWKS_FILE"),
		JWKSRefresh:       getEnvDurationOrDefault("HANDOFF_JWKS_REFRESH", 15*time.Minute),
		JWTAlgorithm:      getEnvOrDefault("HANDOFF_JWT_ALGORITHM", "EdDSA"),
		JWTIssuer:         os.Getenv("HANDOFF_JWT_ISSUER"),
		JWTAudience:       splitList(os.Getenv("HANDOFF_JWT_AUDIENCE")),
		DatabaseFile:      getEnvOrDefault("HANDOFF_DATABASE_FILE", "handoff.db"),
		RateLimits:        httpx.RateLimitsFromEnv(os.Getenv),
		Env:               getEnvOrDefault("ENV", "dev"),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         getEnvOrDefault("LOG_FORMAT", "json"),
		Port:              getEnvIntOrDefault("PORT", 8080),
		ShutdownGrace:     getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		SweepInterval:     getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// IsDev reports whether dev-only fallbacks (ephemeral data key) are allowed.
func (c Config) IsDev() bool { return c.Env == "dev" }

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
