package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process configuration. It is loaded exactly once in main
// and handed to the components that need it; nothing reads the environment
// lazily after startup.
type Config struct {
	Port           string
	AllowedOrigins string
	BodyLimitBytes int

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Rate limiting (public endpoints, keyed by client IP)
	RateLimitMax    int
	RateLimitWindow time.Duration

	// JWT
	JWTSecret string

	// SendGrid email channel
	SendGridAPIKey    string
	SendGridFromName  string
	SendGridFromEmail string

	// FCM push channel
	FCMEndpoint  string
	FCMServerKey string

	// Blob storage
	UploadDir     string
	PublicBaseURL string

	// Per-channel notification timeout
	NotifyTimeout time.Duration
}

// Load reads configuration from the environment (with .env support for local
// development) and returns a populated Config.
func Load() *Config {
	// Missing .env is fine in production; env vars are already set there.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "petfinder"),

		RateLimitMax:    envInt("RATE_LIMIT_MAX", 10),
		RateLimitWindow: time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		JWTSecret: getEnv("JWT_SECRET_KEY", os.Getenv("JWT_SECRET")),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "PetFinder"),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "alerts@petfinder.local"),

		FCMEndpoint:  getEnv("FCM_ENDPOINT", "https://fcm.googleapis.com/fcm/send"),
		FCMServerKey: getEnv("FCM_SERVER_KEY", ""),

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080/uploads"),

		NotifyTimeout: time.Duration(envInt("NOTIFY_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	bodyLimit := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimit <= 0 {
		bodyLimit = envInt("BODY_LIMIT_MB", 5) * 1024 * 1024
	}
	cfg.BodyLimitBytes = bodyLimit

	return cfg
}

// getEnv gets an environment variable with a fallback default value.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
