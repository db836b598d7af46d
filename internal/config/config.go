package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr               string
	StorageDriver      string
	MongoURI           string
	MongoDatabase      string
	MonthCollection    string
	ReviewCollection   string
	SettingsCollection string
	SQLitePath         string
	Timeout            time.Duration
	Timezone           string
	ServerLog          *log.Logger
	AdminUsername      string
	AdminPassword      string
	SessionSecret      []byte
	SessionIssuer      string
	SessionTTL         time.Duration
	AllowedOrigins     []string
	CloudinaryURL      string
	CloudinaryFolder   string
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("STORAGE_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_DRIVER")))
	switch driver {
	case DriverMongo, DriverSQLite:
	case "":
		driver = DriverSQLite
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q: use %q or %q", driver, DriverMongo, DriverSQLite)
	}

	sessionSecret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if sessionSecret == "" {
		log.Fatal("AUTH_JWT_SECRET must be configured")
	}

	sessionTTL := 12 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("AUTH_SESSION_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			sessionTTL = parsed
		}
	}

	cfg := Config{
		Addr:               envOrDefault("HTTP_ADDR", ":8080"),
		StorageDriver:      driver,
		MongoURI:           envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:      envOrDefault("MONGO_DB", "yakawa-kitchen"),
		MonthCollection:    envOrDefault("MONTH_COLLECTION", "months"),
		ReviewCollection:   envOrDefault("REVIEW_COLLECTION", "reviews"),
		SettingsCollection: envOrDefault("SETTINGS_COLLECTION", "settings"),
		SQLitePath:         envOrDefault("SQLITE_PATH", "yakawa-kitchen.db"),
		Timeout:            timeout,
		Timezone:           envOrDefault("TIMEZONE", "Asia/Tokyo"),
		ServerLog:          log.New(os.Stdout, "[yakawa-kitchen-api] ", log.LstdFlags|log.Lshortfile),
		AdminUsername:      envOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword:      envOrDefault("ADMIN_PASSWORD", "password123"),
		SessionSecret:      []byte(sessionSecret),
		SessionIssuer:      envOrDefault("AUTH_JWT_ISSUER", "yakawa-kitchen"),
		SessionTTL:         sessionTTL,
		AllowedOrigins:     parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		CloudinaryURL:      strings.TrimSpace(os.Getenv("CLOUDINARY_URL")),
		CloudinaryFolder:   envOrDefault("CLOUDINARY_FOLDER", "yakawa-kitchen"),
	}

	if cfg.AdminPassword == "password123" {
		cfg.ServerLog.Printf("ADMIN_PASSWORD is the default value. Rotate it before going public.")
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
