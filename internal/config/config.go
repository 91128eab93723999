package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by STORE_BACKEND
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

const defaultHFAPIURL = "https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"

// Config holds every setting the API reads from the environment
type Config struct {
	Port   string
	AppEnv string

	StoreBackend string
	SQLitePath   string
	Redis        RedisConfig
	Postgres     PostgresConfig

	Classifier ClassifierConfig

	AuthEnabled bool
	Firebase    FirebaseConfig

	Notifications NotificationsConfig
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type PostgresConfig struct {
	// URL wins over the individual fields when set
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ClassifierConfig struct {
	APIURL string
	Token  string
	// Zero means the http.Client default (no timeout)
	Timeout time.Duration
}

type FirebaseConfig struct {
	ServiceAccountPath string
	ProjectID          string
}

type NotificationsConfig struct {
	Enabled           bool
	Timezone          *time.Location
	DailyReminderSpec string
	WeeklyDigestSpec  string
	ExpoPushURL       string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnvOrDefault("PORT", "9091"),
		AppEnv:       getEnvOrDefault("APP_ENV", "production"),
		StoreBackend: strings.ToLower(getEnvOrDefault("STORE_BACKEND", BackendSQLite)),
		SQLitePath:   getEnvOrDefault("SQLITE_PATH", "./data/journal.db"),
		Redis: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Postgres: PostgresConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			User:     getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   getEnvOrDefault("POSTGRES_DB", "moodjournal"),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		},
		Classifier: ClassifierConfig{
			APIURL: getEnvOrDefault("HF_API_URL", defaultHFAPIURL),
			Token:  os.Getenv("HF_TOKEN"),
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
			ProjectID:          os.Getenv("FIREBASE_PROJECT_ID"),
		},
		Notifications: NotificationsConfig{
			DailyReminderSpec: getEnvOrDefault("DAILY_REMINDER_SPEC", "0 20 * * *"),
			WeeklyDigestSpec:  getEnvOrDefault("WEEKLY_DIGEST_SPEC", "0 19 * * 0"),
			ExpoPushURL:       getEnvOrDefault("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send"),
		},
	}

	switch cfg.StoreBackend {
	case BackendSQLite, BackendRedis, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND value %q", cfg.StoreBackend)
	}

	db, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}
	cfg.Redis.DB = db

	if raw := os.Getenv("CLASSIFIER_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CLASSIFIER_TIMEOUT value: %w", err)
		}
		cfg.Classifier.Timeout = timeout
	}

	if cfg.AuthEnabled, err = getBool("AUTH_ENABLED"); err != nil {
		return nil, err
	}
	if cfg.Notifications.Enabled, err = getBool("NOTIFICATIONS_ENABLED"); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(getEnvOrDefault("NOTIFY_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_TIMEZONE value: %w", err)
	}
	cfg.Notifications.Timezone = loc

	return cfg, nil
}

// IsDevelopment reports whether APP_ENV asks for development logging
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// FirebaseRequired reports whether any enabled feature needs a Firebase app
func (c *Config) FirebaseRequired() bool {
	return c.AuthEnabled || (c.Notifications.Enabled && (c.Firebase.ProjectID != "" || c.Firebase.ServiceAccountPath != ""))
}

// PostgresURL returns DATABASE_URL or a URL assembled from the POSTGRES_* fields
func (p PostgresConfig) PostgresURL() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

func getBool(key string) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// getEnvOrDefault returns the environment variable value or a default value if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
