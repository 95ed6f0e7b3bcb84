package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment with
// an optional .env overlay.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Store    StoreConfig
	Gemini   GeminiConfig
	Ingest   IngestConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// StoreConfig selects the transaction store backend: "postgres" or
// "memory".
type StoreConfig struct {
	Backend string
}

type GeminiConfig struct {
	// APIKey enables the AI tier; empty means rule-based categorization
	// and simulated advice only.
	APIKey string
	Model  string
}

// IngestConfig carries the statement-engine knobs.
type IngestConfig struct {
	// MinKeywordHits is the minimum header-detection confidence: a candidate
	// header row must contain at least this many distinct column keywords.
	MinKeywordHits int

	// MaxDescriptors caps how many distinct expense descriptors are sent to
	// the AI categorizer in one batch.
	MaxDescriptors int

	// SkipDuplicates skips rows whose (date, description, amount, kind)
	// already exist for the owner in the store.
	SkipDuplicates bool
}

type LoggerConfig struct {
	Level string
}

// Load reads configuration from the environment. A .env file in the current
// directory or one of the two parent directories is applied first if present;
// plain environment variables work without one (Docker, CI).
func Load() (*Config, error) {
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "60"))

	minHits, err := strconv.Atoi(getEnv("INGEST_MIN_KEYWORD_HITS", "2"))
	if err != nil || minHits < 0 {
		return nil, fmt.Errorf("config: invalid INGEST_MIN_KEYWORD_HITS")
	}
	maxDescriptors, err := strconv.Atoi(getEnv("INGEST_MAX_DESCRIPTORS", "120"))
	if err != nil || maxDescriptors <= 0 {
		return nil, fmt.Errorf("config: invalid INGEST_MAX_DESCRIPTORS")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "wealthmate"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", "memory"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Ingest: IngestConfig{
			MinKeywordHits: minHits,
			MaxDescriptors: maxDescriptors,
			SkipDuplicates: getEnv("INGEST_SKIP_DUPLICATES", "false") == "true",
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// DSN renders the database settings as a pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
