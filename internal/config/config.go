package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Scraper  ScraperConfig
	Groq     GroqConfig
	Gemini   GeminiConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Server   ServerConfig
	Logging  LoggingConfig
	Data     DataConfig
}

type ScraperConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
	RequestsPerSec float64
	CacheTTL       time.Duration
}

type GroqConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type PostgresConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type ServerConfig struct {
	Port         int
	AllowOrigins []string
}

type LoggingConfig struct {
	Level string
	File  string
}

type DataConfig struct {
	Dir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Scraper: ScraperConfig{
			BaseURL:        getEnv("TRANSFERMARKT_BASE_URL", "https://www.transfermarkt.com"),
			UserAgent:      getEnv("SCRAPER_USER_AGENT", "FootballScout/1.0"),
			RequestTimeout: time.Duration(getEnvInt("SCRAPER_TIMEOUT_SECONDS", 30)) * time.Second,
			RequestsPerSec: getEnvFloat("SCRAPER_REQUESTS_PER_SECOND", 2.0),
			CacheTTL:       time.Duration(getEnvInt("SCRAPER_CACHE_TTL_MINUTES", 60)) * time.Minute,
		},
		Groq: GroqConfig{
			APIKey:    getEnv("GROQ_API_KEY", ""),
			BaseURL:   getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:     getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			MaxTokens: getEnvInt("GROQ_MAX_TOKENS", 1024),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EnableFallback: getEnvBool("GEMINI_ENABLE_FALLBACK", true),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			Enabled:  getEnvBool("POSTGRES_ENABLED", false),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "scout"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "football_scout"),
		},
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			AllowOrigins: splitCommaSeparated(getEnv("SERVER_ALLOW_ORIGINS", "*")),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Data: DataConfig{
			Dir: getEnv("DATA_DIR", "./data"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.BaseURL == "" {
		return fmt.Errorf("TRANSFERMARKT_BASE_URL is required")
	}
	if c.Scraper.RequestsPerSec <= 0 {
		return fmt.Errorf("SCRAPER_REQUESTS_PER_SECOND must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a valid port number")
	}
	return nil
}

// HasLLM reports whether at least one language-model provider is configured.
func (c *Config) HasLLM() bool {
	return c.Groq.APIKey != "" || c.Gemini.APIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func splitCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
