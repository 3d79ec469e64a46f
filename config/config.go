package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	AI       AIConfig       `json:"ai"`
	Export   ExportConfig   `json:"export"`
	Cache    CacheConfig    `json:"cache"`
	App      AppConfig      `json:"app"`
}

type ServerConfig struct {
	Port string `json:"port"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type AIConfig struct {
	APIKey           string `json:"api_key"`
	Model            string `json:"model"`
	BaseURL          string `json:"base_url"`
	RateLimitPerHour int    `json:"rate_limit_per_hour"`
}

type ExportConfig struct {
	Dir           string `json:"dir"`
	RetentionDays int    `json:"retention_days"`
}

type CacheConfig struct {
	TopicTTLHours int `json:"topic_ttl_hours"`
}

type AppConfig struct {
	Environment string `json:"environment"`
	LogLevel    string `json:"log_level"`
	Version     string `json:"version"`
}

// Load builds the configuration from defaults, an optional JSON file named
// by CONFIG_FILE, and finally environment variables, with later sources
// winning.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := overlayFile(cfg, path); err != nil {
			log.Printf("Warning: could not load config file %s: %v", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 5432,
			User: "postgres",
			Name: "deepgit",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		AI: AIConfig{
			Model:            "gpt-4",
			BaseURL:          "https://api.openai.com/v1",
			RateLimitPerHour: 100,
		},
		Export: ExportConfig{
			Dir:           "exports",
			RetentionDays: 30,
		},
		Cache: CacheConfig{TopicTTLHours: 24},
		App: AppConfig{
			Environment: "development",
			LogLevel:    "info",
			Version:     "1.0.0",
		},
	}
}

// overlayFile merges a JSON config file over the current values. Fields
// absent from the file keep their existing values.
func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvAsInt("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.AI.APIKey = getEnv("OPENAI_API_KEY", cfg.AI.APIKey)
	cfg.AI.Model = getEnv("OPENAI_MODEL", cfg.AI.Model)
	cfg.AI.BaseURL = getEnv("OPENAI_BASE_URL", cfg.AI.BaseURL)
	cfg.AI.RateLimitPerHour = getEnvAsInt("AI_RATE_LIMIT_PER_HOUR", cfg.AI.RateLimitPerHour)

	cfg.Export.Dir = getEnv("EXPORT_DIR", cfg.Export.Dir)
	cfg.Export.RetentionDays = getEnvAsInt("EXPORT_RETENTION_DAYS", cfg.Export.RetentionDays)

	cfg.Cache.TopicTTLHours = getEnvAsInt("TOPIC_CACHE_TTL_HOURS", cfg.Cache.TopicTTLHours)

	cfg.App.Environment = getEnv("APP_ENV", cfg.App.Environment)
	cfg.App.LogLevel = getEnv("LOG_LEVEL", cfg.App.LogLevel)
	cfg.App.Version = getEnv("APP_VERSION", cfg.App.Version)
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Export.Dir == "" {
		return fmt.Errorf("EXPORT_DIR is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
