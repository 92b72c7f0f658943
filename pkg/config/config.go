// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/farmflight/farmflight/pkg/logger/conf"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the FarmFlight service configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Storage    StorageConfig    `yaml:"storage"`
	Weather    WeatherConfig    `yaml:"weather"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        conf.LogConfig   `yaml:"log"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port        int      `yaml:"port"`
	StaticDir   string   `yaml:"static_dir"` // Built frontend served behind the page gate
	CorsOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	DBName      string `yaml:"db_name"`
	SSLMode     string `yaml:"ssl_mode"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// EmbeddingConfig represents the embedding runtime configuration
type EmbeddingConfig struct {
	Provider  string        `yaml:"provider"` // openai, none
	Model     string        `yaml:"model"`
	Dimension int           `yaml:"dimension"`
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// GenerationConfig represents the generative model configuration
type GenerationConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig represents object storage configuration
type StorageConfig struct {
	Provider  string `yaml:"provider"` // s3, minio, local
	Endpoint  string `yaml:"endpoint"`
	PublicURL string `yaml:"public_url"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	LocalPath string `yaml:"local_path"`
}

// WeatherConfig represents the forecast API configuration
type WeatherConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// AuthConfig represents session and identity provider configuration
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	CookieName    string        `yaml:"cookie_name"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	TokenURL      string        `yaml:"token_url"` // OAuth code exchange endpoint
	ClientID      string        `yaml:"client_id"`
	ClientSecret  string        `yaml:"client_secret"`
	SecureCookies bool          `yaml:"secure_cookies"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvInt("SERVER_PORT", 8080),
			StaticDir:   getEnv("SERVER_STATIC_DIR", ""),
			CorsOrigins: getEnvList("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "farmflight"),
			Password:    getEnv("DB_PASSWORD", ""),
			DBName:      getEnv("DB_NAME", "farmflight"),
			SSLMode:     getEnv("DB_SSL_MODE", "disable"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Embedding: EmbeddingConfig{
			Provider:  getEnv("EMBEDDING_PROVIDER", "openai"),
			Model:     getEnv("EMBEDDING_MODEL", "thenlper/gte-small"),
			Dimension: getEnvInt("EMBEDDING_DIMENSION", 384),
			APIKey:    getEnv("EMBEDDING_API_KEY", ""),
			BaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081/v1"),
			CacheTTL:  getEnvDuration("EMBEDDING_CACHE_TTL", 10*time.Minute),
		},
		Generation: GenerationConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: getEnvDuration("GEMINI_TIMEOUT", 2*time.Minute),
		},
		Storage: StorageConfig{
			Provider:  getEnv("STORAGE_PROVIDER", "local"),
			Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
			PublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
			Bucket:    getEnv("STORAGE_BUCKET", "videos"),
			Region:    getEnv("STORAGE_REGION", "us-east-1"),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			UseSSL:    getEnvBool("STORAGE_USE_SSL", true),
			LocalPath: getEnv("STORAGE_LOCAL_PATH", "./data/storage"),
		},
		Weather: WeatherConfig{
			BaseURL:  getEnv("WEATHER_BASE_URL", "https://wh25-weatherapi.onrender.com"),
			Timeout:  getEnvDuration("WEATHER_TIMEOUT", 15*time.Second),
			CacheTTL: getEnvDuration("WEATHER_CACHE_TTL", 10*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("AUTH_JWT_SECRET", ""),
			CookieName:    getEnv("AUTH_COOKIE_NAME", "farmflight_session"),
			SessionTTL:    getEnvDuration("AUTH_SESSION_TTL", 7*24*time.Hour),
			TokenURL:      getEnv("AUTH_TOKEN_URL", ""),
			ClientID:      getEnv("AUTH_CLIENT_ID", ""),
			ClientSecret:  getEnv("AUTH_CLIENT_SECRET", ""),
			SecureCookies: getEnvBool("AUTH_SECURE_COOKIES", false),
		},
		Log: conf.LogConfig{
			Level:  conf.Level(getEnv("LOG_LEVEL", string(conf.InfoLevel))),
			Format: conf.Formatter(getEnv("LOG_FORMAT", string(conf.FormatConsole))),
		},
	}

	// Try to load from config file
	configPath := getEnv("CONFIG_PATH", "/etc/farmflight/config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Embedding.Provider != "none" && c.Embedding.Dimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive")
	}
	switch c.Storage.Provider {
	case "s3", "minio", "local", "":
	default:
		return fmt.Errorf("unsupported storage provider: %s", c.Storage.Provider)
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage bucket is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	return c.Log.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
