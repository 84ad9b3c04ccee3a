// Package config provides configuration loading and structs for the finsight server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Vector    VectorConfig    `yaml:"vector"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chat      ChatConfig      `yaml:"chat"`
	Market    MarketConfig    `yaml:"market"`
	News      NewsConfig      `yaml:"news"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"gt=0,lt=65536"`
}

// DatabaseConfig selects the relational store. DSN is used by postgres, Path by sqlite.
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"oneof=postgres sqlite"`
	DSN    string `yaml:"dsn" validate:"required_if=Driver postgres"`
	Path   string `yaml:"path" validate:"required_if=Driver sqlite"`
}

// VectorConfig holds vector collection settings.
type VectorConfig struct {
	Backend    string `yaml:"backend" validate:"oneof=qdrant memory"`
	URL        string `yaml:"url"`
	APIKey     string `yaml:"api_key"`
	Collection string `yaml:"collection" validate:"required"`
	Dimensions int    `yaml:"dimensions" validate:"gt=0"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider" validate:"oneof=openai gemini mock"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions" validate:"gt=0"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	CacheSize  int    `yaml:"cache_size" validate:"gte=0"`
}

// ChatConfig holds chat completion provider settings.
type ChatConfig struct {
	Provider    string        `yaml:"provider" validate:"oneof=openai gemini claude mock"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
	MaxTokens   int           `yaml:"max_tokens" validate:"gt=0"`
	Temperature float32       `yaml:"temperature" validate:"gte=0,lte=2"`
}

// MarketConfig holds market data provider settings.
type MarketConfig struct {
	Provider  string        `yaml:"provider" validate:"oneof=eodhd alpaca"`
	APIKey    string        `yaml:"api_key"`
	APISecret string        `yaml:"api_secret"`
	BaseURL   string        `yaml:"base_url"`
	DataURL   string        `yaml:"data_url"`
	Exchange  string        `yaml:"exchange"`
	RateLimit int           `yaml:"rate_limit" validate:"gt=0"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
}

// NewsConfig holds news source settings. FeedURL contains a single %s for the ticker.
type NewsConfig struct {
	Limit     int           `yaml:"limit" validate:"gt=0"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
	UserAgent string        `yaml:"user_agent"`
	FinvizURL string        `yaml:"finviz_url" validate:"required,url"`
	FeedURL   string        `yaml:"feed_url" validate:"required,contains=%s"`
}

// RetrievalConfig holds semantic retrieval settings.
type RetrievalConfig struct {
	Limit int `yaml:"limit" validate:"gt=0"`
}

// Load reads and parses the config file at path, applies environment overrides and defaults,
// expands paths, and validates the result.
// Returns an error if the file cannot be read or parsed, or the result is invalid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return finish(&cfg, filepath.Dir(path))
}

// Default returns a configuration built only from defaults and the environment.
// Relative paths resolve against the working directory.
func Default() (*Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return finish(&Config{}, dir)
}

func finish(cfg *Config, configDir string) (*Config, error) {
	ApplyEnv(cfg)
	ApplyDefaults(cfg)
	if cfg.Database.Driver == "sqlite" {
		cfg.Database.Path = expandPath(cfg.Database.Path, configDir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from the given .env files (default ".env").
// Missing files are ignored; variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory. ":memory:" is left alone.
func expandPath(path string, configDir string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
