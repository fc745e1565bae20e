package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds settings for the tower server and CLI.
type Config struct {
	Env           string           `yaml:"env"`
	HTTPAddr      string           `yaml:"http_addr"`
	DataDirectory string           `yaml:"data_directory"`
	DefaultFile   string           `yaml:"default_file"`
	CORSOrigins   []string         `yaml:"cors_origins"`
	Cache         CacheConfig      `yaml:"cache"`
	RateLimit     RateLimitConfig  `yaml:"rate_limit"`
	Congestion    CongestionConfig `yaml:"congestion"`
}

// CacheConfig selects where loaded flight batches are kept between requests.
type CacheConfig struct {
	Backend       string `yaml:"backend"` // memory or redis
	TTLSeconds    int    `yaml:"ttl_seconds"`
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64  `yaml:"requests_per_second"`
	Burst             int      `yaml:"burst"`
	Whitelist         []string `yaml:"whitelist"`
}

type CongestionConfig struct {
	WindowMinutes int `yaml:"window_minutes"`
	Threshold     int `yaml:"threshold"`
	Workers       int `yaml:"workers"`
}

// DefaultConfig returns the settings used when no file is provided.
func DefaultConfig() Config {
	return Config{
		Env:           "development",
		HTTPAddr:      ":8000",
		DataDirectory: ".",
		DefaultFile:   "canadian_flights_250.json",
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:3001",
		},
		Cache: CacheConfig{
			Backend:    "memory",
			TTLSeconds: 300,
			RedisHost:  "localhost",
			RedisPort:  "6379",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
			Whitelist:         []string{"127.0.0.1"},
		},
		Congestion: CongestionConfig{
			WindowMinutes: 10,
			Threshold:     3,
			Workers:       1,
		},
	}
}

// Load reads configuration from a yaml file and applies environment
// overrides. A missing file falls back to defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDirectory = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Cache.RedisHost = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		cfg.Cache.RedisPort = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.RedisPassword = v
	}
	if v := os.Getenv("CONGESTION_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CONGESTION_WORKERS: %w", err)
		}
		cfg.Congestion.Workers = n
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("http_addr is required")
	}
	if c.DataDirectory == "" {
		return errors.New("data_directory is required")
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache backend %q must be memory or redis", c.Cache.Backend)
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache ttl_seconds must be positive, got %d", c.Cache.TTLSeconds)
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rate_limit requests_per_second and burst must be positive")
	}
	if c.Congestion.WindowMinutes < 1 || c.Congestion.WindowMinutes > 60 {
		return fmt.Errorf("congestion window_minutes must be 1-60, got %d", c.Congestion.WindowMinutes)
	}
	if c.Congestion.Threshold < 1 {
		return fmt.Errorf("congestion threshold must be >= 1, got %d", c.Congestion.Threshold)
	}
	if c.Congestion.Workers < 1 {
		return fmt.Errorf("congestion workers must be >= 1, got %d", c.Congestion.Workers)
	}
	return nil
}
