package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Share store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config aggregates runtime configuration for the server.
type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Maps   MapsConfig   `yaml:"maps"`
	Search SearchConfig `yaml:"search"`
	Share  ShareConfig  `yaml:"share"`
}

type HTTPConfig struct {
	Port           string        `yaml:"port"`
	StaticDir      string        `yaml:"staticDir"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
}

// MapsConfig controls the Google Maps Web Services client.
type MapsConfig struct {
	APIKey        string        `yaml:"apiKey"`
	BaseURL       string        `yaml:"baseUrl"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxAttempts   int           `yaml:"maxAttempts"`
	PhotoMaxWidth int           `yaml:"photoMaxWidth"`
	GeocodeCache  bool          `yaml:"geocodeCache"`
}

// SearchConfig tunes the find-places pipeline.
type SearchConfig struct {
	MaxResults  int `yaml:"maxResults"`
	Concurrency int `yaml:"concurrency"`
}

// ShareConfig selects and configures the share snapshot store.
type ShareConfig struct {
	Store         string        `yaml:"store"`
	DatabaseURL   string        `yaml:"databaseUrl"`
	RedisAddr     string        `yaml:"redisAddr"`
	RedisPassword string        `yaml:"redisPassword"`
	RedisDB       int           `yaml:"redisDb"`
	TTL           time.Duration `yaml:"ttl"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:         "8080",
			StaticDir:    "templates",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Maps: MapsConfig{
			BaseURL:       "https://maps.googleapis.com",
			Timeout:       10 * time.Second,
			MaxAttempts:   3,
			PhotoMaxWidth: 1600,
		},
		Search: SearchConfig{
			MaxResults:  3,
			Concurrency: 8,
		},
		Share: ShareConfig{
			Store: StoreMemory,
		},
	}
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Port = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.HTTP.StaticDir = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("GOOGLE_MAPS_API_KEY"); v != "" {
		cfg.Maps.APIKey = v
	}
	if v := os.Getenv("MAPS_BASE_URL"); v != "" {
		cfg.Maps.BaseURL = v
	}
	if v := os.Getenv("PROVIDER_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Maps.Timeout = parsed
		}
	}
	if v := os.Getenv("PROVIDER_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Maps.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("PHOTO_MAX_WIDTH"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Maps.PhotoMaxWidth = parsed
		}
	}
	if v := os.Getenv("GEOCODE_CACHE"); v != "" {
		cfg.Maps.GeocodeCache = parseBool(v)
	}
	if v := os.Getenv("MAX_RESULTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Search.MaxResults = parsed
		}
	}
	if v := os.Getenv("FANOUT_CONCURRENCY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Search.Concurrency = parsed
		}
	}
	if v := os.Getenv("SHARE_STORE"); v != "" {
		cfg.Share.Store = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Share.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Share.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Share.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			cfg.Share.RedisDB = parsed
		}
	}
	if v := os.Getenv("SHARE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Share.TTL = parsed
		}
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Port) == "" {
		return errors.New("http.port cannot be empty")
	}
	if strings.TrimSpace(c.Maps.APIKey) == "" {
		return errors.New("maps.apiKey (GOOGLE_MAPS_API_KEY) is required")
	}
	if strings.TrimSpace(c.Maps.BaseURL) == "" {
		return errors.New("maps.baseUrl cannot be empty")
	}
	if c.Maps.Timeout <= 0 {
		return errors.New("maps.timeout must be positive")
	}
	if c.Maps.MaxAttempts <= 0 {
		return errors.New("maps.maxAttempts must be positive")
	}
	if c.Maps.PhotoMaxWidth <= 0 {
		return errors.New("maps.photoMaxWidth must be positive")
	}
	if c.Search.MaxResults <= 0 {
		return errors.New("search.maxResults must be positive")
	}
	if c.Search.Concurrency <= 0 {
		return errors.New("search.concurrency must be positive")
	}
	if c.Share.TTL < 0 {
		return errors.New("share.ttl cannot be negative")
	}

	needsDB := c.Maps.GeocodeCache
	switch c.Share.Store {
	case StoreMemory:
	case StorePostgres:
		needsDB = true
	case StoreRedis:
		if strings.TrimSpace(c.Share.RedisAddr) == "" {
			return errors.New("share.redisAddr cannot be empty when share.store is redis")
		}
	default:
		return fmt.Errorf("share.store %q is not one of memory, postgres, redis", c.Share.Store)
	}
	if needsDB && strings.TrimSpace(c.Share.DatabaseURL) == "" {
		return errors.New("share.databaseUrl (DATABASE_URL) is required for the postgres store and geocode cache")
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
