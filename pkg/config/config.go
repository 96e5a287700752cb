// ABOUTME: Configuration management for the application backed by viper
// ABOUTME: Reads flat environment keys with an optional newsnex.yaml file underneath

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Log contains logging configuration
	Log LogConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Store contains extraction store configuration
	Store StoreConfig

	// Fetch controls how article pages are retrieved
	Fetch FetchConfig

	// Search contains LinkedIn search configuration
	Search SearchConfig

	// RateLimit contains per-client request limits
	RateLimit RateLimitConfig

	// Share contains share link configuration
	Share ShareConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// Workers is the size of the background extraction pool
	Workers int
}

// LogConfig holds logger selection and output settings
type LogConfig struct {
	Level   string
	Format  string
	Backend string
	File    string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig

	// SQLite contains file cache configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	Path string
}

// StoreConfig holds the extraction store DSN. The default keeps results in an
// in-memory database that lives as long as the process.
type StoreConfig struct {
	DSN string
}

// FetchConfig controls article retrieval
type FetchConfig struct {
	// Mode is "http" for plain requests or "browser" for headless rendering
	Mode    string
	Timeout time.Duration
}

// SearchConfig holds the custom search credentials used for LinkedIn matching
type SearchConfig struct {
	APIKey   string
	EngineID string
	Delay    time.Duration
}

// Enabled reports whether LinkedIn search credentials are present
func (s SearchConfig) Enabled() bool {
	return s.APIKey != "" && s.EngineID != ""
}

// RateLimitConfig holds per-client request limits
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// ShareConfig holds share link settings
type ShareConfig struct {
	// TTL is how long a share link stays valid; zero means forever
	TTL time.Duration
}

// Defaults applied when neither the environment nor a config file sets a key
const (
	DefaultPort          = "8000"
	DefaultStoreDSN      = "file::memory:?cache=shared"
	DefaultFetchTimeout  = 30 * time.Second
	DefaultSearchDelayMS = 1000
)

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	return Load("")
}

// Load reads configuration from the given YAML file (when not empty) and
// lets environment variables override it.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			Workers: getInt(v, "WORKERS", 4),
		},
		Log: LogConfig{
			Level:   strings.ToLower(v.GetString("LOG_LEVEL")),
			Format:  strings.ToLower(v.GetString("LOG_FORMAT")),
			Backend: strings.ToLower(v.GetString("LOG_BACKEND")),
			File:    v.GetString("LOG_FILE"),
		},
		Cache: CacheConfig{
			Type: strings.ToLower(v.GetString("CACHE_TYPE")),
			Redis: RedisConfig{
				Address:  v.GetString("REDIS_ADDRESS"),
				Password: v.GetString("REDIS_PASSWORD"),
				DB:       getInt(v, "REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getInt(v, "MEMORY_CACHE_EXPIRATION", 3600),
			},
			SQLite: SQLiteConfig{
				Path: v.GetString("SQLITE_CACHE_PATH"),
			},
		},
		Store: StoreConfig{
			DSN: v.GetString("STORE_DSN"),
		},
		Fetch: FetchConfig{
			Mode:    strings.ToLower(v.GetString("FETCH_MODE")),
			Timeout: getDuration(v, "FETCH_TIMEOUT", DefaultFetchTimeout),
		},
		Search: SearchConfig{
			APIKey:   v.GetString("SEARCH_API_KEY"),
			EngineID: v.GetString("SEARCH_ENGINE_ID"),
			Delay:    time.Duration(getInt(v, "SEARCH_DELAY_MS", DefaultSearchDelayMS)) * time.Millisecond,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getFloat(v, "RATE_LIMIT", 5),
			Burst:             getInt(v, "RATE_BURST", 10),
		},
		Share: ShareConfig{
			TTL: getDuration(v, "SHARE_TTL", 0),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_BACKEND", "logrus")
	v.SetDefault("CACHE_TYPE", "memory")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("SQLITE_CACHE_PATH", "newsnex-cache.db")
	v.SetDefault("STORE_DSN", DefaultStoreDSN)
	v.SetDefault("FETCH_MODE", "http")
}

// getInt returns the key as int, falling back to the default when unset or
// unparsable
func getInt(v *viper.Viper, key string, defaultValue int) int {
	if value := v.GetString(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloat(v *viper.Viper, key string, defaultValue float64) float64 {
	if value := v.GetString(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getDuration accepts Go duration strings ("30s") or bare seconds ("30")
func getDuration(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	value := v.GetString(key)
	if value == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	switch c.Log.Backend {
	case "logrus", "zap", "console":
	default:
		return errors.New("log backend must be 'logrus', 'zap' or 'console'")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite cache path cannot be empty when using sqlite cache")
	}

	if c.Store.DSN == "" {
		return errors.New("store dsn cannot be empty")
	}

	if c.Fetch.Mode != "http" && c.Fetch.Mode != "browser" {
		return errors.New("fetch mode must be 'http' or 'browser'")
	}

	if c.Fetch.Timeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate limit values cannot be negative")
	}

	if c.Share.TTL < 0 {
		return errors.New("share ttl cannot be negative")
	}

	return nil
}
