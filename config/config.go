// Package config provides centralized configuration management using Viper
// for loading and go-playground/validator for validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Environment string          `mapstructure:"environment" validate:"required,oneof=development test production"`
	Server      ServerConfig    `mapstructure:"server"`
	Log         LogConfig       `mapstructure:"log"`
	Dataset     DatasetConfig   `mapstructure:"dataset"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Recommend   RecommendConfig `mapstructure:"recommend"`
	CORS        CORSConfig      `mapstructure:"cors"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// DatasetConfig selects where the recipe corpus is loaded from.
type DatasetConfig struct {
	Source string   `mapstructure:"source" validate:"required,oneof=file s3 database"`
	Path   string   `mapstructure:"path"`
	S3     S3Config `mapstructure:"s3"`
}

// S3Config locates the dataset object when dataset.source is "s3".
type S3Config struct {
	Bucket string `mapstructure:"bucket"`
	Key    string `mapstructure:"key"`
	Region string `mapstructure:"region"`
}

// DatabaseConfig contains SQL database configuration. It is used when the
// dataset source is "database" and by the seed command.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver" validate:"oneof=postgres sqlite"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
	// Path is the database file when driver is "sqlite".
	Path string `mapstructure:"path"`
}

// RedisConfig contains Redis configuration for the response cache and the
// rate limiter. With Enabled false the service runs without Redis.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	URL      string        `mapstructure:"url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// RateLimitConfig contains per-client rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit" validate:"min=1"`
	Window  time.Duration `mapstructure:"window"`
}

// RecommendConfig bounds recommendation requests.
type RecommendConfig struct {
	DefaultCount int `mapstructure:"default_count" validate:"min=1"`
	MaxCount     int `mapstructure:"max_count" validate:"min=1"`
}

// CORSConfig contains cross-origin settings for browser clients.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from an optional YAML file and PANTRYPAL_*
// environment variables, applies defaults, and validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/pantrypal")
	}

	v.SetEnvPrefix("PANTRYPAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Defaults plus environment are enough; only a broken file is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("dataset.source", "file")
	v.SetDefault("dataset.path", "data/train.json")
	v.SetDefault("dataset.s3.region", "us-east-1")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "pantrypal")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "pantrypal.db")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "5m")

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.limit", 60)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("recommend.default_count", 5)
	v.SetDefault("recommend.max_count", 50)

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Validate checks the configuration against its struct tags plus the
// cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Dataset.Source {
	case "file":
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset.path is required when dataset.source is file")
		}
	case "s3":
		if c.Dataset.S3.Bucket == "" || c.Dataset.S3.Key == "" {
			return fmt.Errorf("dataset.s3.bucket and dataset.s3.key are required when dataset.source is s3")
		}
	}

	if c.Recommend.MaxCount < c.Recommend.DefaultCount {
		return fmt.Errorf("recommend.max_count must be at least recommend.default_count")
	}

	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool { return c.Environment == "production" }

// Addr returns the host:port address for the Redis client.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
