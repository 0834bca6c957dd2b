package application

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level dashboard configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Sources  SourcesConfig  `yaml:"sources"`
}

// ServerConfig defines the HTTP listener settings.
type ServerConfig struct {
	Host                  string `yaml:"host"`
	Port                  int    `yaml:"port"`
	ReadTimeoutSeconds    int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds   int    `yaml:"write_timeout_seconds"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	// APIKey guards /api routes when non-empty. Overridable via
	// the CARBON_API_KEY environment variable.
	APIKey string `yaml:"api_key"`
}

// DataConfig defines where dated snapshot files live.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// RedisConfig defines the optional stats cache. An empty addr
// disables caching entirely.
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// PostgresConfig defines the optional archive database. An empty DSN
// disables archiving.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SourcesConfig controls the collection pass.
type SourcesConfig struct {
	Enabled        bool `yaml:"enabled"`
	TimeoutSeconds int  `yaml:"timeout_seconds"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                  "0.0.0.0",
			Port:                  8080,
			ReadTimeoutSeconds:    15,
			WriteTimeoutSeconds:   30,
			RequestTimeoutSeconds: 25,
		},
		Data: DataConfig{
			Dir: "data",
		},
		Redis: RedisConfig{
			TTLSeconds: 300,
		},
		Postgres: PostgresConfig{
			TimeoutSeconds: 10,
		},
		Sources: SourcesConfig{
			Enabled:        true,
			TimeoutSeconds: 60,
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults and then
// applies environment overrides. An empty path returns the defaults
// with overrides applied.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("CARBON_API_KEY"); v != "" {
		c.Server.APIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

func (c *Config) RedisTTL() time.Duration {
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}

func (c *Config) PostgresTimeout() time.Duration {
	return time.Duration(c.Postgres.TimeoutSeconds) * time.Second
}

func (c *Config) SourcesTimeout() time.Duration {
	return time.Duration(c.Sources.TimeoutSeconds) * time.Second
}
