// Package config provides configuration loading for the placify binary.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/persistence/middleware"
	"gopkg.in/yaml.v3"
)

// Gateway kinds.
const (
	GatewayHTTP     = "http"
	GatewayPostgres = "postgres"
	GatewayMemory   = "memory"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config represents the complete Placify configuration.
type Config struct {
	Server      ServerConfig  `yaml:"server"`
	Log         LogConfig     `yaml:"log"`
	Wizard      WizardConfig  `yaml:"wizard"`
	Gateway     GatewayConfig `yaml:"gateway"`
	Store       StoreConfig   `yaml:"store"`
	NATS        NATSConfig    `yaml:"nats"`
	Definitions string        `yaml:"definitions"` // Directory of YAML wizards; empty uses the built-ins
}

// ServerConfig configures the inbound listeners.
type ServerConfig struct {
	Listen    string `yaml:"listen"`
	MCPListen string `yaml:"mcp_listen"` // Empty disables MCP over SSE in serve
}

// LogConfig configures slog.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// WizardConfig holds the timing of the wizard lifecycle.
type WizardConfig struct {
	SubmitTimeout time.Duration `yaml:"submit_timeout"`
	ResetDelay    time.Duration `yaml:"reset_delay"`
}

// GatewayConfig selects where submissions go.
type GatewayConfig struct {
	Kind        string `yaml:"kind"`
	BaseURL     string `yaml:"base_url"`
	PostgresDSN string `yaml:"postgres_dsn"`

	// Paths overrides the endpoint per submission target for the http gateway.
	Paths map[string]string `yaml:"paths"`
}

// StoreConfig selects where sessions live.
type StoreConfig struct {
	Kind          string      `yaml:"kind"`
	Dir           string      `yaml:"dir"`
	Redis         RedisConfig `yaml:"redis"`
	EncryptionKey string      `yaml:"encryption_key"`
	PIIPatterns   []string    `yaml:"pii_patterns"`
}

// RedisConfig configures the Redis store and locker.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// NATSConfig configures the submission publisher. Empty URL disables it.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Listen: ":8080"},
		Log:    LogConfig{Level: "info", Format: "text"},
		Wizard: WizardConfig{
			SubmitTimeout: domain.DefaultSubmitTimeout,
			ResetDelay:    domain.DefaultResetDelay,
		},
		Gateway: GatewayConfig{Kind: GatewayMemory},
		Store: StoreConfig{
			Kind: StoreMemory,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "placify:session:",
				TTL:    24 * time.Hour,
			},
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Wizard.SubmitTimeout <= 0 {
		errs = append(errs, errors.New("wizard.submit_timeout must be positive"))
	}
	if c.Wizard.ResetDelay <= 0 {
		errs = append(errs, errors.New("wizard.reset_delay must be positive"))
	}

	switch c.Gateway.Kind {
	case GatewayHTTP:
		if c.Gateway.BaseURL == "" {
			errs = append(errs, errors.New("gateway.base_url is required for the http gateway"))
		}
	case GatewayPostgres:
		if c.Gateway.PostgresDSN == "" {
			errs = append(errs, errors.New("gateway.postgres_dsn is required for the postgres gateway"))
		}
	case GatewayMemory:
	default:
		errs = append(errs, fmt.Errorf("gateway.kind %q is not one of http, postgres, memory", c.Gateway.Kind))
	}

	for target, path := range c.Gateway.Paths {
		if !strings.HasPrefix(path, "/") {
			errs = append(errs, fmt.Errorf("gateway.paths.%s must start with /", target))
		}
	}

	switch c.Store.Kind {
	case StoreFile:
		if c.Store.Dir == "" {
			errs = append(errs, errors.New("store.dir is required for the file store"))
		}
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required for the redis store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("store.kind %q is not one of memory, file, redis", c.Store.Kind))
	}

	if c.Store.EncryptionKey != "" {
		if _, err := middleware.ParseKey(c.Store.EncryptionKey); err != nil {
			errs = append(errs, fmt.Errorf("store.encryption_key: %w", err))
		}
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}
