package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nocap-placify/placify/internal/logging"
)

const (
	// ProjectConfigFile is looked up in the working directory when no path is given.
	ProjectConfigFile = "placify.yaml"
	// EnvFile is read for PLACIFY_* variables; the process environment wins.
	EnvFile = ".env"
	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "PLACIFY_"
)

// Loader handles configuration loading with layered precedence:
// defaults, YAML file, .env file, process environment.
type Loader struct {
	logger    *slog.Logger
	lookupEnv func(string) (string, bool)
	envFiles  []string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.lookupEnv = fn
	}
}

// WithEnvFiles replaces the default .env file list.
func WithEnvFiles(files ...string) LoaderOption {
	return func(l *Loader) {
		l.envFiles = files
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	l := &Loader{
		logger:    logger,
		lookupEnv: os.LookupEnv,
		envFiles:  []string{EnvFile},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds the configuration. An explicit path must exist; without one,
// placify.yaml in the working directory is used when present.
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	switch {
	case path != "":
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = loaded
		l.logger.Debug("Loaded config", "path", path)
	default:
		if loaded, err := LoadFromFile(ProjectConfigFile); err == nil {
			config = loaded
			l.logger.Debug("Loaded project config", "path", ProjectConfigFile)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	env, err := l.environment()
	if err != nil {
		return nil, err
	}
	if err := applyEnv(config, env); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// environment merges .env files with the process environment.
func (l *Loader) environment() (func(string) (string, bool), error) {
	fromFiles := make(map[string]string)
	for _, file := range l.envFiles {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		l.logger.Debug("Loaded env file", "path", file)
		for k, v := range values {
			if _, ok := fromFiles[k]; !ok {
				fromFiles[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := fromFiles[key]
		return v, ok
	}, nil
}

func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}

	str("LISTEN", &c.Server.Listen)
	str("MCP_LISTEN", &c.Server.MCPListen)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("DEFINITIONS", &c.Definitions)
	dur("SUBMIT_TIMEOUT", &c.Wizard.SubmitTimeout)
	dur("RESET_DELAY", &c.Wizard.ResetDelay)
	str("GATEWAY", &c.Gateway.Kind)
	str("GATEWAY_URL", &c.Gateway.BaseURL)
	str("POSTGRES_DSN", &c.Gateway.PostgresDSN)
	str("STORE", &c.Store.Kind)
	str("STORE_DIR", &c.Store.Dir)
	str("REDIS_ADDR", &c.Store.Redis.Addr)
	str("REDIS_PASSWORD", &c.Store.Redis.Password)
	str("REDIS_PREFIX", &c.Store.Redis.Prefix)
	dur("REDIS_TTL", &c.Store.Redis.TTL)
	str("ENCRYPTION_KEY", &c.Store.EncryptionKey)
	str("NATS_URL", &c.NATS.URL)

	if v, ok := lookup(EnvPrefix + "REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err))
		} else {
			c.Store.Redis.DB = db
		}
	}
	if v, ok := lookup(EnvPrefix + "PII_PATTERNS"); ok {
		c.Store.PIIPatterns = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Store.PIIPatterns = append(c.Store.PIIPatterns, p)
			}
		}
	}

	return errors.Join(errs...)
}
