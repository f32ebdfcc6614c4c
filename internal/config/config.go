// Package config resolves rosterview settings from defaults, the YAML config
// file, an optional .env file and ROSTERVIEW_* environment variables.
// Command-line flags are applied on top by the cli package.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/rshade/rosterview/internal/loader"
	"github.com/rshade/rosterview/internal/logging"
	"github.com/rshade/rosterview/internal/render"
)

// Defaults.
const (
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
	dirName         = ".rosterview"
	fileName        = "config.yaml"
	dotEnvFile      = ".env"
	homeEnvVar      = "ROSTERVIEW_HOME"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// SourceConfig points at the remote collection.
type SourceConfig struct {
	Endpoint string        `yaml:"endpoint" env:"ROSTERVIEW_ENDPOINT"`
	Timeout  time.Duration `yaml:"timeout"  env:"ROSTERVIEW_TIMEOUT"`
}

// OutputConfig controls non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" env:"ROSTERVIEW_OUTPUT"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"ROSTERVIEW_LOG_LEVEL"`
	Format string `yaml:"format" env:"ROSTERVIEW_LOG_FORMAT"`
	File   string `yaml:"file"   env:"ROSTERVIEW_LOG_FILE"`
}

// ServerConfig controls `rosterview serve`.
type ServerConfig struct {
	Addr string `yaml:"addr" env:"ROSTERVIEW_ADDR"`
}

// New returns a Config holding the built-in defaults.
func New() *Config {
	return &Config{
		Source: SourceConfig{
			Endpoint: loader.DefaultEndpoint,
			Timeout:  loader.DefaultTimeout,
		},
		Output: OutputConfig{
			DefaultFormat: string(render.FormatTable),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: logging.FormatConsole,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
	}
}

// Dir returns the rosterview home directory: $ROSTERVIEW_HOME, or
// ~/.rosterview when unset.
func Dir() string {
	if dir := os.Getenv(homeEnvVar); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// DefaultPath returns the config file consulted when no --config is given.
func DefaultPath() string {
	return filepath.Join(Dir(), fileName)
}

// LoadOptions selects the files Load reads. Empty fields use the defaults.
type LoadOptions struct {
	// ConfigPath is an explicit config file; it must exist when set.
	ConfigPath string
	// DotEnvPath is the .env file; a missing file is ignored.
	DotEnvPath string
	// Override, when set, runs after the environment is applied and before
	// validation. Command-line flags are applied here.
	Override func(*Config)
}

// Load resolves the configuration in order: defaults, YAML file, .env file,
// environment, opts.Override. The result is validated.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	log := logging.FromContext(ctx)
	cfg := New()

	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	switch _, statErr := os.Stat(path); {
	case statErr == nil:
		if err := ShallowMergeYAML(cfg, path); err != nil {
			return nil, err
		}
		log.Debug().Ctx(ctx).
			Str("component", "config").
			Str("operation", "load").
			Str("path", path).
			Msg("merged config file")
	case explicit:
		return nil, fmt.Errorf("reading config file %s: %w", path, statErr)
	}

	dotEnv := opts.DotEnvPath
	if dotEnv == "" {
		dotEnv = dotEnvFile
	}
	if err := LoadDotEnv(dotEnv); err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if opts.Override != nil {
		opts.Override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv exports the variables in path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any ROSTERVIEW_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Source.Endpoint)
	if c.Source.Endpoint == "" || err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: source.endpoint %q must be an http(s) URL", ErrInvalidConfig, c.Source.Endpoint)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("%w: source.timeout must be positive, got %s", ErrInvalidConfig, c.Source.Timeout)
	}
	if _, err = render.ParseFormat(c.Output.DefaultFormat); err != nil {
		return fmt.Errorf("%w: output.default_format: %w", ErrInvalidConfig, err)
	}
	if c.Logging.Level != "" {
		if _, err = zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
			return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
		}
	}
	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: logging.format %q (use console or json)", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
