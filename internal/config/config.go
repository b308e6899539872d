package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// TEAMBOARD_STORAGE_DSN for storage.dsn.
const EnvPrefix = "TEAMBOARD"

// Storage drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config represents the complete service configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Export  ExportConfig  `mapstructure:"export"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	// Addr is the listen address (default: ":8080")
	Addr string `mapstructure:"addr"`
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	// Driver is "sqlite3" (default) or "postgres"
	Driver string `mapstructure:"driver"`
	// DSN is a file path for sqlite3 or a lib/pq connection string for postgres
	DSN string `mapstructure:"dsn"`
}

// ExportConfig controls where board reports are written
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig controls logging output
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format is "text" (default) or "json"
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{Driver: DriverSQLite, DSN: "data/teamboard.db"},
		Export:  ExportConfig{Dir: "out"},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the optional config file at path, applies TEAMBOARD_*
// environment overrides on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("storage.driver", defaults.Storage.Driver)
	v.SetDefault("storage.dsn", defaults.Storage.DSN)
	v.SetDefault("export.dir", defaults.Export.Dir)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Storage.Driver))
	}
	if c.Storage.DSN == "" {
		errs = append(errs, errors.New("storage.dsn must not be empty"))
	}
	if c.Export.Dir == "" {
		errs = append(errs, errors.New("export.dir must not be empty"))
	}
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewLogger builds the slog logger described by the log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levels[strings.ToLower(c.Log.Level)]}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
