// Package config centralizes all application configuration into typed structs.
//
// Go Learning Note — Configuration Management:
// NewDefaultConfig gives typed defaults as plain struct literals. Load layers
// an optional config.yaml and MESHCODE_* environment variables over those
// defaults with "github.com/spf13/viper", so a deployment only states what it
// changes.
//
// Using typed structs (not raw strings/maps) gives you compile-time safety
// and IDE autocompletion. This is strongly preferred in Go over untyped config.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"meshcode/internal/mesh"
)

// EnvPrefix prefixes every environment override: MESHCODE_MESH_MAX_CELLS
// sets mesh.max_cells.
const EnvPrefix = "MESHCODE"

// Config is the top-level configuration container.
//
// Go Learning Note — Struct Composition:
// Go doesn't have classes or inheritance. Instead, you compose structs by
// nesting them. Config "has a" ServerConfig, MeshConfig, etc.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mesh   MeshConfig   `mapstructure:"mesh"`
	Index  IndexConfig  `mapstructure:"index"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
//
// Go Learning Note — time.Duration:
// Go uses time.Duration (an int64 of nanoseconds) instead of raw integers for
// timeouts. viper decodes strings such as "10s" or "1m30s" into it.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MeshConfig bounds the work a single request may ask of the mesh core.
type MeshConfig struct {
	DefaultLevel    string  `mapstructure:"default_level"`     // used when a request names no level
	MaxRadiusMeters float64 `mapstructure:"max_radius_meters"` // larger radius searches are rejected
	MaxCells        int     `mapstructure:"max_cells"`         // enumerations yielding more cells are rejected
}

// IndexConfig controls the point index. Level3 (~1 km cells) suits city-scale
// tracking; finer levels mean smaller buckets but more cells per search.
type IndexConfig struct {
	Level                     string  `mapstructure:"level"`
	DefaultSearchRadiusMeters float64 `mapstructure:"default_search_radius_meters"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or text
}

// NewDefaultConfig returns a Config populated with sensible defaults.
//
// Go Learning Note — Constructor Functions:
// Go has no constructors. By convention, New<Type>() functions serve the same
// purpose. They return a pointer (*Config) so the caller gets a reference to
// shared state rather than a copy.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Mesh: MeshConfig{
			DefaultLevel:    mesh.Level3.String(),
			MaxRadiusMeters: 50000,
			MaxCells:        10000,
		},
		Index: IndexConfig{
			Level:                     mesh.Level3.String(),
			DefaultSearchRadiusMeters: 1000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from an optional config.yaml and from the
// environment, on top of NewDefaultConfig. Files are looked up in paths, or
// in "." and "./configs" when none are given.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v, NewDefaultConfig())

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: MESHCODE_INDEX_LEVEL → index.level
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("mesh.default_level", d.Mesh.DefaultLevel)
	v.SetDefault("mesh.max_radius_meters", d.Mesh.MaxRadiusMeters)
	v.SetDefault("mesh.max_cells", d.Mesh.MaxCells)
	v.SetDefault("index.level", d.Index.Level)
	v.SetDefault("index.default_search_radius_meters", d.Index.DefaultSearchRadiusMeters)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port == "" {
		errs = append(errs, "server.port is required")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "server.shutdown_timeout must be positive")
	}
	if _, err := mesh.ParseLevel(c.Mesh.DefaultLevel); err != nil {
		errs = append(errs, fmt.Sprintf("mesh.default_level: %v", err))
	}
	if !(c.Mesh.MaxRadiusMeters > 0) {
		errs = append(errs, fmt.Sprintf("mesh.max_radius_meters must be positive, got %v", c.Mesh.MaxRadiusMeters))
	}
	if c.Mesh.MaxCells <= 0 {
		errs = append(errs, fmt.Sprintf("mesh.max_cells must be positive, got %d", c.Mesh.MaxCells))
	}
	if _, err := mesh.ParseLevel(c.Index.Level); err != nil {
		errs = append(errs, fmt.Sprintf("index.level: %v", err))
	}
	if c.Index.DefaultSearchRadiusMeters < 0 || c.Index.DefaultSearchRadiusMeters > c.Mesh.MaxRadiusMeters {
		errs = append(errs, "index.default_search_radius_meters must be between 0 and mesh.max_radius_meters")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// DefaultLevel is the parsed mesh.default_level. Call after Validate.
func (c *Config) DefaultLevel() mesh.Level {
	l, _ := mesh.ParseLevel(c.Mesh.DefaultLevel)
	return l
}

// IndexLevel is the parsed index.level. Call after Validate.
func (c *Config) IndexLevel() mesh.Level {
	l, _ := mesh.ParseLevel(c.Index.Level)
	return l
}
