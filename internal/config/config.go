package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/thenoetrevino/tandem/internal/config/colors"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig     `yaml:"database" toml:"database"`
	Log         LogConfig          `yaml:"log" toml:"log"`
	Server      ServerConfig       `yaml:"server" toml:"server"`
	Assignments AssignmentsConfig  `yaml:"assignments" toml:"assignments"`
	ColorScheme colors.ColorScheme `yaml:"theme" toml:"theme"`
}

// DatabaseConfig selects and tunes the datastore
type DatabaseConfig struct {
	Driver       string `yaml:"driver" toml:"driver"`
	Path         string `yaml:"path,omitempty" toml:"path,omitempty"` // sqlite file
	DSN          string `yaml:"dsn,omitempty" toml:"dsn,omitempty"`   // postgres connection string
	MaxOpenConns int    `yaml:"max_open_conns,omitempty" toml:"max_open_conns,omitempty"`
}

// LogConfig controls the slog default logger
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // text, json or pretty
	File   string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr         string   `yaml:"addr" toml:"addr"`
	AllowOrigins []string `yaml:"allow_origins,omitempty" toml:"allow_origins,omitempty"`
	RateLimit    float64  `yaml:"rate_limit" toml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst    int      `yaml:"rate_burst" toml:"rate_burst"`
	ReadOnly     bool     `yaml:"read_only,omitempty" toml:"read_only,omitempty"`
}

// AssignmentsConfig controls how assignment sets are replaced
type AssignmentsConfig struct {
	// Atomic runs delete+insert in one transaction. Nil means true.
	Atomic *bool `yaml:"atomic,omitempty" toml:"atomic,omitempty"`
}

// IsAtomic reports whether assignment replacement is transactional
func (a AssignmentsConfig) IsAtomic() bool {
	return a.Atomic == nil || *a.Atomic
}

// Default returns the configuration used when no file or environment overrides exist
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   defaultDataPath("tandem.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   defaultDataPath(filepath.Join("logs", "tandem.log")),
		},
		Server: ServerConfig{
			Addr:         ":8080",
			AllowOrigins: []string{"*"},
			RateLimit:    20,
			RateBurst:    40,
		},
		// colors resolve from the preset once files and env are applied
		ColorScheme: colors.ColorScheme{Preset: "default"},
	}
}

// defaultDataPath places a file under ~/.tandem, falling back to the working directory
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tandem", name)
	}
	return filepath.Join(home, ".tandem", name)
}

// loadThemeFile loads and merges theme from TANDEM_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("TANDEM_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		if themeConfig.Theme.Preset != "" {
			config.ColorScheme.Preset = themeConfig.Theme.Preset
		}
		config.ColorScheme.MergeFrom(themeConfig.Theme, true)
	}
}

// Load builds the configuration from defaults, the config file, .env and TANDEM_* variables.
// A missing config file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	config := Default()

	configPath, err := getConfigPath()
	if err == nil {
		if err := decodeFile(configPath, config); err != nil {
			return nil, err
		}
	}

	loadThemeFile(config)
	applyEnv(config)
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// decodeFile merges the file at path into config, choosing the decoder by extension
func decodeFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), config); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides config values with TANDEM_* environment variables
func applyEnv(c *Config) {
	setString := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v := os.Getenv(key); v != "" {
				*dst = v
				return
			}
		}
	}

	setString(&c.Database.Driver, "TANDEM_DB_DRIVER")
	setString(&c.Database.Path, "TANDEM_DB_PATH")
	setString(&c.Database.DSN, "TANDEM_DB_DSN", "DATABASE_URL")
	setString(&c.Log.Level, "TANDEM_LOG_LEVEL")
	setString(&c.Log.Format, "TANDEM_LOG_FORMAT")
	setString(&c.Log.File, "TANDEM_LOG_FILE")
	setString(&c.Server.Addr, "TANDEM_ADDR")

	if port := os.Getenv("PORT"); port != "" && os.Getenv("TANDEM_ADDR") == "" {
		c.Server.Addr = ":" + port
	}

	if v, err := strconv.ParseBool(os.Getenv("TANDEM_ASSIGN_ATOMIC")); err == nil {
		c.Assignments.Atomic = &v
	}
	if v, err := strconv.ParseBool(os.Getenv("TANDEM_READ_ONLY")); err == nil {
		c.Server.ReadOnly = v
	}
}

// Validate reports settings that would prevent the datastore from opening
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("%w: database.dsn is required for postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	switch c.Log.Format {
	case "text", "json", "pretty":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}

	if c.Server.RateLimit < 0 {
		return fmt.Errorf("%w: server.rate_limit must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		return toml.NewEncoder(f).Encode(c)
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Path returns the config file location Load reads from
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if explicit := os.Getenv("TANDEM_CONFIG"); explicit != "" {
		return explicit, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tandem", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tandem", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	def := Default()
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		c.Database.Path = def.Database.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.RateBurst <= 0 {
		c.Server.RateBurst = def.Server.RateBurst
	}
	c.ColorScheme.ApplyDefaults()
}
