package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tandem/internal/config/colors"
)

// isolate points every lookup Load performs at a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{
		"TANDEM_CONFIG", "TANDEM_THEME_FILE", "TANDEM_DB_DRIVER", "TANDEM_DB_PATH",
		"TANDEM_DB_DSN", "DATABASE_URL", "TANDEM_LOG_LEVEL", "TANDEM_LOG_FORMAT",
		"TANDEM_LOG_FILE", "TANDEM_ADDR", "PORT", "TANDEM_ASSIGN_ATOMIC", "TANDEM_READ_ONLY",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(dir)
	return dir
}

func TestLoadConfigWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Assignments.IsAtomic())
	assert.Equal(t, "default", cfg.ColorScheme.Preset)
	assert.NotEmpty(t, cfg.ColorScheme.Accent)
}

func TestLoadConfigWithYAMLFile(t *testing.T) {
	dir := isolate(t)

	configDir := filepath.Join(dir, "tandem")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	content := `database:
  driver: sqlite
  path: /tmp/custom.db
log:
  level: debug
  format: json
assignments:
  atomic: false
theme:
  preset: monochrome
  accent: "#123456"
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Assignments.IsAtomic())
	assert.Equal(t, "#123456", cfg.ColorScheme.Accent)
	// unset colors come from the chosen preset
	assert.Equal(t, colors.Monochrome().Subtle, cfg.ColorScheme.Subtle)
}

func TestLoadConfigWithTOMLFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "tandem.toml")
	content := `[database]
driver = "postgres"
dsn = "postgres://localhost/tandem?sslmode=disable"

[server]
addr = ":9000"
rate_limit = 5.0
rate_burst = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("TANDEM_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/tandem?sslmode=disable", cfg.Database.DSN)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.InDelta(t, 5.0, cfg.Server.RateLimit, 0.001)
	assert.Equal(t, 10, cfg.Server.RateBurst)
}

func TestLoadConfigPresetOnly(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "tandem.toml")
	require.NoError(t, os.WriteFile(path, []byte("[theme]\npreset = \"monochrome\"\n"), 0o644))
	t.Setenv("TANDEM_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, *colors.Monochrome(), cfg.ColorScheme)
}

func TestLoadConfigDefaultPresetColors(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, *colors.Default(), cfg.ColorScheme)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	isolate(t)

	t.Setenv("TANDEM_DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://db/tandem")
	t.Setenv("TANDEM_LOG_LEVEL", "warn")
	t.Setenv("PORT", "3001")
	t.Setenv("TANDEM_ASSIGN_ATOMIC", "false")
	t.Setenv("TANDEM_READ_ONLY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://db/tandem", cfg.Database.DSN)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ":3001", cfg.Server.Addr)
	assert.False(t, cfg.Assignments.IsAtomic())
	assert.True(t, cfg.Server.ReadOnly)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TANDEM_ADDR=:7070\n"), 0o644))
	// godotenv never overrides variables that are already present, even when empty
	require.NoError(t, os.Unsetenv("TANDEM_ADDR"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestThemeFileLoading(t *testing.T) {
	dir := isolate(t)

	themePath := filepath.Join(dir, "theme.yaml")
	themeContent := `theme:
  accent: "#FF0000"
  success: "#00FF00"
`
	require.NoError(t, os.WriteFile(themePath, []byte(themeContent), 0o644))
	t.Setenv("TANDEM_THEME_FILE", themePath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "#FF0000", cfg.ColorScheme.Accent)
	assert.Equal(t, "#00FF00", cfg.ColorScheme.Success)
	assert.Equal(t, colors.Default().Error, cfg.ColorScheme.Error)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = DriverPostgres }, true},
		{"sqlite without path", func(c *Config) { c.Database.Path = "" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"negative rate", func(c *Config) { c.Server.RateLimit = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Log.Level = "debug"
	atomic := false
	cfg.Assignments.Atomic = &atomic
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.Log.Level)
	assert.False(t, loaded.Assignments.IsAtomic())
}
