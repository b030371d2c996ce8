// Package config resolves process-level settings from a YAML file and the
// environment. Behaviour settings such as the timezone live in the store.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/haikegani/QuitSmoke/internal/constants"
)

// Config holds process configuration. Later sources win: defaults, the YAML
// file, QUITSMOKE_* environment variables, then command line flags.
type Config struct {
	// DB is a SQLite path, a .json file path or a PostgreSQL connection string.
	DB     string `yaml:"db" envconfig:"QUITSMOKE_DB"`
	User   string `yaml:"user" envconfig:"QUITSMOKE_USER"`
	Debug  bool   `yaml:"debug" envconfig:"QUITSMOKE_DEBUG"`
	LogDir string `yaml:"log_dir" envconfig:"QUITSMOKE_LOG_DIR"`
	// MetricsTextfile is the default target of `export metrics`.
	MetricsTextfile string `yaml:"metrics_textfile" envconfig:"QUITSMOKE_METRICS_TEXTFILE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DB:   constants.DefaultDBPath,
		User: constants.DefaultUserID,
	}
}

// Load reads path (missing files are fine) and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(ExpandPath(path)))
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	// Full names in the tags keep envconfig from falling back to bare USER or DEBUG.
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.DB = ExpandPath(cfg.DB)
	cfg.LogDir = ExpandPath(cfg.LogDir)
	cfg.MetricsTextfile = ExpandPath(cfg.MetricsTextfile)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks required fields.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DB) == "" {
		return errors.New("db must not be empty")
	}
	if strings.TrimSpace(c.User) == "" {
		return errors.New("user must not be empty")
	}
	return nil
}

// IsPostgres reports whether DB is a PostgreSQL connection string.
func (c Config) IsPostgres() bool {
	return IsPostgresConnString(c.DB)
}

// IsPostgresConnString reports whether s looks like a PostgreSQL URL.
func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// IsRemote reports whether DB names a server rather than a local file.
func (c Config) IsRemote() bool {
	return c.IsPostgres() || c.DB == constants.KeyringDB || strings.Contains(c.DB, "host=")
}

// Dir returns the directory holding local state: the SQLite/JSON file's
// directory, or the default config directory for PostgreSQL.
func (c Config) Dir() string {
	if c.IsRemote() {
		return filepath.Dir(ExpandPath(constants.DefaultDBPath))
	}
	return filepath.Dir(c.DB)
}

// ExpandPath replaces a leading "~" with the user's home directory.
// Connection strings and empty values are returned unchanged.
func ExpandPath(p string) string {
	if p == "" || IsPostgresConnString(p) {
		return p
	}
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
