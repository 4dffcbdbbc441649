package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

// Config is the persisted application configuration.
type Config struct {
	// APIKey is the Radio France open API key (sent as x-token).
	APIKey string `json:"api_key"`
	// OutputDir is where downloaded episodes are stored.
	OutputDir string `json:"output_dir"`
	// DefaultStation restricts searches to one station when set.
	DefaultStation string `json:"default_station"`
}

// DefaultPath returns the config file location,
// ~/.config/radiofrance-dl/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate home directory")
	}
	return filepath.Join(home, ".config", "radiofrance-dl", "config.json"), nil
}

func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "podcasts"
	}
	return filepath.Join(home, "Podcasts", "RadioFrance")
}

// Load reads the configuration from path. A missing file yields the
// defaults; an unreadable or malformed file yields a ConfigError.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, &model.ConfigError{Op: "read", Err: err}
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, &model.ConfigError{Op: "parse", Err: err}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &model.ConfigError{Op: "write", Err: err}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &model.ConfigError{Op: "write", Err: err}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return &model.ConfigError{Op: "write", Err: err}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir()
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.OutputDir == "" {
		result = multierror.Append(result, errors.New("output directory is required"))
	}

	if c.DefaultStation != "" {
		if _, ok := model.Stations[model.StationID(c.DefaultStation)]; !ok {
			result = multierror.Append(result, errors.Errorf("unknown station id %q", c.DefaultStation))
		}
	}

	return result.ErrorOrNil()
}
