package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the project-local configuration file name.
const ConfigFile = ".remat.yaml"

// Config holds settings shared by all commands. Precedence is flags over
// environment over config file.
type Config struct {
	CatalogPath string `yaml:"catalog" env:"REMAT_CATALOG"`
	GameDir     string `yaml:"game_dir" env:"REMAT_GAME_DIR"`
	RedisURL    string `yaml:"redis_url" env:"REMAT_REDIS_URL"`
	Verbose     bool   `yaml:"verbose" env:"REMAT_VERBOSE"`
}

// LoadConfig reads the config file at path (ConfigFile when empty) and then
// overlays environment variables. A missing file is not an error; a malformed
// one is.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = ConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Optional when not named explicitly.
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
