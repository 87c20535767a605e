// Package gamedir validates and discovers the game installation directory.
// Discovery is an explicit call, never a hidden constructor side effect, so
// session construction stays deterministic under test.
package gamedir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/remat/pkg/domain"
	"github.com/caarlos0/env/v11"
)

// RequiredSubdir is the relative path that must exist inside any configured
// installation directory. Transforms resolve on-disk game assets below it.
const RequiredSubdir = "Data/materials"

// EnvVar names the environment variable probed by Discover.
const EnvVar = "REMAT_GAME_DIR"

// ErrNotConfigured is returned by Discover when the environment does not name
// an installation directory.
var ErrNotConfigured = errors.New("game directory not configured")

type envConfig struct {
	Dir string `env:"REMAT_GAME_DIR"`
}

// Validate checks that dir contains the required data subpath. It returns a
// domain.ErrGameDirInvalid error otherwise and never mutates anything.
func Validate(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: empty path", domain.ErrGameDirInvalid)
	}
	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(RequiredSubdir)))
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s does not contain %s", domain.ErrGameDirInvalid, dir, RequiredSubdir)
	}
	return nil
}

// Discover probes the environment for an installation directory and validates
// it. Returns ErrNotConfigured when the variable is unset or empty.
func Discover() (string, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return "", fmt.Errorf("read environment: %w", err)
	}
	if cfg.Dir == "" {
		return "", ErrNotConfigured
	}
	if err := Validate(cfg.Dir); err != nil {
		return "", err
	}
	return cfg.Dir, nil
}

// MaterialFile returns the path of an on-disk material asset for the given
// item id, relative to a validated installation directory.
func MaterialFile(dir, itemID string) string {
	return filepath.Join(dir, filepath.FromSlash(RequiredSubdir), itemID+".json")
}
