package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// projectConfig is the optional .atlint.toml next to (or above) the linted
// project. Absence is not an error; defaults apply.
type projectConfig struct {
	Lint lintConfig `toml:"lint"`
}

type lintConfig struct {
	// Require lists extra macro names treated as required on top of the
	// built-in set.
	Require []string `toml:"require"`
	// Preview turns on source-line previews without the --preview flag.
	Preview bool `toml:"preview"`
}

const configFileName = ".atlint.toml"

func findAtlintToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectConfig(startDir string) (projectConfig, error) {
	var cfg projectConfig

	path, ok, err := findAtlintToml(startDir)
	if err != nil || !ok {
		return cfg, err
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown key %q in %q", undecoded[0].String(), path)
	}
	return cfg, nil
}
