package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"objcat/cmd/objcat/catalog"

	"gopkg.in/yaml.v3"
)

// appName is the single source of truth for the application name.
// All derived identifiers (env vars, config paths, error messages) are computed from it.
const appName = "objcat"

// Derived env var names, computed once at init from appName.
var (
	envConfigDir = strings.ToUpper(appName) + "_CONFIG_DIR"
	envSources   = strings.ToUpper(appName) + "_SOURCES"
)

const configFileName = "config.yml"

// logger traces loading and build steps; --verbose sends it to stderr.
var logger = log.New(io.Discard, appName+": ", log.Ltime|log.Lmsgprefix)

// Config is the optional <config>/config.yml file.
type Config struct {
	// Kinds adds object kinds on top of the built-in ones, mapping a kind
	// name to "prop" or "character".
	Kinds map[string]string `yaml:"kinds,omitempty"`
	// Output is the default path for `build` when -o is not given.
	Output string `yaml:"output,omitempty"`
}

// resolveConfigDir returns the base config directory for the application.
// Priority: --config-dir > $<APPNAME>_CONFIG_DIR > $XDG_CONFIG_HOME/<appName> > ~/.config/<appName>
func resolveConfigDir(flagDir string) (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// resolveSourceFiles returns all object source files to load.
// Order: configDir/objects/* → $<APPNAME>_SOURCES → flagFiles
// A missing objects directory is skipped; explicit paths are kept as-is and
// fail at read time.
func resolveSourceFiles(configDir string, flagFiles []string) ([]string, error) {
	files, err := globSources(filepath.Join(configDir, "objects"))
	if err != nil {
		return nil, err
	}
	files = append(files, splitColon(os.Getenv(envSources))...)
	files = append(files, flagFiles...)
	return files, nil
}

// globSources returns the *.yml, *.yaml and *.inc files in dir in name order.
// Returns nil without error if dir does not exist.
func globSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if sourceKindOf(e.Name()) != sourceUnknown {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// splitColon splits a colon-separated string, filtering empty parts.
func splitColon(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadConfig reads configDir/config.yml. A missing file yields the zero Config.
func loadConfig(configDir string) (Config, error) {
	path := filepath.Join(configDir, configFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	logger.Printf("config %s: %d kinds, output=%q", path, len(cfg.Kinds), cfg.Output)
	return cfg, nil
}

// registerKinds adds the configured kinds to k.
func (c Config) registerKinds(k *catalog.Kinds) error {
	for name, typ := range c.Kinds {
		t, err := catalog.ParseObjectType(typ)
		if err != nil {
			return fmt.Errorf("%s: kind %q: %w", configFileName, name, err)
		}
		if err := k.Register(name, t); err != nil {
			return fmt.Errorf("%s: %w", configFileName, err)
		}
	}
	return nil
}
