// Package config loads mindscript.yaml: search paths, REPL display
// preferences, and the addresses the persistent registry (internal/store)
// and the type service (internal/typesvc) bind to.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// IsTestMode is set once at process startup by cmd/mindscript from the
// MINDSCRIPT_TEST_MODE environment variable. No package reads it: printing
// and color choice do not depend on it.
var IsTestMode = false

// Config is the top-level mindscript.yaml document.
type Config struct {
	// Import lists module search directories. It is loaded from the file
	// but no package reads it; scripts have no module import.
	Import []string `yaml:"import,omitempty"`

	// Prompt is the REPL's prompt string. Defaults to "mindscript> ".
	Prompt string `yaml:"prompt,omitempty"`

	// Color forces ANSI output on or off; nil defers to an isatty check on
	// stdout (see pkg/cli).
	Color *bool `yaml:"color,omitempty"`

	// Registry is the SQLite file backing internal/store's alias and
	// session persistence. Empty disables persistence (in-memory only).
	Registry string `yaml:"registry,omitempty"`

	// Listen is the typesvc gRPC listen address, e.g. "127.0.0.1:7790".
	Listen string `yaml:"listen,omitempty"`
}

// Default returns the configuration used when no mindscript.yaml is found.
func Default() *Config {
	return &Config{
		Prompt:   "mindscript> ",
		Registry: "mindscript.db",
		Listen:   "127.0.0.1:7790",
	}
}

// Load reads and parses a mindscript.yaml file, filling in defaults for
// anything the file omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses mindscript.yaml content from bytes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Find searches for mindscript.yaml starting at dir and walking up through
// parent directories, the way a .gitignore lookup does. Returns "" with a
// nil error when no config file is found — the caller falls back to
// Default().
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "mindscript.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// UseColor decides whether to emit ANSI codes: an explicit Color setting
// wins, otherwise the caller's own isatty check (pkg/cli) applies.
func (c *Config) UseColor(isTerminal bool) bool {
	if c.Color != nil {
		return *c.Color
	}
	return isTerminal
}
