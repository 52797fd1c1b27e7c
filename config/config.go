// Package config loads webiogen tool configuration.
//
// Configuration is optional: Default returns a working zero-config setup,
// and Discover probes the project directory for webiogen.toml,
// webiogen.yaml, or webiogen.json, in that order. All three formats carry
// the same document:
//
//	template_import = "github.com/randalmurphal/webiokit/template"
//	runtime_import = "github.com/randalmurphal/webio"
//	aliases = ["css", "glsl"]
//	exclude = ["internal/legacy"]
package config

import (
	"encoding/json"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the webiogen tool configuration.
type Config struct {
	// TemplateImport is the import path of the substitution library whose
	// calls the folding pass recognizes.
	TemplateImport string `toml:"template_import" yaml:"template_import" json:"template_import,omitempty" jsonschema:"description=Import path of the template substitution library"`

	// RuntimeImport is the import path of the async runtime driver called
	// by generated bootstraps.
	RuntimeImport string `toml:"runtime_import" yaml:"runtime_import" json:"runtime_import,omitempty" jsonschema:"description=Import path of the async runtime driver"`

	// Aliases names package-local wrapper functions that fold like
	// Replace. Each must be a valid Go identifier.
	Aliases []string `toml:"aliases" yaml:"aliases" json:"aliases,omitempty" jsonschema:"description=Wrapper function names folded like Replace"`

	// Exclude lists directory patterns, relative to the scan roots, that
	// the generation pass skips. Patterns use path.Match syntax.
	Exclude []string `toml:"exclude" yaml:"exclude" json:"exclude,omitempty" jsonschema:"description=Directory patterns skipped during generation"`
}

// DiscoverNames are the file names Discover probes for, in order.
var DiscoverNames = []string{"webiogen.toml", "webiogen.yaml", "webiogen.json"}

// Default returns the zero-config setup.
func Default() *Config {
	return &Config{
		TemplateImport: "github.com/randalmurphal/webiokit/template",
		RuntimeImport:  "github.com/randalmurphal/webio",
	}
}

// Load reads the configuration at path, dispatching on the file extension
// (.toml, .yaml, .yml, or .json). Fields absent from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover probes dir for a configuration file and loads the first one
// found. It returns the defaults and an empty path when none exists.
func Discover(dir string) (*Config, string, error) {
	for _, name := range DiscoverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return Default(), "", nil
}

// Validate checks import paths and alias names.
func (c *Config) Validate() error {
	if c.TemplateImport == "" {
		return fmt.Errorf("template_import must not be empty")
	}
	if c.RuntimeImport == "" {
		return fmt.Errorf("runtime_import must not be empty")
	}
	for _, path := range []string{c.TemplateImport, c.RuntimeImport} {
		if strings.ContainsAny(path, " \t\"`") {
			return fmt.Errorf("invalid import path %q", path)
		}
	}
	for _, alias := range c.Aliases {
		if !token.IsIdentifier(alias) {
			return fmt.Errorf("alias %q is not a valid Go identifier", alias)
		}
	}
	return nil
}
