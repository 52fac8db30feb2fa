package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/funvibe/corecalc/internal/document"
	"gopkg.in/yaml.v3"
)

// Config represents corecalc.yaml.
type Config struct {
	// Color selects colored CLI output: auto (only on a terminal), always,
	// or never. Defaults to auto.
	Color string `yaml:"color,omitempty"`

	// Jobs bounds how many documents `corecalc test` checks concurrently.
	// Defaults to DefaultJobs.
	Jobs int `yaml:"jobs,omitempty"`

	// Trace logs every checking rule and reduction to stderr.
	Trace bool `yaml:"trace,omitempty"`

	// Prelude binds names visible to every document, as if each document
	// listed them under both context and env. Document bindings shadow
	// prelude bindings of the same name.
	//
	//   prelude:
	//     one:
	//       type: F64
	//       value: 1
	Prelude map[string]Binding `yaml:"prelude,omitempty"`
}

// Binding is a prelude entry.
type Binding struct {
	// Type is the binding's type. Required.
	Type *document.Node `yaml:"type"`

	// Value is the binding's value. Required.
	Value *document.Node `yaml:"value"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a corecalc.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses corecalc.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for a config file starting from dir and walking up
// to parent directories. It returns "" and a nil error when none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.Color != "" && !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Color) {
		return fmt.Errorf("%s: color: unknown mode %q (want auto, always or never)", path, c.Color)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("%s: jobs must not be negative, got %d", path, c.Jobs)
	}

	for _, name := range c.PreludeNames() {
		b := c.Prelude[name]
		if name == "" {
			return fmt.Errorf("%s: prelude: empty binding name", path)
		}
		if b.Type == nil || b.Type.Expr == nil {
			return fmt.Errorf("%s: prelude.%s: type is required", path, name)
		}
		if b.Value == nil || b.Value.Expr == nil {
			return fmt.Errorf("%s: prelude.%s: value is required", path, name)
		}
	}

	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.Jobs == 0 {
		c.Jobs = DefaultJobs
	}
}

// PreludeNames returns the prelude binding names in sorted order.
func (c *Config) PreludeNames() []string {
	names := make([]string, 0, len(c.Prelude))
	for name := range c.Prelude {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
