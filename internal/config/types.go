package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "40ms" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ClassifierRule mirrors registry.Rule in configuration form so the rule
// list can be replaced or extended without code changes.
type ClassifierRule struct {
	Requires []string `yaml:"requires"`
	Kind     string   `yaml:"kind"`
}

// DriverConfig holds the terminal-driver tunables.
type DriverConfig struct {
	// PollInterval is the control-stream retry interval.
	PollInterval Duration `yaml:"pollInterval,omitempty"`
	// EscapeGrace is how long a lone ESC waits for an arrow-key
	// continuation before firing on its own.
	EscapeGrace Duration `yaml:"escapeGrace,omitempty"`
	// ControlDevice is a readable device or FIFO carrying CC lines;
	// empty disables the control stream.
	ControlDevice string `yaml:"controlDevice,omitempty"`
	// AltScreen switches to the alternate screen for the session.
	AltScreen bool `yaml:"altScreen,omitempty"`
}

// Config is the top-level configuration for modctl.
type Config struct {
	// OrgRoot is the directory holding one subdirectory per
	// organization, each containing module subdirectories.
	OrgRoot string `yaml:"orgRoot,omitempty"`
	// HeaderHeight is the header-region size preference.
	HeaderHeight int `yaml:"headerHeight,omitempty"`
	// Theme names the palette active at startup.
	Theme string `yaml:"theme,omitempty"`
	// ThemeDir holds user palette files loaded lazily by name.
	ThemeDir string `yaml:"themeDir,omitempty"`
	// OutputMax caps the output history stack depth.
	OutputMax int `yaml:"outputMax,omitempty"`

	Driver DriverConfig `yaml:"driver,omitempty"`

	// Commands declares per-module command lists, keyed by module name.
	Commands map[string][]string `yaml:"commands,omitempty"`
	// ModuleThemes assigns a palette per module for the phase shift.
	ModuleThemes map[string]string `yaml:"moduleThemes,omitempty"`
	// ClassifierRules replaces the built-in classification rules when
	// non-empty.
	ClassifierRules []ClassifierRule `yaml:"classifierRules,omitempty"`
	// SkipDirs lists module directory names excluded from
	// classification.
	SkipDirs []string `yaml:"skipDirs,omitempty"`
}
