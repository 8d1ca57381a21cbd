// Package config loads the layered modctl configuration: built-in
// defaults, then the user file, then the project file, merged in order.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests.
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/modctl"
	projectConfigDir = ".modctl"
	configFileName   = "config.yaml"
)

// Load returns the effective configuration. Missing files are fine;
// malformed ones are errors.
func Load() (Config, error) {
	cfg := GetDefaultConfig()

	userPath, err := getUserConfigPath()
	if err == nil {
		if layered, ok, err := loadFile(userPath); err != nil {
			return Config{}, fmt.Errorf("loading user config %s: %w", userPath, err)
		} else if ok {
			cfg = merge(cfg, layered)
		}
	}

	projectPath, err := getProjectConfigPath()
	if err == nil {
		if layered, ok, err := loadFile(projectPath); err != nil {
			return Config{}, fmt.Errorf("loading project config %s: %w", projectPath, err)
		} else if ok {
			cfg = merge(cfg, layered)
		}
	}

	return cfg, nil
}

var getUserConfigPath = func() (string, error) {
	home, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadFile parses a config file. The bool reports whether the file
// existed.
func loadFile(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, false, nil
	}
	if err != nil {
		return Config{}, false, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false, err
	}
	return cfg, true, nil
}

// merge overlays layer onto base: scalar fields win when set, maps are
// merged key-by-key, slices replace wholesale.
func merge(base, layer Config) Config {
	out := base
	if layer.OrgRoot != "" {
		out.OrgRoot = layer.OrgRoot
	}
	if layer.HeaderHeight > 0 {
		out.HeaderHeight = layer.HeaderHeight
	}
	if layer.Theme != "" {
		out.Theme = layer.Theme
	}
	if layer.ThemeDir != "" {
		out.ThemeDir = layer.ThemeDir
	}
	if layer.OutputMax > 0 {
		out.OutputMax = layer.OutputMax
	}
	if layer.Driver.PollInterval > 0 {
		out.Driver.PollInterval = layer.Driver.PollInterval
	}
	if layer.Driver.EscapeGrace > 0 {
		out.Driver.EscapeGrace = layer.Driver.EscapeGrace
	}
	if layer.Driver.ControlDevice != "" {
		out.Driver.ControlDevice = layer.Driver.ControlDevice
	}
	if layer.Driver.AltScreen {
		out.Driver.AltScreen = true
	}
	if len(layer.Commands) > 0 {
		if out.Commands == nil {
			out.Commands = make(map[string][]string, len(layer.Commands))
		}
		for k, v := range layer.Commands {
			out.Commands[k] = v
		}
	}
	if len(layer.ModuleThemes) > 0 {
		if out.ModuleThemes == nil {
			out.ModuleThemes = make(map[string]string, len(layer.ModuleThemes))
		}
		for k, v := range layer.ModuleThemes {
			out.ModuleThemes[k] = v
		}
	}
	if len(layer.ClassifierRules) > 0 {
		out.ClassifierRules = layer.ClassifierRules
	}
	if len(layer.SkipDirs) > 0 {
		out.SkipDirs = layer.SkipDirs
	}
	return out
}
