package config

import (
	"os"
	"path/filepath"
)

// GetDefaultConfig returns the built-in configuration layered under any
// user or project file.
func GetDefaultConfig() Config {
	home, err := osUserHomeDir()
	orgRoot := "orgs"
	themeDir := ""
	if err == nil {
		orgRoot = filepath.Join(home, "orgs")
		themeDir = filepath.Join(home, ".config", "modctl", "themes")
	}
	if env := os.Getenv("MODCTL_ORG_ROOT"); env != "" {
		orgRoot = env
	}
	return Config{
		OrgRoot:      orgRoot,
		HeaderHeight: 3,
		Theme:        "default",
		ThemeDir:     themeDir,
		OutputMax:    20,
		Driver: DriverConfig{
			PollInterval: Duration(50_000_000),  // 50ms
			EscapeGrace:  Duration(40_000_000),  // 40ms
			AltScreen:    true,
		},
	}
}
