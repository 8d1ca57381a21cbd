// Package theme holds the color palettes, their compiled lipgloss styles,
// and the phase-shift stack that swaps palettes around module-context
// changes.
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"modctl/pkg/logging"
)

const subsystem = "theme"

// DefaultName is the palette active before any phase shift.
const DefaultName = "default"

// Theme is a named palette: a token→color mapping used to compile the
// lipgloss styles every region renders with. Colors are hex strings.
type Theme struct {
	Name string `yaml:"name"`

	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Dim        string `yaml:"dim"`
	Accent     string `yaml:"accent"`

	Title     string `yaml:"title"`
	Separator string `yaml:"separator"`
	Prompt    string `yaml:"prompt"`
	Selection string `yaml:"selection"`

	StatusOK    string `yaml:"statusOk"`
	StatusWarn  string `yaml:"statusWarn"`
	StatusError string `yaml:"statusError"`
}

// Registry resolves theme names to palettes. Built-ins are always
// available; anything else is lazily loaded from the theme directory on
// first use and memoized. A palette that cannot be loaded degrades to the
// default with a logged warning, never an error to the caller.
type Registry struct {
	dir    string
	themes map[string]Theme
}

// NewRegistry returns a registry with the built-in palettes registered,
// loading user palettes from dir (may be empty to disable file loading).
func NewRegistry(dir string) *Registry {
	r := &Registry{
		dir:    dir,
		themes: make(map[string]Theme),
	}
	for _, t := range builtins() {
		r.themes[strings.ToLower(t.Name)] = t
	}
	return r
}

// Get resolves a theme by name. Unknown names fall back to the default
// palette.
func (r *Registry) Get(name string) Theme {
	key := strings.ToLower(name)
	if t, ok := r.themes[key]; ok {
		return t
	}
	t, err := r.loadFromFile(key)
	if err != nil {
		logging.Warn(subsystem, "theme %q unavailable, using default: %v", name, err)
		return r.themes[DefaultName]
	}
	r.themes[key] = t
	return t
}

// Names returns all currently known theme names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a palette under its lowercase name.
func (r *Registry) Register(t Theme) {
	r.themes[strings.ToLower(t.Name)] = t
}

func (r *Registry) loadFromFile(name string) (Theme, error) {
	if r.dir == "" {
		return Theme{}, fmt.Errorf("no theme directory configured")
	}
	path := filepath.Join(r.dir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	fillDefaults(&t, r.themes[DefaultName])
	return t, nil
}

// fillDefaults copies colors from base for any token the loaded palette
// left empty, so partial theme files stay usable.
func fillDefaults(t *Theme, base Theme) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&t.Background, base.Background)
	fill(&t.Foreground, base.Foreground)
	fill(&t.Dim, base.Dim)
	fill(&t.Accent, base.Accent)
	fill(&t.Title, base.Title)
	fill(&t.Separator, base.Separator)
	fill(&t.Prompt, base.Prompt)
	fill(&t.Selection, base.Selection)
	fill(&t.StatusOK, base.StatusOK)
	fill(&t.StatusWarn, base.StatusWarn)
	fill(&t.StatusError, base.StatusError)
}

func builtins() []Theme {
	return []Theme{
		{
			Name:       "default",
			Background: "#14161f", Foreground: "#d8dee9", Dim: "#616e88", Accent: "#88c0d0",
			Title: "#e5e9f0", Separator: "#4c566a", Prompt: "#a3be8c", Selection: "#3b4252",
			StatusOK: "#a3be8c", StatusWarn: "#ebcb8b", StatusError: "#bf616a",
		},
		{
			Name:       "mono",
			Background: "#000000", Foreground: "#c0c0c0", Dim: "#606060", Accent: "#ffffff",
			Title: "#ffffff", Separator: "#404040", Prompt: "#c0c0c0", Selection: "#303030",
			StatusOK: "#c0c0c0", StatusWarn: "#e0e0e0", StatusError: "#ffffff",
		},
		{
			Name:       "ember",
			Background: "#1b1210", Foreground: "#e8d5c4", Dim: "#7a5c4f", Accent: "#e08f62",
			Title: "#f4e3d0", Separator: "#5c4033", Prompt: "#d9a066", Selection: "#3a2620",
			StatusOK: "#a8c080", StatusWarn: "#e0b050", StatusError: "#d05040",
		},
		{
			Name:       "tide",
			Background: "#0e1a20", Foreground: "#cde3ea", Dim: "#4f7a8a", Accent: "#5ed3f0",
			Title: "#e0f4fa", Separator: "#2c5460", Prompt: "#7adcc0", Selection: "#1c3640",
			StatusOK: "#7adcc0", StatusWarn: "#e8d080", StatusError: "#f07a7a",
		},
	}
}
