// Package registry discovers the modules available under an organization
// directory and classifies each one by capability.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"modctl/pkg/logging"
)

const subsystem = "registry"

// Kind is a module's classification tag.
type Kind string

const (
	KindLibrary   Kind = "LIBRARY"
	KindModule    Kind = "MODULE"
	KindApp       Kind = "APP"
	KindAppModule Kind = "APP+MODULE"
	KindScripts   Kind = "SCRIPTS"
	KindUnknown   Kind = ""
)

// Rule classifies a module directory: if every file in Requires exists,
// the module is of the given Kind. Rules are evaluated in order, first
// match wins.
type Rule struct {
	Requires []string `yaml:"requires"`
	Kind     Kind     `yaml:"kind"`
}

// DefaultRules is the built-in rule order. A higher-level policy may
// append or replace rules without touching the classification algorithm.
func DefaultRules() []Rule {
	return []Rule{
		{Requires: []string{"app.yaml", "module.yaml"}, Kind: KindAppModule},
		{Requires: []string{"app.yaml"}, Kind: KindApp},
		{Requires: []string{"module.yaml"}, Kind: KindModule},
		{Requires: []string{"library.yaml"}, Kind: KindLibrary},
	}
}

// sourceExtensions is the fallback predicate: a directory with at least
// one file of these types is a scripts bucket.
var sourceExtensions = map[string]bool{
	".sh": true, ".bash": true, ".go": true, ".py": true, ".js": true, ".rb": true,
}

// Descriptor describes one discovered module.
type Descriptor struct {
	Name string
	Kind Kind
	Path string
	// Commands is the declared command list, loaded lazily on first
	// module selection. nil means not yet loaded.
	Commands []string
}

// Registry scans an organization root and keeps the classified module
// set plus the filtered visible subset.
type Registry struct {
	rules    []Rule
	skip     map[string]bool
	declared map[string][]string

	orgPath string
	modules []*Descriptor
	visible []*Descriptor
}

// Options configures a Registry.
type Options struct {
	// Rules overrides DefaultRules when non-empty.
	Rules []Rule
	// Skip lists directory names excluded from classification, in
	// addition to dotted and underscore-prefixed names.
	Skip []string
	// Declared maps module name → command list from configuration; it
	// takes precedence over the module's own commands.yaml.
	Declared map[string][]string
}

// New returns a Registry with the given options.
func New(opts Options) *Registry {
	rules := opts.Rules
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	skip := make(map[string]bool, len(opts.Skip))
	for _, name := range opts.Skip {
		skip[name] = true
	}
	return &Registry{
		rules:    rules,
		skip:     skip,
		declared: opts.Declared,
	}
}

// Scan enumerates the immediate subdirectories of orgPath and classifies
// each. It is a full re-scan, triggered by an organization change only;
// filter changes reuse the result.
func (r *Registry) Scan(orgPath string) error {
	r.orgPath = orgPath
	r.modules = nil
	r.visible = nil

	entries, err := os.ReadDir(orgPath)
	if err != nil {
		// Degrade to an empty module list; the TUI stays alive.
		logging.Warn(subsystem, "organization dir %s unreadable: %v", orgPath, err)
		return fmt.Errorf("reading organization dir %s: %w", orgPath, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if r.skipped(name) {
			continue
		}
		path := filepath.Join(orgPath, name)
		r.modules = append(r.modules, &Descriptor{
			Name: name,
			Kind: r.classify(path),
			Path: path,
		})
	}
	sort.Slice(r.modules, func(i, j int) bool { return r.modules[i].Name < r.modules[j].Name })
	r.visible = r.modules
	return nil
}

func (r *Registry) skipped(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || r.skip[name]
}

// classify applies the ordered rule list, then the generic source-file
// fallback.
func (r *Registry) classify(path string) Kind {
	for _, rule := range r.rules {
		if r.allExist(path, rule.Requires) {
			return rule.Kind
		}
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return KindUnknown
	}
	for _, entry := range entries {
		if !entry.IsDir() && sourceExtensions[filepath.Ext(entry.Name())] {
			return KindScripts
		}
	}
	return KindUnknown
}

func (r *Registry) allExist(dir string, files []string) bool {
	if len(files) == 0 {
		return false
	}
	for _, f := range files {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			return false
		}
	}
	return true
}

// Filters returns the filter-slot list: "all" plus one entry per kind.
func Filters() []string {
	return []string{"all", "app", "module", "library", "scripts"}
}

// ApplyFilter recomputes the visible subset. Cheap: no re-classification.
func (r *Registry) ApplyFilter(filter string) {
	var want Kind
	switch filter {
	case "app":
		want = KindApp
	case "module":
		want = KindModule
	case "library":
		want = KindLibrary
	case "scripts":
		want = KindScripts
	default:
		r.visible = r.modules
		return
	}
	visible := make([]*Descriptor, 0, len(r.modules))
	for _, m := range r.modules {
		if m.Kind == want || (want == KindApp || want == KindModule) && m.Kind == KindAppModule {
			visible = append(visible, m)
		}
	}
	r.visible = visible
}

// Visible returns the filtered module subset.
func (r *Registry) Visible() []*Descriptor {
	return r.visible
}

// VisibleNames returns the names of the filtered subset, for the module
// navigation slot.
func (r *Registry) VisibleNames() []string {
	names := make([]string, len(r.visible))
	for i, m := range r.visible {
		names[i] = m.Name
	}
	return names
}

// Lookup finds a module by name in the full (unfiltered) set.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	for _, m := range r.modules {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Commands returns the module's command list, loading it on first use.
// Order: the declared registry from configuration, then the module's own
// commands.yaml. A module with neither keeps an empty (non-nil) list.
func (r *Registry) Commands(m *Descriptor) []string {
	if m.Commands != nil {
		return m.Commands
	}
	if declared, ok := r.declared[m.Name]; ok {
		m.Commands = declared
		return m.Commands
	}
	m.Commands = []string{}
	path := filepath.Join(m.Path, "commands.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return m.Commands
	}
	var cmds []string
	if err := yaml.Unmarshal(data, &cmds); err != nil {
		logging.Warn(subsystem, "malformed %s: %v", path, err)
		return m.Commands
	}
	m.Commands = cmds
	return m.Commands
}
