// Package dispatch implements the module dispatch contract: resolve a
// module and command, invoke it synchronously, capture combined output
// and an exit indicator, and never let a failure unwind the event loop.
package dispatch

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"modctl/internal/registry"
	"modctl/pkg/logging"
)

const subsystem = "dispatch"

// Result is the outcome of one command invocation. Unknown modules and
// commands are Results with a non-zero Status, not errors.
type Result struct {
	Output string
	Status int
}

// Handler executes a built-in or registered command in-process.
type Handler func(args []string) Result

// For mocking in tests.
var execCommand = exec.Command

// Dispatcher routes command strings to built-in handlers or module
// entrypoints. Module handlers live in a lookup map populated at load
// time; there is no name-mangled or interpreted dispatch.
type Dispatcher struct {
	reg      *registry.Registry
	builtins map[string]Handler
}

// New returns a Dispatcher backed by the given module registry.
func New(reg *registry.Registry) *Dispatcher {
	return &Dispatcher{
		reg:      reg,
		builtins: make(map[string]Handler),
	}
}

// RegisterBuiltin installs an always-available command. The TUI registers
// help, clear, where, stats and recall here with closures over its state.
func (d *Dispatcher) RegisterBuiltin(name string, h Handler) {
	d.builtins[name] = h
}

// Builtins returns the registered built-in names, sorted.
func (d *Dispatcher) Builtins() []string {
	names := make([]string, 0, len(d.builtins))
	for name := range d.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Split separates a committed command line into the command name and its
// argument tail.
func Split(line string) (command string, args []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// Execute runs a command against a module. Built-ins win over module
// commands. A module command resolves to an executable entrypoint under
// the module directory (<dir>/commands/<name>, then <dir>/bin/<name>)
// and runs synchronously with combined output captured. All failure
// shapes come back as textual Results.
func (d *Dispatcher) Execute(module, command string, args []string) Result {
	if command == "" {
		return Result{Output: "empty command", Status: 1}
	}
	if h, ok := d.builtins[command]; ok {
		return h(args)
	}
	if module == "" {
		return Result{Output: fmt.Sprintf("unknown command: %s (no module selected)", command), Status: 1}
	}
	desc, ok := d.reg.Lookup(module)
	if !ok {
		return Result{Output: fmt.Sprintf("unknown module: %s", module), Status: 1}
	}
	if !d.knowsCommand(desc, command) {
		return Result{Output: fmt.Sprintf("unknown command for %s: %s", module, command), Status: 1}
	}

	entry, ok := entrypoint(desc.Path, command)
	if !ok {
		return Result{Output: fmt.Sprintf("%s declares %q but has no executable entrypoint", module, command), Status: 1}
	}
	return run(entry, args)
}

// knowsCommand checks the declared list first, then falls back to the
// existence of an entrypoint, so modules without a declaration file still
// dispatch.
func (d *Dispatcher) knowsCommand(desc *registry.Descriptor, command string) bool {
	for _, c := range d.reg.Commands(desc) {
		if name, _ := Split(c); name == command {
			return true
		}
	}
	_, ok := entrypoint(desc.Path, command)
	return ok
}

// ScrapeCommands is the best-effort fallback completion source: the
// entrypoint file names under the module's commands/ and bin/ dirs.
func ScrapeCommands(desc *registry.Descriptor) []string {
	var names []string
	for _, sub := range []string{"commands", "bin"} {
		entries, err := filepath.Glob(filepath.Join(desc.Path, sub, "*"))
		if err != nil {
			continue
		}
		for _, e := range entries {
			names = append(names, filepath.Base(e))
		}
	}
	sort.Strings(names)
	return names
}

func entrypoint(moduleDir, command string) (string, bool) {
	for _, sub := range []string{"commands", "bin"} {
		path := filepath.Join(moduleDir, sub, command)
		if matches, _ := filepath.Glob(path); len(matches) > 0 {
			return matches[0], true
		}
	}
	return "", false
}

func run(entry string, args []string) Result {
	cmd := execCommand(entry, args...)
	cmd.Dir = filepath.Dir(filepath.Dir(entry))
	out, err := cmd.CombinedOutput()
	status := 0
	if err != nil {
		status = 1
		if exitErr, ok := err.(*exec.ExitError); ok {
			status = exitErr.ExitCode()
		} else {
			// Startup failure (missing interpreter, permissions): the
			// message is the output.
			logging.Warn(subsystem, "entrypoint %s failed to start: %v", entry, err)
			return Result{Output: err.Error(), Status: status}
		}
	}
	return Result{Output: strings.TrimRight(string(out), "\n"), Status: status}
}
