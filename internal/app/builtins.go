package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"modctl/internal/dispatch"
	"modctl/internal/navigation"
	"modctl/internal/registry"
)

// candidateSource adapts the app state to the completion engine.
type candidateSource struct {
	a *App
}

func (s candidateSource) Builtins() []string {
	return s.a.disp.Builtins()
}

func (s candidateSource) ModuleCommands() []string {
	desc := s.a.activeModule()
	if desc == nil {
		return nil
	}
	return s.a.reg.Commands(desc)
}

func (s candidateSource) FallbackCommands() []string {
	desc := s.a.activeModule()
	if desc == nil {
		return nil
	}
	return dispatch.ScrapeCommands(desc)
}

// builtinHelp describes the always-available commands for the help
// output and the empty-input Tab listing.
var builtinHelp = []struct {
	name string
	desc string
}{
	{"help", "show available commands for the current context"},
	{"clear", "clear the content view"},
	{"where", "show the active organization, module and path"},
	{"stats", "show session statistics"},
	{"recall", "recall <n>: output of the nth most recent command"},
}

// registerBuiltins installs the fixed command set. Each handler closes
// over the app state; none of them can fail the loop.
func (a *App) registerBuiltins() {
	a.disp.RegisterBuiltin("help", func(args []string) dispatch.Result {
		return dispatch.Result{Output: strings.Join(a.capabilityLines(), "\n")}
	})
	a.disp.RegisterBuiltin("clear", func(args []string) dispatch.Result {
		return dispatch.Result{}
	})
	a.disp.RegisterBuiltin("where", func(args []string) dispatch.Result {
		var b strings.Builder
		fmt.Fprintf(&b, "org:    %s\n", orDash(a.nav.Current(navigation.SlotOrg)))
		if desc := a.activeModule(); desc != nil {
			fmt.Fprintf(&b, "module: %s (%s)\n", desc.Name, orDash(string(desc.Kind)))
			fmt.Fprintf(&b, "path:   %s", desc.Path)
		} else {
			fmt.Fprintf(&b, "module: -")
		}
		return dispatch.Result{Output: b.String()}
	})
	a.disp.RegisterBuiltin("stats", func(args []string) dispatch.Result {
		counts := make(map[registry.Kind]int)
		for _, m := range a.reg.Visible() {
			counts[m.Kind]++
		}
		var b strings.Builder
		fmt.Fprintf(&b, "uptime:   %s\n", time.Since(a.startedAt).Round(time.Second))
		fmt.Fprintf(&b, "commands: %d\n", a.commandCount)
		fmt.Fprintf(&b, "history:  %d/%d\n", a.hist.Len(), a.hist.Max())
		fmt.Fprintf(&b, "theme:    %s (depth %d)\n", a.themes.Active().Name, a.themes.Depth())
		fmt.Fprintf(&b, "modules:  %d visible", len(a.reg.Visible()))
		for kind, n := range counts {
			if kind != registry.KindUnknown {
				fmt.Fprintf(&b, "\n  %-12s %d", kind, n)
			}
		}
		return dispatch.Result{Output: b.String()}
	})
	a.disp.RegisterBuiltin("recall", func(args []string) dispatch.Result {
		if len(args) != 1 {
			return dispatch.Result{Output: "usage: recall <n>", Status: 1}
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return dispatch.Result{Output: fmt.Sprintf("recall: not a positive index: %s", args[0]), Status: 1}
		}
		entry, ok := a.hist.Recent(n)
		if !ok {
			return dispatch.Result{Output: fmt.Sprintf("recall: only %d entries retained", a.hist.Len()), Status: 1}
		}
		return dispatch.Result{Output: entry.Output}
	})
}

// capabilityLines is the descriptive "what can I do here" listing shown
// for Tab on empty input and by the help command.
func (a *App) capabilityLines() []string {
	lines := []string{"built-in commands:"}
	for _, b := range builtinHelp {
		lines = append(lines, fmt.Sprintf("  %-8s %s", b.name, b.desc))
	}
	if desc := a.activeModule(); desc != nil {
		cmds := a.reg.Commands(desc)
		if len(cmds) == 0 {
			cmds = dispatch.ScrapeCommands(desc)
		}
		if len(cmds) > 0 {
			lines = append(lines, "", fmt.Sprintf("%s commands:", desc.Name))
			for _, c := range cmds {
				lines = append(lines, "  "+c)
			}
		}
	}
	return lines
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
