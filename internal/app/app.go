package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"modctl/internal/cmdline"
	"modctl/internal/config"
	"modctl/internal/dispatch"
	"modctl/internal/driver"
	"modctl/internal/event"
	"modctl/internal/history"
	"modctl/internal/navigation"
	"modctl/internal/registry"
	"modctl/internal/screen"
	"modctl/internal/theme"
	"modctl/pkg/logging"
)

const subsystem = "app"

// App owns the TUI state and the event loop. All fields are mutated by
// the loop goroutine only.
type App struct {
	cfg config.Config

	nav     *navigation.Context
	reg     *registry.Registry
	disp    *dispatch.Dispatcher
	engine  *cmdline.Engine
	hist    *history.Stack
	themes  *theme.Stack
	decoder *event.Decoder

	renderer *screen.Renderer
	regions  screen.Regions
	width    int
	height   int

	mode         navigation.Mode
	content      []string
	resultsIndex int
	markerPos    int
	themePushed  bool
	commandCount int
	startedAt    time.Time

	lastLog *logging.LogEntry
	logCh   <-chan logging.LogEntry

	tty *os.File
	out io.Writer
}

// Options configures an App.
type Options struct {
	Config config.Config
	// TTY is the terminal; defaults to os.Stdin for input with output
	// on os.Stdout.
	TTY *os.File
	// Output receives rendered frames; defaults to os.Stdout.
	Output io.Writer
	// LogCh is the TUI log channel from logging.InitForTUI.
	LogCh <-chan logging.LogEntry
}

// New assembles an App from configuration.
func New(opts Options) *App {
	cfg := opts.Config
	if opts.TTY == nil {
		opts.TTY = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	rules := make([]registry.Rule, 0, len(cfg.ClassifierRules))
	for _, r := range cfg.ClassifierRules {
		rules = append(rules, registry.Rule{Requires: r.Requires, Kind: registry.Kind(r.Kind)})
	}
	reg := registry.New(registry.Options{
		Rules:    rules,
		Skip:     cfg.SkipDirs,
		Declared: cfg.Commands,
	})

	a := &App{
		cfg:       cfg,
		nav:       navigation.NewContext(),
		reg:       reg,
		hist:      history.NewStack(cfg.OutputMax),
		themes:    theme.NewStack(theme.NewRegistry(cfg.ThemeDir), cfg.Theme),
		decoder:   event.NewDecoder(cfg.Driver.EscapeGrace.Std()),
		mode:      navigation.ModeNormal,
		startedAt: time.Now(),
		logCh:     opts.LogCh,
		tty:       opts.TTY,
		out:       opts.Output,
	}
	a.disp = dispatch.New(reg)
	a.engine = cmdline.NewEngine(candidateSource{a})
	a.registerBuiltins()

	a.nav.SetList(navigation.SlotOrg, a.scanOrgs())
	a.nav.SetList(navigation.SlotFilter, registry.Filters())
	a.reloadModules()
	a.content = a.welcomeLines()
	return a
}

// scanOrgs lists the organization directories under the configured root.
func (a *App) scanOrgs() []string {
	entries, err := os.ReadDir(a.cfg.OrgRoot)
	if err != nil {
		logging.Warn(subsystem, "organization root %s unreadable: %v", a.cfg.OrgRoot, err)
		return nil
	}
	var orgs []string
	for _, e := range entries {
		if e.IsDir() && e.Name()[0] != '.' && e.Name()[0] != '_' {
			orgs = append(orgs, e.Name())
		}
	}
	sort.Strings(orgs)
	return orgs
}

// reloadModules re-scans and re-classifies the active organization, then
// re-applies the filter. Called on org change; filter changes go through
// applyFilter alone.
func (a *App) reloadModules() {
	org := a.nav.Current(navigation.SlotOrg)
	if org == "" {
		a.nav.SetList(navigation.SlotModule, nil)
		return
	}
	if err := a.reg.Scan(filepath.Join(a.cfg.OrgRoot, org)); err != nil {
		a.nav.SetList(navigation.SlotModule, nil)
		return
	}
	a.applyFilter()
}

func (a *App) applyFilter() {
	before := a.nav.Current(navigation.SlotModule)
	a.reg.ApplyFilter(a.nav.Current(navigation.SlotFilter))
	a.nav.SetList(navigation.SlotModule, a.reg.VisibleNames())
	// Re-enter the module context only when narrowing actually moved the
	// selection; an unchanged module keeps its theme and command surface.
	if a.nav.Current(navigation.SlotModule) != before {
		a.moduleChanged()
	}
}

// activeModule returns the descriptor of the selected module, nil when
// none is selected.
func (a *App) activeModule() *registry.Descriptor {
	name := a.nav.Current(navigation.SlotModule)
	if name == "" {
		return nil
	}
	desc, ok := a.reg.Lookup(name)
	if !ok {
		return nil
	}
	return desc
}

// Run drives the loop until quit. The terminal driver runs as its own
// goroutine feeding the protocol through a pipe; the consumer side here
// is identical to reading a `modctl driver` child process.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pr, pw := io.Pipe()
	drv := driver.New(driver.Options{
		TTY:           a.tty,
		Output:        pw,
		ControlDevice: a.cfg.Driver.ControlDevice,
		PollInterval:  a.cfg.Driver.PollInterval.Std(),
		AltScreen:     a.cfg.Driver.AltScreen,
	})
	drvDone := make(chan error, 1)
	go func() {
		drvDone <- drv.Run(ctx)
		pw.Close()
	}()
	// Terminal restore must complete before we return, on every path.
	// Closing the read end first makes any driver write still in flight
	// fail instead of blocking on a pipe nobody drains.
	defer func() {
		cancel()
		pr.Close()
		<-drvDone
	}()

	events := make(chan event.Event, 64)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(pr)
		for scanner.Scan() {
			ev, err := event.ParseLine(scanner.Text())
			if err != nil {
				logging.Debug(subsystem, "skipping malformed event line: %v", err)
				continue
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				// Driver EOF is Quit.
				return nil
			}
			if quit := a.handleEvent(ev); quit {
				return nil
			}
			a.render()
		case <-a.decoder.Timeout():
			for _, ch := range a.decoder.Flush() {
				if quit := a.handleChord(ch); quit {
					return nil
				}
			}
			a.render()
		case entry := <-a.logCh:
			a.lastLog = &entry
			if a.width > 0 {
				a.render()
			}
		}
	}
}

func (a *App) welcomeLines() []string {
	return []string{
		fmt.Sprintf("modctl — %d organizations under %s", len(a.nav.List(navigation.SlotOrg)), a.cfg.OrgRoot),
		"",
		"←/→ focus slot · ↑/↓ cycle value · : command · r results · q quit",
	}
}

// contextLabel is the "org/module" breadcrumb recorded on history
// entries at execution time.
func (a *App) contextLabel() string {
	org := a.nav.Current(navigation.SlotOrg)
	mod := a.nav.Current(navigation.SlotModule)
	switch {
	case org == "":
		return "-"
	case mod == "":
		return org
	default:
		return org + "/" + mod
	}
}
