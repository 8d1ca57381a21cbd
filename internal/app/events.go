package app

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"modctl/internal/dispatch"
	"modctl/internal/event"
	"modctl/internal/history"
	"modctl/internal/navigation"
	"modctl/internal/screen"
	"modctl/pkg/logging"
)

// handleEvent routes one driver event. Returns true when the loop should
// quit.
func (a *App) handleEvent(ev event.Event) bool {
	switch ev := ev.(type) {
	case event.Resize:
		a.handleResize(ev.Width, ev.Height)
	case event.Key:
		for _, ch := range a.decoder.Feed(ev.Raw) {
			if quit := a.handleChord(ch); quit {
				return true
			}
		}
	case event.Control:
		a.handleControl(ev)
	case event.Quit:
		return true
	}
	return false
}

func (a *App) handleResize(width, height int) {
	a.width = width
	a.height = height
	a.regions = screen.ComputeRegions(height, a.cfg.HeaderHeight)
	if a.renderer == nil {
		a.renderer = screen.NewRenderer(a.out, width, height)
	} else {
		a.renderer.Resize(width, height)
	}
	a.engine.SetVisibleRows(a.regions.Content.Height)
	if a.markerPos >= width {
		a.markerPos = 0
	}
}

// handleControl maps a control-change message onto a navigation slot:
// channels 0..2 drive org/module/filter; anything else only moves the
// separator marker. Marker updates go through the vsync path so CC
// streams at controller rates never trigger full diff passes.
func (a *App) handleControl(ev event.Control) {
	// Device chatter may carry values outside the 7-bit range; clamp
	// rather than let a bad line take down the loop.
	value := ev.Value
	if value < 0 {
		value = 0
	}
	if value > 127 {
		value = 127
	}
	if a.renderer != nil && a.width > 1 {
		a.markerPos = value * (a.width - 1) / 127
		a.renderer.FlushRow(a.regions.Separator.Abs(0), a.separatorLine())
	}
	if ev.Channel < 0 || ev.Channel > 2 {
		return
	}
	// The channel's slot is driven regardless of which slot has focus.
	slot := navigation.Slot(ev.Channel)
	if a.nav.SetFromControl(slot, value) {
		a.slotChanged(slot)
	}
}

// handleChord routes a decoded keypress by the active interaction mode.
func (a *App) handleChord(ch event.Chord) bool {
	if ch.Kind == event.ChordCtrl && ch.Rune == 'c' {
		return true
	}
	switch a.mode {
	case navigation.ModeCommand:
		return a.handleCommandChord(ch)
	case navigation.ModeResults:
		return a.handleResultsChord(ch)
	default:
		return a.handleNormalChord(ch)
	}
}

func (a *App) handleNormalChord(ch event.Chord) bool {
	switch ch.Kind {
	case event.ChordSpecial:
		switch ch.Special {
		case event.KeyLeft:
			a.nav.CycleFocus(-1)
		case event.KeyRight:
			a.nav.CycleFocus(1)
		case event.KeyUp:
			if slot, changed := a.nav.CycleValue(-1); changed {
				a.slotChanged(slot)
			}
		case event.KeyDown:
			if slot, changed := a.nav.CycleValue(1); changed {
				a.slotChanged(slot)
			}
		}
	case event.ChordRune:
		switch ch.Rune {
		case 'q':
			return true
		case ':', '/':
			a.mode = navigation.ModeCommand
			a.engine.Reset()
		case 'r':
			// Results mode only opens over a non-empty stack.
			if a.hist.Len() > 0 {
				a.mode = navigation.ModeResults
				a.resultsIndex = 0
			}
		}
	}
	return false
}

func (a *App) handleCommandChord(ch event.Chord) bool {
	switch ch.Kind {
	case event.ChordSpecial:
		switch ch.Special {
		case event.KeyEscape:
			a.engine.Reset()
			a.mode = navigation.ModeNormal
		case event.KeyTab:
			a.engine.Tab()
		case event.KeyUp:
			a.engine.Cycle(-1)
		case event.KeyDown:
			a.engine.Cycle(1)
		case event.KeyBackspace:
			a.engine.Backspace()
		case event.KeyEnter:
			a.commitCommand()
		}
	case event.ChordRune:
		a.engine.Type(ch.Rune)
	}
	return false
}

// commitCommand executes the committed command line, pushes the result
// onto the history stack, mirrors it into the content view and returns
// to normal mode.
func (a *App) commitCommand() {
	line := a.engine.Commit()
	a.mode = navigation.ModeNormal
	if line == "" {
		return
	}
	name, args := dispatch.Split(line)
	if name == "clear" {
		a.content = nil
		return
	}

	res := a.disp.Execute(a.nav.Current(navigation.SlotModule), name, args)
	a.commandCount++
	a.hist.Push(history.Entry{
		Header:    a.contextLabel(),
		Command:   line,
		Output:    res.Output,
		Status:    res.Status,
		Timestamp: time.Now(),
	})
	a.content = strings.Split(res.Output, "\n")
	if res.Status != 0 {
		logging.Warn(subsystem, "command %q exited with status %d", line, res.Status)
	}
}

func (a *App) handleResultsChord(ch event.Chord) bool {
	n := a.hist.Len()
	if n == 0 {
		a.mode = navigation.ModeNormal
		return false
	}
	switch ch.Kind {
	case event.ChordSpecial:
		switch ch.Special {
		case event.KeyUp:
			a.resultsIndex = (a.resultsIndex - 1 + n) % n
		case event.KeyDown:
			a.resultsIndex = (a.resultsIndex + 1) % n
		case event.KeyEnter:
			if e := a.hist.At(a.resultsIndex); e != nil {
				a.content = strings.Split(e.Output, "\n")
				a.mode = navigation.ModeNormal
			}
		case event.KeyEscape:
			a.mode = navigation.ModeNormal
		}
	case event.ChordRune:
		switch ch.Rune {
		case 'k':
			a.resultsIndex = (a.resultsIndex - 1 + n) % n
		case 'j':
			a.resultsIndex = (a.resultsIndex + 1) % n
		case ' ', 't':
			a.hist.Toggle(a.resultsIndex)
		case 'y':
			if e := a.hist.At(a.resultsIndex); e != nil {
				if err := clipboard.WriteAll(e.Output); err != nil {
					logging.Warn(subsystem, "clipboard copy failed: %v", err)
				} else {
					logging.Info(subsystem, "copied output of %q", e.Command)
				}
			}
		case 'q':
			a.mode = navigation.ModeNormal
		}
	}
	return false
}

// slotChanged applies the side effects of a navigation index change.
func (a *App) slotChanged(slot navigation.Slot) {
	switch slot {
	case navigation.SlotOrg:
		a.reloadModules()
	case navigation.SlotModule:
		a.moduleChanged()
	case navigation.SlotFilter:
		a.applyFilter()
	}
}

// moduleChanged pairs the theme phase shift around the module context
// and lazily loads the module's command surface.
func (a *App) moduleChanged() {
	if a.themePushed {
		a.themes.Pop()
		a.themePushed = false
	}
	desc := a.activeModule()
	if desc == nil {
		return
	}
	a.reg.Commands(desc)
	if name, ok := a.cfg.ModuleThemes[desc.Name]; ok {
		a.themes.Push(name)
		a.themePushed = true
	}
}
