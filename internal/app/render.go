package app

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"modctl/internal/navigation"
	"modctl/pkg/logging"
)

// render composes the full frame into the current buffer and flushes.
// All writes are region-relative; the renderer decides which rows
// actually reach the terminal.
func (a *App) render() {
	if a.renderer == nil {
		// No resize event yet; nothing to lay out against.
		return
	}
	buf := a.renderer.Current()
	buf.Clear()

	a.renderHeader()
	buf.SetRow(a.regions.Separator.Abs(0), a.separatorLine())
	a.renderCommandLine()
	a.renderContent()
	a.renderFooter()

	a.renderer.Flush()
}

func (a *App) renderHeader() {
	st := a.themes.Styles()
	buf := a.renderer.Current()
	slots := []navigation.Slot{navigation.SlotOrg, navigation.SlotModule, navigation.SlotFilter}

	if a.regions.Header.Height >= len(slots) {
		for row, slot := range slots {
			buf.SetRow(a.regions.Header.Abs(row), a.slotLine(slot))
		}
		return
	}
	// Cramped header: all three slots on one line.
	parts := make([]string, len(slots))
	for i, slot := range slots {
		label := fmt.Sprintf("%s:%s", slot, orDash(a.nav.Current(slot)))
		if slot == a.nav.Focused() {
			parts[i] = st.HeaderFocus.Render(label)
		} else {
			parts[i] = st.Header.Render(label)
		}
	}
	buf.SetRow(a.regions.Header.Abs(0), strings.Join(parts, "  "))
}

func (a *App) slotLine(slot navigation.Slot) string {
	st := a.themes.Styles()
	list := a.nav.List(slot)
	value := orDash(a.nav.Current(slot))
	label := fmt.Sprintf("%-7s %s", slot.String()+":", value)
	if len(list) > 1 {
		label += fmt.Sprintf("  (%d/%d)", a.nav.Index(slot)+1, len(list))
	}
	if slot == a.nav.Focused() {
		return st.HeaderFocus.Render("▸ " + label)
	}
	return st.Header.Render("  " + label)
}

// separatorLine draws the separator row with the animation marker. It is
// also used alone by the vsync path on control-change activity.
func (a *App) separatorLine() string {
	st := a.themes.Styles()
	if a.width <= 0 {
		return ""
	}
	pos := a.markerPos
	if pos < 0 {
		pos = 0
	}
	if pos >= a.width {
		pos = a.width - 1
	}
	line := st.Separator.Render(strings.Repeat("─", pos)) + st.Marker.Render("◆")
	if pad := a.width - pos - 1; pad > 0 {
		line += st.Separator.Render(strings.Repeat("─", pad))
	}
	return line
}

func (a *App) renderCommandLine() {
	st := a.themes.Styles()
	buf := a.renderer.Current()
	row := a.regions.CommandLine.Abs(0)

	switch a.mode {
	case navigation.ModeCommand:
		s := a.engine.State()
		buf.SetRow(row, st.Prompt.Render("> ")+st.Input.Render(s.Input)+st.Prompt.Render("█"))
	case navigation.ModeResults:
		buf.SetRow(row, st.Footer.Render(fmt.Sprintf("results %d/%d — ↑/↓ select · space toggle · enter open · y copy · esc back",
			a.resultsIndex+1, a.hist.Len())))
	default:
		buf.SetRow(row, st.Footer.Render(a.contextLabel()+" · : to enter a command"))
	}
}

func (a *App) renderContent() {
	switch a.mode {
	case navigation.ModeResults:
		a.renderResults()
	case navigation.ModeCommand:
		s := a.engine.State()
		if s.ShowHelp {
			a.renderLines(a.capabilityLines())
			return
		}
		if s.Open {
			a.renderDropdown()
			return
		}
		a.renderLines(a.content)
	default:
		a.renderLines(a.content)
	}
}

func (a *App) renderLines(lines []string) {
	st := a.themes.Styles()
	buf := a.renderer.Current()
	for i := 0; i < a.regions.Content.Height && i < len(lines); i++ {
		buf.SetRow(a.regions.Content.Abs(i), st.Content.Render(lines[i]))
	}
}

// renderDropdown paints the scroll-windowed candidate list at the top of
// the content region.
func (a *App) renderDropdown() {
	st := a.themes.Styles()
	buf := a.renderer.Current()
	visible, highlight := a.engine.Window()
	for i, cand := range visible {
		if !a.regions.Content.Contains(i) {
			break
		}
		line := "  " + cand
		if i == highlight {
			line = st.DropdownSel.Render("▸ " + cand)
		} else {
			line = st.Dropdown.Render(line)
		}
		buf.SetRow(a.regions.Content.Abs(i), line)
	}
}

// renderResults paints the history listing: one header line per entry,
// plus a short output preview for expanded entries.
func (a *App) renderResults() {
	st := a.themes.Styles()
	buf := a.renderer.Current()
	row := 0
	for i := 0; i < a.hist.Len() && row < a.regions.Content.Height; i++ {
		e := a.hist.At(i)
		status := "ok"
		if e.Status != 0 {
			status = fmt.Sprintf("exit %d", e.Status)
		}
		header := fmt.Sprintf("%2d) [%s] %s · %s (%s)", i+1, status, e.Header, e.Command, e.Timestamp.Format("15:04:05"))
		if i == a.resultsIndex {
			buf.SetRow(a.regions.Content.Abs(row), st.EntrySel.Render(header))
		} else {
			buf.SetRow(a.regions.Content.Abs(row), st.EntryHeader.Render(header))
		}
		row++
		if e.Collapsed {
			if row < a.regions.Content.Height {
				buf.SetRow(a.regions.Content.Abs(row), st.Collapsed.Render("     … collapsed"))
				row++
			}
			continue
		}
		preview := strings.Split(e.Output, "\n")
		const previewLines = 3
		for j := 0; j < len(preview) && j < previewLines && row < a.regions.Content.Height; j++ {
			buf.SetRow(a.regions.Content.Abs(row), st.Content.Render("     "+preview[j]))
			row++
		}
		if len(preview) > previewLines && row < a.regions.Content.Height {
			buf.SetRow(a.regions.Content.Abs(row), st.Collapsed.Render(fmt.Sprintf("     … %d more lines", len(preview)-previewLines)))
			row++
		}
	}
}

func (a *App) renderFooter() {
	st := a.themes.Styles()
	buf := a.renderer.Current()
	left := fmt.Sprintf("[%s] %s · %d modules · theme %s",
		a.mode, a.contextLabel(), len(a.reg.Visible()), a.themes.Active().Name)
	line := st.Footer.Render(left)
	if a.lastLog != nil {
		msg := a.lastLog.Message
		avail := a.width - runewidth.StringWidth(left) - 3
		if avail > 8 {
			msg = runewidth.Truncate(msg, avail, "…")
			switch {
			case a.lastLog.Level >= logging.LevelError:
				line += "  " + st.FooterError.Render(msg)
			case a.lastLog.Level >= logging.LevelWarn:
				line += "  " + st.FooterWarn.Render(msg)
			default:
				line += "  " + st.Footer.Render(msg)
			}
		}
	}
	buf.SetRow(a.regions.Footer.Abs(0), line)
}
