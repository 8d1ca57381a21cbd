package theme

import "github.com/charmbracelet/lipgloss"

// Styles is a palette compiled into the lipgloss styles the renderer
// composes rows with. Compilation happens once per activation, not per
// frame.
type Styles struct {
	Header      lipgloss.Style
	HeaderFocus lipgloss.Style
	Title       lipgloss.Style
	Separator   lipgloss.Style
	Marker      lipgloss.Style
	Prompt      lipgloss.Style
	Input       lipgloss.Style
	Dropdown    lipgloss.Style
	DropdownSel lipgloss.Style
	Content     lipgloss.Style
	EntryHeader lipgloss.Style
	EntrySel    lipgloss.Style
	Collapsed   lipgloss.Style
	Footer      lipgloss.Style
	FooterWarn  lipgloss.Style
	FooterError lipgloss.Style
}

// Compile turns a palette into renderable styles.
func Compile(t Theme) Styles {
	fg := lipgloss.Color(t.Foreground)
	dim := lipgloss.Color(t.Dim)
	accent := lipgloss.Color(t.Accent)
	sel := lipgloss.Color(t.Selection)

	return Styles{
		Header:      lipgloss.NewStyle().Foreground(fg),
		HeaderFocus: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Title)).Bold(true),
		Separator:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Separator)),
		Marker:      lipgloss.NewStyle().Foreground(accent).Bold(true),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Prompt)).Bold(true),
		Input:       lipgloss.NewStyle().Foreground(fg),
		Dropdown:    lipgloss.NewStyle().Foreground(fg),
		DropdownSel: lipgloss.NewStyle().Foreground(accent).Background(sel).Bold(true),
		Content:     lipgloss.NewStyle().Foreground(fg),
		EntryHeader: lipgloss.NewStyle().Foreground(accent),
		EntrySel:    lipgloss.NewStyle().Foreground(accent).Background(sel),
		Collapsed:   lipgloss.NewStyle().Foreground(dim).Italic(true),
		Footer:      lipgloss.NewStyle().Foreground(dim),
		FooterWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusWarn)),
		FooterError: lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusError)).Bold(true),
	}
}
