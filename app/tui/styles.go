package tui

import (
	"github.com/Semior001/newsdesk/app/view"
	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	fg, muted, accent, selectedFg, selectedBg, err, notice, bar lipgloss.Color
}

var palettes = map[view.Theme]palette{
	view.ThemeLight: {
		fg:         lipgloss.Color("235"),
		muted:      lipgloss.Color("244"),
		accent:     lipgloss.Color("25"),
		selectedFg: lipgloss.Color("232"),
		selectedBg: lipgloss.Color("153"),
		err:        lipgloss.Color("160"),
		notice:     lipgloss.Color("28"),
		bar:        lipgloss.Color("254"),
	},
	view.ThemeDark: {
		fg:         lipgloss.Color("252"),
		muted:      lipgloss.Color("243"),
		accent:     lipgloss.Color("75"),
		selectedFg: lipgloss.Color("255"),
		selectedBg: lipgloss.Color("62"),
		err:        lipgloss.Color("203"),
		notice:     lipgloss.Color("78"),
		bar:        lipgloss.Color("236"),
	},
}

// styles is a set of styles of a single theme.
type styles struct {
	Title    lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Star     lipgloss.Style
	Error    lipgloss.Style
	Notice   lipgloss.Style
	Body     lipgloss.Style
	Link     lipgloss.Style
	Help     lipgloss.Style
}

func newStyles(theme view.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[view.ThemeLight]
	}

	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Tab:      lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
		TabOn:    lipgloss.NewStyle().Bold(true).Foreground(p.selectedFg).Background(p.selectedBg).Padding(0, 1),
		Item:     lipgloss.NewStyle().Foreground(p.fg).Padding(0, 1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.selectedFg).Background(p.selectedBg).Padding(0, 1),
		Muted:    lipgloss.NewStyle().Foreground(p.muted),
		Star:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(p.err),
		Notice:   lipgloss.NewStyle().Foreground(p.notice),
		Body:     lipgloss.NewStyle().Foreground(p.fg),
		Link:     lipgloss.NewStyle().Underline(true).Foreground(p.accent),
		Help:     lipgloss.NewStyle().Foreground(p.muted).Background(p.bar).Padding(0, 1),
	}
}
