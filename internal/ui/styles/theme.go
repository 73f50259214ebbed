// Package styles holds the viewer's color palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette.
type Theme struct {
	Primary   lipgloss.Color // selection, focused pane, chart bars
	Secondary lipgloss.Color // title gradient end

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color // selected table row

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	styles *Styles
}

// Styles are the pre-built styles derived from a Theme.
type Styles struct {
	Base   lipgloss.Style // cell text
	Muted  lipgloss.Style // headers, counts, hints
	Subtle lipgloss.Style // axes, separators
	Title  lipgloss.Style // panel titles
	Accent lipgloss.Style // selected entries, active tab, help keys
	Cursor lipgloss.Style // selected table row
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the styles of t, building them on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
	}
}
