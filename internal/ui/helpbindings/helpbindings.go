// Package helpbindings renders the scrollable key binding reference shown
// over the viewer.
package helpbindings

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mpressed/internal/keymap"
	"github.com/llehouerou/mpressed/internal/ui"
	"github.com/llehouerou/mpressed/internal/ui/popup"
	"github.com/llehouerou/mpressed/internal/ui/styles"
)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{
	keymap.ContextGlobal,
	keymap.ContextTable,
	keymap.ContextSort,
	keymap.ContextGroup,
	keymap.ContextFilter,
}

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	keymap.ContextGlobal: "Global",
	keymap.ContextTable:  "Table",
	keymap.ContextSort:   "Sort Panel",
	keymap.ContextGroup:  "Group Panel",
	keymap.ContextFilter: "Filter Panel",
}

// Model holds the state of the help popup.
type Model struct {
	ui.Base
	scrollOffset int
}

// New creates a help popup model.
func New() Model {
	return Model{}
}

// ScrollDown moves the view one line down, clamped.
func (m *Model) ScrollDown() {
	m.scrollOffset = min(m.scrollOffset+1, m.maxScroll())
}

// ScrollUp moves the view one line up, clamped.
func (m *Model) ScrollUp() {
	m.scrollOffset = max(m.scrollOffset-1, 0)
}

// Reset scrolls back to the top.
func (m *Model) Reset() {
	m.scrollOffset = 0
}

// Render returns the popup centered in the model's size.
func (m Model) Render() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	lines := strings.Split(buildContent(), "\n")
	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))

	d := popup.New()
	d.Title = "Help"
	d.Content = strings.Join(lines[start:end], "\n")
	d.Footer = m.footer(len(lines))
	d.Width = maxWidth(lines) + 2
	return d.Render(m.Width(), m.Height())
}

func buildContent() string {
	t := styles.T()
	s := t.S()
	keyStyle := s.Accent
	headerStyle := s.Title.Foreground(t.Secondary)

	keyWidth := 0
	for _, b := range keymap.Bindings {
		keyWidth = max(keyWidth, len(keyLabel(b.Keys)))
	}

	var sb strings.Builder
	for i, ctx := range categoryOrder {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(headerStyle.Render(categoryLabels[ctx]))
		sb.WriteString("\n")
		sb.WriteString(s.Subtle.Render(strings.Repeat("─", keyWidth+16)))
		sb.WriteString("\n")
		for _, b := range keymap.ByContext(ctx) {
			label := keyLabel(b.Keys)
			sb.WriteString(keyStyle.Render(label + strings.Repeat(" ", keyWidth-len(label))))
			sb.WriteString("  ")
			sb.WriteString(s.Base.Render(b.Description))
			sb.WriteString("\n")
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// keyLabel joins keys for display; the space key has no visible glyph.
func keyLabel(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, ", ")
}

func maxWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, lipgloss.Width(l))
	}
	return w
}

func (m Model) footer(total int) string {
	if total <= m.visibleHeight() {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	// title, footer, borders and margins
	return max(m.Height()-10, 5)
}

func (m Model) maxScroll() int {
	total := strings.Count(buildContent(), "\n") + 1
	return max(total-m.visibleHeight(), 0)
}
