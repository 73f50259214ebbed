// Package headerbar renders the viewer's one-line header.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mpressed/internal/ui/render"
	"github.com/llehouerou/mpressed/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Title is the application name shown at the left.
const Title = "mpressed"

// Tab is one pane name; Active marks the focused one.
type Tab struct {
	Name   string
	Active bool
}

// Render returns the header for the given width: the title on the left,
// the pane tabs after it and info right-aligned.
func Render(tabs []Tab, info string, width int) string {
	if width < 20 {
		return ""
	}

	t := styles.T()
	s := t.S()

	title := styles.ApplyBoldGradient(Title, t.Primary, t.Secondary)

	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab.Active {
			parts = append(parts, s.Accent.Render(tab.Name))
		} else {
			parts = append(parts, s.Muted.Render(tab.Name))
		}
	}
	left := title + "  " + strings.Join(parts, s.Subtle.Render(" │ "))

	right := s.Muted.Render(info)
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > width {
		right = ""
	}
	return render.Clip(render.Row(left, right, width), width)
}
