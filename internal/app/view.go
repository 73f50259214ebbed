package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/mpressed/internal/keymap"
	"github.com/llehouerou/mpressed/internal/stats"
	"github.com/llehouerou/mpressed/internal/ui/headerbar"
	"github.com/llehouerou/mpressed/internal/ui/layout"
	"github.com/llehouerou/mpressed/internal/ui/popup"
	"github.com/llehouerou/mpressed/internal/ui/render"
	"github.com/llehouerou/mpressed/internal/ui/statsview"
	"github.com/llehouerou/mpressed/internal/ui/styles"
)

// View renders the viewer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var body string
	switch {
	case !layout.IsNarrowMode(m.width):
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderMain())
	case m.focus.sidebar():
		body = m.renderSidebar()
	default:
		body = m.renderMain()
	}

	view := strings.Join([]string{m.renderHeader(), body, m.renderFooter()}, "\n")
	if m.showHelp {
		view = popup.Compose(view, m.helpView.Render(), m.width)
	}
	return view
}

func (m Model) renderHeader() string {
	tabs := make([]headerbar.Tab, len(paneOrder))
	for i, p := range paneOrder {
		tabs[i] = headerbar.Tab{Name: p.String(), Active: p == m.focus}
	}

	total := stats.Total(m.view.Timeline())
	info := fmt.Sprintf("%s · %s plays", humanize.Bytes(uint64(max(m.dbSize, 0))), humanize.Comma(int64(total)))
	if m.view.Weighted() {
		info = "weighted · " + info
	}
	return headerbar.Render(tabs, info, m.width)
}

func (m Model) renderSidebar() string {
	w := m.sidebarWidth()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.view.RenderSortPanel(w, m.focus == PaneSort),
		m.view.RenderGroupPanel(w, m.focus == PaneGroup),
		m.view.RenderFilterPanel(w, m.layout.FilterHeight, m.focus == PaneFilter),
	)
}

func (m Model) renderMain() string {
	w := m.mainWidth()
	table := m.view.RenderTable(w, m.layout.TableHeight, m.focus == PaneTable)
	if m.layout.ChartHeight == 0 {
		return table
	}
	chart := statsview.RenderChart(m.view.Timeline(), w, m.layout.ChartHeight, false)
	return lipgloss.JoinVertical(lipgloss.Left, chart, table)
}

// sidebarWidth and mainWidth account for narrow mode, where one column
// takes the whole terminal.
func (m Model) sidebarWidth() int {
	return m.layout.SidebarWidth
}

func (m Model) mainWidth() int {
	if layout.IsNarrowMode(m.width) {
		return m.width
	}
	return m.layout.MainWidth
}

func (m Model) renderFooter() string {
	s := styles.T().S()
	indicator := s.Muted.Render(m.view.ScrollIndicator())

	h := m.help
	h.Width = max(m.width-lipgloss.Width(indicator)-1, 0)
	keys := h.View(keymap.HelpFor(m.focus.context()))

	return render.Clip(render.Row(keys, indicator, m.width), m.width)
}
