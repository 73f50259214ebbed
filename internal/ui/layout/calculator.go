// Package layout provides pure functions for the viewer's dimensions.
package layout

// Fixed heights of the chrome around the panes.
const (
	HeaderHeight = 1
	FooterHeight = 1
)

// Panel heights in the sidebar: border (2) plus a title line and one line
// per entry.
const (
	SortPanelHeight  = 2 + 1 + 4
	GroupPanelHeight = 2 + 1 + 4
	minFilterHeight  = 4
)

// Sidebar width bounds.
const (
	minSidebarWidth = 22
	maxSidebarWidth = 32
)

// NarrowThreshold is the terminal width below which the sidebar is hidden
// unless a sidebar pane is focused.
const NarrowThreshold = 60

// Layout holds the computed sizes of every region.
type Layout struct {
	ContentHeight int

	SidebarWidth int
	MainWidth    int

	FilterHeight int

	ChartHeight int // 0 when no chart is shown
	TableHeight int
}

// Compute lays out a width x height terminal. chart reserves room for the
// date chart above the table.
func Compute(width, height int, chart bool) Layout {
	l := Layout{ContentHeight: ContentHeight(height)}

	l.SidebarWidth = SidebarWidth(width)
	l.MainWidth = max(width-l.SidebarWidth, 0)
	l.FilterHeight = max(l.ContentHeight-SortPanelHeight-GroupPanelHeight, minFilterHeight)

	l.TableHeight = l.ContentHeight
	if chart {
		l.ChartHeight = ChartHeight(l.ContentHeight)
		l.TableHeight = l.ContentHeight - l.ChartHeight
	}
	return l
}

// ContentHeight is the height left for panes under the header and above
// the footer.
func ContentHeight(windowHeight int) int {
	return max(windowHeight-HeaderHeight-FooterHeight, 0)
}

// SidebarWidth returns the width of the sort/group/filter column: a quarter
// of the terminal, bounded, and the whole width on narrow terminals.
func SidebarWidth(windowWidth int) int {
	if IsNarrowMode(windowWidth) {
		return windowWidth
	}
	return min(max(windowWidth/4, minSidebarWidth), maxSidebarWidth)
}

// ChartHeight gives the chart two fifths of the content, at least 6 rows,
// and never more than half.
func ChartHeight(contentHeight int) int {
	if contentHeight < 12 {
		return 0
	}
	return min(max(contentHeight*2/5, 6), contentHeight/2)
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}
