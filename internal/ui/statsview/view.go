package statsview

import (
	"fmt"
	"strings"

	"github.com/llehouerou/mpressed/internal/stats"
	"github.com/llehouerou/mpressed/internal/ui/render"
	"github.com/llehouerou/mpressed/internal/ui/styles"
)

// tableOverhead is border (2) plus header and separator lines.
const tableOverhead = 4

// TableViewport returns the number of rows a table of the given outer height
// can show.
func TableViewport(height int) int {
	return max(height-tableOverhead, 1)
}

// column is one table column, rendered through Row.Text.
type column struct {
	field stats.Field
	width int // fixed width; 0 means share the remaining space
}

func (c column) right() bool {
	return c.field.Numeric()
}

func columnsFor(kind stats.Kind) []column {
	fields := kind.Fields()
	cols := make([]column, len(fields))
	for i, f := range fields {
		cols[i] = column{field: f}
		switch f {
		case stats.FieldPlays:
			cols[i].width = 8
		case stats.FieldShare:
			cols[i].width = 7
		}
	}
	return cols
}

// layoutColumns assigns the flexible columns their share of width.
func layoutColumns(cols []column, width int) []int {
	widths := make([]int, len(cols))
	fixed, flex := len(cols)-1, 0 // one space between columns
	for _, c := range cols {
		if c.width > 0 {
			fixed += c.width
		} else {
			flex++
		}
	}
	remaining := max(width-fixed, 0)
	for i, c := range cols {
		switch {
		case c.width > 0:
			widths[i] = c.width
		case flex > 0:
			w := remaining / flex
			remaining -= w
			flex--
			widths[i] = w
		}
	}
	return widths
}

func formatCells(cols []column, widths []int, cell func(column) string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		s := render.Truncate(cell(c), widths[i])
		if c.right() {
			s = render.PadLeft(s, widths[i])
		} else {
			s = render.Pad(s, widths[i])
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}

// RenderTable renders the active rows inside a panel of the given outer size.
func (m *Model) RenderTable(width, height int, focused bool) string {
	s := styles.T().S()
	innerW := max(width-2, 1)
	innerH := max(height-2, 1)

	cols := columnsFor(m.Group())
	widths := layoutColumns(cols, innerW)

	lines := make([]string, 0, innerH)
	header := formatCells(cols, widths, func(c column) string { return c.field.String() })
	lines = append(lines, s.Title.Render(header), s.Subtle.Render(render.Separator(innerW)))

	if len(m.rows) == 0 {
		lines = append(lines, s.Muted.Render(render.Pad("No plays recorded yet", innerW)))
	}

	start, end := m.VisibleRange()
	for i := start; i < end; i++ {
		r := m.rows[i]
		line := formatCells(cols, widths, func(c column) string { return r.Text(c.field) })
		switch {
		case i == m.Selected() && focused:
			line = s.Cursor.Render(line)
		case i == m.Selected():
			line = s.Accent.Render(line)
		default:
			line = s.Base.Render(line)
		}
		lines = append(lines, line)
	}

	for len(lines) < innerH {
		lines = append(lines, render.EmptyLine(innerW))
	}
	lines = lines[:innerH]

	return styles.PanelStyle(focused).Render(strings.Join(lines, "\n"))
}

// sortArrow marks ascending with ⌃ and descending with ⌄.
func sortArrow(desc bool) string {
	if desc {
		return "⌄"
	}
	return "⌃"
}

// RenderSortPanel renders the sort priority list in display order.
func (m *Model) RenderSortPanel(width int, focused bool) string {
	s := styles.T().S()
	innerW := max(width-2, 1)

	lines := []string{s.Title.Render(render.Pad("Sort", innerW))}
	for i, e := range m.sort.Display() {
		text := render.TruncateAndPad(fmt.Sprintf("%d. %s %s", i+1, sortArrow(e.Descending), e.Field), innerW)
		switch {
		case focused && i == m.sortCursor:
			text = s.Cursor.Render(text)
		case i == 0:
			text = s.Accent.Render(text)
		default:
			text = s.Base.Render(text)
		}
		lines = append(lines, text)
	}
	return styles.PanelStyle(focused).Render(strings.Join(lines, "\n"))
}

// RenderGroupPanel renders the grouping choices with the active one marked.
func (m *Model) RenderGroupPanel(width int, focused bool) string {
	s := styles.T().S()
	innerW := max(width-2, 1)

	lines := []string{s.Title.Render(render.Pad("Group", innerW))}
	for i, k := range Groups() {
		if i == m.GroupIndex() {
			text := render.TruncateAndPad("▸ "+k.String(), innerW)
			if focused {
				lines = append(lines, s.Cursor.Render(text))
			} else {
				lines = append(lines, s.Accent.Render(text))
			}
			continue
		}
		lines = append(lines, s.Muted.Render(render.TruncateAndPad("  "+k.String(), innerW)))
	}
	return styles.PanelStyle(focused).Render(strings.Join(lines, "\n"))
}

// RenderFilterPanel renders the artist inclusion list.
func (m *Model) RenderFilterPanel(width, height int, focused bool) string {
	s := styles.T().S()
	innerW := max(width-2, 1)
	innerH := max(height-2, 1)
	listH := max(innerH-1, 1)

	title := "Filter"
	if n := m.filter.Excluded(); n > 0 {
		title = fmt.Sprintf("Filter (%d hidden)", n)
	}
	lines := []string{s.Title.Render(render.TruncateAndPad(title, innerW))}

	artists := m.filter.Artists()
	fc := m.filterCursor
	fc.EnsureVisible(len(artists), listH)
	start, end := fc.VisibleRange(len(artists), listH)
	for i := start; i < end; i++ {
		a := artists[i]
		mark := "[x]"
		if !m.filter.Included(a) {
			mark = "[ ]"
		}
		text := render.TruncateAndPad(mark+" "+a, innerW)
		switch {
		case focused && i == fc.Pos():
			text = s.Cursor.Render(text)
		case !m.filter.Included(a):
			text = s.Subtle.Render(text)
		default:
			text = s.Base.Render(text)
		}
		lines = append(lines, text)
	}

	for len(lines) < innerH {
		lines = append(lines, render.EmptyLine(innerW))
	}
	return styles.PanelStyle(focused).Render(strings.Join(lines[:innerH], "\n"))
}
