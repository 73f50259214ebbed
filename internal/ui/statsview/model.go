// Package statsview holds the interactive state of the statistics viewer and
// renders its panels.
package statsview

import (
	"fmt"

	"github.com/llehouerou/mpressed/internal/stats"
	"github.com/llehouerou/mpressed/internal/store"
	"github.com/llehouerou/mpressed/internal/ui/cursor"
)

// selectionMargin keeps a few rows visible around the selection.
const selectionMargin = 2

// Model is the viewer's state. Every mutation that changes the active row
// set rebuilds it and clamps the selection.
type Model struct {
	snap     store.Snapshot
	group    GroupCursor
	sort     SortPriority
	filter   FilterSet
	weighted bool

	rows     []stats.Row
	timeline []stats.Row

	selection    cursor.Cursor
	sortCursor   int
	filterCursor cursor.Cursor
	viewport     int
}

// New creates an empty model with the default sort priority.
func New() *Model {
	return &Model{
		sort:         DefaultSortPriority(),
		selection:    cursor.New(selectionMargin),
		filterCursor: cursor.New(0),
	}
}

// SetSnapshot replaces the data and rebuilds the active view. Artist filter
// flags survive a refresh.
func (m *Model) SetSnapshot(snap store.Snapshot) {
	m.snap = snap
	m.filter.Sync(stats.Artists(snap))
	m.filterCursor.ClampToBounds(len(m.filter.Artists()))
	m.timeline = stats.Timeline(snap)
	m.rebuild()
}

// SetViewport sets how many table rows are visible.
func (m *Model) SetViewport(rows int) {
	m.viewport = rows
	m.selection.EnsureVisible(len(m.rows), m.viewport)
}

// rebuild recomputes the active rows for the current grouping.
func (m *Model) rebuild() {
	kind := m.group.Kind()
	rows := stats.Build(m.snap, kind)

	switch {
	case kind == stats.Ungrouped:
		rows = m.filter.Apply(rows)
		m.sort.Apply(rows)
	case m.weighted && kind.Weighted():
		stats.SortByShare(rows)
	}

	m.rows = rows
	m.selection.ClampToBounds(len(m.rows))
	m.selection.EnsureVisible(len(m.rows), m.viewport)
}

// Rows returns the active rows in display order.
func (m *Model) Rows() []stats.Row {
	return m.rows
}

// Timeline returns the per-date totals in ascending date order.
func (m *Model) Timeline() []stats.Row {
	return m.timeline
}

// Snapshot returns the data the view was built from.
func (m *Model) Snapshot() store.Snapshot {
	return m.snap
}

// Grouping

// Group returns the active grouping.
func (m *Model) Group() stats.Kind {
	return m.group.Kind()
}

// GroupIndex returns the group cursor position.
func (m *Model) GroupIndex() int {
	return m.group.Index()
}

// NextGroup moves the group cursor forward; the selection goes back to the
// first row.
func (m *Model) NextGroup() {
	if m.group.Next() {
		m.regroup()
	}
}

// PrevGroup moves the group cursor back; the selection goes back to the
// first row.
func (m *Model) PrevGroup() {
	if m.group.Prev() {
		m.regroup()
	}
}

func (m *Model) regroup() {
	m.selection.Reset()
	m.rebuild()
}

// Sorting

// SortPriority returns the current priority list.
func (m *Model) SortPriority() SortPriority {
	return m.sort
}

// SortCursor returns the selected display index in the sort panel.
func (m *Model) SortCursor() int {
	return m.sortCursor
}

// MoveSortCursor moves the sort panel selection, clamped.
func (m *Model) MoveSortCursor(delta int) {
	m.sortCursor = min(max(m.sortCursor+delta, 0), m.sort.Len()-1)
}

// PromoteSort makes the selected sort field dominant and re-sorts. The
// promoted field is now first in display order, so the cursor follows it.
func (m *Model) PromoteSort() {
	m.sort.Promote(m.sortCursor)
	m.sortCursor = 0
	m.rebuild()
}

// ReverseSort flips the direction of the selected sort field and re-sorts.
func (m *Model) ReverseSort() {
	m.sort.Reverse(m.sortCursor)
	m.rebuild()
}

// Filtering

// Filter returns the artist filter.
func (m *Model) Filter() *FilterSet {
	return &m.filter
}

// FilterCursor returns the selected index in the filter panel.
func (m *Model) FilterCursor() cursor.Cursor {
	return m.filterCursor
}

// MoveFilterCursor moves the filter panel selection within height rows.
func (m *Model) MoveFilterCursor(delta, height int) {
	m.filterCursor.Move(delta, len(m.filter.Artists()), height)
}

// ToggleArtist flips the selected artist's inclusion.
func (m *Model) ToggleArtist() {
	artists := m.filter.Artists()
	if len(artists) == 0 {
		return
	}
	m.filter.Toggle(artists[m.filterCursor.Pos()])
	m.rebuild()
}

// IncludeAllArtists clears the filter.
func (m *Model) IncludeAllArtists() {
	m.filter.IncludeAll()
	m.rebuild()
}

// Weighting

// Weighted reports whether artist/album views are ranked by weighted share.
func (m *Model) Weighted() bool {
	return m.weighted
}

// ToggleWeighted switches between raw plays and weighted share ranking.
func (m *Model) ToggleWeighted() {
	m.weighted = !m.weighted
	m.rebuild()
}

// Selection

// Selected returns the selected row index.
func (m *Model) Selected() int {
	return m.selection.Pos()
}

// MoveSelection moves the selected row by delta, clamped.
func (m *Model) MoveSelection(delta int) {
	m.selection.Move(delta, len(m.rows), m.viewport)
}

// SelectFirst jumps to the first row.
func (m *Model) SelectFirst() {
	m.selection.JumpStart()
}

// SelectLast jumps to the last row.
func (m *Model) SelectLast() {
	m.selection.JumpEnd(len(m.rows), m.viewport)
}

// VisibleRange returns the [start, end) rows inside the viewport.
func (m *Model) VisibleRange() (start, end int) {
	return m.selection.VisibleRange(len(m.rows), m.viewport)
}

// ScrollIndicator renders the selection position as "n/total".
func (m *Model) ScrollIndicator() string {
	if len(m.rows) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", m.selection.Pos()+1, len(m.rows))
}
