package app

import "github.com/llehouerou/mpressed/internal/keymap"

// Pane identifies a focusable region of the viewer.
type Pane int

const (
	PaneTable Pane = iota
	PaneSort
	PaneGroup
	PaneFilter
)

// paneOrder is the tab cycle.
var paneOrder = []Pane{PaneTable, PaneSort, PaneGroup, PaneFilter}

func (p Pane) String() string {
	switch p {
	case PaneTable:
		return "Table"
	case PaneSort:
		return "Sort"
	case PaneGroup:
		return "Group"
	case PaneFilter:
		return "Filter"
	}
	return "Unknown"
}

// context is the key binding context of the pane.
func (p Pane) context() string {
	switch p {
	case PaneSort:
		return keymap.ContextSort
	case PaneGroup:
		return keymap.ContextGroup
	case PaneFilter:
		return keymap.ContextFilter
	default:
		return keymap.ContextTable
	}
}

// sidebar reports whether the pane lives in the left column.
func (p Pane) sidebar() bool {
	return p != PaneTable
}

// next returns the pane delta steps along the tab cycle, wrapping.
func (p Pane) next(delta int) Pane {
	n := len(paneOrder)
	return paneOrder[((int(p)+delta)%n+n)%n]
}
