package statsview

import "github.com/llehouerou/mpressed/internal/stats"

// groupOrder is the linear order the group cursor walks.
var groupOrder = []stats.Kind{stats.Ungrouped, stats.ByDate, stats.ByArtist, stats.ByAlbum}

// Groups returns the groupings in cursor order.
func Groups() []stats.Kind {
	return groupOrder
}

// GroupCursor selects the active grouping. Movement is clamped at both ends.
type GroupCursor struct {
	idx int
}

// Kind returns the selected grouping.
func (g GroupCursor) Kind() stats.Kind {
	return groupOrder[g.idx]
}

// Index returns the position in Groups().
func (g GroupCursor) Index() int {
	return g.idx
}

// Next moves one step towards Album. It reports whether the cursor moved.
func (g *GroupCursor) Next() bool {
	if g.idx >= len(groupOrder)-1 {
		return false
	}
	g.idx++
	return true
}

// Prev moves one step towards None. It reports whether the cursor moved.
func (g *GroupCursor) Prev() bool {
	if g.idx == 0 {
		return false
	}
	g.idx--
	return true
}
