package statsview

import (
	"slices"

	"github.com/llehouerou/mpressed/internal/stats"
)

// Field is a column the ungrouped view can be sorted on.
type Field = stats.Field

const (
	FieldArtist = stats.FieldArtist
	FieldAlbum  = stats.FieldAlbum
	FieldTitle  = stats.FieldTitle
	FieldPlays  = stats.FieldPlays
)

// SortEntry is one field of the priority list.
type SortEntry struct {
	Field      Field
	Descending bool
}

func (e SortEntry) compare(a, b stats.Row) int {
	c := e.Field.Compare(a, b)
	if e.Descending {
		return -c
	}
	return c
}

// SortPriority holds every Field exactly once. The last entry is the
// dominant key; the display order is the list reversed.
type SortPriority struct {
	entries []SortEntry
}

// DefaultSortPriority ranks by plays, then artist, album and title.
func DefaultSortPriority() SortPriority {
	return SortPriority{entries: []SortEntry{
		{Field: FieldTitle},
		{Field: FieldAlbum},
		{Field: FieldArtist},
		{Field: FieldPlays, Descending: true},
	}}
}

// NewSortPriority builds a priority list from entries in list order. It
// returns false unless every Field appears exactly once.
func NewSortPriority(entries ...SortEntry) (SortPriority, bool) {
	if len(entries) != int(FieldPlays)+1 {
		return SortPriority{}, false
	}
	seen := make(map[Field]bool, len(entries))
	for _, e := range entries {
		if e.Field < FieldArtist || e.Field > FieldPlays || seen[e.Field] {
			return SortPriority{}, false
		}
		seen[e.Field] = true
	}
	return SortPriority{entries: slices.Clone(entries)}, true
}

// Entries returns the list in list order (weakest first).
func (p SortPriority) Entries() []SortEntry {
	return slices.Clone(p.entries)
}

// Display returns the list in display order (dominant first).
func (p SortPriority) Display() []SortEntry {
	out := slices.Clone(p.entries)
	slices.Reverse(out)
	return out
}

// Len returns the number of entries.
func (p SortPriority) Len() int {
	return len(p.entries)
}

// Apply sorts rows with one stable pass per entry, front to back, so the
// last entry ends up dominant and earlier ones break its ties.
func (p SortPriority) Apply(rows []stats.Row) {
	for _, e := range p.entries {
		slices.SortStableFunc(rows, e.compare)
	}
}

// Promote moves the entry at display index i to the end of the list, making
// it the dominant key.
func (p *SortPriority) Promote(i int) {
	li := p.listIndex(i)
	if li < 0 {
		return
	}
	e := p.entries[li]
	p.entries = append(slices.Delete(p.entries, li, li+1), e)
}

// Reverse flips the direction of the entry at display index i.
func (p *SortPriority) Reverse(i int) {
	li := p.listIndex(i)
	if li < 0 {
		return
	}
	p.entries[li].Descending = !p.entries[li].Descending
}

func (p SortPriority) listIndex(displayIdx int) int {
	if displayIdx < 0 || displayIdx >= len(p.entries) {
		return -1
	}
	return len(p.entries) - 1 - displayIdx
}
