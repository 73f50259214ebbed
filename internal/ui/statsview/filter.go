package statsview

import (
	"slices"

	"github.com/llehouerou/mpressed/internal/stats"
)

// FilterSet maps artists to an inclusion flag. Unknown artists are included.
type FilterSet struct {
	artists []string
	flags   map[string]bool
}

// Sync replaces the artist list, keeping the flags of artists already known
// and including new ones.
func (f *FilterSet) Sync(artists []string) {
	if f.flags == nil {
		f.flags = make(map[string]bool)
	}
	f.artists = slices.Clone(artists)
	for _, a := range artists {
		if _, ok := f.flags[a]; !ok {
			f.flags[a] = true
		}
	}
}

// Artists returns the known artists in display order.
func (f *FilterSet) Artists() []string {
	return f.artists
}

// Included reports whether rows of artist are shown.
func (f *FilterSet) Included(artist string) bool {
	inc, ok := f.flags[artist]
	return !ok || inc
}

// Toggle flips the flag of artist.
func (f *FilterSet) Toggle(artist string) {
	if f.flags == nil {
		f.flags = make(map[string]bool)
	}
	f.flags[artist] = !f.Included(artist)
}

// IncludeAll resets every flag to included.
func (f *FilterSet) IncludeAll() {
	for a := range f.flags {
		f.flags[a] = true
	}
}

// Excluded returns the number of hidden artists.
func (f *FilterSet) Excluded() int {
	n := 0
	for _, a := range f.artists {
		if !f.Included(a) {
			n++
		}
	}
	return n
}

// Apply returns the rows whose artist is included. rows is not modified.
func (f *FilterSet) Apply(rows []stats.Row) []stats.Row {
	out := make([]stats.Row, 0, len(rows))
	for _, r := range rows {
		if f.Included(r.Artist) {
			out = append(out, r)
		}
	}
	return out
}
