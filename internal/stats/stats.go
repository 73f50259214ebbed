// Package stats aggregates the play log into ranked views.
package stats

import (
	"cmp"
	"slices"

	"github.com/llehouerou/mpressed/internal/store"
)

// Kind is the grouping a row belongs to.
type Kind int

const (
	Ungrouped Kind = iota
	ByDate
	ByArtist
	ByAlbum
)

func (k Kind) String() string {
	switch k {
	case Ungrouped:
		return "None"
	case ByDate:
		return "Date"
	case ByArtist:
		return "Artist"
	case ByAlbum:
		return "Album"
	}
	return "Unknown"
}

// Row is one line of a statistics view. Kind.Fields lists which fields are
// set; rendering and sorting go through Text and Field.Compare.
type Row struct {
	Kind   Kind
	Artist string
	Album  string
	Title  string
	Date   string
	Plays  int
	Share  float64
}

// Key returns the value the row is grouped on.
func (r Row) Key() string {
	switch r.Kind {
	case ByDate:
		return r.Date
	case ByArtist:
		return r.Artist
	case ByAlbum:
		return r.Album
	default:
		return r.Artist + "\x00" + r.Album + "\x00" + r.Title
	}
}

// Weighted reports whether the row kind carries a weighted share.
func (k Kind) Weighted() bool {
	return k == ByArtist || k == ByAlbum
}

// Build computes the view for kind from a snapshot. Rows are ordered by
// descending plays, ties broken by key ascending.
func Build(snap store.Snapshot, kind Kind) []Row {
	var rows []Row
	switch kind {
	case Ungrouped:
		rows = ungrouped(snap)
	case ByDate:
		rows = byDate(snap)
	case ByArtist:
		rows = byKey(snap, ByArtist, func(s store.Song) string { return s.Artist })
	case ByAlbum:
		rows = byKey(snap, ByAlbum, func(s store.Song) string { return s.Album })
	}
	rankByPlays(rows)
	return rows
}

func rankByPlays(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(b.Plays, a.Plays); c != 0 {
			return c
		}
		return cmp.Compare(a.Key(), b.Key())
	})
}

func songIndex(snap store.Snapshot) map[int64]store.Song {
	idx := make(map[int64]store.Song, len(snap.Songs))
	for _, s := range snap.Songs {
		idx[s.ID] = s
	}
	return idx
}

func ungrouped(snap store.Snapshot) []Row {
	totals := make(map[int64]int)
	for _, c := range snap.Counts {
		totals[c.SongID] += c.Plays
	}

	rows := make([]Row, 0, len(totals))
	for _, s := range snap.Songs {
		plays, ok := totals[s.ID]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			Kind:   Ungrouped,
			Artist: s.Artist,
			Album:  s.Album,
			Title:  s.Title,
			Plays:  plays,
		})
	}
	return rows
}

func byDate(snap store.Snapshot) []Row {
	totals := make(map[string]int)
	var order []string
	for _, c := range snap.Counts {
		if _, ok := totals[c.Date]; !ok {
			order = append(order, c.Date)
		}
		totals[c.Date] += c.Plays
	}

	rows := make([]Row, 0, len(order))
	for _, d := range order {
		rows = append(rows, Row{Kind: ByDate, Date: d, Plays: totals[d]})
	}
	return rows
}

// byKey groups plays by an artist or album key and fills the weighted share.
func byKey(snap store.Snapshot, kind Kind, keyOf func(store.Song) string) []Row {
	songs := songIndex(snap)

	// freq: distinct cataloged songs per key
	freq := make(map[string]int)
	for _, s := range snap.Songs {
		freq[keyOf(s)]++
	}

	totals := make(map[string]int)
	var order []string
	for _, c := range snap.Counts {
		s, ok := songs[c.SongID]
		if !ok {
			continue
		}
		k := keyOf(s)
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		totals[k] += c.Plays
	}

	rows := make([]Row, 0, len(order))
	var sum float64
	weights := make([]float64, len(order))
	for i, k := range order {
		weights[i] = float64(totals[k]) / float64(freq[k])
		sum += weights[i]

		r := Row{Kind: kind, Plays: totals[k]}
		if kind == ByArtist {
			r.Artist = k
		} else {
			r.Album = k
		}
		rows = append(rows, r)
	}

	if sum > 0 {
		for i := range rows {
			rows[i].Share = weights[i] / sum
		}
	}
	return rows
}

// SortByShare orders weighted rows by descending share, ties by key.
func SortByShare(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(b.Share, a.Share); c != 0 {
			return c
		}
		return cmp.Compare(a.Key(), b.Key())
	})
}

// Timeline returns the per-date totals in ascending date order.
func Timeline(snap store.Snapshot) []Row {
	rows := byDate(snap)
	slices.SortFunc(rows, func(a, b Row) int { return cmp.Compare(a.Date, b.Date) })
	return rows
}

// Artists returns every cataloged artist, sorted.
func Artists(snap store.Snapshot) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range snap.Songs {
		if !seen[s.Artist] {
			seen[s.Artist] = true
			names = append(names, s.Artist)
		}
	}
	slices.Sort(names)
	return names
}

// Total returns the sum of plays over rows.
func Total(rows []Row) int {
	var n int
	for _, r := range rows {
		n += r.Plays
	}
	return n
}
