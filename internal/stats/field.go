package stats

import (
	"cmp"
	"fmt"

	"github.com/dustin/go-humanize"
)

// Field names one value of a Row. The first four are the sortable fields of
// the ungrouped view.
type Field int

const (
	FieldArtist Field = iota
	FieldAlbum
	FieldTitle
	FieldPlays
	FieldDate
	FieldShare
)

func (f Field) String() string {
	switch f {
	case FieldArtist:
		return "Artist"
	case FieldAlbum:
		return "Album"
	case FieldTitle:
		return "Title"
	case FieldPlays:
		return "Plays"
	case FieldDate:
		return "Date"
	case FieldShare:
		return "Share"
	}
	return "Unknown"
}

// Numeric reports whether f holds a number rather than text.
func (f Field) Numeric() bool {
	return f == FieldPlays || f == FieldShare
}

// Compare orders two rows ascending on f.
func (f Field) Compare(a, b Row) int {
	switch f {
	case FieldPlays:
		return cmp.Compare(a.Plays, b.Plays)
	case FieldShare:
		return cmp.Compare(a.Share, b.Share)
	}
	return cmp.Compare(a.Text(f), b.Text(f))
}

// Fields returns the fields set on rows of kind, in display order.
func (k Kind) Fields() []Field {
	switch k {
	case ByDate:
		return []Field{FieldDate, FieldPlays}
	case ByArtist:
		return []Field{FieldArtist, FieldPlays, FieldShare}
	case ByAlbum:
		return []Field{FieldAlbum, FieldPlays, FieldShare}
	default:
		return []Field{FieldArtist, FieldAlbum, FieldTitle, FieldPlays}
	}
}

// Text returns f formatted for display. Plays are comma grouped and the
// share is a percentage with one decimal.
func (r Row) Text(f Field) string {
	switch f {
	case FieldArtist:
		return r.Artist
	case FieldAlbum:
		return r.Album
	case FieldTitle:
		return r.Title
	case FieldDate:
		return r.Date
	case FieldPlays:
		return humanize.Comma(int64(r.Plays))
	case FieldShare:
		return fmt.Sprintf("%.1f%%", r.Share*100)
	}
	return ""
}
