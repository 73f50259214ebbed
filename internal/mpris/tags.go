package mpris

import (
	"os"

	"github.com/dhowden/tag"
)

// fileTags are the identity fields read from an audio file.
type fileTags struct {
	Artist string
	Album  string
	Title  string
}

// readFileTags reads artist, album and title from the tags of the file at
// path. Players that only report a URL (or a filename as title) still get a
// usable identity this way.
func readFileTags(path string) (fileTags, bool) {
	f, err := os.Open(path)
	if err != nil {
		return fileTags{}, false
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return fileTags{}, false
	}

	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}
	return fileTags{
		Artist: artist,
		Album:  m.Album(),
		Title:  m.Title(),
	}, true
}
