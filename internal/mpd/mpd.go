// Package mpd polls a Music Player Daemon server as a media session source.
package mpd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fhs/gompd/v2/mpd"

	"github.com/llehouerou/mpressed/internal/track"
	"github.com/llehouerou/mpressed/internal/tracker"
)

// Options locates the MPD server.
type Options struct {
	Network         string // "tcp" or "unix"
	Address         string
	Password        string
	ArtistSeparator string // joins multiple Artist tags
	Logger          *slog.Logger
}

// client is the subset of *mpd.Client the source needs.
type client interface {
	Status() (mpd.Attrs, error)
	CurrentSong() (mpd.Attrs, error)
	SongArtists(file string) ([]string, error)
	Close() error
}

// conn adds the multi-value artist query to *mpd.Client, whose Attrs keep
// only the last value of a repeated tag.
type conn struct {
	*mpd.Client
}

// SongArtists lists every Artist tag of file.
func (c conn) SongArtists(file string) ([]string, error) {
	return c.Command("list artist %s", fileFilter(file)).Strings("Artist")
}

// fileFilter builds the filter expression matching one song by URI.
func fileFilter(file string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `(file == "` + r.Replace(file) + `")`
}

// Discoverer dials the configured MPD server.
type Discoverer struct {
	opts Options
	dial func() (client, error)
}

// NewDiscoverer creates a Discoverer for the server in opts.
func NewDiscoverer(opts Options) *Discoverer {
	if opts.ArtistSeparator == "" {
		opts.ArtistSeparator = track.DefaultArtistSeparator
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	d := &Discoverer{opts: opts}
	d.dial = func() (client, error) {
		var (
			c   *mpd.Client
			err error
		)
		if opts.Password != "" {
			c, err = mpd.DialAuthenticated(opts.Network, opts.Address, opts.Password)
		} else {
			c, err = mpd.Dial(opts.Network, opts.Address)
		}
		if err != nil {
			return nil, err
		}
		return conn{c}, nil
	}
	return d
}

// Discover connects to the server. An unreachable server is reported as
// tracker.ErrNoPlayer so the runner keeps retrying.
func (d *Discoverer) Discover(ctx context.Context) (tracker.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := d.dial()
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s %s: %w", tracker.ErrNoPlayer, d.opts.Network, d.opts.Address, err)
	}
	d.opts.Logger.Debug("mpd connected", "address", d.opts.Address)
	return &Source{client: c, name: "mpd " + d.opts.Address, sep: d.opts.ArtistSeparator}, nil
}

// Source samples one MPD connection.
type Source struct {
	client client
	name   string
	sep    string
}

// Name identifies the server.
func (s *Source) Name() string {
	return s.name
}

// Sample reads the playback state and current song. Any protocol error means
// the connection is gone.
func (s *Source) Sample(_ context.Context) (track.Sample, error) {
	status, err := s.client.Status()
	if err != nil {
		return track.Sample{}, fmt.Errorf("%w: %w", tracker.ErrDisconnected, err)
	}

	st := parseState(status["state"])
	if st == track.Stopped {
		return track.Sample{Status: st}, nil
	}

	song, err := s.client.CurrentSong()
	if err != nil {
		return track.Sample{}, fmt.Errorf("%w: %w", tracker.ErrDisconnected, err)
	}
	artists, err := s.artists(song)
	if err != nil {
		return track.Sample{}, fmt.Errorf("%w: %w", tracker.ErrDisconnected, err)
	}
	return track.Sample{Identity: s.songIdentity(song, artists), Status: st}, nil
}

// artists returns every Artist tag of song. A server that rejects the
// filter syntax (before 0.21) yields nil and the single tag from song is
// used instead.
func (s *Source) artists(song mpd.Attrs) ([]string, error) {
	file := song["file"]
	if file == "" || song["Artist"] == "" {
		return nil, nil
	}
	artists, err := s.client.SongArtists(file)
	var ack mpd.Error
	if errors.As(err, &ack) {
		return nil, nil
	}
	return artists, err
}

// Close closes the connection.
func (s *Source) Close() error {
	return s.client.Close()
}

func parseState(state string) track.Status {
	switch state {
	case "play":
		return track.Playing
	case "pause":
		return track.Paused
	default:
		return track.Stopped
	}
}

func (s *Source) songIdentity(song mpd.Attrs, artists []string) track.Identity {
	if len(artists) == 0 {
		artist := song["Artist"]
		if artist == "" {
			artist = song["AlbumArtist"]
		}
		artists = []string{artist}
	}
	sep := s.sep
	if sep == "" {
		sep = track.DefaultArtistSeparator
	}
	return track.NewIdentity(artists, song["Album"], song["Title"], sep)
}
