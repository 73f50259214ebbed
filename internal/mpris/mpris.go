//go:build linux

package mpris

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/llehouerou/mpressed/internal/track"
	"github.com/llehouerou/mpressed/internal/tracker"
)

// Options configures player discovery.
type Options struct {
	Identities      []string // accepted Identity values, in order; empty accepts any player
	ArtistSeparator string
	TagFallback     bool
	Logger          *slog.Logger
}

// Discoverer finds an MPRIS player on the session bus.
type Discoverer struct {
	opts Options
}

// NewDiscoverer creates a Discoverer.
func NewDiscoverer(opts Options) *Discoverer {
	if opts.ArtistSeparator == "" {
		opts.ArtistSeparator = track.DefaultArtistSeparator
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Discoverer{opts: opts}
}

// Discover connects to the session bus and returns the first acceptable
// player. It returns tracker.ErrNoPlayer when none is running.
func (d *Discoverer) Discover(ctx context.Context) (tracker.Source, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	cands, err := listPlayers(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	c, ok := choose(cands, d.opts.Identities)
	if !ok {
		conn.Close()
		return nil, tracker.ErrNoPlayer
	}

	p := &Player{
		conn:     conn,
		obj:      conn.Object(c.busName, objectPath),
		identity: c.identity,
		sep:      d.opts.ArtistSeparator,
	}
	if d.opts.TagFallback {
		p.fallback = readFileTags
	}
	d.opts.Logger.Debug("mpris player selected", "bus", c.busName, "identity", c.identity)
	return p, nil
}

func listPlayers(ctx context.Context, conn *dbus.Conn) ([]candidate, error) {
	var names []string
	if err := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return nil, fmt.Errorf("list bus names: %w", err)
	}
	slices.Sort(names)

	var cands []candidate
	for _, name := range names {
		if !strings.HasPrefix(name, busPrefix) {
			continue
		}
		obj := conn.Object(name, objectPath)

		ident, err := getString(ctx, obj, rootInterface, "Identity")
		if err != nil {
			// Player vanished between ListNames and now.
			continue
		}
		status, _ := getString(ctx, obj, playerInterface, "PlaybackStatus")
		cands = append(cands, candidate{
			busName:  name,
			identity: ident,
			status:   parseStatus(status),
		})
	}
	return cands, nil
}

// Player is a connected MPRIS player.
type Player struct {
	conn     *dbus.Conn
	obj      dbus.BusObject
	identity string
	sep      string
	fallback func(string) (fileTags, bool)
}

// Name returns the player's Identity.
func (p *Player) Name() string {
	return p.identity
}

// Sample reads the current metadata and playback status. Any D-Bus failure
// means the player is gone.
func (p *Player) Sample(ctx context.Context) (track.Sample, error) {
	status, err := getString(ctx, p.obj, playerInterface, "PlaybackStatus")
	if err != nil {
		return track.Sample{}, fmt.Errorf("%w: %w", tracker.ErrDisconnected, err)
	}

	v, err := getProperty(ctx, p.obj, playerInterface, "Metadata")
	if err != nil {
		return track.Sample{}, fmt.Errorf("%w: %w", tracker.ErrDisconnected, err)
	}
	raw, _ := v.Value().(map[string]dbus.Variant)
	meta, path := decodeMetadata(raw)

	return track.Sample{
		Identity: identity(meta, path, p.sep, p.fallback),
		Status:   parseStatus(status),
	}, nil
}

// Close releases the bus connection.
func (p *Player) Close() error {
	return p.conn.Close()
}

func getProperty(ctx context.Context, obj dbus.BusObject, iface, prop string) (dbus.Variant, error) {
	var v dbus.Variant
	err := obj.CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0, iface, prop).Store(&v)
	return v, err
}

func getString(ctx context.Context, obj dbus.BusObject, iface, prop string) (string, error) {
	v, err := getProperty(ctx, obj, iface, prop)
	if err != nil {
		return "", err
	}
	s, _ := v.Value().(string)
	return s, nil
}
