//go:build !linux

package mpris

import (
	"context"
	"errors"
	"log/slog"

	"github.com/llehouerou/mpressed/internal/tracker"
)

// Options configures player discovery.
type Options struct {
	Identities      []string
	ArtistSeparator string
	TagFallback     bool
	Logger          *slog.Logger
}

// Discoverer always fails on non-Linux platforms.
type Discoverer struct{}

// NewDiscoverer returns a discoverer that never finds a player.
func NewDiscoverer(_ Options) *Discoverer {
	return &Discoverer{}
}

// Discover reports that MPRIS is unavailable.
func (d *Discoverer) Discover(_ context.Context) (tracker.Source, error) {
	return nil, errors.New("mpris: only supported on Linux")
}
