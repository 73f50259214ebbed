package store

import (
	"context"

	"github.com/llehouerou/mpressed/internal/track"
)

// Interface is the part of Manager the tracker and viewer depend on.
type Interface interface {
	Commit(ctx context.Context, id track.Identity, date string) error
	Snapshot(ctx context.Context) (Snapshot, error)
	Size() int64
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
