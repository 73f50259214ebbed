package tracker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/llehouerou/mpressed/internal/track"
)

var (
	// ErrDisconnected is returned by a Source whose player went away.
	ErrDisconnected = errors.New("media source disconnected")

	// ErrNoPlayer is returned by a Discoverer when no acceptable player is
	// currently running.
	ErrNoPlayer = errors.New("no matching media player")
)

// Source is a connected media session that can be polled for samples.
// Sample may leave the timestamp zero; the runner stamps it.
type Source interface {
	Name() string
	Sample(ctx context.Context) (track.Sample, error)
	Close() error
}

// Discoverer finds the media session to track.
type Discoverer interface {
	Discover(ctx context.Context) (Source, error)
}

// Runner owns the poll loop and the reconnect loop around a Tracker.
type Runner struct {
	Tracker        *Tracker
	Discoverer     Discoverer
	PollInterval   time.Duration
	ReconnectDelay time.Duration
	Logger         *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run discovers a source, polls it until it fails, and starts over after
// ReconnectDelay. It only returns when ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	logger := r.logger()
	waiting := false

	for {
		src, err := r.Discoverer.Discover(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Log once per outage, not on every retry.
			if !waiting {
				logger.Info("waiting for media player", "err", err)
				waiting = true
			}
			if !sleep(ctx, r.ReconnectDelay) {
				return ctx.Err()
			}
			continue
		}
		waiting = false

		logger.Info("connected", "source", src.Name())
		err = r.poll(ctx, src)
		r.Tracker.Abort()
		if cerr := src.Close(); cerr != nil {
			logger.Debug("close source", "source", src.Name(), "err", cerr)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("source lost", "source", src.Name(), "err", err)
		if !sleep(ctx, r.ReconnectDelay) {
			return ctx.Err()
		}
	}
}

// poll samples src on every tick until it returns an error or ctx is done.
func (r *Runner) poll(ctx context.Context, src Source) error {
	ticker := time.NewTicker(r.PollInterval)
	defer ticker.Stop()

	for {
		s, err := src.Sample(ctx)
		if err != nil {
			return err
		}
		if s.Timestamp.IsZero() {
			s.Timestamp = r.now()
		}
		r.Tracker.Observe(ctx, s)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// sleep waits for d or until ctx is done. It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
