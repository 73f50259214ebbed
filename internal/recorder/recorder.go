// Package recorder commits plays to the store and fans them out to the
// optional sinks (desktop notification, Last.fm).
package recorder

import (
	"context"
	"log/slog"
	"time"

	"github.com/llehouerou/mpressed/internal/notify"
	"github.com/llehouerou/mpressed/internal/track"
	"github.com/llehouerou/mpressed/internal/tracker"
)

// Scrobbler mirrors a play to Last.fm. Submit runs on the tracker loop and
// must not wait on the network.
type Scrobbler interface {
	Submit(ctx context.Context, id track.Identity, playedAt time.Time) error
}

// Recorder is the tracker's Committer. The store write decides the outcome;
// sink failures are only logged.
type Recorder struct {
	store     tracker.Committer
	notifier  notify.Notifier
	scrobbler Scrobbler
	threshold time.Duration
	logger    *slog.Logger
	now       func() time.Time

	lastNotification uint32
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithNotifier shows a desktop notification for every recorded play.
func WithNotifier(n notify.Notifier) Option {
	return func(r *Recorder) { r.notifier = n }
}

// WithScrobbler mirrors every recorded play to Last.fm. threshold is used to
// estimate when the listen started.
func WithScrobbler(s Scrobbler, threshold time.Duration) Option {
	return func(r *Recorder) {
		r.scrobbler = s
		r.threshold = threshold
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// New creates a Recorder writing to store.
func New(store tracker.Committer, opts ...Option) *Recorder {
	r := &Recorder{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Commit records the play, then notifies the sinks. Sinks only run when the
// store write succeeded.
func (r *Recorder) Commit(ctx context.Context, id track.Identity, date string) error {
	if err := r.store.Commit(ctx, id, date); err != nil {
		return err
	}

	if r.notifier != nil {
		nid, err := r.notifier.Notify(notify.PlayRecorded(id, r.lastNotification))
		if err != nil {
			r.logger.Warn("notify", "err", err)
		} else {
			r.lastNotification = nid
		}
	}

	if r.scrobbler != nil {
		playedAt := r.now().Add(-r.threshold)
		if err := r.scrobbler.Submit(ctx, id, playedAt); err != nil {
			r.logger.Error("queue scrobble", "track", id.String(), "err", err)
		}
	}
	return nil
}

var _ tracker.Committer = (*Recorder)(nil)
