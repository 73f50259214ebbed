package lastfm

import (
	"context"
	"log/slog"
	"time"

	"github.com/llehouerou/mpressed/internal/store"
	"github.com/llehouerou/mpressed/internal/track"
)

const (
	// RetryInterval is how often queued scrobbles are resubmitted.
	RetryInterval = 5 * time.Minute
	// MaxAttempts bounds resubmissions of a single scrobble.
	MaxAttempts = 10
	// MaxAge is the oldest timestamp Last.fm still accepts.
	MaxAge = 14 * 24 * time.Hour

	submitBuffer = 64
)

// Submitter sends one scrobble. *Client implements it.
type Submitter interface {
	Scrobble(track ScrobbleTrack) error
}

// Queue persists scrobbles that could not be submitted. *store.Manager
// implements it.
type Queue interface {
	QueueScrobble(ctx context.Context, id track.Identity, playedAt time.Time, lastErr string) error
	PendingScrobbles(ctx context.Context, maxAttempts int) ([]store.PendingScrobble, error)
	DeletePendingScrobble(ctx context.Context, id int64) error
	RecordScrobbleFailure(ctx context.Context, id int64, errMsg string) error
	PrunePendingScrobbles(ctx context.Context, maxAge time.Duration) (int64, error)
}

var _ Queue = (*store.Manager)(nil)

// RetryResult summarizes one pass over the queue.
type RetryResult struct {
	Succeeded int
	Failed    int
	Pruned    int64
}

type play struct {
	id       track.Identity
	playedAt time.Time
}

// Scrobbler mirrors committed plays to Last.fm, queueing what fails.
// Submitted plays are sent from Run's goroutine.
type Scrobbler struct {
	api    Submitter
	queue  Queue
	logger *slog.Logger
	plays  chan play
}

// NewScrobbler creates a Scrobbler.
func NewScrobbler(api Submitter, queue Queue, logger *slog.Logger) *Scrobbler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scrobbler{
		api:    api,
		queue:  queue,
		logger: logger,
		plays:  make(chan play, submitBuffer),
	}
}

// Submit hands one play to Run and returns without waiting for Last.fm.
// When too many plays are already waiting, the play goes straight to the
// retry queue; only a failure to queue is returned.
func (s *Scrobbler) Submit(ctx context.Context, id track.Identity, playedAt time.Time) error {
	select {
	case s.plays <- play{id: id, playedAt: playedAt}:
		return nil
	default:
		s.logger.Warn("scrobble backlog full, queued for retry", "track", id.String())
		return s.queue.QueueScrobble(ctx, id, playedAt, "submit backlog full")
	}
}

// send scrobbles one play. On failure the play is queued for RetryPending;
// only a failure to queue is returned.
func (s *Scrobbler) send(ctx context.Context, p play) error {
	err := s.api.Scrobble(FromIdentity(p.id, p.playedAt))
	if err == nil {
		s.logger.Debug("scrobbled", "track", p.id.String())
		return nil
	}

	s.logger.Warn("scrobble failed, queued for retry", "track", p.id.String(), "err", err)
	return s.queue.QueueScrobble(ctx, p.id, p.playedAt, err.Error())
}

// RetryPending drops expired entries and resubmits the rest, oldest first.
func (s *Scrobbler) RetryPending(ctx context.Context) (RetryResult, error) {
	var res RetryResult

	pruned, err := s.queue.PrunePendingScrobbles(ctx, MaxAge)
	if err != nil {
		return res, err
	}
	res.Pruned = pruned

	pending, err := s.queue.PendingScrobbles(ctx, MaxAttempts)
	if err != nil {
		return res, err
	}

	for i := range pending {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		p := &pending[i]

		if err := s.api.Scrobble(FromIdentity(p.Identity, p.PlayedAt)); err != nil {
			res.Failed++
			if qerr := s.queue.RecordScrobbleFailure(ctx, p.ID, err.Error()); qerr != nil {
				return res, qerr
			}
			continue
		}

		res.Succeeded++
		if err := s.queue.DeletePendingScrobble(ctx, p.ID); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Run sends submitted plays and retries the queue immediately and then
// every RetryInterval until ctx is done. Plays still waiting at shutdown are
// queued for the next run.
func (s *Scrobbler) Run(ctx context.Context) {
	ticker := time.NewTicker(RetryInterval)
	defer ticker.Stop()

	s.retry(ctx)
	for {
		if ctx.Err() != nil {
			s.drain(context.WithoutCancel(ctx))
			return
		}

		select {
		case <-ctx.Done():
			s.drain(context.WithoutCancel(ctx))
			return
		case p := <-s.plays:
			if err := s.send(ctx, p); err != nil {
				s.logger.Error("queue scrobble", "track", p.id.String(), "err", err)
			}
		case <-ticker.C:
			s.retry(ctx)
		}
	}
}

func (s *Scrobbler) retry(ctx context.Context) {
	res, err := s.RetryPending(ctx)
	switch {
	case err != nil && ctx.Err() == nil:
		s.logger.Error("retry pending scrobbles", "err", err)
	case res.Succeeded+res.Failed > 0 || res.Pruned > 0:
		s.logger.Info("retried pending scrobbles",
			"succeeded", res.Succeeded,
			"failed", res.Failed,
			"expired", res.Pruned)
	}
}

func (s *Scrobbler) drain(ctx context.Context) {
	for {
		select {
		case p := <-s.plays:
			if err := s.queue.QueueScrobble(ctx, p.id, p.playedAt, "not sent before shutdown"); err != nil {
				s.logger.Error("queue scrobble", "track", p.id.String(), "err", err)
			}
		default:
			return
		}
	}
}
