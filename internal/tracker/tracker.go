// Package tracker turns a stream of playback samples into committed plays.
//
// A listen session starts whenever the observed track identity changes. Time
// accrues only while the source reports Playing, and the session is committed
// exactly once, on the first sample where the accrued time reaches the
// threshold. Sessions abandoned before that are dropped without credit.
package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/llehouerou/mpressed/internal/track"
)

// Committer records one play of a track on a calendar date.
type Committer interface {
	Commit(ctx context.Context, id track.Identity, date string) error
}

// Session is the current listen session.
type Session struct {
	Identity  track.Identity
	Elapsed   time.Duration
	Committed bool
	Date      string // calendar date the session started, YYYY-MM-DD
}

// Tracker is the Idle/Tracking state machine. It is not safe for concurrent
// use; the runner drives it from a single goroutine.
type Tracker struct {
	threshold time.Duration
	committer Committer
	logger    *slog.Logger

	session    *Session // nil while idle
	lastSample time.Time
}

// New creates an idle tracker.
func New(committer Committer, threshold time.Duration, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{
		threshold: threshold,
		committer: committer,
		logger:    logger,
	}
}

// Threshold returns the listening time required for a play.
func (t *Tracker) Threshold() time.Duration {
	return t.threshold
}

// Current returns a copy of the active session, if any.
func (t *Tracker) Current() (Session, bool) {
	if t.session == nil {
		return Session{}, false
	}
	return *t.session, true
}

// Observe applies one sample and reports whether it caused a commit.
func (t *Tracker) Observe(ctx context.Context, s track.Sample) bool {
	delta := t.advanceClock(s.Timestamp)

	if !s.Identity.Valid() {
		// Nothing to track. The session, if any, is frozen.
		return false
	}

	if t.session == nil || t.session.Identity != s.Identity {
		t.start(s)
		return false
	}

	if s.Status != track.Playing {
		return false
	}

	t.session.Elapsed += delta
	if t.session.Committed || t.session.Elapsed < t.threshold {
		return false
	}

	t.commit(ctx)
	return true
}

// Abort drops the current session without committing it. Called when the
// source disconnects.
func (t *Tracker) Abort() {
	if t.session != nil && !t.session.Committed {
		t.logger.Debug("session aborted",
			"track", t.session.Identity.String(),
			"elapsed", t.session.Elapsed)
	}
	t.session = nil
	t.lastSample = time.Time{}
}

// advanceClock returns the time elapsed since the previous sample and records
// ts as the new reference point.
func (t *Tracker) advanceClock(ts time.Time) time.Duration {
	var delta time.Duration
	if !t.lastSample.IsZero() && ts.After(t.lastSample) {
		delta = ts.Sub(t.lastSample)
	}
	t.lastSample = ts
	return delta
}

func (t *Tracker) start(s track.Sample) {
	if t.session != nil && !t.session.Committed {
		t.logger.Debug("session dropped before threshold",
			"track", t.session.Identity.String(),
			"elapsed", t.session.Elapsed)
	}
	t.session = &Session{
		Identity: s.Identity,
		Date:     track.Date(s.Timestamp),
	}
	t.logger.Debug("session started", "track", s.Identity.String(), "date", t.session.Date)
}

func (t *Tracker) commit(ctx context.Context) {
	sess := t.session
	// Marked committed even on failure: one lost play beats a retry storm.
	sess.Committed = true

	if err := t.committer.Commit(ctx, sess.Identity, sess.Date); err != nil {
		t.logger.Error("commit play",
			"track", sess.Identity.String(),
			"date", sess.Date,
			"err", err)
		return
	}
	t.logger.Info("play recorded",
		"artist", sess.Identity.Artist,
		"album", sess.Identity.Album,
		"title", sess.Identity.Title,
		"date", sess.Date)
}
