package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/mpressed/internal/db"
	"github.com/llehouerou/mpressed/internal/track"
)

// LastfmSession is the linked Last.fm account, if any.
type LastfmSession struct {
	Username   string
	SessionKey string
	LinkedAt   time.Time
}

// PendingScrobble is a committed play that Last.fm has not accepted yet.
type PendingScrobble struct {
	ID        int64
	Identity  track.Identity
	PlayedAt  time.Time
	Attempts  int
	LastError string
	CreatedAt time.Time
}

// LastfmSession returns the linked session, or nil when no account is linked.
func (m *Manager) LastfmSession(ctx context.Context) (*LastfmSession, error) {
	var s LastfmSession
	var linkedAt int64

	err := m.db.QueryRowContext(ctx, `
		SELECT username, session_key, linked_at FROM lastfm_session WHERE id = 1
	`).Scan(&s.Username, &s.SessionKey, &linkedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nil session means not linked
	}
	if err != nil {
		return nil, err
	}

	s.LinkedAt = time.Unix(linkedAt, 0)
	return &s, nil
}

// SaveLastfmSession replaces the linked session.
func (m *Manager) SaveLastfmSession(ctx context.Context, username, sessionKey string) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO lastfm_session (id, username, session_key, linked_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			session_key = excluded.session_key,
			linked_at = excluded.linked_at
	`, username, sessionKey, time.Now().Unix())
	return err
}

// DeleteLastfmSession unlinks the account.
func (m *Manager) DeleteLastfmSession(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM lastfm_session WHERE id = 1`)
	return err
}

// QueueScrobble stores a play for a later submission attempt.
func (m *Manager) QueueScrobble(ctx context.Context, id track.Identity, playedAt time.Time, lastErr string) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO lastfm_pending_scrobbles
		(artist, track, album, timestamp, attempts, last_error, created_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)
	`, id.Artist, id.Title, id.Album, playedAt.Unix(), lastErr, time.Now().Unix())
	return err
}

// PendingScrobbles returns queued plays with fewer than maxAttempts attempts,
// oldest first.
func (m *Manager) PendingScrobbles(ctx context.Context, maxAttempts int) ([]PendingScrobble, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, artist, track, album, timestamp, attempts, last_error, created_at
		FROM lastfm_pending_scrobbles
		WHERE attempts < ?
		ORDER BY timestamp ASC, id ASC
	`, maxAttempts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []PendingScrobble
	for rows.Next() {
		var p PendingScrobble
		var album, lastErr sql.NullString
		var playedAt, createdAt int64

		if err := rows.Scan(
			&p.ID, &p.Identity.Artist, &p.Identity.Title, &album,
			&playedAt, &p.Attempts, &lastErr, &createdAt,
		); err != nil {
			return nil, err
		}

		p.Identity.Album = dbutil.NullStringValue(album)
		p.LastError = dbutil.NullStringValue(lastErr)
		p.PlayedAt = time.Unix(playedAt, 0)
		p.CreatedAt = time.Unix(createdAt, 0)
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// DeletePendingScrobble removes a scrobble Last.fm accepted.
func (m *Manager) DeletePendingScrobble(ctx context.Context, id int64) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM lastfm_pending_scrobbles WHERE id = ?`, id)
	return err
}

// RecordScrobbleFailure bumps the attempt counter of a queued scrobble.
func (m *Manager) RecordScrobbleFailure(ctx context.Context, id int64, errMsg string) error {
	_, err := m.db.ExecContext(ctx, `
		UPDATE lastfm_pending_scrobbles
		SET attempts = attempts + 1, last_error = ?
		WHERE id = ?
	`, errMsg, id)
	return err
}

// PrunePendingScrobbles drops queued plays older than maxAge. Last.fm rejects
// scrobbles with timestamps more than two weeks in the past.
func (m *Manager) PrunePendingScrobbles(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()
	res, err := m.db.ExecContext(ctx, `DELETE FROM lastfm_pending_scrobbles WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
