package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbutil "github.com/llehouerou/mpressed/internal/db"
	"github.com/llehouerou/mpressed/internal/track"
)

// ErrInvalidIdentity is returned when committing an identity with an empty field.
var ErrInvalidIdentity = errors.New("invalid track identity")

// Song is a row of the song catalog.
type Song struct {
	ID     int64
	Artist string
	Album  string
	Title  string
}

// PlayCount is the number of plays of one song on one calendar date.
type PlayCount struct {
	SongID int64
	Date   string // YYYY-MM-DD
	Plays  int
}

// Snapshot is a consistent read of the whole catalog and play log.
type Snapshot struct {
	Songs  []Song
	Counts []PlayCount
}

// Commit records one play of id on date. The catalog row is created if
// missing and the (song, date) counter is incremented, both in a single
// transaction.
func (m *Manager) Commit(ctx context.Context, id track.Identity, date string) error {
	if !id.Valid() {
		return ErrInvalidIdentity
	}

	return dbutil.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		songID, err := ensureSong(ctx, tx, id)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO play_counts (song_id, date, plays)
			VALUES (?, ?, 1)
			ON CONFLICT(song_id, date) DO UPDATE SET plays = plays + 1
		`, songID, date)
		if err != nil {
			return fmt.Errorf("increment play count: %w", err)
		}
		return nil
	})
}

func ensureSong(ctx context.Context, tx *sql.Tx, id track.Identity) (int64, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO song_catalog (artist, album, title) VALUES (?, ?, ?)
	`, id.Artist, id.Album, id.Title)
	if err != nil {
		return 0, fmt.Errorf("insert song: %w", err)
	}

	var songID int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM song_catalog WHERE artist = ? AND album = ? AND title = ?
	`, id.Artist, id.Album, id.Title).Scan(&songID)
	if err != nil {
		return 0, fmt.Errorf("lookup song: %w", err)
	}
	return songID, nil
}

// Snapshot reads the catalog and every play count in one transaction.
func (m *Manager) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := dbutil.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		songs, err := querySongs(ctx, tx)
		if err != nil {
			return err
		}
		counts, err := queryCounts(ctx, tx)
		if err != nil {
			return err
		}
		snap = Snapshot{Songs: songs, Counts: counts}
		return nil
	})
	return snap, err
}

func querySongs(ctx context.Context, tx *sql.Tx) ([]Song, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, artist, album, title FROM song_catalog ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var s Song
		if err := rows.Scan(&s.ID, &s.Artist, &s.Album, &s.Title); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

func queryCounts(ctx context.Context, tx *sql.Tx) ([]PlayCount, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT song_id, date, plays FROM play_counts ORDER BY date, song_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query play counts: %w", err)
	}
	defer rows.Close()

	var counts []PlayCount
	for rows.Next() {
		var c PlayCount
		if err := rows.Scan(&c.SongID, &c.Date, &c.Plays); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
