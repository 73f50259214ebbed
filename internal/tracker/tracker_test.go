package tracker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/llehouerou/mpressed/internal/store"
	"github.com/llehouerou/mpressed/internal/track"
)

type commitCall struct {
	id   track.Identity
	date string
}

type fakeCommitter struct {
	calls []commitCall
	err   error
}

func (f *fakeCommitter) Commit(_ context.Context, id track.Identity, date string) error {
	f.calls = append(f.calls, commitCall{id, date})
	return f.err
}

var (
	songX = track.Identity{Artist: "Artist X", Album: "Album X", Title: "Song X"}
	songY = track.Identity{Artist: "Artist Y", Album: "Album Y", Title: "Song Y"}
	base  = time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
)

func sample(id track.Identity, status track.Status, tick int) track.Sample {
	return track.Sample{
		Identity:  id,
		Status:    status,
		Timestamp: base.Add(time.Duration(tick) * time.Second),
	}
}

func TestObserve_CommitOnce(t *testing.T) {
	c := &fakeCommitter{}
	tr := New(c, 60*time.Second, nil)
	ctx := context.Background()

	commitTick := -1
	for tick := range 200 {
		if tr.Observe(ctx, sample(songX, track.Playing, tick)) {
			if commitTick >= 0 {
				t.Fatalf("second commit at tick %d (first at %d)", tick, commitTick)
			}
			commitTick = tick
		}
	}

	if len(c.calls) != 1 {
		t.Fatalf("commits = %d, want 1", len(c.calls))
	}
	if commitTick != 60 {
		t.Errorf("committed at tick %d, want 60", commitTick)
	}
}

func TestObserve_NoPartialCredit(t *testing.T) {
	c := &fakeCommitter{}
	tr := New(c, 60*time.Second, nil)
	ctx := context.Background()

	tick := 0
	for ; tick < 50; tick++ {
		tr.Observe(ctx, sample(songX, track.Playing, tick))
	}
	for ; tick < 100; tick++ {
		tr.Observe(ctx, sample(songY, track.Playing, tick))
	}
	// back to X: a fresh session, the earlier 50s do not count
	for ; tick < 130; tick++ {
		tr.Observe(ctx, sample(songX, track.Playing, tick))
	}

	if len(c.calls) != 0 {
		t.Errorf("commits = %v, want none", c.calls)
	}
}

func TestObserve_PausedDoesNotAccrue(t *testing.T) {
	c := &fakeCommitter{}
	tr := New(c, 60*time.Second, nil)
	ctx := context.Background()

	tick := 0
	for ; tick <= 30; tick++ {
		tr.Observe(ctx, sample(songX, track.Playing, tick))
	}
	for ; tick < 300; tick++ {
		tr.Observe(ctx, sample(songX, track.Paused, tick))
	}
	if len(c.calls) != 0 {
		t.Fatalf("commit while paused: %v", c.calls)
	}

	sess, _ := tr.Current()
	if sess.Elapsed != 30*time.Second {
		t.Errorf("elapsed = %v, want 30s", sess.Elapsed)
	}

	// resume: 30 more seconds of playing reach the threshold
	for end := tick + 30; tick <= end; tick++ {
		tr.Observe(ctx, sample(songX, track.Playing, tick))
	}
	if len(c.calls) != 1 {
		t.Errorf("commits after resume = %d, want 1", len(c.calls))
	}
}

func TestObserve_InvalidIdentityFreezesSession(t *testing.T) {
	c := &fakeCommitter{}
	tr := New(c, 60*time.Second, nil)
	ctx := context.Background()
	noAlbum := track.Identity{Artist: "Artist X", Title: "Song X"}

	tick := 0
	for ; tick <= 40; tick++ {
		tr.Observe(ctx, sample(songX, track.Playing, tick))
	}
	for ; tick < 200; tick++ {
		if tr.Observe(ctx, sample(noAlbum, track.Playing, tick)) {
			t.Fatal("invalid identity committed")
		}
	}

	sess, ok := tr.Current()
	if !ok || sess.Identity != songX {
		t.Fatalf("session = %+v, want frozen songX session", sess)
	}
	if sess.Elapsed != 40*time.Second {
		t.Errorf("elapsed = %v, want 40s", sess.Elapsed)
	}
	if len(c.calls) != 0 {
		t.Errorf("commits = %v, want none", c.calls)
	}
}

func TestObserve_CommitFailureStillMarksCommitted(t *testing.T) {
	c := &fakeCommitter{err: errors.New("disk full")}
	tr := New(c, 5*time.Second, nil)
	ctx := context.Background()

	for tick := range 30 {
		tr.Observe(ctx, sample(songX, track.Playing, tick))
	}

	if len(c.calls) != 1 {
		t.Errorf("commit attempts = %d, want 1", len(c.calls))
	}
	if sess, _ := tr.Current(); !sess.Committed {
		t.Error("session should be marked committed after a failed commit")
	}
}

func TestObserve_DateIsSessionStart(t *testing.T) {
	c := &fakeCommitter{}
	tr := New(c, 60*time.Second, nil)
	ctx := context.Background()

	start := time.Date(2024, 12, 31, 23, 59, 30, 0, time.Local)
	for i := range 90 {
		tr.Observe(ctx, track.Sample{
			Identity:  songX,
			Status:    track.Playing,
			Timestamp: start.Add(time.Duration(i) * time.Second),
		})
	}

	if len(c.calls) != 1 {
		t.Fatalf("commits = %d, want 1", len(c.calls))
	}
	if c.calls[0].date != "2024-12-31" {
		t.Errorf("date = %q, want 2024-12-31", c.calls[0].date)
	}
}

func TestAbort_DropsSession(t *testing.T) {
	c := &fakeCommitter{}
	tr := New(c, 60*time.Second, nil)
	ctx := context.Background()

	for tick := range 59 {
		tr.Observe(ctx, sample(songX, track.Playing, tick))
	}
	tr.Abort()
	if _, ok := tr.Current(); ok {
		t.Fatal("session survived Abort")
	}

	// The same song after reconnect starts from zero.
	for tick := 100; tick < 130; tick++ {
		tr.Observe(ctx, sample(songX, track.Playing, tick))
	}
	if len(c.calls) != 0 {
		t.Errorf("commits = %v, want none", c.calls)
	}
}

func openStore(t *testing.T) *store.Manager {
	t.Helper()
	m, err := store.Open(filepath.Join(t.TempDir(), "mpressed.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestScenario_ContinuousPlay(t *testing.T) {
	st := openStore(t)
	tr := New(st, 60000*time.Millisecond, nil)
	ctx := context.Background()

	var commitTicks []int
	for tick := range 65 {
		if tr.Observe(ctx, sample(songX, track.Playing, tick)) {
			commitTicks = append(commitTicks, tick)
		}
	}

	if len(commitTicks) != 1 || commitTicks[0] != 60 {
		t.Fatalf("commit ticks = %v, want [60]", commitTicks)
	}

	snap, err := st.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Songs) != 1 || len(snap.Counts) != 1 {
		t.Fatalf("snapshot = %+v, want one song and one count", snap)
	}
	got := snap.Counts[0]
	if got.SongID != snap.Songs[0].ID || got.Date != track.Date(base) || got.Plays != 1 {
		t.Errorf("play count = %+v, want (songX, %s, 1)", got, track.Date(base))
	}
}

func TestScenario_SwitchBeforeThreshold(t *testing.T) {
	st := openStore(t)
	tr := New(st, 60*time.Second, nil)
	ctx := context.Background()

	tick := 0
	for ; tick < 30; tick++ {
		tr.Observe(ctx, sample(songX, track.Playing, tick))
	}
	for ; tick < 60; tick++ {
		tr.Observe(ctx, sample(songY, track.Playing, tick))
	}

	snap, err := st.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Counts) != 0 {
		t.Errorf("play counts = %+v, want none", snap.Counts)
	}
}
