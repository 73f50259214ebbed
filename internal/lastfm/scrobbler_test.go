package lastfm

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/mpressed/internal/store"
	"github.com/llehouerou/mpressed/internal/track"
)

type fakeSubmitter struct {
	mu    sync.Mutex
	fail  error
	sent  []ScrobbleTrack
	tries int
}

func (f *fakeSubmitter) Scrobble(t ScrobbleTrack) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tries++
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, t)
	return nil
}

func (f *fakeSubmitter) setFail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = err
}

// memQueue is an in-memory Queue.
type memQueue struct {
	mu      sync.Mutex
	nextID  int64
	pending []store.PendingScrobble
}

func (q *memQueue) QueueScrobble(_ context.Context, id track.Identity, playedAt time.Time, lastErr string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.pending = append(q.pending, store.PendingScrobble{
		ID: q.nextID, Identity: id, PlayedAt: playedAt, LastError: lastErr, CreatedAt: time.Now(),
	})
	return nil
}

func (q *memQueue) PendingScrobbles(_ context.Context, maxAttempts int) ([]store.PendingScrobble, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []store.PendingScrobble
	for _, p := range q.pending {
		if p.Attempts < maxAttempts {
			out = append(out, p)
		}
	}
	return out, nil
}

func (q *memQueue) DeletePendingScrobble(_ context.Context, id int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, p := range q.pending {
		if p.ID == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			break
		}
	}
	return nil
}

func (q *memQueue) RecordScrobbleFailure(_ context.Context, id int64, errMsg string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.pending {
		if q.pending[i].ID == id {
			q.pending[i].Attempts++
			q.pending[i].LastError = errMsg
		}
	}
	return nil
}

func (q *memQueue) PrunePendingScrobbles(_ context.Context, maxAge time.Duration) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	var kept []store.PendingScrobble
	var n int64
	for _, p := range q.pending {
		if p.PlayedAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, p)
	}
	q.pending = kept
	return n, nil
}

func (q *memQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

var song = track.Identity{Artist: "Artist", Album: "Album", Title: "Title"}

func TestSend_Success(t *testing.T) {
	api := &fakeSubmitter{}
	q := &memQueue{}
	s := NewScrobbler(api, q, nil)
	playedAt := time.Unix(1_700_000_000, 0)

	if err := s.send(context.Background(), play{id: song, playedAt: playedAt}); err != nil {
		t.Fatalf("send() error: %v", err)
	}

	if len(api.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(api.sent))
	}
	got := api.sent[0]
	if got.Artist != "Artist" || got.Track != "Title" || got.Album != "Album" || !got.Timestamp.Equal(playedAt) {
		t.Errorf("sent %+v", got)
	}
	if q.len() != 0 {
		t.Errorf("queue = %d, want 0", q.len())
	}
}

func TestSend_FailureQueues(t *testing.T) {
	api := &fakeSubmitter{fail: errors.New("offline")}
	q := &memQueue{}
	s := NewScrobbler(api, q, nil)

	if err := s.send(context.Background(), play{id: song, playedAt: time.Now()}); err != nil {
		t.Fatalf("send() error: %v", err)
	}
	if q.len() != 1 {
		t.Fatalf("queue = %d, want 1", q.len())
	}
	if q.pending[0].LastError != "offline" {
		t.Errorf("LastError = %q", q.pending[0].LastError)
	}
}

// blockingSubmitter never answers until released.
type blockingSubmitter struct {
	release chan struct{}
}

func (b *blockingSubmitter) Scrobble(ScrobbleTrack) error {
	<-b.release
	return nil
}

func TestSubmit_DoesNotWaitForLastfm(t *testing.T) {
	api := &blockingSubmitter{release: make(chan struct{})}
	q := &memQueue{}
	s := NewScrobbler(api, q, nil)
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Go(func() { s.Run(ctx) })
	t.Cleanup(func() {
		cancel()
		close(api.release)
		wg.Wait()
	})

	done := make(chan struct{})
	go func() {
		for range 3 {
			_ = s.Submit(ctx, song, time.Now())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked on a hung Last.fm request")
	}
}

func TestSubmit_FullBacklogQueues(t *testing.T) {
	api := &fakeSubmitter{}
	q := &memQueue{}
	s := NewScrobbler(api, q, nil)
	ctx := context.Background()

	// Nothing drains the backlog without Run.
	for range submitBuffer + 2 {
		if err := s.Submit(ctx, song, time.Now()); err != nil {
			t.Fatalf("Submit() error: %v", err)
		}
	}

	if q.len() != 2 {
		t.Errorf("queue = %d, want 2", q.len())
	}
	if api.tries != 0 {
		t.Errorf("tries = %d, want 0", api.tries)
	}
}

func TestRun_SendsSubmittedPlays(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		api := &fakeSubmitter{}
		q := &memQueue{}
		s := NewScrobbler(api, q, nil)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			s.Run(ctx)
			close(done)
		}()

		_ = s.Submit(ctx, song, time.Now())
		synctest.Wait()

		api.mu.Lock()
		sent := len(api.sent)
		api.mu.Unlock()
		if sent != 1 {
			t.Errorf("sent = %d, want 1", sent)
		}
		if q.len() != 0 {
			t.Errorf("queue = %d, want 0", q.len())
		}

		cancel()
		<-done
	})
}

func TestRun_QueuesBacklogOnShutdown(t *testing.T) {
	api := &fakeSubmitter{}
	q := &memQueue{}
	s := NewScrobbler(api, q, nil)
	ctx, cancel := context.WithCancel(context.Background())

	for range 3 {
		_ = s.Submit(ctx, song, time.Now())
	}
	cancel()
	s.Run(ctx)

	if q.len() != 3 {
		t.Errorf("queue = %d, want 3", q.len())
	}
	if api.tries != 0 {
		t.Errorf("tries = %d, want 0", api.tries)
	}
}

func TestRetryPending(t *testing.T) {
	api := &fakeSubmitter{}
	q := &memQueue{}
	s := NewScrobbler(api, q, nil)
	ctx := context.Background()
	now := time.Now()

	_ = q.QueueScrobble(ctx, song, now.Add(-time.Hour), "")
	_ = q.QueueScrobble(ctx, song, now.Add(-15*24*time.Hour), "") // too old

	res, err := s.RetryPending(ctx)
	if err != nil {
		t.Fatalf("RetryPending() error: %v", err)
	}
	if res.Succeeded != 1 || res.Failed != 0 || res.Pruned != 1 {
		t.Errorf("result = %+v, want 1 succeeded, 1 pruned", res)
	}
	if q.len() != 0 {
		t.Errorf("queue = %d, want 0", q.len())
	}
}

func TestRetryPending_GivesUpAfterMaxAttempts(t *testing.T) {
	api := &fakeSubmitter{fail: errors.New("rejected")}
	q := &memQueue{}
	s := NewScrobbler(api, q, nil)
	ctx := context.Background()

	_ = q.QueueScrobble(ctx, song, time.Now(), "")

	for range MaxAttempts + 5 {
		if _, err := s.RetryPending(ctx); err != nil {
			t.Fatalf("RetryPending() error: %v", err)
		}
	}

	if api.tries != MaxAttempts {
		t.Errorf("tries = %d, want %d", api.tries, MaxAttempts)
	}
}

func TestRun_RetriesOnInterval(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		api := &fakeSubmitter{fail: errors.New("offline")}
		q := &memQueue{}
		s := NewScrobbler(api, q, nil)
		ctx, cancel := context.WithCancel(context.Background())

		_ = s.Submit(ctx, song, time.Now())

		done := make(chan struct{})
		go func() {
			s.Run(ctx)
			close(done)
		}()

		// Initial pass fails too.
		synctest.Wait()
		if q.len() != 1 {
			t.Fatalf("queue = %d, want 1", q.len())
		}

		api.setFail(nil)
		time.Sleep(RetryInterval)
		synctest.Wait()

		if q.len() != 0 {
			t.Errorf("queue after retry = %d, want 0", q.len())
		}

		cancel()
		<-done
	})
}

func TestScrobbler_WithStore(t *testing.T) {
	m, err := store.Open(filepath.Join(t.TempDir(), "mpressed.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer m.Close()

	api := &fakeSubmitter{fail: errors.New("offline")}
	s := NewScrobbler(api, m, nil)
	ctx := context.Background()

	if err := s.send(ctx, play{id: song, playedAt: time.Now().Add(-time.Minute)}); err != nil {
		t.Fatalf("send() error: %v", err)
	}

	api.setFail(nil)
	res, err := s.RetryPending(ctx)
	if err != nil {
		t.Fatalf("RetryPending() error: %v", err)
	}
	if res.Succeeded != 1 {
		t.Errorf("succeeded = %d, want 1", res.Succeeded)
	}

	pending, _ := m.PendingScrobbles(ctx, MaxAttempts)
	if len(pending) != 0 {
		t.Errorf("pending = %d, want 0", len(pending))
	}
}
