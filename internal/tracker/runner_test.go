package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/llehouerou/mpressed/internal/track"
)

type scriptedSource struct {
	samples []track.Sample
	pos     int
	closed  bool
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) Sample(_ context.Context) (track.Sample, error) {
	if s.pos >= len(s.samples) {
		return track.Sample{}, ErrDisconnected
	}
	smp := s.samples[s.pos]
	s.pos++
	return smp, nil
}

func (s *scriptedSource) Close() error {
	s.closed = true
	return nil
}

// scriptedDiscoverer hands out sources in order, failing when a slot is nil,
// and cancels the run once the script is exhausted.
type scriptedDiscoverer struct {
	mu      sync.Mutex
	sources []*scriptedSource
	calls   int
	cancel  context.CancelFunc
}

func (d *scriptedDiscoverer) Discover(_ context.Context) (Source, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.calls
	d.calls++
	if i >= len(d.sources) {
		d.cancel()
		return nil, ErrNoPlayer
	}
	if d.sources[i] == nil {
		return nil, ErrNoPlayer
	}
	return d.sources[i], nil
}

func playing(id track.Identity, n int) []track.Sample {
	out := make([]track.Sample, n)
	for i := range out {
		out[i] = track.Sample{Identity: id, Status: track.Playing}
	}
	return out
}

// fakeClock advances one second per reading.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func TestRunner_ReconnectsAndAbortsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := &scriptedSource{samples: playing(songX, 40)}
	second := &scriptedSource{samples: playing(songX, 40)}
	d := &scriptedDiscoverer{
		sources: []*scriptedSource{nil, first, nil, second},
		cancel:  cancel,
	}

	c := &fakeCommitter{}
	clock := &fakeClock{t: base}
	r := &Runner{
		Tracker:        New(c, 60*time.Second, nil),
		Discoverer:     d,
		PollInterval:   time.Millisecond,
		ReconnectDelay: time.Millisecond,
		Now:            clock.Now,
	}

	err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}

	if !first.closed || !second.closed {
		t.Error("sources should be closed after a disconnect")
	}
	// 40s + 40s of the same song across a reconnect never reach 60s.
	if len(c.calls) != 0 {
		t.Errorf("commits = %v, want none", c.calls)
	}
	if _, ok := r.Tracker.Current(); ok {
		t.Error("session should be aborted after the last disconnect")
	}
}

func TestRunner_CommitsWhileConnected(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &scriptedSource{samples: playing(songX, 65)}
	d := &scriptedDiscoverer{sources: []*scriptedSource{src}, cancel: cancel}

	c := &fakeCommitter{}
	clock := &fakeClock{t: base}
	r := &Runner{
		Tracker:        New(c, 60*time.Second, nil),
		Discoverer:     d,
		PollInterval:   time.Millisecond,
		ReconnectDelay: time.Millisecond,
		Now:            clock.Now,
	}

	_ = r.Run(ctx)

	if len(c.calls) != 1 {
		t.Fatalf("commits = %d, want 1", len(c.calls))
	}
	if c.calls[0].id != songX {
		t.Errorf("committed %v, want songX", c.calls[0].id)
	}
}

func TestRunner_StopsWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := &scriptedDiscoverer{sources: []*scriptedSource{nil, nil, nil}, cancel: func() {}}

	r := &Runner{
		Tracker:        New(&fakeCommitter{}, time.Minute, nil),
		Discoverer:     d,
		PollInterval:   time.Millisecond,
		ReconnectDelay: time.Hour,
	}

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
