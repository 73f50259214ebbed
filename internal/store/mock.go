package store

import (
	"context"
	"sync"

	"github.com/llehouerou/mpressed/internal/track"
)

// Commit is one call recorded by Mock.
type Commit struct {
	Identity track.Identity
	Date     string
}

// Mock is an in-memory stand-in for Manager.
type Mock struct {
	mu       sync.Mutex
	snapshot Snapshot
	commits  []Commit
	err      error
	closed   bool
}

// NewMock creates a mock store returning snap from Snapshot.
func NewMock(snap Snapshot) *Mock {
	return &Mock{snapshot: snap}
}

func (m *Mock) Commit(_ context.Context, id track.Identity, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.commits = append(m.commits, Commit{Identity: id, Date: date})
	return nil
}

func (m *Mock) Snapshot(_ context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return Snapshot{}, m.err
	}
	return m.snapshot, nil
}

func (m *Mock) Size() int64 { return 0 }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSnapshot(snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snap
}

func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) Commits() []Commit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Commit(nil), m.commits...)
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
