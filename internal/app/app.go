// Package app is the bubbletea model of the statistics viewer.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mpressed/internal/keymap"
	"github.com/llehouerou/mpressed/internal/store"
	"github.com/llehouerou/mpressed/internal/ui/helpbindings"
	"github.com/llehouerou/mpressed/internal/ui/layout"
	"github.com/llehouerou/mpressed/internal/ui/statsview"
	"github.com/llehouerou/mpressed/internal/ui/styles"
)

// Source is the read side of the store the viewer needs.
type Source interface {
	Snapshot(ctx context.Context) (store.Snapshot, error)
	Size() int64
}

// Model is the root viewer model.
type Model struct {
	ctx    context.Context
	source Source
	logger *slog.Logger

	view     *statsview.Model
	keys     *keymap.Resolver
	help     help.Model
	helpView helpbindings.Model
	showHelp bool
	focus    Pane

	dbSize int64
	width  int
	height int
	layout layout.Layout

	err error
}

// New creates the viewer and loads the first snapshot. A read failure is
// returned to the caller; the viewer never starts without data.
func New(ctx context.Context, source Source, logger *slog.Logger) (Model, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	h := help.New()
	s := styles.T().S()
	h.Styles.ShortKey = s.Accent
	h.Styles.ShortDesc = s.Muted
	h.Styles.ShortSeparator = s.Subtle

	m := Model{
		ctx:      ctx,
		source:   source,
		logger:   logger,
		view:     statsview.New(),
		keys:     keymap.NewResolver(keymap.Bindings),
		help:     h,
		helpView: helpbindings.New(),
		focus:    PaneTable,
	}
	if err := m.load(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Err returns the error that stopped the viewer, if any.
func (m Model) Err() error {
	return m.err
}

// Focus returns the focused pane.
func (m Model) Focus() Pane {
	return m.focus
}

// Stats returns the statistics view model.
func (m Model) Stats() *statsview.Model {
	return m.view
}

// load reads a fresh snapshot into the view.
func (m *Model) load() error {
	snap, err := m.source.Snapshot(m.ctx)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	m.view.SetSnapshot(snap)
	m.dbSize = m.source.Size()
	m.logger.Debug("snapshot loaded",
		"songs", len(snap.Songs),
		"counts", len(snap.Counts),
		"bytes", m.dbSize)
	return nil
}
