// Command mpressed browses the play counts recorded by mpressedd.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/llehouerou/mpressed/internal/app"
	"github.com/llehouerou/mpressed/internal/config"
	"github.com/llehouerou/mpressed/internal/errmsg"
	"github.com/llehouerou/mpressed/internal/store"
)

func main() {
	var (
		configPath string
		dbPath     string
		logToFile  bool
	)
	flag.StringVar(&configPath, "config", "", "path to an extra config file")
	flag.StringVar(&dbPath, "db", "", "path to the play database")
	flag.BoolVar(&logToFile, "log", false, "write a debug log to $XDG_STATE_HOME/mpressed/viewer.log")
	flag.Parse()

	if err := run(configPath, dbPath, logToFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, dbPath string, logToFile bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logger, closeLog, err := openLogger(logToFile)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLogOpen, err))
	}
	defer closeLog()

	if dbPath == "" {
		dbPath = cfg.Store.Path
	}
	if dbPath == "" {
		if dbPath, err = store.DefaultPath(); err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpStoreOpen, dbPath, err))
		}
	}

	st, err := store.OpenExisting(dbPath)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpStoreOpen, dbPath, err))
	}
	defer st.Close()
	logger.Info("viewer started", "db", dbPath)

	ctx := context.Background()
	m, err := app.New(ctx, st, logger)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStoreRead, err))
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	if fm, ok := final.(app.Model); ok && fm.Err() != nil {
		return errors.New(errmsg.Format(errmsg.OpRefresh, fm.Err()))
	}
	return nil
}

// openLogger returns a file logger under the XDG state directory when
// enabled. The TUI owns the terminal, so nothing is logged otherwise.
func openLogger(enabled bool) (*slog.Logger, func(), error) {
	if !enabled {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	path, err := xdg.StateFile(filepath.Join("mpressed", "viewer.log"))
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}
