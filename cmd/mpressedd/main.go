// Command mpressedd watches the active media player and records a play each
// time a song has been listened to for long enough.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/llehouerou/mpressed/internal/config"
	"github.com/llehouerou/mpressed/internal/errmsg"
	"github.com/llehouerou/mpressed/internal/lastfm"
	"github.com/llehouerou/mpressed/internal/mpd"
	"github.com/llehouerou/mpressed/internal/mpris"
	"github.com/llehouerou/mpressed/internal/notify"
	"github.com/llehouerou/mpressed/internal/recorder"
	"github.com/llehouerou/mpressed/internal/store"
	"github.com/llehouerou/mpressed/internal/tracker"
)

type options struct {
	configPath string
	dbPath     string
	verbose    bool
}

func main() {
	var opts options
	fs := flag.NewFlagSet("mpressedd", flag.ExitOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to an extra config file")
	fs.StringVar(&opts.dbPath, "db", "", "path to the play database")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mpressedd [flags] [lastfm-link]\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch args := fs.Args(); {
	case len(args) == 0:
		err = run(ctx, opts)
	case args[0] == "lastfm-link":
		err = link(ctx, opts)
	default:
		fs.Usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration, builds the logger and opens the database.
func setup(opts options) (*config.Config, *slog.Logger, *store.Manager, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, nil, errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	level := cfg.LogLevel()
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := opts.dbPath
	if path == "" {
		path = cfg.Store.Path
	}
	if path == "" {
		if path, err = store.DefaultPath(); err != nil {
			return nil, nil, nil, errors.New(errmsg.Format(errmsg.OpStoreOpen, err))
		}
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, nil, nil, errors.New(errmsg.FormatWith(errmsg.OpStoreOpen, path, err))
	}
	logger.Debug("database opened", "path", path)
	return cfg, logger, st, nil
}

func run(ctx context.Context, opts options) error {
	cfg, logger, st, err := setup(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	tc := cfg.GetTrackerConfig()
	recOpts := []recorder.Option{recorder.WithLogger(logger)}

	if cfg.Notify.Enabled {
		n, err := notify.New()
		if err != nil {
			logger.Warn("desktop notifications unavailable", "err", err)
		} else {
			recOpts = append(recOpts, recorder.WithNotifier(n))
		}
	}

	// the retry loop must stop before the store closes
	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if scrob := scrobbler(ctx, cfg, st, logger); scrob != nil {
		wg.Go(func() { scrob.Run(ctx) })
		recOpts = append(recOpts, recorder.WithScrobbler(scrob, tc.Threshold))
	}

	rec := recorder.New(st, recOpts...)

	var disc tracker.Discoverer
	switch tc.Source {
	case config.SourceMPD:
		mc := cfg.GetMPDConfig()
		disc = mpd.NewDiscoverer(mpd.Options{
			Network:         mc.Network,
			Address:         mc.Address,
			Password:        mc.Password,
			ArtistSeparator: tc.ArtistSeparator,
			Logger:          logger,
		})
	default:
		disc = mpris.NewDiscoverer(mpris.Options{
			Identities:      tc.Identities,
			ArtistSeparator: tc.ArtistSeparator,
			TagFallback:     tc.TagFallback,
			Logger:          logger,
		})
	}

	logger.Info("tracker started",
		"source", tc.Source,
		"threshold", tc.Threshold,
		"poll", tc.PollInterval)

	runner := &tracker.Runner{
		Tracker:        tracker.New(rec, tc.Threshold, logger),
		Discoverer:     disc,
		PollInterval:   tc.PollInterval,
		ReconnectDelay: tc.ReconnectDelay,
		Logger:         logger,
	}
	err = runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("tracker stopped")
		return nil
	}
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpTrackerStart, err))
	}
	return nil
}

// scrobbler returns a Last.fm scrobbler when API keys are configured and an
// account has been linked, nil otherwise.
func scrobbler(ctx context.Context, cfg *config.Config, st *store.Manager, logger *slog.Logger) *lastfm.Scrobbler {
	if !cfg.HasLastfmConfig() {
		return nil
	}

	sess, err := st.LastfmSession(ctx)
	if err != nil {
		logger.Warn(errmsg.Format(errmsg.OpLastfmSession, err))
		return nil
	}
	if sess == nil {
		logger.Info("Last.fm configured but not linked, run `mpressedd lastfm-link`")
		return nil
	}

	client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
	client.SetSessionKey(sess.SessionKey)
	logger.Info("scrobbling to Last.fm", "user", sess.Username)
	return lastfm.NewScrobbler(client, st, logger)
}
