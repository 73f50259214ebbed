package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Sources supported by the tracker.
const (
	SourceMPRIS = "mpris"
	SourceMPD   = "mpd"
)

type Config struct {
	Tracker TrackerConfig `koanf:"tracker"`

	// MPD connection, used when tracker.source = "mpd"
	MPD MPDConfig `koanf:"mpd"`

	Store StoreConfig `koanf:"store"`

	// Desktop notification on each recorded play
	Notify NotifyConfig `koanf:"notify"`

	// Last.fm mirror (enables scrobbling when configured and linked)
	Lastfm LastfmConfig `koanf:"lastfm"`

	Log LogConfig `koanf:"log"`
}

// TrackerConfig controls how plays are detected.
type TrackerConfig struct {
	Threshold       time.Duration `koanf:"threshold"`        // listening time before a play counts (default: 60s)
	PollInterval    time.Duration `koanf:"poll_interval"`    // player sampling period (default: 1s)
	ReconnectDelay  time.Duration `koanf:"reconnect_delay"`  // wait after losing the player (default: 5s)
	Source          string        `koanf:"source"`           // "mpris" or "mpd" (default: "mpris")
	Identities      []string      `koanf:"identities"`       // MPRIS Identity values to accept, in order
	ArtistSeparator string        `koanf:"artist_separator"` // joins multi-artist tags (default: " / ")
	TagFallback     bool          `koanf:"tag_fallback"`     // read missing fields from the file tags
}

// MPDConfig holds the MPD server address.
type MPDConfig struct {
	Network  string `koanf:"network"` // "tcp" or "unix" (default: "tcp")
	Address  string `koanf:"address"` // default: "localhost:6600"
	Password string `koanf:"password"`
}

// StoreConfig locates the database file.
type StoreConfig struct {
	Path string `koanf:"path"` // empty means the XDG default
}

// NotifyConfig toggles desktop notifications.
type NotifyConfig struct {
	Enabled bool `koanf:"enabled"`
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// LogConfig sets the tracker log level.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
}

// Defaults
const (
	DefaultThreshold      = 60 * time.Second
	DefaultPollInterval   = time.Second
	DefaultReconnectDelay = 5 * time.Second
	DefaultMPDNetwork     = "tcp"
	DefaultMPDAddress     = "localhost:6600"
)

// DefaultIdentities are the MPRIS players accepted when none are configured.
var DefaultIdentities = []string{"VLC media player"}

// Load reads the layered config files. extra, when non-empty, is loaded last
// and must exist.
func Load(extra string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if extra != "" {
		if err := k.Load(file.Provider(expandPath(extra)), toml.Parser()); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Store.Path = expandPath(cfg.Store.Path)
	cfg.Tracker.Source = strings.ToLower(strings.TrimSpace(cfg.Tracker.Source))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/mpressed/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "mpressed", "config.toml"))
	}

	// 2. ./config.toml (pwd)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetTrackerConfig returns the tracker configuration with defaults applied.
func (c *Config) GetTrackerConfig() TrackerConfig {
	cfg := c.Tracker

	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	if cfg.Source != SourceMPD {
		cfg.Source = SourceMPRIS
	}
	if cfg.Identities == nil {
		cfg.Identities = DefaultIdentities
	}
	if cfg.ArtistSeparator == "" {
		cfg.ArtistSeparator = " / "
	}

	return cfg
}

// GetMPDConfig returns the MPD configuration with defaults applied.
func (c *Config) GetMPDConfig() MPDConfig {
	cfg := c.MPD
	if cfg.Network == "" {
		cfg.Network = DefaultMPDNetwork
	}
	if cfg.Address == "" {
		cfg.Address = DefaultMPDAddress
	}
	return cfg
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// LogLevel maps log.level to a slog level. Unknown values mean info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
