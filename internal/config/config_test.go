//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/data/mpressed.db",
			expected: filepath.Join(home, "data", "mpressed.db"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/lib/mpressed.db",
			expected: "/var/lib/mpressed.db",
		},
		{
			name:     "relative path unchanged",
			input:    "db/mpressed.db",
			expected: "db/mpressed.db",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "mpressed", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

// chdirTemp moves into a fresh directory so only the test's config.toml is seen.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tc := cfg.GetTrackerConfig()
	if tc.Threshold != DefaultThreshold {
		t.Errorf("Threshold = %v, want %v", tc.Threshold, DefaultThreshold)
	}
	if tc.Source != SourceMPRIS {
		t.Errorf("Source = %q, want %q", tc.Source, SourceMPRIS)
	}
}

func TestLoad_LocalFile(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[tracker]
threshold = "30s"
poll_interval = "500ms"
source = "MPD"
identities = ["mpv", "VLC media player"]

[mpd]
address = "music.lan:6600"

[store]
path = "~/plays.db"

[lastfm]
api_key = "k"
api_secret = "s"

[log]
level = "debug"
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tc := cfg.GetTrackerConfig()
	if tc.Threshold != 30*time.Second {
		t.Errorf("Threshold = %v, want 30s", tc.Threshold)
	}
	if tc.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v, want 500ms", tc.PollInterval)
	}
	if tc.Source != SourceMPD {
		t.Errorf("Source = %q, want %q", tc.Source, SourceMPD)
	}
	if len(tc.Identities) != 2 || tc.Identities[0] != "mpv" {
		t.Errorf("Identities = %v", tc.Identities)
	}
	if got := cfg.GetMPDConfig().Address; got != "music.lan:6600" {
		t.Errorf("MPD address = %q", got)
	}
	if cfg.Store.Path != filepath.Join(dir, "plays.db") {
		t.Errorf("Store.Path = %q, want expanded path", cfg.Store.Path)
	}
	if !cfg.HasLastfmConfig() {
		t.Error("HasLastfmConfig() = false, want true")
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}
}

func TestLoad_ExtraOverridesLocal(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[tracker]
threshold = "30s"
reconnect_delay = "2s"
`)
	extra := filepath.Join(dir, "extra.toml")
	writeFile(t, extra, `
[tracker]
threshold = "90s"
`)

	cfg, err := Load(extra)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tc := cfg.GetTrackerConfig()
	if tc.Threshold != 90*time.Second {
		t.Errorf("Threshold = %v, want 90s", tc.Threshold)
	}
	if tc.ReconnectDelay != 2*time.Second {
		t.Errorf("ReconnectDelay = %v, want 2s (kept from local file)", tc.ReconnectDelay)
	}
}

func TestLoad_MissingExtra(t *testing.T) {
	chdirTemp(t)

	if _, err := Load("does-not-exist.toml"); err == nil {
		t.Error("Load() with missing explicit config should fail")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[tracker\nthreshold = ")

	if _, err := Load(""); err == nil {
		t.Error("Load() with invalid TOML should fail")
	}
}

func TestGetTrackerConfig_Defaults(t *testing.T) {
	cfg := Config{}
	tc := cfg.GetTrackerConfig()

	if tc.Threshold != 60*time.Second {
		t.Errorf("Threshold = %v, want 60s", tc.Threshold)
	}
	if tc.PollInterval != time.Second {
		t.Errorf("PollInterval = %v, want 1s", tc.PollInterval)
	}
	if tc.ReconnectDelay != 5*time.Second {
		t.Errorf("ReconnectDelay = %v, want 5s", tc.ReconnectDelay)
	}
	if tc.ArtistSeparator != " / " {
		t.Errorf("ArtistSeparator = %q, want %q", tc.ArtistSeparator, " / ")
	}
	if len(tc.Identities) != 1 || tc.Identities[0] != "VLC media player" {
		t.Errorf("Identities = %v, want [VLC media player]", tc.Identities)
	}
}

func TestGetTrackerConfig_EmptyIdentitiesKept(t *testing.T) {
	cfg := Config{Tracker: TrackerConfig{Identities: []string{}}}
	if ids := cfg.GetTrackerConfig().Identities; len(ids) != 0 {
		t.Errorf("Identities = %v, want empty (accept any player)", ids)
	}
}

func TestGetTrackerConfig_InvalidValues(t *testing.T) {
	cfg := Config{
		Tracker: TrackerConfig{
			Threshold:    -time.Second,
			PollInterval: 0,
			Source:       "winamp",
		},
	}
	tc := cfg.GetTrackerConfig()

	if tc.Threshold != DefaultThreshold {
		t.Errorf("Threshold with invalid value = %v, want %v", tc.Threshold, DefaultThreshold)
	}
	if tc.PollInterval != DefaultPollInterval {
		t.Errorf("PollInterval with invalid value = %v, want %v", tc.PollInterval, DefaultPollInterval)
	}
	if tc.Source != SourceMPRIS {
		t.Errorf("Source with unknown value = %q, want %q", tc.Source, SourceMPRIS)
	}
}

func TestGetMPDConfig_Defaults(t *testing.T) {
	cfg := Config{}
	mc := cfg.GetMPDConfig()

	if mc.Network != "tcp" {
		t.Errorf("Network = %q, want tcp", mc.Network)
	}
	if mc.Address != "localhost:6600" {
		t.Errorf("Address = %q, want localhost:6600", mc.Address)
	}
}

func TestHasLastfmConfig(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected bool
	}{
		{
			name:     "both APIKey and APISecret set",
			config:   Config{Lastfm: LastfmConfig{APIKey: "k", APISecret: "s"}},
			expected: true,
		},
		{
			name:     "only APIKey set",
			config:   Config{Lastfm: LastfmConfig{APIKey: "k"}},
			expected: false,
		},
		{
			name:     "neither set",
			config:   Config{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.HasLastfmConfig(); got != tt.expected {
				t.Errorf("HasLastfmConfig() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{Log: LogConfig{Level: tt.level}}
			if got := cfg.LogLevel(); got != tt.want {
				t.Errorf("LogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
