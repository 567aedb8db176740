package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DECIMALINPUT_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "decimalinput", "journal.db"), cfg.Database.Path)
	require.Equal(t, filepath.Join(home, ".config", "decimalinput", "scenarios.toml"), cfg.Scenarios.Path)
	require.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	require.Equal(t, 0, cfg.UI.DefaultPrecision)
	require.Nil(t, cfg.UI.Scale())
	require.Equal(t, "0.00", cfg.UI.Placeholder)
	require.Equal(t, language.English, cfg.UI.Tag())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "debug"

[ui]
default_precision = 8
default_scale = 2
locale = "de"
`), 0o644))
	t.Setenv("DECIMALINPUT_CONFIG", path)
	t.Setenv("DECIMALINPUT_DATABASE_PATH", "/tmp/override.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/override.db", cfg.Database.Path)
	require.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	require.Equal(t, 8, cfg.UI.DefaultPrecision)
	require.Equal(t, 2, *cfg.UI.Scale())
	require.Equal(t, language.German, cfg.UI.Tag())
}

func TestLoadUIDefaults(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
		scale   *int
	}{
		{"negative precision", "[ui]\ndefault_precision = -1\n", true, nil},
		{"scale without precision", "[ui]\ndefault_scale = 2\n", true, nil},
		{"precision only", "[ui]\ndefault_precision = 8\n", false, nil},
		{"integer scale", "[ui]\ndefault_precision = 8\ndefault_scale = 0\n", false, new(int)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("HOME", dir)
			path := filepath.Join(dir, "ui.toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))
			t.Setenv("DECIMALINPUT_CONFIG", path)

			cfg, err := Load()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.scale, cfg.UI.Scale())
		})
	}
}

func TestFallbacks(t *testing.T) {
	require.Equal(t, slog.LevelInfo, LogConfig{Level: "chatty"}.SlogLevel())
	require.Equal(t, slog.LevelWarn, LogConfig{Level: "warn"}.SlogLevel())
	require.Equal(t, language.English, UIConfig{Locale: "!!"}.Tag())
}
