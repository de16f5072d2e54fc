package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cxd309/hoopshot/internal/ballistics"
	"github.com/cxd309/hoopshot/internal/shot"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// clearEnv ensures no HOOPSHOT_* variables leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HOOPSHOT_ADDR", "HOOPSHOT_LOG_LEVEL", "HOOPSHOT_ROSBRIDGE_URL", "HOOPSHOT_ARC"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "hoopshot", cfg.Name)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Len(t, cfg.Arena.Hoops, 2)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "hoopshot.yaml")

	cfg := DefaultConfig()
	cfg.Launcher.MaxSpeed = 12
	cfg.Solver.Arc = "high"
	cfg.Rosbridge.Enabled = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "hoopshot.yaml")
	doc := `
launcher: {name: shooter, height: 0.7, max_speed: 12, model: drag_free}
arena:
  width: 15
  height: 8
  hoops:
    - {id: red, loc: {x: 1.2, y: 4}, height: 3.05}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.7, cfg.Launcher.Height)
	assert.Equal(t, 12.0, cfg.Launcher.MaxSpeed)
	assert.Len(t, cfg.Arena.Hoops, 1)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoopshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("launcher: [unterminated"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOOPSHOT_ADDR", ":9999")
	t.Setenv("HOOPSHOT_LOG_LEVEL", "DEBUG")
	t.Setenv("HOOPSHOT_ROSBRIDGE_URL", "ws://robot:9090")
	t.Setenv("HOOPSHOT_ARC", "low")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "ws://robot:9090", cfg.Rosbridge.URL)
	assert.Equal(t, "low", cfg.Solver.Arc)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown model", func(c *Config) { c.Launcher.Model = "magnus" }},
		{"negative launcher height", func(c *Config) { c.Launcher.Height = -1 }},
		{"negative max speed", func(c *Config) { c.Launcher.MaxSpeed = -1 }},
		{"bad arc", func(c *Config) { c.Solver.Arc = "sideways" }},
		{"empty arena", func(c *Config) { c.Arena.Width = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"rosbridge without url", func(c *Config) { c.Rosbridge.Enabled = true; c.Rosbridge.URL = "" }},
		{"rosbridge without topic", func(c *Config) { c.Rosbridge.Enabled = true; c.Rosbridge.PoseTopic = "" }},
		{"rosbridge unknown hoop", func(c *Config) { c.Rosbridge.Enabled = true; c.Rosbridge.Hoop = "green" }},
		{"rosbridge bad reconnect", func(c *Config) { c.Rosbridge.Enabled = true; c.Rosbridge.Reconnect = "soon" }},
		{"rosbridge negative reconnect", func(c *Config) { c.Rosbridge.Enabled = true; c.Rosbridge.Reconnect = "-1s" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLauncherBuild(t *testing.T) {
	l, err := LauncherConfig{Name: "s", Height: 0.5, MaxSpeed: 9}.Build()
	require.NoError(t, err)
	assert.Equal(t, shot.Launcher{Name: "s", Height: 0.5, MaxSpeed: 9, Model: ballistics.DragFree{}}, l)
}

func TestReconnectDelay(t *testing.T) {
	d, err := RosbridgeConfig{}.ReconnectDelay()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)

	d, err = RosbridgeConfig{Reconnect: "500ms"}.ReconnectDelay()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestWatchReloadsOnChange(t *testing.T) {
	clearEnv(t)
	old := WatchDebounce
	WatchDebounce = 20 * time.Millisecond
	t.Cleanup(func() { WatchDebounce = old })

	path := filepath.Join(t.TempDir(), "hoopshot.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	reloaded := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config, err error) {
			if err == nil {
				select {
				case reloaded <- c:
				default:
				}
			}
		})
	}()

	changed := DefaultConfig()
	changed.Server.Addr = ":7070"

	// The watcher may not be registered yet, so keep rewriting until it reports.
	// A reload can also catch the file mid-write, so wait for the new address.
	found := false
	deadline := time.After(5 * time.Second)
	for !found {
		require.NoError(t, changed.Save(path))
		select {
		case c := <-reloaded:
			found = c.Server.Addr == ":7070"
		case <-time.After(200 * time.Millisecond):
		case <-deadline:
			t.Fatal("config change was never observed")
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchReportsInvalidConfig(t *testing.T) {
	clearEnv(t)
	old := WatchDebounce
	WatchDebounce = 20 * time.Millisecond
	t.Cleanup(func() { WatchDebounce = old })

	path := filepath.Join(t.TempDir(), "hoopshot.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config, err error) {
			if err != nil {
				select {
				case errs <- err:
				default:
				}
			}
		})
	}()

	bad := DefaultConfig()
	bad.Logging.Level = "trace"

	found := false
	deadline := time.After(5 * time.Second)
	for !found {
		require.NoError(t, bad.Save(path))
		select {
		case err := <-errs:
			found = strings.Contains(err.Error(), "invalid log level")
		case <-time.After(200 * time.Millisecond):
		case <-deadline:
			t.Fatal("invalid config was never reported")
		}
	}

	cancel()
	require.NoError(t, <-done)
}
