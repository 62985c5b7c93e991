package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "epochs.yaml")
	require.NoError(t, os.WriteFile(p, []byte("fps: 30\nstars: 12\nserve:\n  addr: \":9999\"\n"), 0644))

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 30, c.FPS)
	assert.Equal(t, 12, c.Stars)
	assert.Equal(t, ":9999", c.Serve.Addr)
	assert.Equal(t, 800, c.Width, "unset keys keep defaults")
	assert.Equal(t, 50, c.Serve.ThrottleMs)
}

func TestLoadRejectsInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "epochs.yaml")
	require.NoError(t, os.WriteFile(p, []byte("width: 0\n"), 0644))
	_, err := Load(p)
	assert.ErrorIs(t, err, ErrDimensions)

	require.NoError(t, os.WriteFile(p, []byte("fps: -1\n"), 0644))
	_, err = Load(p)
	assert.ErrorIs(t, err, ErrFPS)

	require.NoError(t, os.WriteFile(p, []byte("export:\n  fps: 0\n"), 0644))
	_, err = Load(p)
	assert.ErrorIs(t, err, ErrFPS)

	require.NoError(t, os.WriteFile(p, []byte("fps: [\n"), 0644))
	_, err = Load(p)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "epochs.yaml")
	c := Default()
	c.Seed = 42
	c.LED.Power.BudgetMA = 1200
	require.NoError(t, Save(p, c))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestWatchReloads(t *testing.T) {
	p := filepath.Join(t.TempDir(), "epochs.yaml")
	require.NoError(t, Save(p, Default()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, p, func(c *Config) {
			select {
			case got <- c:
			default:
			}
		})
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	c := Default()
	c.FPS = 24
	require.NoError(t, Save(p, c))

	// a write can surface as several events; wait for the final content
	timeout := time.After(5 * time.Second)
	for seen := false; !seen; {
		select {
		case c := <-got:
			seen = c.FPS == 24
		case <-timeout:
			t.Fatal("no reload observed")
		}
	}
	cancel()
	assert.NoError(t, <-done)
}
