package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-epochs/internal/config"
)

func parse(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addRootFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	c := parse(t, "--config", filepath.Join(t.TempDir(), "none.yaml"))
	cfg, err := loadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "epochs.yaml")
	require.NoError(t, os.WriteFile(p, []byte("fps: 30\nstars: 7\nwidth: 320\n"), 0644))

	c := parse(t, "--config", p, "--stars", "3", "--seed", "9")
	cfg, err := loadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FPS, "file value kept")
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 3, cfg.Stars, "explicit flag wins")
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, 600, cfg.Height, "default kept")
}

func TestLoadConfigRejectsBadFlag(t *testing.T) {
	c := parse(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "--fps", "0")
	_, err := loadConfig(c)
	assert.ErrorIs(t, err, config.ErrFPS)
}

func TestSetupLoggingLevel(t *testing.T) {
	assert.NoError(t, setupLogging(&bytes.Buffer{}, "debug"))
	assert.Error(t, setupLogging(&bytes.Buffer{}, "loud"))
}

func TestSimulateCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"simulate",
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"--log-level", "error",
		"--width", "40", "--height", "30", "--fps", "10", "--seed", "1",
		"--seconds", "1", "--every", "5",
	})
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "stage=0")
	assert.Contains(t, lines[0], "Formation of Earth")
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"view", "serve", "export", "led", "simulate"} {
		assert.True(t, names[want], want)
	}
}

func TestReloadKeepsFlagOverrides(t *testing.T) {
	p := filepath.Join(t.TempDir(), "epochs.yaml")
	require.NoError(t, os.WriteFile(p, []byte("stars: 100\n"), 0644))

	c := parse(t, "--config", p, "--stars", "3")
	cfg, err := loadConfig(c)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Stars)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan *config.Config, 4)
	watchConfig(ctx, c, func(rc *config.Config) {
		select {
		case got <- rc:
		default:
		}
	})

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte("stars: 100\nfps: 30\nlog_level: debug\n"), 0644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case rc := <-got:
			assert.Equal(t, 3, rc.Stars, "explicit --stars survives a reload")
			if rc.FPS == 30 {
				assert.Equal(t, "debug", rc.LogLevel)
				return
			}
		case <-timeout:
			t.Fatal("no reload observed")
		}
	}
}
