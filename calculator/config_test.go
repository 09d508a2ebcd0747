package calculator

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func TestDefaultConfigMatchesModelConstants(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.1, cfg.OxidationA)
	assert.Equal(t, 0.0117, cfg.OxidationB)
	assert.Equal(t, 500.0, cfg.OxidationMax)
	assert.Equal(t, 0.05, cfg.OxidationDecay)
	assert.Equal(t, 0.08, cfg.DepositionCoefficient)
	assert.Equal(t, 1.1, cfg.DepositionOvershoot)
	assert.Equal(t, 0.05, cfg.EtchCoefficient)
	assert.Equal(t, 0.03, cfg.EtchDecay)
}

func TestLoadCfg(t *testing.T) {
	file, err := ini.Load([]byte(`
[server]
addr = :8081

[log]
level = debug

[model]
etch_decay = 0.04
`))
	require.NoError(t, err)

	cfg := loadCfg(file)
	assert.Equal(t, ":8081", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0.04, cfg.EtchDecay)
	// untouched keys keep their defaults
	assert.Equal(t, 0.0117, cfg.OxidationB)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[model]\netch_decay = 0\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "etch_decay")

	require.NoError(t, os.WriteFile(path, []byte("[model]\noxidation_max = -5\n"), 0o644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "oxidation_max")
}

func watchEtchDecay(t *testing.T, path string) (*atomic.Value, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	var decay atomic.Value
	decay.Store(0.0)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg Config) {
			decay.Store(cfg.EtchDecay)
		})
	}()

	return &decay, func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("watch did not stop")
		}
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[model]\netch_decay = 0.03\n"), 0o644))

	decay, stop := watchEtchDecay(t, path)
	defer stop()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("[model]\netch_decay = 0.04\n"), 0o644)
		return decay.Load().(float64) == 0.04
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatchSurvivesRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[model]\netch_decay = 0.03\n"), 0o644))

	decay, stop := watchEtchDecay(t, path)
	defer stop()

	save := func(v string) {
		tmp := filepath.Join(dir, "config.ini.tmp")
		_ = os.WriteFile(tmp, []byte("[model]\netch_decay = "+v+"\n"), 0o644)
		_ = os.Rename(tmp, path)
	}

	// the second save only lands if the watch outlived the first inode swap
	require.Eventually(t, func() bool {
		save("0.04")
		return decay.Load().(float64) == 0.04
	}, 5*time.Second, 50*time.Millisecond)
	require.Eventually(t, func() bool {
		save("0.05")
		return decay.Load().(float64) == 0.05
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatchIgnoresSiblingsAndBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[model]\netch_decay = 0.03\n"), 0o644))

	decay, stop := watchEtchDecay(t, path)
	defer stop()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("[model]\netch_decay = 0.04\n"), 0o644)
		return decay.Load().(float64) == 0.04
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.ini"), []byte("[model]\netch_decay = 0.09\n"), 0o644))
	bad := filepath.Join(dir, "bad.tmp")
	require.NoError(t, os.WriteFile(bad, []byte("[model]\netch_decay = -1\n"), 0o644))
	require.NoError(t, os.Rename(bad, path))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 0.04, decay.Load().(float64))
}

func TestChangedFiltersByName(t *testing.T) {
	file := filepath.Clean("/etc/fabsim/config.ini")
	assert.True(t, changed(fsnotify.Event{Name: "/etc/fabsim/./config.ini", Op: fsnotify.Write}, file))
	assert.True(t, changed(fsnotify.Event{Name: file, Op: fsnotify.Create}, file))
	assert.True(t, changed(fsnotify.Event{Name: file, Op: fsnotify.Rename}, file))
	assert.False(t, changed(fsnotify.Event{Name: file, Op: fsnotify.Chmod}, file))
	assert.False(t, changed(fsnotify.Event{Name: "/etc/fabsim/config.ini.swp", Op: fsnotify.Write}, file))
}
