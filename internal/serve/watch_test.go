package serve_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernardoamc/bernardoamc.com/internal/serve"
)

func startWatcher(t *testing.T, dir string, rebuild serve.RebuildFunc, ignore ...string) (stop func()) {
	t.Helper()
	w, err := serve.NewWatcher(dir, rebuild, ignore...)
	require.NoError(t, err)
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()
	return func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "content"), 0o755))

	rebuilt := make(chan struct{}, 16)
	stop := startWatcher(t, dir, func(context.Context) error {
		rebuilt <- struct{}{}
		return nil
	})
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "content", "about.md"), []byte("# About"), 0o644))

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after a change")
	}
}

func TestWatcherWatchesNewDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var rebuilds atomic.Int32
	stop := startWatcher(t, dir, func(context.Context) error {
		rebuilds.Add(1)
		return nil
	})
	defer stop()

	sub := filepath.Join(dir, "static")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.Eventually(t, func() bool { return rebuilds.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)

	before := rebuilds.Load()
	require.NoError(t, os.WriteFile(filepath.Join(sub, "robots.txt"), []byte("User-agent: *"), 0o644))
	require.Eventually(t, func() bool { return rebuilds.Load() > before }, 5*time.Second, 10*time.Millisecond)
}

func TestWatcherSurvivesFailedRebuild(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var calls atomic.Int32
	stop := startWatcher(t, dir, func(context.Context) error {
		calls.Add(1)
		return errors.New("template error")
	})
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)

	before := calls.Load()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("b"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() > before }, 5*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresOutputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(filepath.Join(out, "projects"), 0o755))

	var rebuilds atomic.Int32
	stop := startWatcher(t, dir, func(context.Context) error {
		rebuilds.Add(1)
		return nil
	}, out)
	defer stop()

	// what a rebuild does to the output directory
	require.NoError(t, os.RemoveAll(out))
	require.NoError(t, os.MkdirAll(filepath.Join(out, "projects"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "projects", "index.html"), []byte("<p>projects</p>"), 0o644))
	assert.Never(t, func() bool { return rebuilds.Load() > 0 }, 300*time.Millisecond, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.md"), []byte("# About"), 0o644))
	require.Eventually(t, func() bool { return rebuilds.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestNewWatcherMissingDir(t *testing.T) {
	t.Parallel()

	_, err := serve.NewWatcher(filepath.Join(t.TempDir(), "missing"), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, os.ErrNotExist)
}
