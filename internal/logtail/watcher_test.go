package logtail

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, path string, debounce time.Duration, fn func()) *Watcher {
	t.Helper()
	w, err := NewWatcher(path, fn, WatcherOptions{Debounce: debounce})
	require.NoError(t, err)
	return w
}

func TestWatcher_FileWriteTriggersChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	var calls atomic.Int32
	w := newTestWatcher(t, path, 20*time.Millisecond, func() { calls.Add(1) })
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()
	assert.True(t, w.IsWatching())

	appendFile(t, path, "Standing: Red Veil +5\n")

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	stats := w.GetStats()
	assert.GreaterOrEqual(t, stats.Notifications, 1)
	assert.GreaterOrEqual(t, stats.Polls, 1)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "EE.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	var calls atomic.Int32
	w := newTestWatcher(t, path, 10*time.Millisecond, func() { calls.Add(1) })
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	appendFile(t, filepath.Join(dir, "other.log"), "noise\n")
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_BurstCoalesces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	var calls atomic.Int32
	w := newTestWatcher(t, path, 80*time.Millisecond, func() { calls.Add(1) })
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for i := 0; i < 10; i++ {
		w.Notify()
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_StopCancelsPendingPoll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	var calls atomic.Int32
	w := newTestWatcher(t, path, 100*time.Millisecond, func() { calls.Add(1) })
	require.NoError(t, w.Start(context.Background()))

	w.Notify()
	// Give the loop a moment to schedule the debounce, then stop before it fires.
	time.Sleep(10 * time.Millisecond)
	w.Stop()
	assert.False(t, w.IsWatching())

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	// Stop is idempotent and a stopped watcher cannot be restarted.
	w.Stop()
	assert.Error(t, w.Start(context.Background()))
}

func TestWatcher_PollInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	var calls atomic.Int32
	w, err := NewWatcher(path, func() { calls.Add(1) }, WatcherOptions{
		Debounce:     5 * time.Millisecond,
		PollInterval: 20 * time.Millisecond,
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_ContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	ctx, cancel := context.WithCancel(context.Background())
	w := newTestWatcher(t, path, 10*time.Millisecond, func() {})
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
}

func TestNewWatcher_RequiresHandler(t *testing.T) {
	_, err := NewWatcher("EE.log", nil, WatcherOptions{})
	assert.Error(t, err)
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	w := newTestWatcher(t, path, 0, func() {})
	assert.Equal(t, path, w.Path())
	w.Stop()
}
