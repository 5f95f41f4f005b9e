package template

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectEvents runs a watcher over dir and returns a getter for the
// events seen so far.
func collectEvents(t *testing.T, dir string) func() []Event {
	t.Helper()

	w := NewWatcher(dir,
		WithPollInterval(10*time.Millisecond),
		WithDebounce(5*time.Millisecond))

	var mu sync.Mutex
	var events []Event
	w.OnChange(func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx))
	t.Cleanup(w.Stop)

	return func() []Event {
		mu.Lock()
		defer mu.Unlock()
		return append([]Event(nil), events...)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestWatcher_DetectsCreateAndWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	events := collectEvents(t, dir)

	path := filepath.Join(dir, "forest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"forest"}`), 0o644))

	waitFor(t, func() bool {
		for _, e := range events() {
			if e.TemplateType == "forest" && e.Op == OpCreate {
				return true
			}
		}
		return false
	})

	// Bump the mod time past filesystem timestamp granularity.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	waitFor(t, func() bool {
		for _, e := range events() {
			if e.TemplateType == "forest" && e.Op == OpWrite {
				return true
			}
		}
		return false
	})
}

func TestWatcher_DetectsRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "dungeon.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	events := collectEvents(t, dir)
	require.NoError(t, os.Remove(path))

	waitFor(t, func() bool {
		for _, e := range events() {
			if e.TemplateType == "dungeon" && e.Op == OpRemove {
				return true
			}
		}
		return false
	})
}

func TestWatcher_IgnoresNonJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	events := collectEvents(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, events())
}

func TestWatcher_StartupDoesNotFireForExistingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "forest.json"), []byte(`{}`), 0o644))

	events := collectEvents(t, dir)
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, events())
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	w := NewWatcher(t.TempDir())
	require.NoError(t, w.Start(context.Background()))
	assert.True(t, w.IsRunning())
	w.Stop()
	w.Stop()
	assert.False(t, w.IsRunning())
}
