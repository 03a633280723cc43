package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, paths []string, debounce time.Duration) *Watcher {
	t.Helper()
	w, err := New(paths, debounce, nil)
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx))

	// Give the directory registration a moment before the first write.
	time.Sleep(50 * time.Millisecond)
	return w
}

func TestWatcherEmitsChangedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "proof.fitch")
	require.NoError(t, os.WriteFile(target, []byte("goal A\n"), 0o644))

	w := startWatcher(t, []string{target}, 50*time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte("goal B\n"), 0o644))

	select {
	case batch := <-w.Changes():
		assert.Equal(t, []string{target}, batch)
	case <-time.After(3 * time.Second):
		t.Fatal("no change batch arrived")
	}
}

func TestWatcherIgnoresUntrackedFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "tracked.fitch")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(target, []byte("goal A\n"), 0o644))

	w := startWatcher(t, []string{target}, 30*time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("noise\n"), 0o644))

	select {
	case batch := <-w.Changes():
		t.Fatalf("unexpected batch %v", batch)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCoalescesWithinWindow(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fitch")
	b := filepath.Join(dir, "b.fitch")
	require.NoError(t, os.WriteFile(a, []byte("goal A\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("goal B\n"), 0o644))

	w := startWatcher(t, []string{a, b}, 200*time.Millisecond)
	require.NoError(t, os.WriteFile(b, []byte("goal B2\n"), 0o644))
	require.NoError(t, os.WriteFile(a, []byte("goal A2\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("goal B3\n"), 0o644))

	select {
	case batch := <-w.Changes():
		assert.Equal(t, []string{a, b}, batch)
	case <-time.After(3 * time.Second):
		t.Fatal("no change batch arrived")
	}

	select {
	case batch := <-w.Changes():
		t.Fatalf("second batch %v arrived for writes inside one window", batch)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherStopTwice(t *testing.T) {
	w, err := New(nil, time.Millisecond, nil)
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}

func TestDedupe(t *testing.T) {
	assert.Nil(t, dedupe(nil))
	assert.Equal(t, []string{"a", "b"}, dedupe([]string{"b", "a", "b", "a"}))

	in := []string{"c", "a"}
	dedupe(in)
	assert.Equal(t, []string{"c", "a"}, in, "input must not be reordered")
}
