package fswatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Watch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	w, err := New(zerolog.Nop())
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := w.Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))

	select {
	case event := <-events:
		assert.Equal(t, path, event.Path)
		assert.False(t, event.Timestamp.IsZero())
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	w, err := New(zerolog.Nop())
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := w.Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644))

	select {
	case event := <-events:
		t.Fatalf("unexpected event for %s", event.Path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "preferences.ini")

	w, err := New(zerolog.Nop())
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := w.Watch(ctx, path)
	require.NoError(t, err)

	for range 5 {
		require.NoError(t, os.WriteFile(path, []byte("theme=force-dark\n"), 0o644))
	}

	select {
	case <-events:
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}

	select {
	case <-events:
		t.Fatal("burst was not debounced")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_CloseClosesChannels(t *testing.T) {
	t.Parallel()

	w, err := New(zerolog.Nop())
	require.NoError(t, err)

	events, err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "doc.md"))
	require.NoError(t, err)

	require.NoError(t, w.Close())

	_, ok := <-events
	assert.False(t, ok)
}

func TestWatcher_UnsubscribeOnCancel(t *testing.T) {
	t.Parallel()

	w, err := New(zerolog.Nop())
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	events, err := w.Watch(ctx, filepath.Join(t.TempDir(), "doc.md"))
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
