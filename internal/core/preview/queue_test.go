package preview

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_DispatchesInOrderWithoutDropping(t *testing.T) {
	f := newFixture(t)
	q := NewQueue(f.sync, 1)

	const n = 50

	var (
		mu      sync.Mutex
		handled []string
		done    = make(chan struct{})
	)
	q.OnHandled(func(ev Event) {
		latest, _ := f.box.Latest()

		mu.Lock()
		defer mu.Unlock()
		if tc, ok := ev.(TextChanged); ok {
			assert.Equal(t, tc.Text, latest.Source)
			handled = append(handled, tc.Text)
		}
		if len(handled) == n {
			close(done)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() { _ = q.Run(ctx) }()

	for i := range n {
		require.NoError(t, q.Push(ctx, TextChanged{Text: fmt.Sprintf("edit %d", i)}))
	}

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("timeout waiting for events")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, handled, n)
	for i, text := range handled {
		assert.Equal(t, fmt.Sprintf("edit %d", i), text)
	}
	assert.Equal(t, n, f.box.Loads())
}

func TestQueue_PushHonoursContext(t *testing.T) {
	f := newFixture(t)
	q := NewQueue(f.sync, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := q.Push(ctx, AppearanceChanged{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueue_RunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	q := NewQueue(f.sync, 4)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- q.Run(ctx) }()

	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}
