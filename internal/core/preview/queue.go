package preview

import (
	"context"
)

// Queue serializes triggers from several producers onto one consumer. Events
// are dispatched in arrival order; Push blocks when the buffer is full rather
// than dropping.
type Queue struct {
	sync      *Synchronizer
	events    chan Event
	onHandled func(Event)
}

// NewQueue creates a queue feeding s with a buffer of size events.
func NewQueue(s *Synchronizer, size int) *Queue {
	return &Queue{
		sync:   s,
		events: make(chan Event, size),
	}
}

// OnHandled registers fn to run on the consumer after each event.
func (q *Queue) OnHandled(fn func(Event)) {
	q.onHandled = fn
}

// Push enqueues ev. It returns ctx.Err() if ctx is done first.
func (q *Queue) Push(ctx context.Context, ev Event) error {
	select {
	case q.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run dispatches events until ctx is done. Run must be called from exactly
// one goroutine.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-q.events:
			q.sync.Handle(ctx, ev)
			if q.onHandled != nil {
				q.onHandled(ev)
			}
		}
	}
}
