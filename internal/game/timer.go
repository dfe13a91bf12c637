package game

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

// tickEvent is one second of play for the session that started the timer.
type tickEvent struct {
	tcell.EventTime
	sessionID uuid.UUID
}

func newTickEvent(id uuid.UUID) *tickEvent {
	ev := &tickEvent{sessionID: id}
	ev.SetEventNow()
	return ev
}

// Timer posts a tickEvent every interval until stopped. It runs at most
// one goroutine at a time.
type Timer struct {
	post     func(tcell.Event) error
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewTimer creates a stopped timer that delivers ticks through post.
func NewTimer(post func(tcell.Event) error, interval time.Duration) *Timer {
	return &Timer{post: post, interval: interval}
}

// Start begins ticking for the given session, replacing any running ticker.
func (t *Timer) Start(ctx context.Context, sessionID uuid.UUID) {
	t.Stop()

	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	go t.run(ctx, sessionID, t.done)
}

func (t *Timer) run(ctx context.Context, sessionID uuid.UUID, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A full event queue drops the tick.
			_ = t.post(newTickEvent(sessionID))
		}
	}
}

// Stop halts the ticker and waits for its goroutine to exit. Ticks already
// queued are not withdrawn.
func (t *Timer) Stop() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
	t.cancel = nil
	t.done = nil
}

// Running returns true between Start and Stop.
func (t *Timer) Running() bool {
	return t.cancel != nil
}
