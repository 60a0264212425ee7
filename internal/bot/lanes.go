package bot

import (
	"context"
	"sync"

	"recruit/internal/messaging"
	id "recruit/pkg/domain"
)

type queued struct {
	ctx   context.Context
	event messaging.Event
}

// lanes runs events for the same chat one at a time, in arrival order.
// Each busy chat has one goroutine; it exits when the chat's queue drains.
type lanes struct {
	mu      sync.Mutex
	pending map[id.ChatID][]queued
	wg      sync.WaitGroup
	run     func(ctx context.Context, event messaging.Event)
}

func newLanes(run func(ctx context.Context, event messaging.Event)) *lanes {
	return &lanes{pending: make(map[id.ChatID][]queued), run: run}
}

func (l *lanes) submit(ctx context.Context, key id.ChatID, event messaging.Event) {
	l.mu.Lock()
	if q, busy := l.pending[key]; busy {
		l.pending[key] = append(q, queued{ctx: ctx, event: event})
		l.mu.Unlock()
		return
	}
	l.pending[key] = nil
	l.wg.Add(1)
	l.mu.Unlock()

	go l.drain(key, queued{ctx: ctx, event: event})
}

// spawn runs an event outside any lane.
func (l *lanes) spawn(ctx context.Context, event messaging.Event) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run(ctx, event)
	}()
}

func (l *lanes) drain(key id.ChatID, next queued) {
	defer l.wg.Done()
	for {
		l.run(next.ctx, next.event)

		l.mu.Lock()
		q := l.pending[key]
		if len(q) == 0 {
			delete(l.pending, key)
			l.mu.Unlock()
			return
		}
		next = q[0]
		l.pending[key] = q[1:]
		l.mu.Unlock()
	}
}

func (l *lanes) wait() {
	l.wg.Wait()
}
