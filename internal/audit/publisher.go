package audit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"recruit/pkg/requestcontext"
)

// Publisher captures structured audit events. By default Emit writes
// synchronously; WithAsyncBuffer moves persistence to a background worker
// so a slow sink never delays a chat reply.
type Publisher struct {
	store  Store
	logger *slog.Logger

	bufferSize int
	events     chan Event
	done       chan struct{}
	closeOnce  sync.Once
	mu         sync.RWMutex
	closed     bool
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithAsyncBuffer enables asynchronous delivery with a buffer of size n.
// Events emitted while the buffer is full are dropped and logged.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.bufferSize = n
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.events = make(chan Event, p.bufferSize)
		p.done = make(chan struct{})
		worker := NewWorker(store, p.events, p.logger)
		go func() {
			defer close(p.done)
			_ = worker.Run(context.Background())
		}()
	}
	return p
}

// Emit stamps the event with an id, time and request id, then persists or
// enqueues it.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	if p.events == nil {
		return p.store.Append(ctx, event)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.WarnContext(ctx, "audit publisher closed, dropping event", "type", event.Type)
		return nil
	}
	select {
	case p.events <- event:
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"type", event.Type,
			"submission_id", event.SubmissionID,
		)
	}
	return nil
}

// Close stops accepting events and waits until buffered events are written.
func (p *Publisher) Close() {
	if p.events == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.events)
		p.mu.Unlock()
		<-p.done
	})
}
