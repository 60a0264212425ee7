// Package requestcontext provides transport-independent context accessors for
// values scoped to one inbound event (a chat message, a button press, an HTTP
// request).
//
// Usage in services (read values):
//
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in the bot dispatcher (set values):
//
//	ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
//	ctx = requestcontext.WithActor(ctx, userID)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "recruit/pkg/domain"
)

type (
	actorKey       struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

var (
	ContextKeyActor       = actorKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// Actor retrieves the platform user that triggered the event.
// Returns zero if not set.
func Actor(ctx context.Context) id.UserID {
	if v, ok := ctx.Value(ContextKeyActor).(id.UserID); ok {
		return v
	}
	return 0
}

// WithActor injects the triggering user into the context.
func WithActor(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, ContextKeyActor, userID)
}

// RequestID retrieves the correlation id from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a correlation id into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the event-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
