// Package requesttime provides middleware for request-scoped time and
// correlation ids. All operations within a single HTTP request (including a
// webhook-delivered chat update) share one "now" and one request id.
package requesttime

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"recruit/pkg/requestcontext"
)

// HeaderRequestID is echoed back so operators can correlate logs.
const HeaderRequestID = "X-Request-ID"

// Middleware captures the current time and a request id at the start of the
// request and stores both in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		ctx = requestcontext.WithRequestID(ctx, requestID)
		w.Header().Set(HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
