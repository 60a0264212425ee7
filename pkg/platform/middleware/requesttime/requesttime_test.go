package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recruit/pkg/requestcontext"
)

func TestMiddleware(t *testing.T) {
	var gotID string
	var gotTime time.Time
	handler := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotID = requestcontext.RequestID(r.Context())
		gotTime = requestcontext.Now(r.Context())
	}))

	t.Run("generates a request id", func(t *testing.T) {
		before := time.Now()
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.NotEmpty(t, gotID)
		assert.Equal(t, gotID, rec.Header().Get(HeaderRequestID))
		assert.False(t, gotTime.Before(before))
	})

	t.Run("keeps the caller's request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(HeaderRequestID, "req-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, "req-123", gotID)
		assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))
	})
}
