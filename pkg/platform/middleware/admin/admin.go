package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"recruit/pkg/requestcontext"
)

// HeaderAdminToken carries the operator token for /admin routes.
const HeaderAdminToken = "X-Admin-Token"

// RequireAdminToken rejects requests whose X-Admin-Token does not match.
// An empty expected token disables the routes entirely.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return RequireHeaderToken(HeaderAdminToken, expectedToken, logger)
}

// RequireHeaderToken compares a shared secret carried in header against
// expectedToken in constant time.
func RequireHeaderToken(header, expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(header)
			if expectedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "header token mismatch",
					"request_id", requestcontext.RequestID(ctx),
					"header", header,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"token required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
