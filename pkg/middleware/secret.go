package middleware

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/sysprompts/pkg/handlers"
)

// SecretKeyHeader carries the shared secret on API requests.
const SecretKeyHeader = "X-Secret-Key"

// ErrUnauthorized is returned to clients whose secret key is missing or wrong.
var ErrUnauthorized = errors.New("missing or invalid secret key")

// SecretKey returns middleware that rejects requests whose X-Secret-Key
// header does not match key. An empty key disables the check. CORS
// preflight requests pass through unauthenticated.
func SecretKey(key string, logger *slog.Logger) func(http.Handler) http.Handler {
	if key == "" {
		logger.Warn("secret key not configured, API authentication disabled")
		return func(next http.Handler) http.Handler { return next }
	}

	expected := []byte(key)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			got := []byte(r.Header.Get(SecretKeyHeader))
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
