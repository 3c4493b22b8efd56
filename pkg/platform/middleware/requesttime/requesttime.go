// Package requesttime provides middleware for request-scoped time.
// All operations within a single HTTP request (including every item of a
// batch) share the same "now" timestamp in audit events and responses.
package requesttime

import (
	"net/http"
	"time"

	"hkidcheck/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
