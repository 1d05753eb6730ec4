// Package requesttime pins one "now" per HTTP request so lead timestamps,
// routing times and debug reports agree within a request.
package requesttime

import (
	"net/http"
	"time"

	"standsdir/pkg/requestcontext"
)

// Middleware stores the request start time in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
