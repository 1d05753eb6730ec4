package testutil

import (
	"net/http"
	"time"

	"standsdir/pkg/platform/middleware/admin"
	"standsdir/pkg/requestcontext"
)

// WithAdminToken sets the operator token header.
func WithAdminToken(req *http.Request, token string) *http.Request {
	req.Header.Set(admin.HeaderToken, token)
	return req
}

// WithRequestID injects a request ID the way the request middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithRequestTime pins the request-scoped clock for handler tests.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
