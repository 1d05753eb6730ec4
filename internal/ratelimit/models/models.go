// Package models holds the rate limiting vocabulary shared by the stores and
// the HTTP middleware.
package models

import "time"

// EndpointClass groups routes that share one limit.
type EndpointClass string

const (
	// ClassLeadSubmit covers public lead intake.
	ClassLeadSubmit EndpointClass = "lead_submit"
	// ClassRead covers public directory listings.
	ClassRead EndpointClass = "read"
)

// Limit is a sliding window budget: Requests per Window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// RateLimitExceededResponse is the 429 body.
type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// Key builds the bucket key for a client address within an endpoint class.
func Key(class EndpointClass, ip string) string {
	return "ip:" + string(class) + ":" + ip
}
