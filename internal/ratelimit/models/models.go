package models

import "time"

// RateLimitResult is the outcome of one limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is in whole seconds and only set when Allowed is false.
	RetryAfter int
}

// RateLimitExceededResponse is the API response when rate limit is exceeded.
type RateLimitExceededResponse struct {
	Error      string `json:"error"` // "rate_limit_exceeded"
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"` // seconds
}

// ClientKey namespaces a rate-limit bucket for a client address.
func ClientKey(ip string) string {
	return "hkid:ip:" + ip
}
