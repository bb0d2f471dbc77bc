package common

import (
	"time"

	"golang.org/x/time/rate"
)

// RateLimit describes a client-side request budget for providers that do not
// report rate limit headers.
type RateLimit struct {
	RequestsPerMinute int `yaml:"requests_per_minute,omitempty"`
	// Burst defaults to RequestsPerMinute.
	Burst int `yaml:"burst,omitempty"`
}

// Enabled reports whether the limit applies.
func (r RateLimit) Enabled() bool {
	return r.RequestsPerMinute > 0
}

// NewLimiter builds a token bucket for the limit, or nil when disabled.
// Callers share the result across every handle drawing on the same budget.
func (r RateLimit) NewLimiter() *rate.Limiter {
	if !r.Enabled() {
		return nil
	}
	burst := r.Burst
	if burst <= 0 {
		burst = r.RequestsPerMinute
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(r.RequestsPerMinute)), burst)
}
