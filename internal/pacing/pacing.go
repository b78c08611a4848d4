// Package pacing spaces out calls to external services.
package pacing

import (
	"time"

	"golang.org/x/time/rate"
)

// NewLimiter allows one call per delaySeconds with no burst beyond a single
// call, so the first call goes out immediately. A non-positive delay disables
// pacing.
func NewLimiter(delaySeconds float64) *rate.Limiter {
	if delaySeconds <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	interval := time.Duration(delaySeconds * float64(time.Second))
	return rate.NewLimiter(rate.Every(interval), 1)
}
