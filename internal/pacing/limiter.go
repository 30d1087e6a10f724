// Package pacing spaces out requests to honour the crawl-delay or
// request-rate a robots.txt group asks for.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

// Limiter releases one request per interval. A zero interval never blocks.
type Limiter struct {
	interval time.Duration
	limiter  *rate.Limiter
}

// New creates a limiter releasing one request every interval. The first
// request is released immediately.
func New(interval time.Duration) *Limiter {
	if interval <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// ForOutcome creates a limiter from the crawl-delay of the selected group,
// else its request-rate, else fallback.
func ForOutcome(outcome *domain.MatchOutcome, fallback time.Duration) *Limiter {
	if outcome != nil {
		if interval := outcome.MinInterval(); interval > 0 {
			return New(interval)
		}
	}
	return New(fallback)
}

// Wait blocks until the next request may be made or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request may be made now, consuming the slot if so.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Interval returns the spacing between requests.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}
