package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// TokenJar gates polling to one admission per refill interval. The jar holds
// at most burstLimit tokens and starts full, so the first wait returns
// immediately.
type TokenJar struct {
	limiter        *rate.Limiter
	refillInterval time.Duration
}

func NewTokenJar(refillInterval time.Duration, burstLimit int) *TokenJar {
	if burstLimit < 1 {
		burstLimit = 1
	}
	return &TokenJar{
		limiter:        rate.NewLimiter(rate.Every(refillInterval), burstLimit),
		refillInterval: refillInterval,
	}
}

// WaitForToken blocks until a token is available. It returns a non-nil error
// only if ctx is cancelled (or its deadline would pass) first.
func (tj *TokenJar) WaitForToken(ctx context.Context) error {
	return tj.limiter.Wait(ctx)
}

func (tj *TokenJar) GetStats() (tokens float64, maxTokens int, refillInterval time.Duration) {
	return tj.limiter.Tokens(), tj.limiter.Burst(), tj.refillInterval
}
