package search

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Gate throttles outbound provider calls. The dispatcher consults it before
// every call; swapping policies never touches dispatch control flow.
type Gate interface {
	Wait(ctx context.Context, provider string) error
}

// NoopGate applies no throttling.
type NoopGate struct{}

func (NoopGate) Wait(context.Context, string) error { return nil }

// TokenBucketGate keeps one token bucket per provider id. Buckets are
// created lazily; each provider's limiter is its own cell so concurrent
// calls to different providers never contend on the same state.
type TokenBucketGate struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	defaultPS float64
	burst     int
	overrides map[string]float64
}

// NewTokenBucketGate builds a gate allowing perSecond requests per provider,
// with per-provider overrides keyed by provider id.
func NewTokenBucketGate(perSecond float64, burst int, overrides map[string]float64) *TokenBucketGate {
	if burst < 1 {
		burst = 1
	}
	return &TokenBucketGate{
		limiters:  make(map[string]*rate.Limiter),
		defaultPS: perSecond,
		burst:     burst,
		overrides: overrides,
	}
}

func (g *TokenBucketGate) limiter(provider string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()

	if l, ok := g.limiters[provider]; ok {
		return l
	}
	perSecond := g.defaultPS
	if override, ok := g.overrides[provider]; ok {
		perSecond = override
	}
	l := rate.NewLimiter(rate.Limit(perSecond), g.burst)
	g.limiters[provider] = l
	return l
}

// Wait blocks until the provider's bucket grants a token or ctx is done.
func (g *TokenBucketGate) Wait(ctx context.Context, provider string) error {
	return g.limiter(provider).Wait(ctx)
}
