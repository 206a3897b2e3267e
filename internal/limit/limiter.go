// Package limit provides per-client request rate limiting.
package limit

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long an untouched client bucket is kept
const DefaultIdleTTL = 10 * time.Minute

type entry struct {
	limiter *rate.Limiter
	pinned  bool
}

// Limiter implements per-key token bucket rate limiting.
// Buckets for keys that go quiet for longer than the idle TTL are evicted.
type Limiter struct {
	buckets      *gocache.Cache
	mu           sync.Mutex
	idleTTL      time.Duration
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter
func NewLimiter(requestsPerSecond float64, burst int, idleTTL time.Duration) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}

	return &Limiter{
		buckets:      gocache.New(idleTTL, idleTTL/2),
		idleTTL:      idleTTL,
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Allow reports whether a request for key may proceed now
func (l *Limiter) Allow(key string) bool {
	return l.get(key).Allow()
}

// Wait blocks until a request for key may proceed or ctx is done
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.get(key).Wait(ctx)
}

// SetKeyRate sets a custom rate limit for a specific key.
// Keys with a custom rate never expire.
func (l *Limiter) SetKeyRate(key string, requestsPerSecond float64, burst int) {
	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.buckets.Set(key, &entry{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		pinned:  true,
	}, gocache.NoExpiration)
}

// Len returns the number of live buckets
func (l *Limiter) Len() int {
	return l.buckets.ItemCount()
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.buckets.Get(key); ok {
		e := v.(*entry)
		if !e.pinned {
			// touch
			l.buckets.Set(key, e, l.idleTTL)
		}
		return e.limiter
	}

	e := &entry{limiter: rate.NewLimiter(l.defaultRate, l.defaultBurst)}
	l.buckets.Set(key, e, l.idleTTL)
	return e.limiter
}
