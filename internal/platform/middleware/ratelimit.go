package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig tunes the per-client token bucket. Requests are keyed by
// authenticated user so a clinic behind one NAT address is not throttled as
// a single client; unauthenticated requests fall back to the client IP.
type RateLimitConfig struct {
	Rate  float64 // tokens refilled per second
	Burst float64 // bucket capacity
	// Clients idle this long are forgotten.
	IdleTimeout time.Duration
}

// DefaultRateLimitConfig allows short bursts of UI activity (dashboard plus
// list fetches) while capping sustained traffic per user.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{Rate: 25, Burst: 50, IdleTimeout: 10 * time.Minute}
}

type bucket struct {
	tokens float64
	seen   time.Time
}

type limiter struct {
	mu        sync.Mutex
	clients   map[string]*bucket
	cfg       RateLimitConfig
	lastPrune time.Time
	now       func() time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	return &limiter{
		clients:   make(map[string]*bucket),
		cfg:       cfg,
		lastPrune: time.Now(),
		now:       time.Now,
	}
}

// allow spends one token for key, reporting how many seconds to wait when
// the bucket is empty. Stale buckets are pruned opportunistically so the
// map does not grow with every IP that ever connected.
func (l *limiter) allow(key string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPrune) > l.cfg.IdleTimeout {
		for k, b := range l.clients {
			if now.Sub(b.seen) > l.cfg.IdleTimeout {
				delete(l.clients, k)
			}
		}
		l.lastPrune = now
	}

	b, ok := l.clients[key]
	if !ok {
		b = &bucket{tokens: l.cfg.Burst}
		l.clients[key] = b
	} else {
		b.tokens += now.Sub(b.seen).Seconds() * l.cfg.Rate
		if b.tokens > l.cfg.Burst {
			b.tokens = l.cfg.Burst
		}
	}
	b.seen = now

	if b.tokens < 1 {
		wait := 1
		if l.cfg.Rate > 0 {
			wait = int(math.Ceil((1 - b.tokens) / l.cfg.Rate))
			if wait < 1 {
				wait = 1
			}
		}
		return false, wait
	}
	b.tokens--
	return true, 0
}

// RateLimit rejects requests over the configured budget with 429.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	l := newLimiter(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if uid, ok := c.Get("user_id").(string); ok && uid != "" {
				key = uid
			}

			ok, retryAfter := l.allow(key)
			c.Response().Header().Set("X-RateLimit-Limit", strconv.FormatFloat(cfg.Rate, 'f', 0, 64))
			if !ok {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
