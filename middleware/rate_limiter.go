// middleware/rate_limiter.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

// RateLimiter applies per-IP request limits, with stricter buckets on
// the credential endpoints to slow brute forcing.
type RateLimiter struct {
	mu             sync.Mutex
	visitors       map[string]*rate.Limiter
	lastSeen       map[string]time.Time
	defaultLimit   rate.Limit
	defaultBurst   int
	endpointLimits map[string]endpointLimit
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		visitors:     make(map[string]*rate.Limiter),
		lastSeen:     make(map[string]time.Time),
		defaultLimit: rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst: 20,
		endpointLimits: map[string]endpointLimit{
			"/login":    {limit: rate.Every(2 * time.Second), burst: 5},
			"/register": {limit: rate.Every(2 * time.Second), burst: 5},
		},
	}
}

// RateLimit returns the Echo middleware enforcing the limits. Only
// POSTs to the credential endpoints use the strict buckets; page GETs
// share the default one.
func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			path := c.Request().URL.Path
			if c.Request().Method == http.MethodPost {
				if _, strict := rl.endpointLimits[path]; strict {
					key = key + " " + path
				}
			}

			if !rl.limiterFor(key, path, c.Request().Method).Allow() {
				return c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
			}
			return next(c)
		}
	}
}

func (rl *RateLimiter) limiterFor(key, path, method string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.visitors[key]; ok {
		rl.lastSeen[key] = time.Now()
		return limiter
	}

	limit, burst := rl.defaultLimit, rl.defaultBurst
	if method == http.MethodPost {
		if el, ok := rl.endpointLimits[path]; ok {
			limit, burst = el.limit, el.burst
		}
	}

	limiter := rate.NewLimiter(limit, burst)
	rl.visitors[key] = limiter
	rl.lastSeen[key] = time.Now()

	// Evict visitors idle for an hour so the maps stay bounded.
	if len(rl.visitors) > 1000 {
		cutoff := time.Now().Add(-time.Hour)
		for k, seen := range rl.lastSeen {
			if seen.Before(cutoff) {
				delete(rl.visitors, k)
				delete(rl.lastSeen, k)
			}
		}
	}

	return limiter
}
