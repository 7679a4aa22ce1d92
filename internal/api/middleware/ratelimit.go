package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const limiterIdleEviction = 10 * time.Minute

// LoginRateLimiter throttles login attempts per client IP to slow credential
// stuffing against the weak legacy digests still in the store.
type LoginRateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*ipLimiter
}

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginRateLimiter allows ratePerMinute sustained attempts with the given
// burst per IP. Idle per-IP entries are evicted opportunistically.
func NewLoginRateLimiter(ratePerMinute float64, burst int) *LoginRateLimiter {
	return &LoginRateLimiter{
		limit:    rate.Limit(ratePerMinute / 60.0),
		burst:    burst,
		limiters: make(map[string]*ipLimiter),
	}
}

// Middleware rejects over-limit requests with 429 before the handler runs.
func (rl *LoginRateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
			}
			return next(c)
		}
	}
}

func (rl *LoginRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, entry := range rl.limiters {
		if now.Sub(entry.lastAccess) > limiterIdleEviction {
			delete(rl.limiters, key)
		}
	}

	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastAccess = now
	return entry.limiter.Allow()
}
