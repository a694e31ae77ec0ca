package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles credential endpoints per client IP. Limiters of
// idle clients expire from the cache.
type LoginRateLimiter struct {
	mu             sync.Mutex
	limiters       *expirable.LRU[string, *rate.Limiter]
	limit          rate.Limit
	burst          int
	trustedProxies []string
}

// NewLoginRateLimiter allows perMinute attempts per IP, with a burst of the same size
func NewLoginRateLimiter(perMinute int, trustedProxies []string) *LoginRateLimiter {
	if perMinute <= 0 {
		perMinute = DefaultLoginPerMinute
	}
	return &LoginRateLimiter{
		limiters:       expirable.NewLRU[string, *rate.Limiter](LoginLimiterCacheSize, nil, LoginLimiterIdleTTL),
		limit:          rate.Every(time.Minute / time.Duration(perMinute)),
		burst:          perMinute,
		trustedProxies: trustedProxies,
	}
}

func (l *LoginRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.limiters.Get(ip); ok {
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.limiters.Add(ip, lim)
	return lim
}

// Allow reports whether ip may make another attempt now
func (l *LoginRateLimiter) Allow(ip string) bool {
	return l.limiter(ip).Allow()
}

// Middleware rejects requests over the limit with 429
func (l *LoginRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r, l.trustedProxies)
		if !l.Allow(ip) {
			slog.Warn(SecurityAlertLoginRate, "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
