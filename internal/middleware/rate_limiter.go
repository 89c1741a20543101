package middleware

import (
	"net/http"
	"sync"
	"time"

	"santripay/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const purgeInterval = 5 * time.Minute

// ipWindow is one client's slot in the current window.
type ipWindow struct {
	count   int
	resetAt time.Time
}

// limiter is a fixed-window counter per client IP. Each limiter owns its map
// and a purge goroutine so idle IPs don't accumulate forever.
type limiter struct {
	mu     sync.Mutex
	seen   map[string]*ipWindow
	limit  int
	window time.Duration
	name   string
}

func newLimiter(name string, limit int, window time.Duration) *limiter {
	l := &limiter{
		seen:   make(map[string]*ipWindow),
		limit:  limit,
		window: window,
		name:   name,
	}
	go l.purge()
	return l
}

func (l *limiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.seen[ip]
	if !ok || now.After(w.resetAt) {
		w = &ipWindow{resetAt: now.Add(l.window)}
		l.seen[ip] = w
	}
	w.count++
	return w.count <= l.limit, w.resetAt
}

func (l *limiter) purge() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		dropped := 0
		for ip, w := range l.seen {
			if now.After(w.resetAt) {
				delete(l.seen, ip)
				dropped++
			}
		}
		remaining := len(l.seen)
		l.mu.Unlock()

		if dropped > 0 {
			log.Debug().
				Str("limiter", l.name).
				Int("dropped", dropped).
				Int("remaining", remaining).
				Msg("rate limiter purged idle clients")
		}
	}
}

var loginLimiter = newLimiter("login", 20, time.Minute)

// LoginRateLimiter caps login attempts at 20 per minute per IP. Credential
// stuffing gets throttled without locking out a shared pesantren NAT.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, _ := loginLimiter.allow(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Terlalu banyak percobaan login. Coba lagi dalam 1 menit."))
			return
		}
		c.Next()
	}
}

// RateLimiter returns the general per-IP limiter used on the whole /api tree.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newLimiter("api", limit, window)
	return func(c *gin.Context) {
		ok, resetAt := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", resetAt.UTC().Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Terlalu banyak permintaan. Coba lagi sebentar lagi."))
			return
		}
		c.Next()
	}
}
