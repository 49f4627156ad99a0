package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/dto"
)

type rateWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window counter, per process. Counters reset on
// restart and are not shared between replicas; the limit is per-instance.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	limit   int
	period  time.Duration
	now     func() time.Time
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow consumes one unit from the key's window, opening a fresh window
// when the previous one has lapsed.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.windows[key]
	if !ok || now.After(w.resetAt) {
		r.windows[key] = &rateWindow{count: 1, resetAt: now.Add(r.period)}
		return true
	}
	if w.count >= r.limit {
		return false
	}
	w.count++
	return true
}

// Middleware keys the limiter on the authenticated principal and falls
// back to the client IP for anonymous callers.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := clientKey(c)
		if !r.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Envelope{
				Success: false,
				Message: "Too many requests",
			})
			return
		}
		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	if principal := Principal(c); principal != nil {
		return "user:" + principal.ID
	}
	return "ip:" + clientIP(c)
}

func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
