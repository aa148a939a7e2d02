package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"catu/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry tracks request counts per IP within a fixed window.
type rateEntry struct {
	count     int
	windowEnd time.Time
}

// RateLimiter counts requests per client IP. Expired entries are purged by Purge.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*rateEntry
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{limit: limit, window: window, entries: make(map[string]*rateEntry)}
}

// Handler rejects with 429 once an IP exceeds limit requests in the window.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		l.mu.Lock()
		entry, ok := l.entries[ip]
		if !ok || now.After(entry.windowEnd) {
			entry = &rateEntry{windowEnd: now.Add(l.window)}
			l.entries[ip] = entry
		}
		entry.count++
		exceeded := entry.count > l.limit
		windowEnd := entry.windowEnd
		l.mu.Unlock()

		if exceeded {
			c.Header("Retry-After", windowEnd.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// Purge drops expired entries every interval until ctx is done.
func (l *RateLimiter) Purge(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.mu.Lock()
			purged := 0
			for ip, entry := range l.entries {
				if now.After(entry.windowEnd) {
					delete(l.entries, ip)
					purged++
				}
			}
			remaining := len(l.entries)
			l.mu.Unlock()
			if purged > 0 {
				log.Debug().Int("purged", purged).Int("remaining", remaining).Msg("rate limiter entries purged")
			}
		}
	}
}
