package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"

	apperrors "github.com/partsearch/partsearch/errors"
	"github.com/partsearch/partsearch/resilience"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Rate is the sustained number of requests allowed per second per key.
	Rate float64 `yaml:"rate" mapstructure:"rate"`
	// Burst is the maximum burst size per key.
	Burst int `yaml:"burst" mapstructure:"burst"`
	// KeyFunc extracts the rate limit key from a request. Defaults to
	// client IP.
	KeyFunc func(*gin.Context) string `yaml:"-" mapstructure:"-"`
}

// RateLimit returns a Gin middleware applying per-key token-bucket rate
// limiting. Requests over the limit are rejected with 429 immediately
// rather than queued.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Rate <= 0 {
		cfg.Rate = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = int(cfg.Rate) * 2
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}

	limiters := &keyedLimiters{
		cfg:      cfg,
		limiters: make(map[string]*resilience.RateLimiter),
	}

	return func(c *gin.Context) {
		if !limiters.get(cfg.KeyFunc(c)).Allow() {
			c.AbortWithStatusJSON(429, apperrors.RateLimited().ToResponse())
			return
		}
		c.Next()
	}
}

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

// SubjectBasedKey extracts the authenticated subject from the context,
// falling back to client IP.
func SubjectBasedKey(c *gin.Context) string {
	if sub, exists := c.Get("subject"); exists {
		if s, ok := sub.(string); ok && s != "" {
			return s
		}
	}
	return c.ClientIP()
}

type keyedLimiters struct {
	cfg RateLimitConfig

	mu       sync.Mutex
	limiters map[string]*resilience.RateLimiter
}

func (k *keyedLimiters) get(key string) *resilience.RateLimiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	rl, ok := k.limiters[key]
	if !ok {
		rl = resilience.NewRateLimiter(resilience.RateLimiterConfig{
			Name:  key,
			Rate:  k.cfg.Rate,
			Burst: k.cfg.Burst,
		})
		k.limiters[key] = rl
	}
	return rl
}
