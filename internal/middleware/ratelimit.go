package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rsvp/internal/models"
	"golang.org/x/time/rate"
)

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// rateLimiter keeps one token bucket per client ip.
type rateLimiter struct {
	limiters    sync.Map // map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	mu          sync.Mutex
	lastCleanup time.Time
}

func (rl *rateLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	actual, _ := rl.limiters.LoadOrStore(key, limiter)
	rl.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters whose bucket has refilled, at most every five
// minutes.
func (rl *rateLimiter) maybeCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastCleanup) < 5*time.Minute {
		return
	}
	rl.lastCleanup = time.Now()

	rl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit throttles public submissions per client ip. A non-positive rate
// disables it.
func RateLimit(config RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if config.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 1
	}

	rl := &rateLimiter{
		rate:        rate.Limit(float64(config.RequestsPerMinute) / time.Minute.Seconds()),
		burst:       burst,
		lastCleanup: time.Now(),
	}

	return func(c *gin.Context) {
		key := c.ClientIP()
		limiter := rl.getLimiter(key)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			delay := reservation.Delay()
			reservation.Cancel()
			retryAfter := max(int(delay.Seconds()), 1)

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerMinute))

			requestID, _ := c.Get(RequestIDKey)
			logger.Warn("rate limit exceeded",
				"request_id", requestID,
				"key", key,
				"endpoint", c.Request.URL.Path,
				"retry_after", retryAfter,
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse("too many requests, please try again later"))
			return
		}
		c.Next()
	}
}
