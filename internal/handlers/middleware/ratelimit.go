package middleware

import (
	"agency/internal/logger"
	"agency/internal/metrics"
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const MAX_TRACKED_CLIENTS = 10000

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	log      logger.Logger
}

// NewRateLimiter returns a limiter allowing requestsPerSecond per client. A non-positive
// rate disables limiting.
func NewRateLimiter(requestsPerSecond, burst int) *RateLimiter {
	if burst < requestsPerSecond {
		burst = requestsPerSecond
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		log:      logger.New("middleware").File("ratelimit"),
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		if len(rl.limiters) >= MAX_TRACKED_CLIENTS {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}

	return limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	if rl.rate <= 0 {
		return true
	}
	return rl.getLimiter(key).Allow()
}

func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()
		if rl.Allow(key) {
			return c.Next()
		}

		metrics.HttpRateLimitRejectionsTotal.Inc()
		rl.log.Function("Handler").Warn("Rate limit exceeded", "ip", key, "path", c.Path())
		return c.Status(fiber.StatusTooManyRequests).
			JSON(fiber.Map{"message": "error", "error": "rate limit exceeded"})
	}
}
