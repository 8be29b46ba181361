package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/config"
	"github.com/spec-kit/directory-service/internal/persistence"
)

// LoginRateLimiter bounds login attempts per client IP in a fixed window,
// backed by Redis INCR/EXPIRE. When Redis is unreachable the limiter
// degrades open: availability of login wins over throttling.
func LoginRateLimiter(rdb *persistence.Redis, cfg config.RateLimitConfig, logger *zap.Logger) fiber.Handler {
	window := time.Duration(cfg.WindowSeconds) * time.Second

	return func(c *fiber.Ctx) error {
		if !cfg.Enabled || rdb == nil || rdb.Client == nil {
			return c.Next()
		}

		key := "login_attempts:" + c.IP()
		count, err := rdb.Client.Incr(c.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := rdb.Client.Expire(c.Context(), key, window).Err(); err != nil {
				logger.Warn("rate limiter expire failed", zap.Error(err))
			}
		}
		if count > int64(cfg.MaxAttempts) {
			return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many login attempts, try again later",
			})
		}
		return c.Next()
	}
}
