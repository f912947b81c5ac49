package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "africrea_backend/internals/helpers"
)

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: every endpoint
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(100, time.Minute, "too many requests, try again later")
}

// Rate limiter for the register route
func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, "too many registration attempts, wait a few minutes")
}

// Admission endpoints (reservation requests, event registrations)
func AdmissionRateLimiter() fiber.Handler {
	return newLimiter(20, time.Minute, "too many booking attempts, slow down")
}
