package middleware

import (
	"github.com/ZuchiSpeed/jigitone/services/progress"

	"github.com/gofiber/fiber/v2"
)

const viewCacheKey = "viewCache"

// ViewCache attaches a fresh request-scoped memoization cache to every
// request. Query services read through it; mutations flush it.
func ViewCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(viewCacheKey, progress.NewRequestCache())
		return c.Next()
	}
}

// CacheFromCtx returns the request's view cache, or nil when the middleware
// is not installed (tests hitting a handler directly).
func CacheFromCtx(c *fiber.Ctx) *progress.RequestCache {
	if cache, ok := c.Locals(viewCacheKey).(*progress.RequestCache); ok {
		return cache
	}
	return nil
}
