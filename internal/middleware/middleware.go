package middleware

import (
	"runtime/debug"

	"pdf-chunk-queue/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// ConnectionLimiter limits the number of concurrent requests
type ConnectionLimiter struct {
	waitlist chan struct{}
}

func NewConnectionLimiter(limit int) *ConnectionLimiter {
	return &ConnectionLimiter{
		waitlist: make(chan struct{}, limit),
	}
}

func (cl *ConnectionLimiter) Acquire() bool {
	select {
	case cl.waitlist <- struct{}{}:
		return true
	default:
		return false
	}
}

func (cl *ConnectionLimiter) Release() {
	select {
	case <-cl.waitlist:
	default:
	}
}

// Register installs recovery, request ids and, when maxConnections > 0,
// the connection limiter.
func Register(app *fiber.App, maxConnections int) {
	app.Use(panicRecoveryMiddleware())
	app.Use(requestIDMiddleware())
	if maxConnections > 0 {
		app.Use(connectionLimiterMiddleware(NewConnectionLimiter(maxConnections)))
	}
}

// connectionLimiterMiddleware rejects requests beyond the limiter capacity
func connectionLimiterMiddleware(limiter *ConnectionLimiter) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !limiter.Acquire() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Server is at maximum capacity")
		}
		defer limiter.Release()
		return c.Next()
	}
}

// requestIDMiddleware makes sure every request carries X-Request-ID and
// echoes it back on the response.
func requestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			c.Request().Header.Set(requestIDHeader, id)
		}
		c.Set(requestIDHeader, id)
		return c.Next()
	}
}

// panicRecoveryMiddleware creates a middleware for panic recovery
func panicRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(map[string]interface{}{
					"panic":      r,
					"method":     c.Method(),
					"path":       c.Path(),
					"ip":         c.IP(),
					"user_agent": c.Get("User-Agent"),
					"stack":      string(debug.Stack()),
				}).Errorf("Panic recovered")

				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Internal Server Error",
					"message": "An unexpected error occurred",
				})
			}
		}()
		return c.Next()
	}
}
