package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const welcomeMessage = "Welcome to dMeter API"

// RootHandler returns the static welcome message. It has no dependencies and
// doubles as a liveness probe.
func RootHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": welcomeMessage})
	}
}

// HealthHandler reports service status and uptime.
func HealthHandler(service string) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": service,
			"uptime":  time.Since(startedAt).Round(time.Second).String(),
		})
	}
}
