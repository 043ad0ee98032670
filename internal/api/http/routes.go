package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/dmeter/dmeter-api/internal/schema"
)

// RegisterRoutes wires the API handlers into router. Each handler runs under
// requestTimeout.
func RegisterRoutes(router fiber.Router, deps *Dependencies, requestTimeout time.Duration) {
	router.Post("/satellite/analyze", timeout.NewWithContext(AnalyzeHandler(deps), requestTimeout))
	router.Get("/environmental/:lat/:lng", timeout.NewWithContext(EnvironmentalHandler(deps), requestTimeout))
}

// AnalyzeHandler runs a satellite analysis for the posted request.
func AnalyzeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := schema.DecodeAnalysisRequest(c.Body())
		if err != nil {
			return err
		}

		resp, err := deps.Satellite.Analyze(c.UserContext(), req)
		if err != nil {
			return internalError(err)
		}

		return c.JSON(resp)
	}
}

// EnvironmentalHandler returns environmental data for the coordinates in
// the path.
func EnvironmentalHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		at, err := schema.ParseCoordinates(c.Params("lat"), c.Params("lng"))
		if err != nil {
			return err
		}

		reading, err := deps.Environmental.Get(c.UserContext(), at)
		if err != nil {
			return internalError(err)
		}

		return c.JSON(reading)
	}
}
