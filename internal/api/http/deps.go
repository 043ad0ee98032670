package httpapi

import (
	"github.com/dmeter/dmeter-api/internal/environmental"
	"github.com/dmeter/dmeter-api/internal/satellite"
)

// Dependencies holds the services used by HTTP handlers.
type Dependencies struct {
	Satellite     *satellite.Service
	Environmental *environmental.Service
}
