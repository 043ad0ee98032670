package environmental

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmeter/dmeter-api/internal/metrics"
)

// Service serves environmental readings from a single provider.
type Service struct {
	provider Provider
	logger   *slog.Logger
}

// NewService creates a new Service.
func NewService(provider Provider) *Service {
	return &Service{
		provider: provider,
		logger:   slog.Default().With("component", "environmental"),
	}
}

// Get fetches the reading for the given coordinates. Provider failures are
// wrapped so callers can report them as-is.
func (s *Service) Get(ctx context.Context, at Coordinates) (Reading, error) {
	s.logger.DebugContext(ctx, "fetching environmental data",
		"provider", s.provider.Name(), "lat", at.Lat, "lng", at.Lng)

	reading, err := s.provider.Fetch(ctx, at)
	if err != nil {
		metrics.EnvironmentalLookups.WithLabelValues(s.provider.Name(), metrics.OutcomeError).Inc()
		s.logger.WarnContext(ctx, "provider fetch failed",
			"provider", s.provider.Name(), "lat", at.Lat, "lng", at.Lng, "error", err)
		return Reading{}, fmt.Errorf("error fetching environmental data: %w", err)
	}

	metrics.EnvironmentalLookups.WithLabelValues(s.provider.Name(), metrics.OutcomeOK).Inc()
	return reading, nil
}
