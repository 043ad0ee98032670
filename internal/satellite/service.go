package satellite

import (
	"context"
	"log/slog"

	"github.com/dmeter/dmeter-api/internal/metrics"
)

// Service runs satellite analyses through the configured Analyzer.
type Service struct {
	analyzer Analyzer
	logger   *slog.Logger
}

// NewService creates a new Service.
func NewService(analyzer Analyzer) *Service {
	return &Service{
		analyzer: analyzer,
		logger:   slog.Default().With("component", "satellite"),
	}
}

// Analyze runs the analysis. Analyzer errors are returned unchanged.
func (s *Service) Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResponse, error) {
	s.logger.DebugContext(ctx, "running satellite analysis",
		"analyzer", s.analyzer.Name(),
		"model_type", req.Config.ModelType,
		"data_source", req.Config.DataSource,
		"lat", req.Location.Lat,
		"lng", req.Location.Lng,
	)

	resp, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		metrics.SatelliteAnalyses.WithLabelValues(s.analyzer.Name(), metrics.OutcomeError).Inc()
		s.logger.WarnContext(ctx, "satellite analysis failed", "analyzer", s.analyzer.Name(), "error", err)
		return AnalysisResponse{}, err
	}

	metrics.SatelliteAnalyses.WithLabelValues(s.analyzer.Name(), metrics.OutcomeOK).Inc()
	return resp, nil
}
