package satellite

import (
	"context"
	"time"
)

// Analyzer runs an analysis over satellite imagery for a location.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResponse, error)
}

// MockAnalyzer returns a fixed sample analysis for every request, echoing the
// request's location and config.
type MockAnalyzer struct {
	now func() time.Time
}

func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to stamp results.
func (a *MockAnalyzer) WithClock(now func() time.Time) *MockAnalyzer {
	a.now = now
	return a
}

func (a *MockAnalyzer) Name() string {
	return "mock"
}

func (a *MockAnalyzer) Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResponse, error) {
	if err := ctx.Err(); err != nil {
		return AnalysisResponse{}, err
	}

	// Every map is built fresh so no two responses share state.
	return AnalysisResponse{
		Location: req.Location,
		Config:   req.Config,
		HealthDeterminants: map[string]HealthDeterminant{
			"temperature": {
				Mean:  ptr(25.5),
				Range: ptr("20-30°C"),
				Trend: ptr(0.2),
			},
			"precipitation": {
				Total: ptr(850.0),
				Range: ptr("600-1100mm"),
			},
			"vegetation": {
				Mean:  ptr(0.65),
				Range: ptr("0.4-0.8"),
				Trend: ptr(-0.1),
			},
		},
		EcosystemServices: map[string]map[string]float64{
			"provisioning": {
				"food":         0.75,
				"water":        0.85,
				"rawMaterials": 0.65,
			},
			"regulating": {
				"airQuality": 0.70,
				"climate":    0.65,
				"water":      0.80,
				"disease":    0.75,
			},
		},
		VulnerabilityAssessment: VulnerabilityAssessment{
			PopulationDensity:     0.65,
			EnvironmentalExposure: 0.45,
			HealthInfrastructure:  0.80,
			OverallVulnerability:  0.55,
		},
		Changes: map[string]Change{
			"vegetation": {Before: 0.70, After: 0.65, Difference: -0.05, Confidence: 0.85},
			"builtUp":    {Before: 0.25, After: 0.30, Difference: 0.05, Confidence: 0.90},
		},
		Timestamp: a.now(),
	}, nil
}

func ptr[T any](v T) *T {
	return &v
}
