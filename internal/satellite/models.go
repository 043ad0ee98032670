package satellite

import "time"

// Location is the area of interest for an analysis.
// Area is optional and serializes as null when unset.
type Location struct {
	Lat  float64  `json:"lat"`
	Lng  float64  `json:"lng"`
	Area *float64 `json:"area"`
}

// AnalysisConfig selects the model and data used for an analysis.
type AnalysisConfig struct {
	ModelType    string               `json:"modelType"`
	DataSource   string               `json:"dataSource"`
	TimeRange    map[string]time.Time `json:"timeRange"`
	DeepLearning map[string]any       `json:"deepLearning"`
}

// AnalysisRequest is a validated satellite analysis request.
type AnalysisRequest struct {
	Location Location       `json:"location"`
	Config   AnalysisConfig `json:"config"`
}

// HealthDeterminant summarizes one health-relevant environmental factor.
// Unset statistics serialize as null.
type HealthDeterminant struct {
	Mean  *float64 `json:"mean"`
	Total *float64 `json:"total"`
	Range *string  `json:"range"`
	Trend *float64 `json:"trend"`
}

// VulnerabilityAssessment holds normalized (0-1) vulnerability scores.
type VulnerabilityAssessment struct {
	PopulationDensity     float64 `json:"populationDensity"`
	EnvironmentalExposure float64 `json:"environmentalExposure"`
	HealthInfrastructure  float64 `json:"healthInfrastructure"`
	OverallVulnerability  float64 `json:"overallVulnerability"`
}

// Change describes a land-cover change between the two ends of the time range.
type Change struct {
	Before     float64 `json:"before"`
	After      float64 `json:"after"`
	Difference float64 `json:"difference"`
	Confidence float64 `json:"confidence"`
}

// AnalysisResponse is the result of an analysis. Location and Config echo the
// request.
type AnalysisResponse struct {
	Location                Location                      `json:"location"`
	Config                  AnalysisConfig                `json:"config"`
	HealthDeterminants      map[string]HealthDeterminant  `json:"healthDeterminants"`
	EcosystemServices       map[string]map[string]float64 `json:"ecosystemServices"`
	VulnerabilityAssessment VulnerabilityAssessment       `json:"vulnerabilityAssessment"`
	Changes                 map[string]Change             `json:"changes"`
	Timestamp               time.Time                     `json:"timestamp"`
}
