package httpapi

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmeter/dmeter-api/internal/environmental"
	"github.com/dmeter/dmeter-api/internal/satellite"
	"github.com/dmeter/dmeter-api/internal/schema"
)

const analyzeBody = `{
	"location": {"lat": 40.4168, "lng": -3.7038, "area": 12.5},
	"config": {
		"modelType": "cnn",
		"dataSource": "sentinel-2",
		"timeRange": {"start": "2024-01-01T00:00:00Z", "end": "2024-06-30T00:00:00Z"},
		"deepLearning": {"epochs": 10, "layers": [64, 32]}
	}
}`

func TestRoot(t *testing.T) {
	app := newTestApp(t, nil, nil)

	resp, body := do(t, app, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message": "Welcome to dMeter API"}`, string(body))
}

func TestAnalyze_EchoesLocationAndConfig(t *testing.T) {
	app := newTestApp(t, nil, nil)

	resp, body := do(t, app, http.MethodPost, "/api/satellite/analyze", analyzeBody)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	got := decode[map[string]any](t, body)
	want := decode[map[string]any](t, []byte(analyzeBody))

	assert.Equal(t, want["location"], got["location"])
	assert.Equal(t, want["config"], got["config"])

	for _, key := range []string{"healthDeterminants", "ecosystemServices", "vulnerabilityAssessment", "changes", "timestamp"} {
		assert.Contains(t, got, key)
	}

	ts, err := time.Parse(time.RFC3339Nano, got["timestamp"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestAnalyze_MissingLocationIs422(t *testing.T) {
	app := newTestApp(t, nil, nil)

	body := `{"config": {"modelType": "cnn", "dataSource": "landsat", "timeRange": {}}}`
	resp, data := do(t, app, http.MethodPost, "/api/satellite/analyze", body)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	got := decode[ValidationErrorResponse](t, data)
	require.Len(t, got.Detail, 1)
	assert.Equal(t, []string{"body", "location"}, got.Detail[0].Loc)
	assert.Equal(t, schema.TypeMissing, got.Detail[0].Type)
}

func TestAnalyze_EchoesLargeIntegersExactly(t *testing.T) {
	app := newTestApp(t, nil, nil)

	body := `{"location": {"lat": 1, "lng": 2}, "config": {"modelType": "m", "dataSource": "d", "timeRange": {}, "deepLearning": {"seed": 9007199254740993}}}`
	resp, data := do(t, app, http.MethodPost, "/api/satellite/analyze", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	assert.Contains(t, string(data), `"deepLearning":{"seed":9007199254740993}`)
}

func TestAnalyze_NaiveTimestampEchoedAsUTC(t *testing.T) {
	app := newTestApp(t, nil, nil)

	body := `{"location": {"lat": 1, "lng": 2}, "config": {"modelType": "m", "dataSource": "d", "timeRange": {"start": "2024-03-18T10:30:00"}}}`
	resp, data := do(t, app, http.MethodPost, "/api/satellite/analyze", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	assert.Contains(t, string(data), `"timeRange":{"start":"2024-03-18T10:30:00Z"}`)
}

func TestAnalyze_ListsEveryInvalidField(t *testing.T) {
	app := newTestApp(t, nil, nil)

	resp, data := do(t, app, http.MethodPost, "/api/satellite/analyze", `{"location": {"lat": "x", "lng": 0}}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	got := decode[ValidationErrorResponse](t, data)
	require.Len(t, got.Detail, 2)
	assert.Equal(t, []string{"body", "location", "lat"}, got.Detail[0].Loc)
	assert.Equal(t, schema.TypeFloatType, got.Detail[0].Type)
	assert.Equal(t, []string{"body", "config"}, got.Detail[1].Loc)
	assert.Equal(t, schema.TypeMissing, got.Detail[1].Type)
}

func TestAnalyze_BadInputIs422(t *testing.T) {
	tests := map[string]string{
		"malformed json":    `{"location":`,
		"empty body":        ``,
		"latitude range":    `{"location": {"lat": 123, "lng": 0}, "config": {"modelType": "m", "dataSource": "d", "timeRange": {}}}`,
		"wrong type":        `{"location": {"lat": "x", "lng": 0}, "config": {"modelType": "m", "dataSource": "d", "timeRange": {}}}`,
		"bad timestamp":     `{"location": {"lat": 1, "lng": 0}, "config": {"modelType": "m", "dataSource": "d", "timeRange": {"start": "soon"}}}`,
		"config not object": `{"location": {"lat": 1, "lng": 0}, "config": "cnn"}`,
	}

	app := newTestApp(t, nil, nil)
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			resp, data := do(t, app, http.MethodPost, "/api/satellite/analyze", body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(data))

			got := decode[ValidationErrorResponse](t, data)
			assert.NotEmpty(t, got.Detail)
		})
	}
}

func TestAnalyze_ValidationRunsBeforeAnalyzer(t *testing.T) {
	called := false
	deps := defaultDeps()
	deps.Satellite = satellite.NewService(stubAnalyzer{
		analyze: func(context.Context, satellite.AnalysisRequest) (satellite.AnalysisResponse, error) {
			called = true
			return satellite.AnalysisResponse{}, nil
		},
	})
	app := newTestApp(t, nil, deps)

	resp, _ := do(t, app, http.MethodPost, "/api/satellite/analyze", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, called)
}

func TestAnalyze_AnalyzerErrorIs500(t *testing.T) {
	deps := defaultDeps()
	deps.Satellite = satellite.NewService(stubAnalyzer{
		analyze: func(context.Context, satellite.AnalysisRequest) (satellite.AnalysisResponse, error) {
			return satellite.AnalysisResponse{}, errors.New("model weights unavailable")
		},
	})
	app := newTestApp(t, nil, deps)

	resp, body := do(t, app, http.MethodPost, "/api/satellite/analyze", analyzeBody)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"detail": "model weights unavailable"}`, string(body))
}

func TestAnalyze_PanicIs500(t *testing.T) {
	deps := defaultDeps()
	deps.Satellite = satellite.NewService(stubAnalyzer{
		analyze: func(context.Context, satellite.AnalysisRequest) (satellite.AnalysisResponse, error) {
			panic("tile index corrupted")
		},
	})
	app := newTestApp(t, nil, deps)

	resp, body := do(t, app, http.MethodPost, "/api/satellite/analyze", analyzeBody)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"detail": "tile index corrupted"}`, string(body))

	// The app keeps serving after a failed request.
	resp, _ = do(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEnvironmental_ReturnsSampleForCoordinates(t *testing.T) {
	app := newTestApp(t, nil, nil)

	for _, tc := range []struct {
		path     string
		lat, lng float64
	}{
		{"/api/environmental/12.5/-45.25", 12.5, -45.25},
		{"/api/environmental/0/0", 0, 0},
		{"/api/environmental/-90/180", -90, 180},
	} {
		resp, body := do(t, app, http.MethodGet, tc.path, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		got := decode[environmental.Reading](t, body)
		assert.Equal(t, environmental.Coordinates{Lat: tc.lat, Lng: tc.lng}, got.Location)
		assert.Equal(t, "2024-03-18T00:00:00Z", got.Timestamp)
		assert.Equal(t, environmental.SampleMetrics(), got.Metrics)
	}
}

func TestEnvironmental_NonNumericIs422(t *testing.T) {
	app := newTestApp(t, nil, nil)

	resp, body := do(t, app, http.MethodGet, "/api/environmental/abc/xyz", "")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	got := decode[ValidationErrorResponse](t, body)
	require.Len(t, got.Detail, 2)
	assert.Equal(t, []string{"path", "lat"}, got.Detail[0].Loc)
	assert.Equal(t, []string{"path", "lng"}, got.Detail[1].Loc)
}

func TestEnvironmental_OutOfRangeIs422(t *testing.T) {
	app := newTestApp(t, nil, nil)

	resp, _ := do(t, app, http.MethodGet, "/api/environmental/95/10", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestEnvironmental_ProviderErrorIs500(t *testing.T) {
	deps := defaultDeps()
	deps.Environmental = environmental.NewService(stubProvider{
		fetch: func(context.Context, environmental.Coordinates) (environmental.Reading, error) {
			return environmental.Reading{}, errors.New("sensor network offline")
		},
	})
	app := newTestApp(t, nil, deps)

	resp, body := do(t, app, http.MethodGet, "/api/environmental/1/2", "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"detail": "error fetching environmental data: sensor network offline"}`, string(body))
}

func TestEnvironmental_RequestTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RequestTimeout = 50 * time.Millisecond

	deps := defaultDeps()
	deps.Environmental = environmental.NewService(stubProvider{
		fetch: func(ctx context.Context, _ environmental.Coordinates) (environmental.Reading, error) {
			<-ctx.Done()
			return environmental.Reading{}, ctx.Err()
		},
	})
	app := newTestApp(t, cfg, deps)

	resp, _ := do(t, app, http.MethodGet, "/api/environmental/1/2", "")
	assert.Equal(t, http.StatusRequestTimeout, resp.StatusCode)
}

func TestUnknownRouteIs404(t *testing.T) {
	app := newTestApp(t, nil, nil)

	resp, body := do(t, app, http.MethodGet, "/api/unknown", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	got := decode[APIError](t, body)
	assert.NotEmpty(t, got.Detail)
}
