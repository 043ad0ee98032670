package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/dmeter/dmeter-api/internal/config"
	"github.com/dmeter/dmeter-api/internal/environmental"
	"github.com/dmeter/dmeter-api/internal/satellite"
)

const testOrigin = "http://localhost:3000"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           8000,
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   5 * time.Second,
			RequestTimeout: 2 * time.Second,
			BodyLimit:      1024 * 1024,
		},
		CORS:    config.CORSConfig{AllowOrigin: testOrigin, AllowCredentials: true},
		Log:     config.LogConfig{Level: "error", Format: "json"},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

func defaultDeps() *Dependencies {
	return &Dependencies{
		Satellite:     satellite.NewService(satellite.NewMockAnalyzer()),
		Environmental: environmental.NewService(environmental.NewStaticProvider()),
	}
}

func newTestApp(t *testing.T, cfg *config.Config, deps *Dependencies) *fiber.App {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	if deps == nil {
		deps = defaultDeps()
	}
	app, err := NewApp(cfg, deps)
	require.NoError(t, err)
	return app
}

// do sends a request through app.Test and returns the response and its body.
func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoErrorf(t, json.Unmarshal(data, &v), "body: %s", data)
	return v
}

type stubAnalyzer struct {
	analyze func(ctx context.Context, req satellite.AnalysisRequest) (satellite.AnalysisResponse, error)
}

func (s stubAnalyzer) Name() string { return "stub" }

func (s stubAnalyzer) Analyze(ctx context.Context, req satellite.AnalysisRequest) (satellite.AnalysisResponse, error) {
	return s.analyze(ctx, req)
}

type stubProvider struct {
	fetch func(ctx context.Context, at environmental.Coordinates) (environmental.Reading, error)
}

func (s stubProvider) Name() string { return "stub" }

func (s stubProvider) Fetch(ctx context.Context, at environmental.Coordinates) (environmental.Reading, error) {
	return s.fetch(ctx, at)
}
