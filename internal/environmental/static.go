package environmental

import "context"

// sampleTimestamp is the fixed observation time of the sample dataset.
const sampleTimestamp = "2024-03-18T00:00:00Z"

// StaticProvider serves a fixed sample dataset. Only the location in the
// returned reading depends on the input.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (p *StaticProvider) Name() string {
	return "static"
}

func (p *StaticProvider) Fetch(ctx context.Context, at Coordinates) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}

	return Reading{
		Timestamp: sampleTimestamp,
		Location:  at,
		Metrics:   SampleMetrics(),
	}, nil
}

// SampleMetrics returns the sample metric set served by StaticProvider.
func SampleMetrics() Metrics {
	return Metrics{
		AQI:           45,
		PM25:          10.5,
		PM10:          20.3,
		O3:            35.2,
		NO2:           15.8,
		SO2:           5.2,
		CO:            0.8,
		Temperature:   22.5,
		Humidity:      65,
		Precipitation: 2.5,
		WindSpeed:     3.2,
		WindDirection: 180,
		Pressure:      1013.2,
		NDVI:          0.65,
		LST:           298.15,
		WaterBodies:   0.15,
		UrbanDensity:  0.45,
	}
}
