package environmental

// Coordinates is a point on the globe in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Metrics are the environmental readings reported for a location.
// Field order matches the order they are serialized in.
type Metrics struct {
	AQI           int     `json:"aqi"`
	PM25          float64 `json:"pm25"`
	PM10          float64 `json:"pm10"`
	O3            float64 `json:"o3"`
	NO2           float64 `json:"no2"`
	SO2           float64 `json:"so2"`
	CO            float64 `json:"co"`
	Temperature   float64 `json:"temperature"`
	Humidity      int     `json:"humidity"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection int     `json:"windDirection"`
	Pressure      float64 `json:"pressure"`
	NDVI          float64 `json:"ndvi"`
	LST           float64 `json:"lst"` // land-surface temperature, kelvin
	WaterBodies   float64 `json:"waterBodies"`
	UrbanDensity  float64 `json:"urbanDensity"`
}

// Reading is the environmental view of a single location.
type Reading struct {
	Timestamp string      `json:"timestamp"`
	Location  Coordinates `json:"location"`
	Metrics   Metrics     `json:"metrics"`
}
