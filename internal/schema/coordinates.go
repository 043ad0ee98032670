package schema

import (
	"math"
	"strconv"

	"github.com/dmeter/dmeter-api/internal/environmental"
)

type coordinatesInput struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// ParseCoordinates parses latitude and longitude path parameters. Both must
// be finite numbers within the valid range.
func ParseCoordinates(lat, lng string) (environmental.Coordinates, error) {
	var errs []FieldError

	latV, fe := parseFloatParam("lat", lat)
	if fe != nil {
		errs = append(errs, *fe)
	}
	lngV, fe := parseFloatParam("lng", lng)
	if fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return environmental.Coordinates{}, newValidationError(errs...)
	}

	in := coordinatesInput{Lat: latV, Lng: lngV}
	if err := validate.Struct(in); err != nil {
		return environmental.Coordinates{}, fromValidator("path", err)
	}

	return environmental.Coordinates{Lat: in.Lat, Lng: in.Lng}, nil
}

func parseFloatParam(name, raw string) (float64, *FieldError) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &FieldError{
			Loc:  []string{"path", name},
			Msg:  "Input should be a valid number, unable to parse string as a number",
			Type: TypeFloatParsing,
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FieldError{
			Loc:  []string{"path", name},
			Msg:  "Input should be a finite number",
			Type: TypeFiniteNumber,
		}
	}
	return v, nil
}
