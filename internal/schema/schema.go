// Package schema decodes and validates API input and turns it into domain
// values. Nothing here has side effects.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmeter/dmeter-api/internal/satellite"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so error locations match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Input shapes use pointers so that a missing field can be told apart from a
// zero value.

type locationInput struct {
	Lat  *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng  *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	Area *float64 `json:"area"`
}

type configInput struct {
	ModelType    *string                    `json:"modelType" validate:"required"`
	DataSource   *string                    `json:"dataSource" validate:"required"`
	TimeRange    map[string]json.RawMessage `json:"timeRange" validate:"required"`
	DeepLearning json.RawMessage            `json:"deepLearning"`
}

type analysisInput struct {
	Location *locationInput `json:"location" validate:"required"`
	Config   *configInput   `json:"config" validate:"required"`
}

// DecodeAnalysisRequest decodes and validates a satellite analysis request
// body. It returns a *ValidationError describing every problem found.
func DecodeAnalysisRequest(body []byte) (satellite.AnalysisRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return satellite.AnalysisRequest{}, newValidationError(FieldError{
			Loc:  []string{"body"},
			Msg:  "Field required",
			Type: TypeMissing,
		})
	}

	var in analysisInput
	var errs fieldErrors
	if err := json.Unmarshal(body, &in); err != nil {
		// A type error leaves the rest of the document decoded, so keep going
		// and report it alongside everything else.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return satellite.AnalysisRequest{}, newValidationError(FieldError{
				Loc:  []string{"body"},
				Msg:  "JSON decode error: " + err.Error(),
				Type: TypeJSONInvalid,
			})
		}
		errs.addTypeErrors(typeErrors(body, typeErr)...)
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return satellite.AnalysisRequest{}, err
		}
		errs.add(validatorErrors("body", verrs)...)
	}

	var (
		timeRange    map[string]time.Time
		deepLearning map[string]any
	)
	if in.Config != nil {
		var trErrs []FieldError
		timeRange, trErrs = parseTimeRange(in.Config.TimeRange)
		errs.add(trErrs...)

		var fe *FieldError
		deepLearning, fe = decodeObject(in.Config.DeepLearning)
		if fe != nil {
			fe.Loc = []string{"body", "config", "deepLearning"}
			errs.add(*fe)
		}
	}

	if len(errs.list) > 0 {
		return satellite.AnalysisRequest{}, newValidationError(errs.list...)
	}

	return satellite.AnalysisRequest{
		Location: satellite.Location{
			Lat:  *in.Location.Lat,
			Lng:  *in.Location.Lng,
			Area: in.Location.Area,
		},
		Config: satellite.AnalysisConfig{
			ModelType:    *in.Config.ModelType,
			DataSource:   *in.Config.DataSource,
			TimeRange:    timeRange,
			DeepLearning: deepLearning,
		},
	}, nil
}

// fieldErrors accumulates errors for one request. Once a value has a type
// error, nothing more is reported at or below its location.
type fieldErrors struct {
	list    []FieldError
	blocked [][]string
}

func (f *fieldErrors) addTypeErrors(errs ...FieldError) {
	for _, fe := range errs {
		if f.isBlocked(fe.Loc) {
			continue
		}
		f.list = append(f.list, fe)
		f.blocked = append(f.blocked, fe.Loc)
	}
}

func (f *fieldErrors) add(errs ...FieldError) {
	for _, fe := range errs {
		if !f.isBlocked(fe.Loc) {
			f.list = append(f.list, fe)
		}
	}
}

func (f *fieldErrors) isBlocked(loc []string) bool {
	for _, b := range f.blocked {
		if len(b) <= len(loc) && slices.Equal(b, loc[:len(b)]) {
			return true
		}
	}
	return false
}

func parseTimeRange(raw map[string]json.RawMessage) (map[string]time.Time, []FieldError) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]time.Time, len(raw))
	var errs []FieldError
	for _, k := range keys {
		ts, fe := parseTimestamp(raw[k])
		if fe != nil {
			fe.Loc = []string{"body", "config", "timeRange", k}
			errs = append(errs, *fe)
			continue
		}
		out[k] = ts
	}
	return out, errs
}

// decodeObject decodes a free-form JSON object. Numbers are kept as
// json.Number so they are echoed back digit for digit.
func decodeObject(raw json.RawMessage) (map[string]any, *FieldError) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		msg, typ := expectedType(reflect.TypeOf(out))
		return nil, &FieldError{Msg: msg, Type: typ}
	}
	return out, nil
}

// typeErrors lists every value in body whose JSON type does not fit the
// request shape. encoding/json only reports the first one, which is appended
// in case the walk does not catch it (an out of range number, say).
func typeErrors(body []byte, first *json.UnmarshalTypeError) []FieldError {
	var out []FieldError

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if dec.Decode(&doc) == nil {
		out = checkTypes(doc, reflect.TypeOf(analysisInput{}), []string{"body"})
	}

	loc := []string{"body"}
	if first.Field != "" {
		loc = append(loc, strings.Split(first.Field, ".")...)
	}
	msg, typ := expectedType(first.Type)
	return append(out, FieldError{Loc: loc, Msg: msg, Type: typ})
}

func checkTypes(v any, t reflect.Type, loc []string) []FieldError {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if v == nil {
		return nil
	}

	mismatch := func() []FieldError {
		msg, typ := expectedType(t)
		return []FieldError{{Loc: loc, Msg: msg, Type: typ}}
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch()
		}
		var out []FieldError
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if val, ok := obj[name]; ok {
				out = append(out, checkTypes(val, f.Type, append(slices.Clip(loc), name))...)
			}
		}
		return out
	case reflect.Map:
		if _, ok := v.(map[string]any); !ok {
			return mismatch()
		}
	case reflect.Float32, reflect.Float64:
		if _, ok := v.(json.Number); !ok {
			return mismatch()
		}
	case reflect.String:
		if _, ok := v.(string); !ok {
			return mismatch()
		}
	}
	return nil
}

func expectedType(t reflect.Type) (msg, typ string) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "Input has an invalid type", TypeValueError
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "Input should be a valid number", TypeFloatType
	case reflect.String:
		return "Input should be a valid string", TypeStringType
	case reflect.Map:
		return "Input should be a valid dictionary", TypeDictType
	case reflect.Struct:
		return "Input should be a valid dictionary or object to extract fields from", TypeModelType
	default:
		return "Input has an invalid type", TypeValueError
	}
}
