package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"
)

var errInvalidTime = errors.New("use RFC3339, YYYY-MM-DD or unix seconds")

// Accepted textual layouts, tried in order. Layouts without a zone are read
// as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp reads a JSON timestamp: a string in one of timeLayouts, or
// unix seconds given as a number or numeric string.
func parseTimestamp(raw json.RawMessage) (time.Time, *FieldError) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, &FieldError{Msg: "Input should be a valid datetime", Type: TypeDatetimeType}
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, &FieldError{Msg: "Input should be a valid datetime", Type: TypeDatetimeType}
		}
		ts, err := parseTime(s)
		if err != nil {
			return time.Time{}, &FieldError{Msg: "Input should be a valid datetime, " + err.Error(), Type: TypeDatetimeParsing}
		}
		return ts, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return time.Time{}, &FieldError{Msg: "Input should be a valid datetime", Type: TypeDatetimeType}
	}
	secs, err := n.Float64()
	if err != nil {
		return time.Time{}, &FieldError{Msg: "Input should be a valid datetime", Type: TypeDatetimeType}
	}
	ts, ok := fromUnix(secs)
	if !ok {
		return time.Time{}, &FieldError{Msg: "Input should be a valid datetime, value out of range", Type: TypeDatetimeParsing}
	}
	return ts, nil
}

// parseTime tries the known layouts, then unix seconds.
func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if ts, ok := fromUnix(secs); ok {
			return ts, nil
		}
	}
	return time.Time{}, errInvalidTime
}

func fromUnix(secs float64) (time.Time, bool) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) || math.Abs(secs) > math.MaxInt64/2 {
		return time.Time{}, false
	}
	whole, frac := math.Modf(secs)
	ts := time.Unix(int64(whole), int64(frac*1e9)).UTC()
	// Beyond four-digit years the value can no longer be written back as RFC 3339.
	if ts.Year() < 1 || ts.Year() > 9999 {
		return time.Time{}, false
	}
	return ts, true
}
