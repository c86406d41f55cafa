package report

import (
	"strconv"
	"time"

	"github.com/aaltat/robotframework/model"
	"github.com/aaltat/robotframework/result"
)

// parseOptionalTimestamp parses a timestamp in the current report encoding.
// An empty value means the timestamp is absent.
func parseOptionalTimestamp(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := result.ParseTimestamp(value)
	if err != nil {
		return nil, model.NewDataError("invalid timestamp '%s'", value)
	}
	return &t, nil
}

// parseLegacyTimestamp parses the fixed-width timestamp encoding used by
// pre-7.0 reports, for example '20230101 12:00:00.001'. The value is sliced
// positionally after padding to the full width, so a missing millisecond
// part reads as zeros. 'N/A' and an empty value mean the timestamp is
// absent.
func parseLegacyTimestamp(value string) (*time.Time, error) {
	if value == "" || value == "N/A" {
		return nil, nil
	}
	padded := value
	for len(padded) < 24 {
		padded += "0"
	}
	year, err1 := strconv.Atoi(padded[0:4])
	month, err2 := strconv.Atoi(padded[4:6])
	day, err3 := strconv.Atoi(padded[6:8])
	hour, err4 := strconv.Atoi(padded[9:11])
	minute, err5 := strconv.Atoi(padded[12:14])
	second, err6 := strconv.Atoi(padded[15:17])
	micros, err7 := strconv.Atoi(padded[18:24])
	for _, err := range []error{err1, err2, err3, err4, err5, err6, err7} {
		if err != nil {
			return nil, model.NewDataError("invalid timestamp '%s'", value)
		}
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, micros*1000, time.UTC)
	return &t, nil
}

// parseGenerationTime parses the document generation timestamp, accepting
// both the current and the legacy encoding.
func parseGenerationTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := result.ParseTimestamp(value); err == nil {
		return &t, nil
	}
	return parseLegacyTimestamp(value)
}

// messageTimestamp reads a message timestamp from the 'time' attribute, or
// from the legacy 'timestamp' attribute when the current one is absent.
func messageTimestamp(attrs attributes) (*time.Time, error) {
	if raw, ok := attrs["time"]; ok {
		return parseOptionalTimestamp(raw)
	}
	return parseLegacyTimestamp(attrs["timestamp"])
}

// secondsToDuration converts a fractional second count into a duration with
// microsecond precision, matching the precision of serialized timestamps.
func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds*1e6) * time.Microsecond
}
