package result

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedTimeExplicit(t *testing.T) {
	info := newStatusInfo()
	info.SetElapsed(1500 * time.Millisecond)

	assert.Equal(t, 1500*time.Millisecond, info.ElapsedTime())
	assert.True(t, info.HasElapsed())
}

func TestElapsedTimeFromStartAndEnd(t *testing.T) {
	info := newStatusInfo()
	start := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	info.StartTime = &start
	info.EndTime = &end

	assert.Equal(t, 2*time.Second, info.ElapsedTime())
	assert.True(t, info.HasElapsed())
}

func TestElapsedTimeExplicitWinsOverEndpoints(t *testing.T) {
	info := newStatusInfo()
	start := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Second)
	info.StartTime = &start
	info.EndTime = &end
	info.SetElapsed(time.Second)

	assert.Equal(t, time.Second, info.ElapsedTime())
}

func TestElapsedTimeUnset(t *testing.T) {
	info := newStatusInfo()

	assert.Equal(t, time.Duration(0), info.ElapsedTime())
	assert.False(t, info.HasElapsed())
}

func TestStatusPredicates(t *testing.T) {
	info := newStatusInfo()
	assert.Equal(t, StatusNotSet, info.Status)

	info.Status = StatusPass
	assert.True(t, info.Passed())
	assert.False(t, info.Failed())

	info.Status = StatusFail
	assert.True(t, info.Failed())

	info.Status = StatusSkip
	assert.True(t, info.Skipped())

	info.Status = StatusNotRun
	assert.True(t, info.NotRun())
}

func TestParseTimestamp(t *testing.T) {
	for _, value := range []string{
		"2023-01-01T12:00:00.123456",
		"2023-01-01 12:00:00.123456",
	} {
		parsed, err := ParseTimestamp(value)
		require.NoError(t, err, value)
		assert.Equal(t, 2023, parsed.Year())
		assert.Equal(t, 123456000, parsed.Nanosecond())
	}
}

func TestParseTimestampWithoutFraction(t *testing.T) {
	parsed, err := ParseTimestamp("2023-01-01T12:00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, parsed.Nanosecond())
}

func TestParseTimestampInvalid(t *testing.T) {
	_, err := ParseTimestamp("not a timestamp")
	assert.Error(t, err)
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2023, 1, 1, 12, 0, 0, 123000000, time.UTC)

	assert.Equal(t, "2023-01-01T12:00:00.123000", FormatTimestamp(ts))
}

func TestFormatTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2024, 6, 15, 8, 30, 45, 654321000, time.UTC)

	parsed, err := ParseTimestamp(FormatTimestamp(ts))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))
}

func TestConfigureStatusElapsedSeconds(t *testing.T) {
	test := NewTest("t", 0)
	require.NoError(t, test.Configure(map[string]any{
		"status":       "PASS",
		"elapsed_time": 1.5,
	}))

	assert.Equal(t, StatusPass, test.Status)
	assert.Equal(t, 1500*time.Millisecond, test.ElapsedTime())
}

func TestConfigureStatusTimestamps(t *testing.T) {
	test := NewTest("t", 0)
	require.NoError(t, test.Configure(map[string]any{
		"start_time": "2023-01-01T12:00:00.000000",
		"end_time":   "2023-01-01T12:00:01.500000",
	}))

	assert.Equal(t, 1500*time.Millisecond, test.ElapsedTime())
}

func TestConfigureStatusInvalidTimestamp(t *testing.T) {
	test := NewTest("t", 0)
	err := test.Configure(map[string]any{"start_time": "garbage"})

	assert.Error(t, err)
}
