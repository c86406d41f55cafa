// Package result implements the in-memory model of a completed hierarchical
// test run: suites, tests, keywords, control-flow blocks and log messages,
// each carrying status, timing and metadata. Every node fulfills the
// model.ModelObject contract so a tree, or any subtree, can be exported to a
// map or JSON document and reconstructed later without re-parsing the
// original report.
package result

import (
	"time"

	"github.com/aaltat/robotframework/model"
)

// StatusValue enumerates the execution statuses a node can carry.
type StatusValue string

const (
	StatusPass   StatusValue = "PASS"
	StatusFail   StatusValue = "FAIL"
	StatusSkip   StatusValue = "SKIP"
	StatusNotRun StatusValue = "NOT RUN"
	// StatusNotSet is the structural default before any status element has
	// been seen for a node.
	StatusNotSet StatusValue = "NOT SET"
)

// timeFormat is the canonical timestamp encoding used in serialized maps.
const timeFormat = "2006-01-02T15:04:05.000000"

// timeLayouts are accepted when reading timestamps back. The space-separated
// variant matches older writers.
var timeLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// StatusInfo carries the status and timing fields shared by every non-leaf
// node. Two timing encodings are reconciled at parse time: an explicit
// elapsed duration paired with a start timestamp, and a legacy start/end
// timestamp pair from which the elapsed value is derived.
type StatusInfo struct {
	Status    StatusValue
	StartTime *time.Time
	EndTime   *time.Time
	elapsed   *time.Duration
	Message   string
}

func newStatusInfo() StatusInfo {
	return StatusInfo{Status: StatusNotSet}
}

// StatusData exposes the embedded status fields through interfaces. Every
// node embedding StatusInfo promotes this method.
func (s *StatusInfo) StatusData() *StatusInfo {
	return s
}

// ElapsedTime returns the explicitly set elapsed duration, or the difference
// between end and start times when both are known, or zero.
func (s *StatusInfo) ElapsedTime() time.Duration {
	if s.elapsed != nil {
		return *s.elapsed
	}
	if s.StartTime != nil && s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return 0
}

// SetElapsed stores an explicit elapsed duration.
func (s *StatusInfo) SetElapsed(d time.Duration) {
	s.elapsed = &d
}

// HasElapsed reports whether an elapsed duration can be produced.
func (s *StatusInfo) HasElapsed() bool {
	return s.elapsed != nil || (s.StartTime != nil && s.EndTime != nil)
}

// Passed reports whether the status is PASS.
func (s *StatusInfo) Passed() bool { return s.Status == StatusPass }

// Failed reports whether the status is FAIL.
func (s *StatusInfo) Failed() bool { return s.Status == StatusFail }

// Skipped reports whether the status is SKIP.
func (s *StatusInfo) Skipped() bool { return s.Status == StatusSkip }

// NotRun reports whether the status is NOT RUN.
func (s *StatusInfo) NotRun() bool { return s.Status == StatusNotRun }

// statusToMap merges the status fields into a node's serialized map.
func (s *StatusInfo) statusToMap(out map[string]any) {
	out["status"] = string(s.Status)
	if s.StartTime != nil {
		out["start_time"] = s.StartTime.Format(timeFormat)
	}
	if s.HasElapsed() {
		out["elapsed_time"] = s.ElapsedTime().Seconds()
	}
	if s.Message != "" {
		out["message"] = s.Message
	}
}

// configureStatus applies one status attribute. It reports whether the key
// belonged to the status fields.
func (s *StatusInfo) configureStatus(obj any, name string, value any) (bool, error) {
	switch name {
	case "status":
		v, err := model.AsString(obj, name, value)
		if err != nil {
			return true, err
		}
		s.Status = StatusValue(v)
	case "start_time":
		t, err := timeAttr(obj, name, value)
		if err != nil {
			return true, err
		}
		s.StartTime = t
	case "end_time":
		t, err := timeAttr(obj, name, value)
		if err != nil {
			return true, err
		}
		s.EndTime = t
	case "elapsed_time":
		seconds, err := model.AsFloat(obj, name, value)
		if err != nil {
			return true, err
		}
		s.SetElapsed(time.Duration(seconds * float64(time.Second)))
	case "message":
		v, err := model.AsString(obj, name, value)
		if err != nil {
			return true, err
		}
		s.Message = v
	default:
		return false, nil
	}
	return true, nil
}

func (s *StatusInfo) deepCopy() StatusInfo {
	out := *s
	if s.StartTime != nil {
		t := *s.StartTime
		out.StartTime = &t
	}
	if s.EndTime != nil {
		t := *s.EndTime
		out.EndTime = &t
	}
	if s.elapsed != nil {
		d := *s.elapsed
		out.elapsed = &d
	}
	return out
}

// timeAttr coerces a configuration value into an optional timestamp.
func timeAttr(obj any, name string, value any) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case *time.Time:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		t, err := ParseTimestamp(v)
		if err != nil {
			return nil, model.NewDataError("'%s' object attribute '%s' is not a valid timestamp: %v", model.TypeName(obj), name, err)
		}
		return &t, nil
	}
	return nil, model.NewDataError("'%s' object attribute '%s' is 'timestamp', got '%T'", model.TypeName(obj), name, value)
}

// ParseTimestamp parses a timestamp in the canonical serialized encoding,
// accepting both 'T' and space separated date and time parts.
func ParseTimestamp(value string) (time.Time, error) {
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// FormatTimestamp renders a timestamp in the canonical serialized encoding.
func FormatTimestamp(t time.Time) string {
	return t.Format(timeFormat)
}
