package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aaltat/robotframework/logger"
	"github.com/aaltat/robotframework/metrics/prometheus"
	"github.com/aaltat/robotframework/result"
)

// Read reconstructs a result tree from a serialized execution report read
// from r.
func Read(r io.Reader) (*result.Result, error) {
	parseID := uuid.NewString()
	started := time.Now()
	logger.Debug("parsing execution report", "parse_id", parseID)

	res, err := parse(r)
	elapsed := time.Since(started).Seconds()
	if err != nil {
		prometheus.RecordParse("xml", prometheus.StatusError, elapsed)
		logger.Debug("parsing execution report failed",
			"parse_id", parseID, "error", err)
		return nil, err
	}
	prometheus.RecordParse("xml", prometheus.StatusSuccess, elapsed)
	logger.Debug("parsed execution report",
		"parse_id", parseID,
		"suite", res.Suite.Name,
		"tests", res.Suite.TestCount(),
		"duration_seconds", elapsed)
	return res, nil
}

// ReadFile reconstructs a result tree from a report file. Files with a
// '.json' or '.rbt' extension are read as JSON reports, everything else as
// XML.
func ReadFile(path string) (*result.Result, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".json" || ext == ".rbt" {
		return readJSONFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()
	res, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read report '%s': %w", path, err)
	}
	return res, nil
}

// ReadString reconstructs a result tree from report content held in memory.
// Content whose first non-space byte is '{' is read as a JSON report.
func ReadString(content string) (*result.Result, error) {
	if strings.HasPrefix(strings.TrimLeft(content, " \t\r\n"), "{") {
		return readJSON(content)
	}
	return Read(strings.NewReader(content))
}

func readJSONFile(path string) (*result.Result, error) {
	started := time.Now()
	res, err := result.ResultFromJSONFile(path)
	elapsed := time.Since(started).Seconds()
	if err != nil {
		prometheus.RecordParse("json", prometheus.StatusError, elapsed)
		return nil, err
	}
	prometheus.RecordParse("json", prometheus.StatusSuccess, elapsed)
	return res, nil
}

func readJSON(content string) (*result.Result, error) {
	started := time.Now()
	res, err := result.ResultFromJSON(content)
	elapsed := time.Since(started).Seconds()
	if err != nil {
		prometheus.RecordParse("json", prometheus.StatusError, elapsed)
		return nil, err
	}
	prometheus.RecordParse("json", prometheus.StatusSuccess, elapsed)
	return res, nil
}

func parse(r io.Reader) (*result.Result, error) {
	res := result.NewResult()
	builder := newTreeBuilder(newRootHandler(), res)
	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse report: %w", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			attrs := make(attributes, len(t.Attr))
			for _, attr := range t.Attr {
				attrs[attr.Name.Local] = attr.Value
			}
			if err := builder.open(t.Name.Local, attrs); err != nil {
				return nil, err
			}
		case xml.CharData:
			builder.text(string(t))
		case xml.EndElement:
			if err := builder.close(); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}
