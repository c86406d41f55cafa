package prometheus

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordParse(t *testing.T) {
	parseDuration.Reset()
	parsesTotal.Reset()

	RecordParse("xml", StatusSuccess, 0.5)
	RecordParse("xml", StatusSuccess, 1.0)
	RecordParse("json", StatusError, 0.2)

	successCount := testutil.ToFloat64(parsesTotal.WithLabelValues("xml", StatusSuccess))
	errorCount := testutil.ToFloat64(parsesTotal.WithLabelValues("json", StatusError))

	if successCount != 2 {
		t.Errorf("Expected 2 successful parses, got %f", successCount)
	}
	if errorCount != 1 {
		t.Errorf("Expected 1 failed parse, got %f", errorCount)
	}

	// Verify histogram observations using CollectAndCount
	count := testutil.CollectAndCount(parseDuration)
	if count == 0 {
		t.Error("Expected non-zero histogram observations")
	}
}

func TestRecordSerialize(t *testing.T) {
	serializeDuration.Reset()
	serializationsTotal.Reset()

	RecordSerialize("json", StatusSuccess, 0.05)
	RecordSerialize("json", StatusSuccess, 0.02)
	RecordSerialize("json", StatusError, 0.01)

	successCount := testutil.ToFloat64(serializationsTotal.WithLabelValues("json", StatusSuccess))
	errorCount := testutil.ToFloat64(serializationsTotal.WithLabelValues("json", StatusError))

	if successCount != 2 {
		t.Errorf("Expected 2 successful serializations, got %f", successCount)
	}
	if errorCount != 1 {
		t.Errorf("Expected 1 failed serialization, got %f", errorCount)
	}
}

func TestRecordValidation(t *testing.T) {
	validationDuration.Reset()
	validationsTotal.Reset()

	RecordValidation("result", "passed", 0.01)
	RecordValidation("result", "failed", 0.005)
	RecordValidation("result", "passed", 0.02)

	passedCount := testutil.ToFloat64(validationsTotal.WithLabelValues("result", "passed"))
	failedCount := testutil.ToFloat64(validationsTotal.WithLabelValues("result", "failed"))

	if passedCount != 2 {
		t.Errorf("Expected 2 passed validations, got %f", passedCount)
	}
	if failedCount != 1 {
		t.Errorf("Expected 1 failed validation, got %f", failedCount)
	}
}

func TestNewExporter(t *testing.T) {
	exporter := NewExporter(":9091")
	if exporter == nil {
		t.Fatal("Expected non-nil exporter")
	}
	if exporter.Registry() == nil {
		t.Error("Expected non-nil registry")
	}
}

func TestNewExporterWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	exporter := NewExporterWithRegistry(":9092", reg)

	if exporter.Registry() != reg {
		t.Error("Expected custom registry to be used")
	}
}

func TestExporterHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter",
		Help: "Test counter",
	})
	reg.MustRegister(counter)
	counter.Inc()

	exporter := NewExporterWithRegistry(":9093", reg)
	handler := exporter.Handler()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	resp := rec.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "test_counter") {
		t.Error("Expected response to contain test_counter metric")
	}
}

func TestExporterRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	exporter := NewExporterWithRegistry(":9094", reg)

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "custom_counter",
		Help: "Custom counter",
	})

	err := exporter.Register(counter)
	if err != nil {
		t.Errorf("Expected no error registering counter, got %v", err)
	}

	// Registering again should fail
	err = exporter.Register(counter)
	if err == nil {
		t.Error("Expected error when registering duplicate counter")
	}
}

func TestExporterMustRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	exporter := NewExporterWithRegistry(":9095", reg)

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "must_register_counter",
		Help: "Must register counter",
	})

	// Should not panic
	exporter.MustRegister(counter)
}

func TestExporterStartShutdown(t *testing.T) {
	exporter := NewExporterWithRegistry(":0", prometheus.NewRegistry())

	// Start in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- exporter.Start()
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	// Shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := exporter.Shutdown(ctx)
	if err != nil {
		t.Errorf("Expected no error on shutdown, got %v", err)
	}

	// Start should have returned with ErrServerClosed
	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			t.Errorf("Expected ErrServerClosed, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("Timeout waiting for server to stop")
	}
}

func TestExporterDoubleStart(t *testing.T) {
	exporter := NewExporterWithRegistry(":0", prometheus.NewRegistry())

	go func() {
		_ = exporter.Start()
	}()

	time.Sleep(100 * time.Millisecond)

	// Second start should return nil immediately
	err := exporter.Start()
	if err != nil {
		t.Errorf("Expected nil on double start, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = exporter.Shutdown(ctx)
}
