package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlogAdapter(slog.New(handler)).With("report", "r-1")

	logger.Debug("debug message", "file", "a.xml")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	assert.Contains(t, out, "debug message")
	assert.Contains(t, out, "file=a.xml")
	assert.Contains(t, out, "report=r-1")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
}

func TestNewSlogAdapterNil(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	assert.NotNil(t, adapter.logger)
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	// Should not panic
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	assert.Equal(t, NopLogger{}, l.With("k", "v"))
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, NopLogger{}, OrNop(nil))
	adapter := NewSlogAdapter(nil)
	assert.Same(t, adapter, OrNop(adapter))
}

// TestRecorder tests that derived recorders share records and carry attrs.
func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	log := rec.With("reportId", "FLB-1")
	log.With("file", "FLB_Line_1.xml").Warn("object graph unavailable")
	rec.Debug("validated file")

	records := rec.Records()
	assert.Len(t, records, 2)
	assert.Equal(t, []any{"reportId", "FLB-1", "file", "FLB_Line_1.xml"}, records[0].Attrs)
	assert.Equal(t, []string{"object graph unavailable"}, rec.Messages(slog.LevelWarn))
	assert.Len(t, rec.Messages(slog.LevelDebug), 2)
}
