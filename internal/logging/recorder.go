package logging

import (
	"log/slog"
	"slices"
	"sync"
)

// Record is one message captured by a Recorder.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   []any
}

// Recorder keeps every record in memory. It is safe for concurrent use and
// is meant for tests that assert on validator diagnostics.
type Recorder struct {
	mu      *sync.Mutex
	records *[]Record
	attrs   []any
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, records: &[]Record{}}
}

func (r *Recorder) add(level slog.Level, msg string, attrs []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.records = append(*r.records, Record{
		Level:   level,
		Message: msg,
		Attrs:   slices.Concat(r.attrs, attrs),
	})
}

// Debug implements Logger.
func (r *Recorder) Debug(msg string, attrs ...any) { r.add(slog.LevelDebug, msg, attrs) }

// Info implements Logger.
func (r *Recorder) Info(msg string, attrs ...any) { r.add(slog.LevelInfo, msg, attrs) }

// Warn implements Logger.
func (r *Recorder) Warn(msg string, attrs ...any) { r.add(slog.LevelWarn, msg, attrs) }

// Error implements Logger.
func (r *Recorder) Error(msg string, attrs ...any) { r.add(slog.LevelError, msg, attrs) }

// With implements Logger. The returned Recorder shares the record list.
func (r *Recorder) With(attrs ...any) Logger {
	return &Recorder{mu: r.mu, records: r.records, attrs: slices.Concat(r.attrs, attrs)}
}

// Records returns a copy of the captured records.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(*r.records)
}

// Messages returns the messages logged at level or above.
func (r *Recorder) Messages(level slog.Level) []string {
	var out []string
	for _, rec := range r.Records() {
		if rec.Level >= level {
			out = append(out, rec.Message)
		}
	}
	return out
}

var _ Logger = (*Recorder)(nil)
