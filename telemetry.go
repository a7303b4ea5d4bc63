package amigo

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// TelemetryHooks expose observability callbacks without forcing dependencies on the caller.
type TelemetryHooks struct {
	// OnHTTPRequest fires before the HTTP request is sent.
	OnHTTPRequest func(ctx context.Context, req *http.Request)
	// OnHTTPResponse fires after the request completes (even when err != nil).
	OnHTTPResponse func(ctx context.Context, req *http.Request, resp *http.Response, err error, latency time.Duration)
	// OnStreamEvent fires for every conversation event read from an EventStream.
	OnStreamEvent func(ctx context.Context, event ConversationEvent)
	// OnLogEntry allows callers to capture SDK log events (info/errors).
	OnLogEntry func(ctx context.Context, entry LogEntry)
	// OnMetric records lightweight counters/gauges for observability dashboards.
	OnMetric func(ctx context.Context, metric Metric)
}

// LogLevel encodes the severity for log hooks.
type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelError LogLevel = "error"
)

// LogEntry captures structured log details for SDK consumers.
type LogEntry struct {
	Level   LogLevel
	Message string
	Fields  map[string]any
}

// Metric represents a single observability datapoint.
type Metric struct {
	Name   string
	Value  float64
	Labels map[string]string
}

func (t TelemetryHooks) log(ctx context.Context, level LogLevel, msg string, fields map[string]any) {
	if t.OnLogEntry == nil {
		return
	}
	entry := LogEntry{Level: level, Message: msg, Fields: fields}
	t.OnLogEntry(ctx, entry)
}

func (t TelemetryHooks) metric(ctx context.Context, name string, value float64, labels map[string]string) {
	if t.OnMetric == nil {
		return
	}
	t.OnMetric(ctx, Metric{Name: name, Value: value, Labels: labels})
}

// ZerologHooks adapts a zerolog.Logger into TelemetryHooks. Log entries map
// to the matching level, HTTP round trips log at debug with latency, and
// metrics log at trace.
func ZerologHooks(logger zerolog.Logger) TelemetryHooks {
	return TelemetryHooks{
		OnLogEntry: func(_ context.Context, entry LogEntry) {
			ev := logger.Info()
			if entry.Level == LogLevelError {
				ev = logger.Error()
			}
			ev.Fields(entry.Fields).Msg(entry.Message)
		},
		OnHTTPResponse: func(_ context.Context, req *http.Request, resp *http.Response, err error, latency time.Duration) {
			ev := logger.Debug().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Dur("latency", latency)
			if err != nil {
				ev = ev.Err(err)
			} else if resp != nil {
				ev = ev.Int("status", resp.StatusCode)
			}
			ev.Msg("http round trip")
		},
		OnMetric: func(_ context.Context, metric Metric) {
			logger.Trace().
				Str("metric", metric.Name).
				Float64("value", metric.Value).
				Msg("sdk metric")
		},
	}
}
