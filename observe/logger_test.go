package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func parseLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got none")
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("failed to parse log line %q: %v", line, err)
	}
	return entry
}

// TestLogger_JSONOutput verifies entries are serialized as JSON with core keys.
func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "probe succeeded", Field{Key: "status", Value: "running"})

	entry := parseLogLine(t, &buf)
	if entry["msg"] != "probe succeeded" {
		t.Errorf("msg = %v, want 'probe succeeded'", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["status"] != "running" {
		t.Errorf("status = %v, want running", entry["status"])
	}
	if entry["timestamp"] == nil {
		t.Error("expected timestamp field")
	}
}

// TestLogger_LevelFiltering verifies entries below the configured level are dropped.
func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	logger.Debug(context.Background(), "dropped")
	logger.Info(context.Background(), "dropped too")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn level, got %q", buf.String())
	}

	logger.Warn(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Error("expected warn entry to be written")
	}
}

// TestLogger_WithOp verifies operation context is attached to every entry.
func TestLogger_WithOp(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	opLogger := logger.WithOp(OpMeta{
		Operation: "definition",
		URI:       "file:///lib/foo.rb",
	})
	opLogger.Info(context.Background(), "call completed")

	entry := parseLogLine(t, &buf)
	if entry["op.name"] != "definition" {
		t.Errorf("op.name = %v, want definition", entry["op.name"])
	}
	if entry["op.uri"] != "file:///lib/foo.rb" {
		t.Errorf("op.uri = %v, want file:///lib/foo.rb", entry["op.uri"])
	}
}

// TestLogger_WithOpDoesNotMutateParent verifies the parent logger stays unscoped.
func TestLogger_WithOpDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	_ = logger.WithOp(OpMeta{Operation: "hover"})
	logger.Info(context.Background(), "unscoped")

	entry := parseLogLine(t, &buf)
	if _, ok := entry["op.name"]; ok {
		t.Error("parent logger should not carry op.name")
	}
}

// TestLogger_RedactsDocumentText verifies source text fields are redacted.
func TestLogger_RedactsDocumentText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "scanned document",
		Field{Key: "text", Value: "# typed: strict\nclass Foo; end"},
		Field{Key: "uri", Value: "file:///lib/foo.rb"},
	)

	entry := parseLogLine(t, &buf)
	if entry["text"] != "[REDACTED]" {
		t.Errorf("text = %v, want [REDACTED]", entry["text"])
	}
	if entry["uri"] != "file:///lib/foo.rb" {
		t.Errorf("uri = %v, want pass-through", entry["uri"])
	}
}

// TestParseLogLevel verifies string parsing with unknown default.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tc := range tests {
		if got := ParseLogLevel(tc.input); got != tc.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

// TestNopLogger verifies the no-op logger discards everything without panics.
func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Info(context.Background(), "ignored")
	logger.Error(context.Background(), "ignored", Field{Key: "k", Value: "v"})
	if scoped := logger.WithOp(OpMeta{Operation: "x"}); scoped == nil {
		t.Error("WithOp returned nil")
	}
}
