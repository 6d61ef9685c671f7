package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := NewWithFormat("info", "text", &buf)

	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")
	log.Info(ctx, "formatted message: %s %d", "test", 123)

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	for _, want := range []string{"info message", "warn message", "error message", "formatted message: test 123"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logFn       func(Logger)
		wantLogged  bool
	}{
		{"debug logs at debug level", "debug", func(l Logger) { l.Debug(context.Background(), "x") }, true},
		{"debug doesn't log at info level", "info", func(l Logger) { l.Debug(context.Background(), "x") }, false},
		{"warn doesn't log at error level", "error", func(l Logger) { l.Warn(context.Background(), "x") }, false},
		{"warning alias enables warn", "warning", func(l Logger) { l.Warn(context.Background(), "x") }, true},
		{"invalid config level defaults to info", "bogus", func(l Logger) { l.Info(context.Background(), "x") }, true},
		{"invalid config level hides debug", "bogus", func(l Logger) { l.Debug(context.Background(), "x") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFn(NewWithFormat(tt.configLevel, "text", &buf))
			if logged := buf.Len() > 0; logged != tt.wantLogged {
				t.Errorf("logged = %v, want %v (%q)", logged, tt.wantLogged, buf.String())
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithFormat("info", "json", &buf)
	log.Info(context.Background(), "described %s", "a.png")

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "described a.png" {
		t.Errorf("msg = %v, want %v", entry["msg"], "described a.png")
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want %v", entry["level"], "info")
	}
}
