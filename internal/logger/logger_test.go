package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/wayacademy/manychat-bot-go/internal/ctxutil"
)

func parseLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\noutput: %s", err, buf.String())
	}
	return entry
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithModule("cache").WithField("dataset", "courses").Info("snapshot refreshed")

	entry := parseLine(t, &buf)
	if entry["message"] != "snapshot refreshed" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["module"] != "cache" {
		t.Errorf("module = %v", entry["module"])
	}
	if entry["dataset"] != "courses" {
		t.Errorf("dataset = %v", entry["dataset"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("missing timestamp key")
	}
}

func TestWarnLevelRename(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.Warn("stale snapshot served")

	entry := parseLine(t, &buf)
	if entry["level"] != "warning" {
		t.Errorf("level = %v, want warning", entry["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("error", &buf)

	log.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("info log should be filtered at error level, got: %s", buf.String())
	}

	log.Error("kept")
	if buf.Len() == 0 {
		t.Error("error log should pass at error level")
	}
}

func TestContextHandlerEnrichment(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	ctx := ctxutil.WithRequestID(context.Background(), "req-1")
	ctx = ctxutil.WithSubscriberID(ctx, "sub-9")

	log.InfoContext(ctx, "handled")

	entry := parseLine(t, &buf)
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", entry["request_id"])
	}
	if entry["subscriber_id"] != "sub-9" {
		t.Errorf("subscriber_id = %v, want sub-9", entry["subscriber_id"])
	}
}
