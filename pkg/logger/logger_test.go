package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCriticalLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "json")

	log.Critical("store: unreadable", "path", "/tmp/goals.json")

	if !strings.Contains(buf.String(), `"level":"CRITICAL"`) {
		t.Fatalf("expected CRITICAL level, got %s", buf.String())
	}
}

func TestBusinessErrorSkipsNil(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "text")

	log.BusinessError("goals.deposit: invalid amount", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output for nil error, got %q", buf.String())
	}

	log.BusinessError("goals.deposit: invalid amount", errors.New("amount must be positive"), "goal_id", "g-1")
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "goal_id=g-1") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestParseFormatDefaults(t *testing.T) {
	if got := parseFormat("", "development"); got != "text" {
		t.Fatalf("expected text in development, got %s", got)
	}
	if got := parseFormat("", "production"); got != "json" {
		t.Fatalf("expected json in production, got %s", got)
	}
	if got := parseFormat(" TEXT ", "production"); got != "text" {
		t.Fatalf("expected explicit text, got %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":    slog.LevelDebug,
		"warning":  slog.LevelWarn,
		"error":    slog.LevelError,
		"fatal":    LevelCritical,
		"nonsense": slog.LevelInfo,
	}
	for value, want := range cases {
		if got := parseLevel(value, "production"); got != want {
			t.Fatalf("level %q: expected %v, got %v", value, want, got)
		}
	}
	if got := parseLevel("", "development"); got != slog.LevelDebug {
		t.Fatalf("expected debug in development, got %v", got)
	}
}
