package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"none", LevelNone},
		{"", LevelNone},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if err != nil {
			t.Errorf("ParseLevel(%q) returned error: %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("ParseLevel(loud) did not return error")
	}
}

func TestNoneSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New("none", "", &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	logger.Error("boom")
	if buf.Len() != 0 {
		t.Errorf("level none wrote %q", buf.String())
	}
}

func TestTraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New("trace", "", &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	logger.Log(context.Background(), LevelTrace, "tokens", slog.Int("count", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("record is not JSON: %q", buf.String())
	}
	if record["level"] != "TRACE" || record["msg"] != "tokens" || record["count"] != float64(3) {
		t.Errorf("unexpected record %v", record)
	}
}

func TestLogFileAndReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "rush.log")

	fw, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer fw.Close()

	logger := slog.New(slog.NewJSONHandler(fw, nil))
	logger.Info("before")

	rotated := filepath.Join(dir, "nested", "rush.bak")
	if err := os.Rename(path, rotated); err != nil {
		t.Fatal(err)
	}
	if err := fw.Reopen(); err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	logger.Info("after")

	old, _ := os.ReadFile(rotated)
	cur, _ := os.ReadFile(path)
	if !strings.Contains(string(old), `"before"`) || strings.Contains(string(old), `"after"`) {
		t.Errorf("rotated file = %q", old)
	}
	if !strings.Contains(string(cur), `"after"`) {
		t.Errorf("reopened file = %q", cur)
	}
}

func TestNewFallsBackWhenFileUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger, closer, err := New("info", filepath.Join(blocker, "rush.log"), &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	if !strings.Contains(buf.String(), "falling back to stderr") {
		t.Errorf("no fallback warning, got %q", buf.String())
	}
	logger.Info("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("record not written to fallback: %q", buf.String())
	}
}
