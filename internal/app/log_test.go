package app

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestTabHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	h := &tabHandler{w: &buf, opID: "Fetch-20260301T090000Z"}

	r := slog.NewRecord(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), slog.LevelInfo, "ingest started", 0)
	r.AddAttrs(slog.String("url", "https://example.com/archive.zip"))

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	got := buf.String()
	want := "2026-03-01T09:00:00Z\tINFO\tFetch-20260301T090000Z\tingest started\turl=https://example.com/archive.zip\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTabHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := &tabHandler{w: &buf, opID: "op"}
	h := base.WithAttrs([]slog.Attr{slog.String("id", "id-1")})

	r := slog.NewRecord(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), slog.LevelWarn, "retrying", 0)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	if !strings.Contains(buf.String(), "\tid=id-1") {
		t.Errorf("expected pre-set attr in output, got %q", buf.String())
	}
	// The base handler must be unaffected.
	if len(base.attrs) != 0 {
		t.Errorf("expected base handler attrs untouched, got %v", base.attrs)
	}
}

func TestNewLoggerCreatesLogFile(t *testing.T) {
	dir := t.TempDir()

	logger, f, err := newLogger(dir, "test-op")
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	defer f.Close()

	logger.Info("hello")

	if f.Name() != dir+"/remotefs.log" {
		t.Errorf("unexpected log file path: %q", f.Name())
	}
}
