package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shade/internal/services"
)

func TestConsoleHandlerLine(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger = WithComponent(logger, "registry")
	logger.Info("derivative recorded", String("size", "thumbnail"), Int("width", 150))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "INFO registry: derivative recorded") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "size=thumbnail") || !strings.Contains(line, "width=150") {
		t.Fatalf("missing attrs: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	logger.Warn("skip variant", String("reason", "pixel area over ceiling"))
	if !strings.Contains(buf.String(), `reason="pixel area over ceiling"`) {
		t.Fatalf("expected quoted value: %q", buf.String())
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	logger.WithGroup("asset").Info("ingested", String("id", "abc"))
	if !strings.Contains(buf.String(), "asset.id=abc") {
		t.Fatalf("expected group-qualified key: %q", buf.String())
	}
}

func TestConsoleHandlerContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(contextHandler{inner: newConsoleHandler(&buf, new(slog.LevelVar))})

	ctx := services.WithAssetID(context.Background(), "abc-123")
	ctx = services.WithEvent(ctx, "ingest")
	logger.InfoContext(ctx, "derivative recorded")

	line := buf.String()
	if !strings.Contains(line, "asset_id=abc-123") {
		t.Fatalf("missing asset_id from context: %q", line)
	}
	if !strings.Contains(line, "event=ingest") {
		t.Fatalf("missing event from context: %q", line)
	}
}

func TestJSONHandlerContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(contextHandler{inner: newJSONHandler(&buf, new(slog.LevelVar))})

	ctx := services.WithAssetID(context.Background(), "abc-123")
	logger.InfoContext(ctx, "fetched")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if record["asset_id"] != "abc-123" {
		t.Fatalf("expected asset_id in record, got %v", record)
	}
}

func TestNewEnrichesFromContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Options{Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithEvent(context.Background(), "delete")
	logger.InfoContext(ctx, "asset deleted")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "event=delete") {
		t.Fatalf("expected event field in output: %q", data)
	}
}

func TestContextFieldsEmptyWithoutValues(t *testing.T) {
	if fields := ContextFields(context.Background()); len(fields) != 0 {
		t.Fatalf("expected no fields, got %v", fields)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newJSONHandler(&buf, new(slog.LevelVar)))
	logger.Info("hello", String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if record["msg"] != "hello" || record["k"] != "v" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
