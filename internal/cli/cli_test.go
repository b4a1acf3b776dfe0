// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestToolErrorWithHint(t *testing.T) {
	err := Validation("unknown sort key %q", "price").
		WithHint("Sortable keys: amount, dealer.")

	want := "unknown sort key \"price\"\n\nSortable keys: amount, dealer."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Category != CategoryValidation {
		t.Errorf("Category = %q", err.Category)
	}
}

func TestToolErrorWithoutHint(t *testing.T) {
	if got := NotFound("no such file").Error(); got != "no such file" {
		t.Errorf("Error() = %q", got)
	}
}

func TestToolErrorUnwraps(t *testing.T) {
	inner := Internal("reading rows: %w", os.ErrNotExist)
	wrapped := fmt.Errorf("startup: %w", inner)

	if !errors.Is(wrapped, os.ErrNotExist) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	var toolErr *ToolError
	if !errors.As(wrapped, &toolErr) || toolErr.Category != CategoryInternal {
		t.Errorf("errors.As found %+v", toolErr)
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		output string
	}{
		{"nil", nil, 0, ""},
		{"validation", Validation("bad flag"), 2, "error: bad flag\n"},
		{"not found", fmt.Errorf("load: %w", NotFound("missing")), 3, "error: load: missing\n"},
		{"internal", Internal("boom"), 1, "error: boom\n"},
		{"plain", errors.New("plain"), 1, "error: plain\n"},
		{"silent exit", &ExitError{Code: 4}, 4, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			if code := Report(&output, test.err); code != test.code {
				t.Errorf("Report code = %d, want %d", code, test.code)
			}
			if output.String() != test.output {
				t.Errorf("Report output = %q, want %q", output.String(), test.output)
			}
		})
	}
}

func TestNewLoggerNonTerminalWritesJSON(t *testing.T) {
	var output bytes.Buffer
	logger := NewLogger(&output, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("rows loaded", "count", 3)

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("logged %d lines, want 1: %q", len(lines), output.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "rows loaded" || entry["count"] != float64(3) {
		t.Errorf("entry = %v", entry)
	}
}

func TestFanoutHandler(t *testing.T) {
	var warnings, everything bytes.Buffer
	handler := FanoutHandler{
		slog.NewTextHandler(&warnings, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&everything, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	logger := slog.New(handler).With("component", "test")
	logger.Debug("detail")
	logger.Warn("problem")

	if strings.Contains(warnings.String(), "detail") || !strings.Contains(warnings.String(), "problem") {
		t.Errorf("warn handler got %q", warnings.String())
	}
	if !strings.Contains(everything.String(), "detail") || !strings.Contains(everything.String(), "component=test") {
		t.Errorf("debug handler got %q", everything.String())
	}
}

func TestOpenFileLogHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabula.log")
	handler, closeFile, err := OpenFileLogHandler(path)
	if err != nil {
		t.Fatalf("OpenFileLogHandler: %v", err)
	}
	slog.New(handler).Debug("recorded", "page", 2)
	closeFile()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Contains(data, []byte(`"msg":"recorded"`)) {
		t.Fatalf("log file = %q", data)
	}
}
