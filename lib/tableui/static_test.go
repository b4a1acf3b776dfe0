// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/tabula/lib/datatable"
)

func TestPrintPlainPage(t *testing.T) {
	table := newTestTable(t, datatable.Config{}, datatable.Deps{}, 12)
	table.NextPage()

	var output bytes.Buffer
	if err := Print(&output, table, PrintOptions{Title: "Quotes", Width: 80, Color: ColorNever}); err != nil {
		t.Fatal(err)
	}
	text := output.String()
	if strings.Contains(text, "\x1b[") {
		t.Errorf("ColorNever output has escape sequences:\n%q", text)
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("printed %d lines, want title, header, 5 rows, caption:\n%s", len(lines), text)
	}
	if lines[0] != "Quotes" || !strings.Contains(lines[1], "Name") || !strings.Contains(lines[1], "Amount") {
		t.Errorf("title and header = %q, %q", lines[0], lines[1])
	}
	if !strings.Contains(lines[2], "Quote 06") || !strings.Contains(lines[2], "$600") {
		t.Errorf("first row = %q", lines[2])
	}
	if lines[7] != "Showing 6-10 of 12 · Page 2 of 3" {
		t.Errorf("caption = %q", lines[7])
	}
}

func TestPrintEmptyText(t *testing.T) {
	table := newTestTable(t, datatable.Config{}, datatable.Deps{}, 3)
	table.SetSearchTerm("nothing like this")

	var output bytes.Buffer
	if err := Print(&output, table, PrintOptions{Color: ColorNever, NoMatchesText: "Nothing matches"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output.String(), "  Nothing matches\n") {
		t.Errorf("output = %q", output.String())
	}
}

func TestPrintAlwaysColors(t *testing.T) {
	table := newTestTable(t, datatable.Config{}, datatable.Deps{}, 3)
	var output bytes.Buffer
	if err := Print(&output, table, PrintOptions{Color: ColorAlways}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output.String(), "\x1b[") {
		t.Error("ColorAlways output has no escape sequences")
	}
}

func TestParseColorMode(t *testing.T) {
	for name, want := range map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "never": ColorNever, "always": ColorAlways} {
		got, err := ParseColorMode(name)
		if err != nil || got != want {
			t.Errorf("ParseColorMode(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseColorMode("sometimes"); err == nil {
		t.Error("unknown mode accepted")
	}
}

func TestLogHandlerSummaryAndLevel(t *testing.T) {
	handler := NewLogHandler(slog.LevelWarn)
	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled at warn level")
	}

	derived := handler.WithAttrs([]slog.Attr{slog.String("page", "2")}).WithGroup("fetch").(*LogHandler)
	record := slog.NewRecord(epoch, slog.LevelWarn, "fetch failed", 0)
	record.AddAttrs(slog.Int("status", 503))
	if got := derived.summarize(record); got != "fetch failed (page=2, fetch.status=503)" {
		t.Errorf("summary = %q", got)
	}

	// No program yet: records are dropped without error.
	if err := derived.Handle(context.Background(), record); err != nil {
		t.Errorf("Handle without program: %v", err)
	}
}
