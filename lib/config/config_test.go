// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tabula.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DefaultPageSize() != 10 {
		t.Errorf("expected page_size=10, got %d", cfg.DefaultPageSize())
	}
	if cfg.Highlight.QueryParam != "highlight" {
		t.Errorf("expected query_param=highlight, got %s", cfg.Highlight.QueryParam)
	}
	duration, err := cfg.HighlightDuration()
	if err != nil || duration != 3*time.Second {
		t.Errorf("expected 3s highlight duration, got %v (%v)", duration, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_RequiresTabulaConfig(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when TABULA_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "TABULA_CONFIG environment variable not set") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_WithTabulaConfig(t *testing.T) {
	path := writeConfig(t, `
table:
  page_size: 25
`)
	t.Setenv(EnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DefaultPageSize() != 25 {
		t.Errorf("expected page_size=25, got %d", cfg.DefaultPageSize())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
table:
  page_size: 50
  empty_text: Nothing here
display:
  locale: de-DE
  currency_symbol: "€"
  relative_dates: true
highlight:
  query_param: focus
  duration: 1500ms
logging:
  level: debug
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Table.PageSize != 50 || cfg.Table.EmptyText != "Nothing here" {
		t.Errorf("table = %+v", cfg.Table)
	}
	if cfg.Table.NoMatchesText == "" {
		t.Error("unset field lost its default")
	}
	if cfg.Display.DateLayout != "Jan 2, 2006" {
		t.Errorf("date_layout default lost: %q", cfg.Display.DateLayout)
	}
	tag, _ := cfg.LocaleTag()
	if tag != language.MustParse("de-DE") {
		t.Errorf("locale = %v", tag)
	}
	if duration, _ := cfg.HighlightDuration(); duration != 1500*time.Millisecond {
		t.Errorf("duration = %v", duration)
	}
	if level, _ := cfg.LogLevel(); level != slog.LevelDebug {
		t.Errorf("level = %v", level)
	}
	if !cfg.Display.RelativeDates || cfg.Display.CurrencySymbol != "€" {
		t.Errorf("display = %+v", cfg.Display)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeConfig(t, "table: [not, a, map")
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected parse error naming the file, got %v", err)
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("TABULA_DATA", "")
	path := writeConfig(t, `
data:
  file: ${HOME}/quotes.json.zst
  view: ${TABULA_DATA:-/srv/views}/quotes.jsonc
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Data.File != "/home/tester/quotes.json.zst" {
		t.Errorf("data.file = %q", cfg.Data.File)
	}
	if cfg.Data.View != "/srv/views/quotes.jsonc" {
		t.Errorf("data.view = %q", cfg.Data.View)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Table.PageSize = 0
	cfg.Display.Locale = "not a locale!"
	cfg.Highlight.Duration = "-1s"
	cfg.Highlight.QueryParam = ""
	cfg.Logging.Level = "chatty"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, fragment := range []string{"page_size", "display.locale", "highlight.duration", "query_param", "logging.level"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("validation error missing %q: %v", fragment, err)
		}
	}
}
