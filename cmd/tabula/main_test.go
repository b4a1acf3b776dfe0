// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/tabula/internal/cli"
	"github.com/bureau-foundation/tabula/lib/config"
	"github.com/bureau-foundation/tabula/lib/record"
	"github.com/bureau-foundation/tabula/lib/rowsource"
)

const quotesView = `{
  // Quotes list.
  "name": "quotes",
  "columns": [
    {"header": "Dealer", "field": "dealer", "sortable": true},
    {"header": "Status", "field": "status", "type": "badge"},
    {"header": "Amount", "field": "amount", "type": "currency", "sortable": true},
  ],
  "search_keys": ["dealer"],
  "filters": [{"key": "status", "options": [{"value": "Active"}, {"value": "Closed"}]}],
  "page_size": 4,
}`

// writeFixtures writes twelve quotes as zstd-compressed JSONL and the
// quotes view, returning their paths.
func writeFixtures(t *testing.T) (dataPath, viewPath string) {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	directory := t.TempDir()

	rows := make([]record.Row, 12)
	for index := range rows {
		status := "Active"
		if index%4 == 3 {
			status = "Closed"
		}
		rows[index] = record.Row{
			"id":     fmt.Sprintf("q-%d", index+1),
			"dealer": fmt.Sprintf("Dealer %02d", index+1),
			"status": status,
			"amount": (index + 1) * 250,
		}
	}
	dataPath = filepath.Join(directory, "quotes.jsonl.zst")
	if err := rowsource.WriteFile(dataPath, rows); err != nil {
		t.Fatal(err)
	}
	viewPath = filepath.Join(directory, "quotes.jsonc")
	if err := os.WriteFile(viewPath, []byte(quotesView), 0644); err != nil {
		t.Fatal(err)
	}
	return dataPath, viewPath
}

func printLines(t *testing.T, args ...string) ([]string, error) {
	t.Helper()
	var output bytes.Buffer
	err := run(append(args, "--print", "--color", "never", "--width", "80"), &output)
	return strings.Split(strings.TrimRight(output.String(), "\n"), "\n"), err
}

func TestPrintFirstPage(t *testing.T) {
	dataPath, viewPath := writeFixtures(t)
	lines, err := printLines(t, "--data", dataPath, "--view", viewPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 7 {
		t.Fatalf("printed %d lines:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if lines[0] != "quotes" || !strings.Contains(lines[2], "Dealer 01") || !strings.Contains(lines[2], "$250") {
		t.Errorf("output:\n%s", strings.Join(lines, "\n"))
	}
	if lines[6] != "Showing 1-4 of 12 · Page 1 of 3" {
		t.Errorf("caption = %q", lines[6])
	}
}

func TestPrintRestoredState(t *testing.T) {
	dataPath, viewPath := writeFixtures(t)
	for _, serverSide := range []bool{false, true} {
		t.Run(fmt.Sprintf("server-side=%v", serverSide), func(t *testing.T) {
			args := []string{"--data", dataPath, "--view", viewPath,
				"--filter", "status=active", "--sort", "amount:desc", "--page", "2"}
			if serverSide {
				args = append(args, "--server-side")
			}
			lines, err := printLines(t, args...)
			if err != nil {
				t.Fatal(err)
			}
			// Nine active quotes, descending by amount: page 2 holds
			// quotes 6, 5, 3 and 2.
			if !strings.Contains(lines[2], "Dealer 06") || !strings.Contains(lines[5], "Dealer 02") {
				t.Errorf("page 2:\n%s", strings.Join(lines, "\n"))
			}
			for _, line := range lines[2:6] {
				if strings.Contains(line, "Closed") {
					t.Errorf("closed quote passed the filter: %q", line)
				}
			}
		})
	}
}

func TestPrintHighlightOpensItsPage(t *testing.T) {
	dataPath, viewPath := writeFixtures(t)
	lines, err := printLines(t, "--data", dataPath, "--view", viewPath, "--highlight", "q-10")
	if err != nil {
		t.Fatal(err)
	}
	var marked string
	for _, line := range lines {
		if strings.HasPrefix(line, "▶") {
			marked = line
		}
	}
	if !strings.Contains(marked, "Dealer 10") {
		t.Errorf("highlighted line = %q in:\n%s", marked, strings.Join(lines, "\n"))
	}
	if lines[len(lines)-1] != "Showing 9-12 of 12 · Page 3 of 3" {
		t.Errorf("caption = %q", lines[len(lines)-1])
	}
}

func TestPrintHighlightNotFound(t *testing.T) {
	dataPath, viewPath := writeFixtures(t)
	_, err := printLines(t, "--data", dataPath, "--view", viewPath,
		"--link", "tabula://quotes?highlight=q-99")
	var exit *cli.ExitError
	if !errors.As(err, &exit) || exit.Code != exitHighlightNotFound {
		t.Fatalf("err = %v, want exit %d", err, exitHighlightNotFound)
	}
}

func TestPrintInferredView(t *testing.T) {
	dataPath, _ := writeFixtures(t)
	lines, err := printLines(t, "--data", dataPath, "--page-size", "20", "--search", "dealer 1")
	if err != nil {
		t.Fatal(err)
	}
	// Dealers 10, 11 and 12, with an inferred column per field.
	if len(lines) != 6 || lines[0] != "quotes" || !strings.Contains(lines[1], "Dealer") || !strings.Contains(lines[1], "Amount") {
		t.Errorf("output:\n%s", strings.Join(lines, "\n"))
	}
}

func TestRunValidationErrors(t *testing.T) {
	dataPath, viewPath := writeFixtures(t)
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no data", []string{"--print"}, 2},
		{"bad filter", []string{"--data", dataPath, "--filter", "status"}, 2},
		{"bad sort", []string{"--data", dataPath, "--sort", "amount:sideways"}, 2},
		{"unknown flag", []string{"--data", dataPath, "--bogus"}, 2},
		{"bad color", []string{"--data", dataPath, "--view", viewPath, "--print", "--color", "sometimes"}, 2},
		{"missing file", []string{"--data", filepath.Join(t.TempDir(), "absent.json"), "--print"}, 3},
		{"extra argument", []string{"--data", dataPath, "stray"}, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			err := run(test.args, &output)
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := cli.Report(&bytes.Buffer{}, err); code != test.code {
				t.Errorf("exit code = %d, want %d (err: %v)", code, test.code, err)
			}
		})
	}
}
