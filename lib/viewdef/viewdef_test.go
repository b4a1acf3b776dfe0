// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewdef

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/tabula/lib/column"
	"github.com/bureau-foundation/tabula/lib/dataview"
	"github.com/bureau-foundation/tabula/lib/record"
)

const quotesJSONC = `{
  // Quotes awaiting review.
  "columns": [
    {"header": "Customer", "field": "customer.name", "sortable": true},
    {
      "header": "Status",
      "field": "status",
      "type": "badge",
      "config": {
        "buckets": [
          {"tone": "success", "values": ["approved"]},
          {"tone": "danger", "values": ["rejected", "expired"]},
        ],
        "default": "info",
      },
    },
    {"header": "Amount", "field": "amount", "type": "currency", "config": {"symbol": "€"}, "sortable": true},
    {"header": "Created", "field": "created_at", "type": "date", "config": {"relative": true}},
  ],
  "search_keys": ["customer.name", "vehicle_info.make"],
  "filters": [
    {"key": "status", "label": "Status", "options": [{"value": "all", "label": "All"}, {"value": "approved"}]},
  ],
  "page_size": 20,
  "selectable": true,
  "sort": {"key": "amount", "direction": "desc"},
}`

const quotesYAML = `
name: quotes
columns:
  - header: Customer
    field: customer.name
    sortable: true
  - header: Status
    field: status
    type: badge
    config:
      buckets:
        - tone: success
          values: [approved]
search_keys: [customer.name]
page_size: 5
`

func TestParseJSONC(t *testing.T) {
	definition, err := Parse([]byte(quotesJSONC))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if issues := Validate(definition); len(issues) != 0 {
		t.Fatalf("Validate: %v", issues)
	}

	config, err := definition.TableConfig()
	if err != nil {
		t.Fatalf("TableConfig: %v", err)
	}
	if len(config.Columns) != 4 || config.ItemsPerPage != 20 || !config.Selectable {
		t.Fatalf("config = %+v", config)
	}

	badge, ok := config.Columns[1].CellConfig.(column.BadgeConfig)
	if !ok {
		t.Fatalf("badge config decoded as %T", config.Columns[1].CellConfig)
	}
	if len(badge.Buckets) != 2 || badge.Buckets[1].Tone != column.ToneDanger || badge.Default != column.ToneInfo {
		t.Errorf("badge config = %+v", badge)
	}
	if currency := config.Columns[2].CellConfig.(column.CurrencyConfig); currency.Symbol != "€" {
		t.Errorf("currency config = %+v", currency)
	}
	if date := config.Columns[3].CellConfig.(column.DateConfig); !date.Relative {
		t.Errorf("date config = %+v", date)
	}
	if config.Columns[0].CellConfig != nil || config.Columns[0].CellType != column.CellPlain {
		t.Errorf("plain column = %+v", config.Columns[0])
	}

	if len(config.FilterOptions) != 1 || config.FilterOptions[0].Options[1].DisplayLabel() != "approved" {
		t.Errorf("filters = %+v", config.FilterOptions)
	}
	if sort := definition.InitialSort(); sort != (dataview.SortState{Key: "amount", Direction: dataview.Descending}) {
		t.Errorf("InitialSort = %+v", sort)
	}
}

func TestParseYAMLMatchesJSON(t *testing.T) {
	definition, err := ParseYAML([]byte(quotesYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if definition.Name != "quotes" || definition.PageSize != 5 {
		t.Errorf("definition = %+v", definition)
	}
	specs, err := definition.Specs()
	if err != nil {
		t.Fatalf("Specs: %v", err)
	}
	badge := specs[1].CellConfig.(column.BadgeConfig)
	if badge.Buckets[0].Values[0] != "approved" {
		t.Errorf("badge = %+v", badge)
	}
}

func TestReadFileByExtension(t *testing.T) {
	directory := t.TempDir()
	jsoncPath := filepath.Join(directory, "quotes.jsonc")
	yamlPath := filepath.Join(directory, "dealers.yml")
	if err := os.WriteFile(jsoncPath, []byte(quotesJSONC), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte(strings.Replace(quotesYAML, "name: quotes\n", "", 1)), 0644); err != nil {
		t.Fatal(err)
	}

	definition, err := ReadFile(jsoncPath)
	if err != nil {
		t.Fatalf("ReadFile(jsonc): %v", err)
	}
	if definition.Name != "quotes" {
		t.Errorf("name from path = %q", definition.Name)
	}

	definition, err = ReadFile(yamlPath)
	if err != nil {
		t.Fatalf("ReadFile(yaml): %v", err)
	}
	if definition.Name != "dealers" || len(definition.Columns) != 2 {
		t.Errorf("yaml definition = %+v", definition)
	}

	if _, err := ReadFile(filepath.Join(directory, "missing.jsonc")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestValidateReportsIssues(t *testing.T) {
	definition, err := Parse([]byte(`{
		"columns": [
			{"field": "a"},
			{"header": "Kind", "field": "kind", "type": "sparkline"},
			{"header": "Status", "field": "status", "type": "badge", "config": {"bukets": []}},
			{"header": "Total", "sortable": true, "type": "currency"},
		],
		"filters": [{"key": "", "options": []}],
		"page_size": -1,
		"sort": {"key": "nope", "direction": "sideways"},
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	issues := strings.Join(Validate(definition), "\n")
	for _, fragment := range []string{
		"columns[0]: header is required",
		`unknown cell type "sparkline"`,
		"bukets",
		"neither a sort key nor a path accessor",
		"filters[0]: key is required",
		"at least one option",
		"page_size",
		`sort.key "nope"`,
		"sort.direction",
	} {
		if !strings.Contains(issues, fragment) {
			t.Errorf("issues missing %q:\n%s", fragment, issues)
		}
	}
}

func TestEmptyViewIsInvalid(t *testing.T) {
	if issues := Validate(&Definition{}); len(issues) != 1 {
		t.Errorf("issues = %v", issues)
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte(`{"columns": [`)); err == nil {
		t.Error("truncated JSONC should fail")
	}
	if _, err := ParseYAML([]byte("")); err == nil {
		t.Error("empty YAML should fail")
	}
}

func TestInfer(t *testing.T) {
	rows := []record.Row{
		{"id": "1", "name": "Acme", "amount": 12.5, "created_at": "2026-01-02T03:04:05Z", "owner": map[string]any{"name": "Ada"}},
		{"id": "2", "name": "Zeta", "amount": 7, "created_at": nil, "active": true},
	}
	definition := Infer("dealers", rows)

	var headers []string
	for _, def := range definition.Columns {
		headers = append(headers, def.Header)
	}
	if strings.Join(headers, ",") != "ID,Active,Amount,Created At,Name" {
		t.Errorf("headers = %v", headers)
	}
	if strings.Join(definition.SearchKeys, ",") != "id,created_at,name" {
		t.Errorf("search keys = %v", definition.SearchKeys)
	}
	if definition.Columns[3].Type != "date" {
		t.Errorf("created_at type = %q", definition.Columns[3].Type)
	}
	if issues := Validate(definition); len(issues) != 0 {
		t.Errorf("inferred view invalid: %v", issues)
	}
}
