// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package viewdef reads table view definitions: the columns, search
// keys, filter options and defaults of a table, authored on disk as
// JSONC (JSON extended with comments and trailing commas) or YAML.
//
// The typical flow:
//
//  1. ReadFile or Parse: file bytes -> Definition
//  2. Validate: structural checks (headers, cell types, sort keys)
//  3. TableConfig: Definition -> datatable.Config, with each column's
//     cell config decoded into its typed form (column.BadgeConfig, ...)
//
// When no definition is available, Infer derives one from the rows.
package viewdef

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Definition is a table view as authored on disk.
type Definition struct {
	// Name identifies the view. ReadFile fills it from the file name
	// when empty.
	Name string `json:"name,omitempty"`

	Columns    []ColumnDef `json:"columns"`
	SearchKeys []string    `json:"search_keys,omitempty"`
	Filters    []FilterDef `json:"filters,omitempty"`

	// PageSize overrides the configured default.
	PageSize int `json:"page_size,omitempty"`

	// Selectable enables row selection.
	Selectable bool `json:"selectable,omitempty"`

	// Sort is the initial sort.
	Sort *SortDef `json:"sort,omitempty"`
}

// ColumnDef is one column as authored on disk.
type ColumnDef struct {
	Header string `json:"header"`

	// Field is the dot-separated accessor path. Empty means the whole
	// row, which only makes sense with a cell type such as avatar.
	Field string `json:"field,omitempty"`

	// Type is the cell type (badge, currency, avatar, date, plain).
	Type string `json:"type,omitempty"`

	// Config is the cell config, decoded according to Type.
	Config json.RawMessage `json:"config,omitempty"`

	Sortable bool   `json:"sortable,omitempty"`
	SortKey  string `json:"sort_key,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

// FilterDef is a field filter offered to the user.
type FilterDef struct {
	Key     string      `json:"key"`
	Label   string      `json:"label,omitempty"`
	Options []OptionDef `json:"options"`
}

// OptionDef is one filter choice.
type OptionDef struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// SortDef is an initial sort.
type SortDef struct {
	Key       string `json:"key"`
	Direction string `json:"direction,omitempty"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a Definition.
func Parse(data []byte) (*Definition, error) {
	stripped := jsonc.ToJSON(data)

	var definition Definition
	if err := json.Unmarshal(stripped, &definition); err != nil {
		return nil, fmt.Errorf("parsing view: %w", err)
	}

	return &definition, nil
}

// ParseYAML parses a YAML view. The document is converted to JSON
// first, so both formats share field names and cell config decoding.
func ParseYAML(data []byte) (*Definition, error) {
	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("parsing view: %w", err)
	}
	if document == nil {
		return nil, fmt.Errorf("parsing view: empty document")
	}

	converted, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("parsing view: %w", err)
	}
	return Parse(converted)
}

// ReadFile reads a view definition from disk. Files ending in .yaml
// or .yml are parsed as YAML; everything else as JSONC.
func ReadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var definition *Definition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		definition, err = ParseYAML(data)
	default:
		definition, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if definition.Name == "" {
		definition.Name = NameFromPath(path)
	}
	return definition, nil
}

// NameFromPath strips the directory and extension from path:
// "views/quotes.jsonc" returns "quotes".
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
