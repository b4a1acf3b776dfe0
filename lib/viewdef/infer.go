// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewdef

import (
	"slices"
	"strings"
	"time"

	"github.com/bureau-foundation/tabula/lib/record"
)

// inferSample bounds how many rows Infer inspects.
const inferSample = 50

// Infer derives a view from the rows themselves: one column per
// top-level scalar field (id first, then alphabetical), every column
// sortable, and string fields searchable. Numbers stay plain; Infer
// cannot tell an amount from a count. RFC 3339 strings become date
// columns.
func Infer(name string, rows []record.Row) *Definition {
	kinds := make(map[string]fieldKind)
	for _, row := range rows[:min(len(rows), inferSample)] {
		for key, value := range row {
			kinds[key] = kinds[key].merge(kindOf(value))
		}
	}

	keys := make([]string, 0, len(kinds))
	for key, kind := range kinds {
		if kind != kindNested {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case a == record.IDField:
			return -1
		case b == record.IDField:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})

	definition := &Definition{Name: name}
	for _, key := range keys {
		def := ColumnDef{Header: headerFor(key), Field: key, Sortable: true}
		switch kinds[key] {
		case kindDate:
			def.Type = "date"
			definition.SearchKeys = append(definition.SearchKeys, key)
		case kindString:
			definition.SearchKeys = append(definition.SearchKeys, key)
		}
		definition.Columns = append(definition.Columns, def)
	}
	return definition
}

type fieldKind int

const (
	kindUnknown fieldKind = iota
	kindString
	kindDate
	kindNumber
	kindBool
	kindMixed
	kindNested
)

func kindOf(value any) fieldKind {
	switch typed := value.(type) {
	case nil:
		return kindUnknown
	case string:
		if _, err := time.Parse(time.RFC3339, typed); err == nil {
			return kindDate
		}
		return kindString
	case bool:
		return kindBool
	case map[string]any, record.Row, []any:
		return kindNested
	}
	if _, ok := record.Number(value); ok {
		return kindNumber
	}
	return kindMixed
}

// merge combines the kinds seen for one field across rows.
func (kind fieldKind) merge(other fieldKind) fieldKind {
	switch {
	case kind == other || other == kindUnknown:
		return kind
	case kind == kindUnknown:
		return other
	case kind == kindNested || other == kindNested:
		return kindNested
	case (kind == kindDate && other == kindString) || (kind == kindString && other == kindDate):
		return kindString
	default:
		return kindMixed
	}
}

// headerFor turns a field name into a title: "created_at" becomes
// "Created At".
func headerFor(key string) string {
	if key == record.IDField {
		return "ID"
	}
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for index, word := range words {
		words[index] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
