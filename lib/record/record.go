// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IDField is the field holding a row's stable identifier.
const IDField = "id"

// Row is one opaque data record. Rows are owned by the caller and
// treated as read-only by every package in this module.
type Row map[string]any

// ID returns the string form of the row's identifier. Identity
// comparisons (selection membership, highlight targets) use string
// equality on this value, so a numeric id 7 and a string id "7" name
// the same row. Rows without an id return "".
func (row Row) ID() string {
	value, exists := row[IDField]
	if !exists || value == nil {
		return ""
	}
	return String(value)
}

// Lookup resolves a dot-separated field path against the row. See
// [Resolve] for the traversal rules.
func (row Row) Lookup(path string) (any, bool) {
	return Resolve(map[string]any(row), path)
}

// Get resolves path and returns nil when any segment is missing.
func (row Row) Get(path string) any {
	value, _ := row.Lookup(path)
	return value
}

// Resolve walks a dot-separated path through nested maps and slices.
// Map segments match keys exactly; slice segments must be decimal
// indexes. Resolution short-circuits on the first missing segment and
// reports false. The empty path resolves to root itself.
func Resolve(root any, path string) (any, bool) {
	if path == "" {
		return root, true
	}

	current := root
	for segment := range strings.SplitSeq(path, ".") {
		switch node := current.(type) {
		case Row:
			value, exists := node[segment]
			if !exists {
				return nil, false
			}
			current = value
		case map[string]any:
			value, exists := node[segment]
			if !exists {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}

// String coerces a value to its display string. Nil becomes "";
// numbers use the shortest round-tripping decimal form (1200, 0.5);
// times use RFC 3339. Anything else goes through fmt.
func String(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []byte:
		return string(typed)
	case bool:
		return strconv.FormatBool(typed)
	case json.Number:
		return typed.String()
	case time.Time:
		return typed.Format(time.RFC3339)
	case fmt.Stringer:
		return typed.String()
	}
	if number, ok := Number(value); ok {
		return strconv.FormatFloat(number, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

// Lower returns the lowercase string form of value. It is the
// comparison key for search, field filters and string sorting.
func Lower(value any) string {
	return strings.ToLower(String(value))
}

// Number reports whether value is numeric and returns it as a float64.
// Every Go integer and float kind counts, as does json.Number when it
// parses. Numeric-looking strings ("1200") are not numbers: callers
// that want numeric ordering normalize their data before handing it to
// the engine.
func Number(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint8:
		return float64(typed), true
	case uint16:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// FromValue converts an already-decoded collection into rows. Accepted
// shapes are []Row, []map[string]any and []any whose elements are
// maps; non-map elements are skipped. Anything that is not a
// collection (nil, a scalar, a single map) yields an empty result and
// ok=false so callers can log the malformed input instead of failing.
func FromValue(value any) (rows []Row, ok bool) {
	switch typed := value.(type) {
	case []Row:
		return typed, true
	case []map[string]any:
		rows = make([]Row, 0, len(typed))
		for _, element := range typed {
			rows = append(rows, Row(element))
		}
		return rows, true
	case []any:
		rows = make([]Row, 0, len(typed))
		for _, element := range typed {
			switch item := element.(type) {
			case map[string]any:
				rows = append(rows, Row(item))
			case Row:
				rows = append(rows, item)
			}
		}
		return rows, true
	default:
		return nil, false
	}
}

// IDs returns the identifiers of rows in order.
func IDs(rows []Row) []string {
	ids := make([]string, len(rows))
	for index, row := range rows {
		ids[index] = row.ID()
	}
	return ids
}

// IndexOf returns the position of the row whose ID equals id, or -1.
func IndexOf(rows []Row, id string) int {
	for index, row := range rows {
		if row.ID() == id {
			return index
		}
	}
	return -1
}
