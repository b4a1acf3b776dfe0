// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dataview

import (
	"maps"
	"strings"

	"github.com/bureau-foundation/tabula/lib/record"
)

// Mode selects where filtering and paging happen.
type Mode int

const (
	// Client computes filter, sort and pagination locally.
	Client Mode = iota

	// Server treats the rows as an already filtered, sorted page.
	Server
)

func (mode Mode) String() string {
	switch mode {
	case Client:
		return "client"
	case Server:
		return "server"
	default:
		return "unknown"
	}
}

// FilterAll is the field filter value meaning "no constraint".
const FilterAll = "all"

// FilterState is the free-text search term plus exact-match field
// filters keyed by field path.
type FilterState struct {
	SearchTerm string
	Fields     map[string]string
}

// Active returns the field filters that constrain rows, with keys
// and values trimmed and values lowercased. Filters whose value is
// empty or "all" are omitted.
func (state FilterState) Active() map[string]string {
	active := make(map[string]string, len(state.Fields))
	for key, value := range state.Fields {
		normalized := normalize(value)
		if normalized == "" || normalized == FilterAll {
			continue
		}
		active[strings.TrimSpace(key)] = normalized
	}
	return active
}

// IsZero reports whether the state constrains nothing.
func (state FilterState) IsZero() bool {
	return state.SearchTerm == "" && len(state.Active()) == 0
}

// With returns a copy of state with the field filter for key set to
// value. The receiver's map is not modified.
func (state FilterState) With(key, value string) FilterState {
	fields := maps.Clone(state.Fields)
	if fields == nil {
		fields = make(map[string]string, 1)
	}
	fields[key] = value
	state.Fields = fields
	return state
}

// Filter keeps the rows matching the search term and every active
// field filter, in input order. In Server mode the rows come back
// unchanged.
//
// A row matches the search term when any of searchKeys resolves to a
// string containing the term, case-insensitively. Non-string values
// never match a non-empty term. A row matches a field filter when the
// trimmed, lowercased string form of its value at the key equals the
// trimmed, lowercased filter value.
func Filter(rows []record.Row, searchKeys []string, state FilterState, mode Mode) []record.Row {
	if mode == Server {
		return rows
	}

	term := strings.ToLower(state.SearchTerm)
	active := state.Active()

	filtered := make([]record.Row, 0, len(rows))
	for _, row := range rows {
		if matchesSearch(row, searchKeys, term) && matchesFields(row, active) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func matchesSearch(row record.Row, searchKeys []string, term string) bool {
	if term == "" {
		return true
	}
	for _, key := range searchKeys {
		text, isString := row.Get(key).(string)
		if isString && strings.Contains(strings.ToLower(text), term) {
			return true
		}
	}
	return false
}

func matchesFields(row record.Row, active map[string]string) bool {
	for key, want := range active {
		if normalize(record.String(row.Get(key))) != want {
			return false
		}
	}
	return true
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
