// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dataview

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/bureau-foundation/tabula/lib/record"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc" and "desc". Empty means ascending.
func ParseDirection(name string) (Direction, error) {
	switch Direction(name) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q (want asc or desc)", name)
	}
}

// SortState is the active sort key and direction. The zero value
// (no key, ascending) keeps input order.
type SortState struct {
	Key       string
	Direction Direction
}

// IsZero reports whether no sort key is set.
func (state SortState) IsZero() bool { return state.Key == "" }

// IsDescending reports whether the direction is descending.
func (state SortState) IsDescending() bool { return state.Direction == Descending }

// Toggle returns the state after a click on the column sorting by
// key: the same key flips the direction, a different key starts
// ascending.
func (state SortState) Toggle(key string) SortState {
	if state.Key == key {
		if state.Direction == Descending {
			return SortState{Key: key, Direction: Ascending}
		}
		return SortState{Key: key, Direction: Descending}
	}
	return SortState{Key: key, Direction: Ascending}
}

// Sort returns a new slice ordered by state. With no key the copy
// keeps input order. Two values compare numerically when both are
// numbers, otherwise as lowercase strings with missing values as "".
// The sort is stable in both directions: rows comparing equal keep
// their input order.
func Sort(rows []record.Row, state SortState) []record.Row {
	sorted := slices.Clone(rows)
	if sorted == nil {
		sorted = []record.Row{}
	}
	if state.IsZero() {
		return sorted
	}

	descending := state.IsDescending()
	slices.SortStableFunc(sorted, func(a, b record.Row) int {
		order := Compare(a.Get(state.Key), b.Get(state.Key))
		if descending {
			return -order
		}
		return order
	})
	return sorted
}

// Compare orders two resolved field values the way Sort does.
func Compare(a, b any) int {
	if left, ok := record.Number(a); ok {
		if right, ok := record.Number(b); ok {
			return cmp.Compare(left, right)
		}
	}
	return cmp.Compare(record.Lower(a), record.Lower(b))
}
