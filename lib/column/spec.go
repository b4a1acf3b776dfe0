// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package column

import (
	"fmt"

	"github.com/bureau-foundation/tabula/lib/record"
)

// DefaultFallback is the text shown for a missing value when the
// column does not set its own.
const DefaultFallback = "N/A"

// Accessor locates a column's value in a row. Func takes precedence
// over Path; a zero Accessor resolves to the row itself.
type Accessor struct {
	// Path is a dot-separated field path ("vehicle_info.make").
	Path string

	// Func computes the value from the row.
	Func func(record.Row) any
}

// Path returns an Accessor that reads a field path.
func Path(path string) Accessor { return Accessor{Path: path} }

// Func returns an Accessor that computes the value.
func Func(function func(record.Row) any) Accessor { return Accessor{Func: function} }

// Spec describes one column.
type Spec struct {
	// Header is the column title.
	Header string

	// Accessor locates the raw value.
	Accessor Accessor

	// CellType selects the presenter. Empty means plain.
	CellType CellType

	// CellConfig is handed to the presenter unchanged. Each cell type
	// documents the config type it understands (BadgeConfig,
	// CurrencyConfig, AvatarConfig, DateConfig).
	CellConfig any

	// Render is a custom display function used when no cell type
	// applies.
	Render func(record.Row) Cell

	// Sortable enables header-click sorting.
	Sortable bool

	// SortKey is the field path used for sorting. When empty, a path
	// accessor doubles as the sort key.
	SortKey string

	// Fallback replaces missing values. Empty means DefaultFallback.
	Fallback string
}

// Value returns the raw value for row: the function accessor's
// result, the value at the accessor path, or the row itself when no
// accessor is set. Missing paths yield nil.
func (spec Spec) Value(row record.Row) any {
	value, _ := spec.lookup(row)
	return value
}

// lookup is Value plus whether a path accessor found its field.
// Function accessors and the row itself always count as found.
func (spec Spec) lookup(row record.Row) (any, bool) {
	switch {
	case spec.Accessor.Func != nil:
		return spec.Accessor.Func(row), true
	case spec.Accessor.Path != "":
		return row.Lookup(spec.Accessor.Path)
	default:
		return row, true
	}
}

// SortPath returns the field path this column sorts by. Columns that
// are not sortable, or whose only accessor is a function and that have
// no SortKey, report false.
func (spec Spec) SortPath() (string, bool) {
	if !spec.Sortable {
		return "", false
	}
	if spec.SortKey != "" {
		return spec.SortKey, true
	}
	if spec.Accessor.Func == nil && spec.Accessor.Path != "" {
		return spec.Accessor.Path, true
	}
	return "", false
}

// FallbackText returns the text shown for missing values.
func (spec Spec) FallbackText() string {
	if spec.Fallback != "" {
		return spec.Fallback
	}
	return DefaultFallback
}

// Validate reports configuration the engine will have to degrade: a
// sortable column with no derivable sort key, or an unknown cell type.
func (spec Spec) Validate() error {
	if spec.Sortable {
		if _, ok := spec.SortPath(); !ok {
			return fmt.Errorf("column %q is sortable but has neither a sort key nor a path accessor", spec.Header)
		}
	}
	if spec.CellType != "" {
		if _, err := ParseCellType(string(spec.CellType)); err != nil {
			return fmt.Errorf("column %q: %w", spec.Header, err)
		}
	}
	return nil
}
