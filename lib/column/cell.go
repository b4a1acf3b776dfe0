// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package column

import "fmt"

// CellType selects how a column's value is presented.
type CellType string

const (
	CellPlain    CellType = "plain"
	CellBadge    CellType = "badge"
	CellCurrency CellType = "currency"
	CellAvatar   CellType = "avatar"
	CellDate     CellType = "date"
)

// CellTypes lists every cell type in declaration order.
var CellTypes = []CellType{CellPlain, CellBadge, CellCurrency, CellAvatar, CellDate}

// ParseCellType validates a cell type name. The empty string parses
// as CellPlain.
func ParseCellType(name string) (CellType, error) {
	if name == "" {
		return CellPlain, nil
	}
	for _, cellType := range CellTypes {
		if string(cellType) == name {
			return cellType, nil
		}
	}
	return "", fmt.Errorf("unknown cell type %q", name)
}

// Tone is the semantic color bucket of a badge. Renderers map tones to
// concrete colors.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// Cell is a presented value.
type Cell struct {
	// Type is the presenter that produced the cell. Fallthrough and
	// custom renders report CellPlain unless Render sets otherwise.
	Type CellType

	// Text is the display string.
	Text string

	// Tone is set by badge cells.
	Tone Tone

	// Image is the avatar image reference, when the row has one.
	Image string

	// Missing is true when Text is the fallback for an absent value.
	Missing bool
}
