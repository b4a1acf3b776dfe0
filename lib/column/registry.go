// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package column

import (
	"time"

	"golang.org/x/text/language"

	"github.com/bureau-foundation/tabula/lib/clock"
	"github.com/bureau-foundation/tabula/lib/record"
)

// Presenter turns a resolved, non-nil value into a cell. It reports
// false when config or value is not something it handles, in which
// case the registry falls through to plain rendering.
type Presenter func(config any, value any) (Cell, bool)

// DateFormatter is the date-formatting collaborator used by date
// cells. Locale-aware implementations can replace the default, which
// is time.Time.Format.
type DateFormatter interface {
	FormatDate(moment time.Time, layout string) string
}

// layoutFormatter formats with time.Time.Format.
type layoutFormatter struct{}

func (layoutFormatter) FormatDate(moment time.Time, layout string) string {
	return moment.Format(layout)
}

// Options configures the built-in presenters.
type Options struct {
	// Locale drives digit grouping for currency cells.
	// Default: language.AmericanEnglish.
	Locale language.Tag

	// CurrencySymbol is used when a currency column does not set one.
	// Default: "$".
	CurrencySymbol string

	// DateLayout is used when a date column does not set one.
	// Default: "Jan 2, 2006".
	DateLayout string

	// RelativeDates renders date cells as "3 days ago" unless the
	// column sets a layout.
	RelativeDates bool

	// Clock anchors relative dates. Default: clock.Real().
	Clock clock.Clock

	// Dates formats absolute dates. Default: time.Time.Format.
	Dates DateFormatter
}

// Registry maps cell types to presenters.
type Registry struct {
	presenters map[CellType]Presenter
}

// NewRegistry returns a registry with a presenter for every built-in
// cell type.
func NewRegistry(options Options) *Registry {
	if options.Locale == language.Und {
		options.Locale = language.AmericanEnglish
	}
	if options.CurrencySymbol == "" {
		options.CurrencySymbol = "$"
	}
	if options.DateLayout == "" {
		options.DateLayout = "Jan 2, 2006"
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Dates == nil {
		options.Dates = layoutFormatter{}
	}

	registry := &Registry{presenters: make(map[CellType]Presenter, len(CellTypes))}
	for _, cellType := range CellTypes {
		registry.presenters[cellType] = builtinPresenter(cellType, options)
	}
	return registry
}

// DefaultRegistry returns a registry with default options.
func DefaultRegistry() *Registry {
	return NewRegistry(Options{})
}

// builtinPresenter returns the presenter for a built-in cell type. The
// switch is exhaustive over CellTypes.
func builtinPresenter(cellType CellType, options Options) Presenter {
	switch cellType {
	case CellPlain:
		return presentPlain
	case CellBadge:
		return presentBadge
	case CellCurrency:
		return currencyPresenter(options)
	case CellAvatar:
		return presentAvatar
	case CellDate:
		return datePresenter(options)
	default:
		panic("column: no built-in presenter for cell type " + string(cellType))
	}
}

// Register installs or replaces the presenter for a cell type.
func (registry *Registry) Register(cellType CellType, presenter Presenter) {
	registry.presenters[cellType] = presenter
}

// Display presents the column's value for row.
//
// With a registered, non-plain cell type the presenter runs on the
// resolved value. Otherwise, or when the presenter declines, the
// display falls back in order to the custom Render function, the
// function accessor's result, and the raw field value. A nil value at
// any of those steps renders as the column's fallback text.
func (registry *Registry) Display(spec Spec, row record.Row) Cell {
	cellType := spec.CellType
	if cellType == "" {
		cellType = CellPlain
	}

	if cellType != CellPlain {
		if presenter, exists := registry.presenters[cellType]; exists {
			value := spec.Value(row)
			if value == nil {
				return missingCell(spec)
			}
			if cell, ok := presenter(spec.CellConfig, value); ok {
				cell.Type = cellType
				return cell
			}
		}
	}

	if spec.Render != nil {
		cell := spec.Render(row)
		if cell.Type == "" {
			cell.Type = CellPlain
		}
		return cell
	}

	value := spec.Value(row)
	if value == nil {
		return missingCell(spec)
	}
	cell, _ := presentPlain(nil, value)
	return cell
}

func missingCell(spec Spec) Cell {
	return Cell{Type: CellPlain, Text: spec.FallbackText(), Missing: true}
}
