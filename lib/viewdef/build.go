// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewdef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bureau-foundation/tabula/lib/column"
	"github.com/bureau-foundation/tabula/lib/datatable"
	"github.com/bureau-foundation/tabula/lib/dataview"
)

// Spec converts the column definition into a column.Spec, decoding
// Config into the typed config of the column's cell type. Unknown
// cell types and config fields are errors.
func (def ColumnDef) Spec() (column.Spec, error) {
	cellType, err := column.ParseCellType(strings.TrimSpace(def.Type))
	if err != nil {
		return column.Spec{}, err
	}

	cellConfig, err := decodeCellConfig(cellType, def.Config)
	if err != nil {
		return column.Spec{}, fmt.Errorf("%s config: %w", cellType, err)
	}

	return column.Spec{
		Header:     def.Header,
		Accessor:   column.Path(def.Field),
		CellType:   cellType,
		CellConfig: cellConfig,
		Sortable:   def.Sortable,
		SortKey:    def.SortKey,
		Fallback:   def.Fallback,
	}, nil
}

func decodeCellConfig(cellType column.CellType, raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return nil, nil
	}

	switch cellType {
	case column.CellPlain:
		return nil, errors.New("plain cells take no config")
	case column.CellBadge:
		return decodeStrict[column.BadgeConfig](raw)
	case column.CellCurrency:
		return decodeStrict[column.CurrencyConfig](raw)
	case column.CellAvatar:
		return decodeStrict[column.AvatarConfig](raw)
	case column.CellDate:
		return decodeStrict[column.DateConfig](raw)
	default:
		return nil, fmt.Errorf("no config type for cell type %q", cellType)
	}
}

func decodeStrict[T any](raw json.RawMessage) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	var config T
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}
	return config, nil
}

// Specs converts every column definition.
func (definition *Definition) Specs() ([]column.Spec, error) {
	specs := make([]column.Spec, 0, len(definition.Columns))
	var errs []error
	for index, def := range definition.Columns {
		spec, err := def.Spec()
		if err != nil {
			errs = append(errs, fmt.Errorf("columns[%d] %q: %w", index, def.Header, err))
			continue
		}
		specs = append(specs, spec)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return specs, nil
}

// FilterOptions converts the filter definitions.
func (definition *Definition) FilterOptions() []datatable.FilterDefinition {
	filters := make([]datatable.FilterDefinition, 0, len(definition.Filters))
	for _, filter := range definition.Filters {
		options := make([]datatable.FilterOption, len(filter.Options))
		for index, option := range filter.Options {
			options[index] = datatable.FilterOption{Value: option.Value, Label: option.Label}
		}
		filters = append(filters, datatable.FilterDefinition{Key: filter.Key, Label: filter.Label, Options: options})
	}
	return filters
}

// InitialSort returns the definition's initial sort, or the zero
// state.
func (definition *Definition) InitialSort() dataview.SortState {
	if definition.Sort == nil {
		return dataview.SortState{}
	}
	direction, err := dataview.ParseDirection(definition.Sort.Direction)
	if err != nil {
		direction = dataview.Ascending
	}
	return dataview.SortState{Key: definition.Sort.Key, Direction: direction}
}

// TableConfig builds the table configuration for the view. Callbacks
// and server settings are left for the caller to fill in.
func (definition *Definition) TableConfig() (datatable.Config, error) {
	specs, err := definition.Specs()
	if err != nil {
		return datatable.Config{}, err
	}
	return datatable.Config{
		Columns:       specs,
		SearchKeys:    definition.SearchKeys,
		FilterOptions: definition.FilterOptions(),
		ItemsPerPage:  definition.PageSize,
		Selectable:    definition.Selectable,
	}, nil
}
