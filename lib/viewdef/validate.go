// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewdef

import (
	"fmt"

	"github.com/bureau-foundation/tabula/lib/dataview"
)

// Validate checks a Definition for structural issues and returns
// human-readable descriptions. An empty list means the view is valid.
//
// Checks:
//   - at least one column
//   - each column has a header and a known cell type
//   - each column's config decodes into its cell type's config
//   - sortable columns have a field or sort key
//   - filters have a key and at least one option
//   - page size is not negative
//   - the initial sort names a sortable column's key and a known
//     direction
func Validate(definition *Definition) []string {
	var issues []string

	if len(definition.Columns) == 0 {
		issues = append(issues, "view has no columns (at least one column is required)")
	}

	sortKeys := make(map[string]bool)
	for index, def := range definition.Columns {
		label := fmt.Sprintf("columns[%d]", index)
		if def.Header != "" {
			label = fmt.Sprintf("columns[%d] %q", index, def.Header)
		} else {
			issues = append(issues, label+": header is required")
		}

		spec, err := def.Spec()
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s: %v", label, err))
			continue
		}
		if err := spec.Validate(); err != nil {
			issues = append(issues, fmt.Sprintf("%s: %v", label, err))
			continue
		}
		if key, ok := spec.SortPath(); ok {
			sortKeys[key] = true
		}
	}

	for index, filter := range definition.Filters {
		if filter.Key == "" {
			issues = append(issues, fmt.Sprintf("filters[%d]: key is required", index))
		}
		if len(filter.Options) == 0 {
			issues = append(issues, fmt.Sprintf("filters[%d] %q: at least one option is required", index, filter.Key))
		}
	}

	if definition.PageSize < 0 {
		issues = append(issues, fmt.Sprintf("page_size must not be negative, got %d", definition.PageSize))
	}

	if definition.Sort != nil {
		if !sortKeys[definition.Sort.Key] {
			issues = append(issues, fmt.Sprintf("sort.key %q is not the key of a sortable column", definition.Sort.Key))
		}
		if _, err := dataview.ParseDirection(definition.Sort.Direction); err != nil {
			issues = append(issues, "sort.direction: "+err.Error())
		}
	}

	return issues
}
