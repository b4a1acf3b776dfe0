// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package selection tracks which rows of a table are selected.
//
// A [Controller] either owns its selection or mirrors one owned by the
// caller. The choice is made once, at construction: [NewOwned] keeps
// the authoritative set locally, [NewDelegated] treats the caller's
// value as authoritative and overwrites local state whenever the
// caller pushes a new value through [Controller.Sync]. In both modes
// every user mutation updates local state and is reported to the
// change callback.
//
// Select-all is scoped to the rows currently displayed: checking it
// replaces the selection with exactly that page's ids, and it is never
// "all selected" on an empty page.
package selection

import "slices"

// Ownership says who holds the authoritative selection.
type Ownership int

const (
	// Owned keeps the selection inside the controller.
	Owned Ownership = iota

	// Delegated mirrors a selection held by the caller.
	Delegated
)

func (ownership Ownership) String() string {
	if ownership == Delegated {
		return "delegated"
	}
	return "owned"
}

// Controller holds a set of selected row ids in insertion order.
// It is not safe for concurrent use; the owning component drives it
// from a single event loop.
type Controller struct {
	ownership Ownership

	// ids keeps selection order; index mirrors it for membership.
	ids   []string
	index map[string]struct{}

	onChange func([]string)
}

// NewOwned returns a controller that owns its selection. onChange may
// be nil.
func NewOwned(onChange func([]string)) *Controller {
	return &Controller{ownership: Owned, index: map[string]struct{}{}, onChange: onChange}
}

// NewDelegated returns a controller mirroring the caller's selection,
// starting from initial. onChange may be nil.
func NewDelegated(initial []string, onChange func([]string)) *Controller {
	controller := &Controller{ownership: Delegated, onChange: onChange}
	controller.store(dedupe(initial))
	return controller
}

// Ownership returns the mode chosen at construction.
func (controller *Controller) Ownership() Ownership { return controller.ownership }

// IDs returns a copy of the selected ids in the order they were
// selected.
func (controller *Controller) IDs() []string {
	return slices.Clone(controller.ids)
}

// Len returns the number of selected ids.
func (controller *Controller) Len() int { return len(controller.ids) }

// IsSelected reports whether id is selected.
func (controller *Controller) IsSelected(id string) bool {
	_, ok := controller.index[id]
	return ok
}

// SelectAll replaces the selection with pageIDs when checked, and
// clears it otherwise. On an empty page, checking yields an empty
// selection.
func (controller *Controller) SelectAll(checked bool, pageIDs []string) {
	if checked {
		controller.set(dedupe(pageIDs))
	} else {
		controller.set(nil)
	}
}

// SelectOne toggles id's membership.
func (controller *Controller) SelectOne(id string) {
	next := slices.Clone(controller.ids)
	if controller.IsSelected(id) {
		next = slices.DeleteFunc(next, func(selected string) bool { return selected == id })
	} else {
		next = append(next, id)
	}
	controller.set(next)
}

// Clear deselects everything.
func (controller *Controller) Clear() {
	controller.set(nil)
}

// IsAllSelected reports whether pageIDs is non-empty and every id in
// it is selected.
func (controller *Controller) IsAllSelected(pageIDs []string) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if !controller.IsSelected(id) {
			return false
		}
	}
	return true
}

// Sync overwrites local state with the caller's selection. Owned
// controllers ignore it. Sync does not invoke the change callback:
// the value came from the caller.
func (controller *Controller) Sync(external []string) {
	if controller.ownership != Delegated {
		return
	}
	controller.store(dedupe(external))
}

func (controller *Controller) set(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	controller.store(ids)
	if controller.onChange != nil {
		controller.onChange(slices.Clone(ids))
	}
}

func (controller *Controller) store(ids []string) {
	controller.ids = ids
	controller.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		controller.index[id] = struct{}{}
	}
}

// dedupe copies ids, dropping repeats and keeping first occurrence.
func dedupe(ids []string) []string {
	result := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
