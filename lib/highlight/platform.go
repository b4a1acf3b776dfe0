// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

// Platform is the rendering environment the coordinator drives. A
// terminal UI, a browser bridge, and tests each provide their own.
type Platform interface {
	// ScrollIntoView brings the rendered row with the given id to the
	// middle of the viewport. Unknown ids are ignored.
	ScrollIntoView(rowID string)

	// RemoveQueryParam strips a parameter from the current location
	// without navigating.
	RemoveQueryParam(name string)

	// RequestFrame runs fn after the next render has been committed.
	// The returned function cancels fn if it has not run yet.
	RequestFrame(fn func()) (cancel func())
}

// NopPlatform runs frames immediately and ignores scroll and URL
// requests. It suits headless use, where nothing is rendered.
type NopPlatform struct{}

func (NopPlatform) ScrollIntoView(string) {}

func (NopPlatform) RemoveQueryParam(string) {}

func (NopPlatform) RequestFrame(fn func()) func() {
	fn()
	return func() {}
}
