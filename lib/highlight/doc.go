// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package highlight brings a row referenced from outside the table
// (typically a deep link) into view and marks it for a short time.
//
// A [Coordinator] moves through three states. It is idle until
// [Coordinator.Request] names a row that is present in the ordered
// collection and differs from the last id it processed. Arming
// switches to the row's page (client paging only), marks the row as
// the active highlight, and schedules a deferred scroll: two
// sequential [Platform.RequestFrame] yields, so the renderer commits
// the new page before the row is located, then
// [Platform.ScrollIntoView]. After [DefaultDuration] the highlight
// clears and the deep-link query parameter is removed.
//
// Every scheduled effect has a cancellation path. A newer request
// cancels the pending expiry timer and any pending frames before
// arming; [Coordinator.Close] cancels both for good. Timer callbacks
// are handed to the configured Dispatch function so that state is
// only ever touched from the owner's event loop.
package highlight
