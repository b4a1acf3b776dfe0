// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tableui renders a datatable in the terminal.
//
// [Model] is a bubbletea model for the interactive viewer: a search
// bar, a filter dropdown, sortable column headers, paging, row
// selection, a row detail pane and highlight autoscroll. [Print]
// writes one page non-interactively for pipes and scripts.
//
// The table itself is not safe for concurrent use, so everything that
// touches it runs on the bubbletea event loop. Work that finishes on
// other goroutines (highlight expiry timers, server-mode fetches) is
// handed to a [Dispatcher], whose functions the model runs as
// messages. [Platform] implements highlight.Platform for the terminal:
// animation frames become ticks, scrolling moves the row cursor, and
// the highlight query parameter is dropped from the viewer's deep link.
package tableui
