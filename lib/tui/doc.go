// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal components for tabula's
// interactive table viewer: the color theme, fuzzy matching, the
// filter dropdown overlay, a scrollbar, and ANSI-aware overlay
// splicing. Built on bubbletea and lipgloss.
//
// The table model in lib/tableui owns layout and input routing; this
// package only renders pieces and keeps no terminal state.
package tui
