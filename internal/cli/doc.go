// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the command-line plumbing shared by tabula's
// entry points: categorized errors with remediation hints, exit codes,
// and logger construction.
//
// Commands return a [*ToolError] for failures the user can act on. The
// category picks the process exit code and the hint is printed after
// the message:
//
//	return cli.Validation("--page-size must be positive, got %d", size).
//	    WithHint("Omit --page-size to use the configured default.")
package cli
