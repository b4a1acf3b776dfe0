// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for tabula.
//
// Configuration is loaded from a single file specified by either the
// TABULA_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no discovery and no automatic file
// search; running without a file uses [Default].
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// [Config] implements the table's preferences collaborator: its
// DefaultPageSize feeds tables that do not set a page size.
//
// This package depends on no other tabula packages.
package config
