// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the tabula binary.
//
// Release builds inject [GitCommit], [GitDirty], [BuildTime] and
// [Version] with -ldflags -X:
//
//	go build -ldflags "-X github.com/bureau-foundation/tabula/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/tabula
//
// When the commit is not injected, the VCS stamp the go command embeds
// in module builds is used instead, so `go install` builds still report
// the revision they came from.
package version
