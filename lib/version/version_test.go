// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withBuild(t *testing.T, commit, dirty, built string, settings ...debug.BuildSetting) {
	t.Helper()
	savedCommit, savedDirty, savedBuilt, savedInfo := GitCommit, GitDirty, BuildTime, buildInfo
	t.Cleanup(func() {
		GitCommit, GitDirty, BuildTime, buildInfo = savedCommit, savedDirty, savedBuilt, savedInfo
	})
	GitCommit, GitDirty, BuildTime = commit, dirty, built
	buildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, true
	}
}

func TestInfoUsesInjectedValues(t *testing.T) {
	withBuild(t, "abc1234", "true", "2026-03-10T12:00:00Z",
		debug.BuildSetting{Key: "vcs.revision", Value: "ffffffffffffffff"})

	want := "0.1.0-dev (abc1234-dirty, 2026-03-10T12:00:00Z)"
	if got := Info(); got != want {
		t.Fatalf("Info() = %q, want %q", got, want)
	}
}

func TestInfoFallsBackToVCSStamp(t *testing.T) {
	withBuild(t, "unknown", "false", "unknown",
		debug.BuildSetting{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		debug.BuildSetting{Key: "vcs.modified", Value: "true"},
		debug.BuildSetting{Key: "vcs.time", Value: "2026-03-09T08:00:00Z"},
	)

	if got := Commit(); got != "0123456789ab" {
		t.Errorf("Commit() = %q, want the 12-character prefix", got)
	}
	want := "0.1.0-dev (0123456789ab-dirty, 2026-03-09T08:00:00Z)"
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestFullIncludesPlatform(t *testing.T) {
	withBuild(t, "abc1234", "false", "now")
	full := Full()
	if !strings.HasPrefix(full, Info()) || !strings.Contains(full, "Platform: ") {
		t.Fatalf("Full() = %q", full)
	}
	if Short() != Version {
		t.Errorf("Short() = %q", Short())
	}
}
