// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/bureau-foundation/tabula/lib/clock"
	"github.com/bureau-foundation/tabula/lib/record"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// fakePlatform queues frames until flushFrame runs them, one frame per
// call, and records scroll and URL requests.
type fakePlatform struct {
	frames   []*frame
	scrolled []string
	removed  []string
}

type frame struct {
	fn        func()
	cancelled bool
}

func (platform *fakePlatform) ScrollIntoView(rowID string) {
	platform.scrolled = append(platform.scrolled, rowID)
}

func (platform *fakePlatform) RemoveQueryParam(name string) {
	platform.removed = append(platform.removed, name)
}

func (platform *fakePlatform) RequestFrame(fn func()) func() {
	pending := &frame{fn: fn}
	platform.frames = append(platform.frames, pending)
	return func() { pending.cancelled = true }
}

// flushFrame runs the frames queued before the call, as a renderer
// does after committing one render.
func (platform *fakePlatform) flushFrame() {
	queued := platform.frames
	platform.frames = nil
	for _, pending := range queued {
		if !pending.cancelled {
			pending.fn()
		}
	}
}

type fakePager struct {
	client  bool
	size    int
	current int
	sets    []int
}

func (pager *fakePager) ClientPaging() bool { return pager.client }
func (pager *fakePager) PageSize() int      { return pager.size }
func (pager *fakePager) CurrentPage() int   { return pager.current }
func (pager *fakePager) SetPage(page int) {
	pager.current = page
	pager.sets = append(pager.sets, page)
}

func rows(count int) []record.Row {
	result := make([]record.Row, count)
	for index := range result {
		result[index] = record.Row{"id": float64(index + 1)}
	}
	return result
}

type harness struct {
	clock    *clock.FakeClock
	platform *fakePlatform
	pager    *fakePager
	changes  []State
	coord    *Coordinator
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:    clock.Fake(epoch),
		platform: &fakePlatform{},
		pager:    &fakePager{client: true, size: 10, current: 1},
	}
	h.coord = New(Config{
		Platform: h.platform,
		Clock:    h.clock,
		OnChange: func(state State) { h.changes = append(h.changes, state) },
	})
	t.Cleanup(h.coord.Close)
	return h
}

func TestExpiresAfterExactly3000ms(t *testing.T) {
	h := newHarness(t)
	if !h.coord.Request("7", rows(20), h.pager) {
		t.Fatal("request for a present row did not arm")
	}
	state := h.coord.State()
	if state.TargetID != "7" || !state.ActivatedAt.Equal(epoch) {
		t.Fatalf("armed state = %+v", state)
	}

	h.clock.Advance(2999 * time.Millisecond)
	if !h.coord.IsHighlighted("7") {
		t.Fatal("highlight cleared before 3000ms")
	}

	h.clock.Advance(time.Millisecond)
	if h.coord.State().Active() {
		t.Fatalf("highlight still active at 3000ms: %+v", h.coord.State())
	}
	if !slices.Equal(h.platform.removed, []string{DefaultQueryParam}) {
		t.Errorf("removed query params = %v", h.platform.removed)
	}
	if len(h.changes) != 2 || h.changes[1].Active() {
		t.Errorf("change notifications = %+v", h.changes)
	}
}

func TestNewRequestPreemptsTimer(t *testing.T) {
	h := newHarness(t)
	h.coord.Request("1", rows(5), h.pager)
	h.clock.Advance(2 * time.Second)

	h.coord.Request("2", rows(5), h.pager)
	if h.clock.PendingCount() != 1 {
		t.Fatalf("pending timers = %d, want 1", h.clock.PendingCount())
	}

	// The first request's deadline passes without touching the new one.
	h.clock.Advance(time.Second)
	if !h.coord.IsHighlighted("2") {
		t.Fatalf("old timer cleared the new highlight: %+v", h.coord.State())
	}
	if len(h.platform.removed) != 0 {
		t.Errorf("old timer removed query param: %v", h.platform.removed)
	}

	h.clock.Advance(2 * time.Second)
	if h.coord.State().Active() {
		t.Error("new highlight did not expire 3000ms after arming")
	}
}

func TestDeferredScrollWaitsForTwoFrames(t *testing.T) {
	h := newHarness(t)
	h.coord.Request("3", rows(5), h.pager)

	if len(h.platform.scrolled) != 0 {
		t.Fatal("scrolled before any frame")
	}
	h.platform.flushFrame()
	if len(h.platform.scrolled) != 0 {
		t.Fatal("scrolled after one frame")
	}
	h.platform.flushFrame()
	if !slices.Equal(h.platform.scrolled, []string{"3"}) {
		t.Fatalf("scrolled = %v, want [3]", h.platform.scrolled)
	}
}

func TestPreemptionCancelsPendingScroll(t *testing.T) {
	h := newHarness(t)
	h.coord.Request("1", rows(5), h.pager)
	h.platform.flushFrame()
	h.coord.Request("2", rows(5), h.pager)

	h.platform.flushFrame()
	h.platform.flushFrame()
	if !slices.Equal(h.platform.scrolled, []string{"2"}) {
		t.Fatalf("scrolled = %v, want only [2]", h.platform.scrolled)
	}
}

func TestIdempotentReentry(t *testing.T) {
	h := newHarness(t)
	if !h.coord.Request("4", rows(5), h.pager) {
		t.Fatal("first request did not arm")
	}
	if h.coord.Request("4", rows(5), h.pager) {
		t.Fatal("repeated id re-armed")
	}

	h.clock.Advance(DefaultDuration)
	if h.coord.Request("4", rows(5), h.pager) {
		t.Fatal("processed id re-armed after expiry")
	}

	h.coord.Reset()
	if !h.coord.Request("4", rows(5), h.pager) {
		t.Fatal("Reset did not allow the id to arm again")
	}
}

func TestNotFoundIsIgnoredAndRetried(t *testing.T) {
	h := newHarness(t)
	if h.coord.Request("99", rows(5), h.pager) {
		t.Fatal("missing row armed")
	}
	if h.coord.State().Active() || len(h.changes) != 0 || h.clock.PendingCount() != 0 {
		t.Fatal("missing row caused a transition")
	}
	if h.coord.LastProcessed() != "" {
		t.Fatal("missing row was recorded as processed")
	}

	if !h.coord.Request("99", rows(100), h.pager) {
		t.Fatal("retry after the row arrived did not arm")
	}
}

func TestEmptyIDIgnored(t *testing.T) {
	h := newHarness(t)
	if h.coord.Request("", rows(5), h.pager) {
		t.Fatal("empty id armed")
	}
}

func TestSwitchesToTargetPage(t *testing.T) {
	tests := []struct {
		id       int
		current  int
		wantPage int
		wantSets int
	}{
		{id: 1, current: 1, wantPage: 1, wantSets: 0},
		{id: 10, current: 1, wantPage: 1, wantSets: 0},
		{id: 11, current: 1, wantPage: 2, wantSets: 1},
		{id: 25, current: 1, wantPage: 3, wantSets: 1},
		{id: 3, current: 3, wantPage: 1, wantSets: 1},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.id), func(t *testing.T) {
			h := newHarness(t)
			h.pager.current = test.current
			h.coord.Request(fmt.Sprint(test.id), rows(30), h.pager)
			if h.pager.current != test.wantPage || len(h.pager.sets) != test.wantSets {
				t.Fatalf("page = %d (sets %v), want %d with %d sets",
					h.pager.current, h.pager.sets, test.wantPage, test.wantSets)
			}
		})
	}
}

func TestServerPagingNeverSwitchesPage(t *testing.T) {
	h := newHarness(t)
	h.pager.client = false
	h.coord.Request("25", rows(30), h.pager)
	if len(h.pager.sets) != 0 {
		t.Fatalf("server mode switched page: %v", h.pager.sets)
	}
	if !h.coord.IsHighlighted("25") {
		t.Fatal("server mode did not highlight")
	}
}

func TestCloseCancelsEverything(t *testing.T) {
	h := newHarness(t)
	h.coord.Request("1", rows(5), h.pager)
	h.coord.Close()

	if h.clock.PendingCount() != 0 {
		t.Errorf("timer still pending after Close")
	}
	h.platform.flushFrame()
	h.platform.flushFrame()
	h.clock.Advance(time.Hour)
	if len(h.platform.scrolled) != 0 || len(h.platform.removed) != 0 {
		t.Errorf("effects ran after Close: scrolled=%v removed=%v", h.platform.scrolled, h.platform.removed)
	}
	if h.coord.Request("2", rows(5), h.pager) {
		t.Error("closed coordinator armed")
	}
}

func TestDispatchRoutesExpiry(t *testing.T) {
	fake := clock.Fake(epoch)
	var queued []func()
	coordinator := New(Config{
		Clock:      fake,
		QueryParam: "focus",
		Dispatch:   func(fn func()) { queued = append(queued, fn) },
	})
	defer coordinator.Close()

	coordinator.Request("1", rows(1), nil)
	fake.Advance(DefaultDuration)
	if !coordinator.State().Active() {
		t.Fatal("expiry ran outside Dispatch")
	}
	if len(queued) != 1 {
		t.Fatalf("dispatched %d callbacks, want 1", len(queued))
	}
	queued[0]()
	if coordinator.State().Active() {
		t.Fatal("dispatched expiry did not clear")
	}
}

func TestNopPlatformScrollsInline(t *testing.T) {
	coordinator := New(Config{Clock: clock.Fake(epoch)})
	defer coordinator.Close()
	if !coordinator.Request("1", rows(1), nil) {
		t.Fatal("request did not arm")
	}
}
