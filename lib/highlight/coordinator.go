// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"io"
	"log/slog"
	"time"

	"github.com/bureau-foundation/tabula/lib/clock"
	"github.com/bureau-foundation/tabula/lib/dataview"
	"github.com/bureau-foundation/tabula/lib/record"
)

const (
	// DefaultDuration is how long a highlight stays active.
	DefaultDuration = 3000 * time.Millisecond

	// DefaultQueryParam is the deep-link parameter naming the target.
	DefaultQueryParam = "highlight"
)

// State is the active highlight. The zero value means none.
type State struct {
	TargetID    string
	ActivatedAt time.Time
}

// Active reports whether a row is highlighted.
func (state State) Active() bool { return state.TargetID != "" }

// Pager is the pagination surface the coordinator switches pages
// through.
type Pager interface {
	// ClientPaging reports whether pages are sliced locally. The
	// coordinator never switches pages in server mode.
	ClientPaging() bool
	PageSize() int
	CurrentPage() int
	SetPage(page int)
}

// Config holds the coordinator's collaborators.
type Config struct {
	// Platform receives scroll and URL requests. Default: NopPlatform.
	Platform Platform

	// Clock schedules expiry. Default: clock.Real().
	Clock clock.Clock

	// Duration is the highlight lifetime. Default: DefaultDuration.
	Duration time.Duration

	// QueryParam is removed from the location on expiry.
	// Default: DefaultQueryParam.
	QueryParam string

	// Dispatch runs timer callbacks on the owner's event loop.
	// Default: call inline.
	Dispatch func(func())

	// OnChange is called whenever State changes.
	OnChange func(State)

	// Logger receives debug records. Default: discard.
	Logger *slog.Logger
}

// Coordinator runs the highlight state machine. It is not safe for
// concurrent use: Request and Close must be called from the same
// goroutine that Dispatch delivers to.
type Coordinator struct {
	config Config

	state         State
	lastProcessed string

	// generation increments whenever pending effects are cancelled.
	// Callbacks captured under an older generation do nothing.
	generation  uint64
	timer       *clock.Timer
	cancelFrame func()
	closed      bool
}

// New returns an idle coordinator.
func New(config Config) *Coordinator {
	if config.Platform == nil {
		config.Platform = NopPlatform{}
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Duration <= 0 {
		config.Duration = DefaultDuration
	}
	if config.QueryParam == "" {
		config.QueryParam = DefaultQueryParam
	}
	if config.Dispatch == nil {
		config.Dispatch = func(fn func()) { fn() }
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coordinator{config: config}
}

// State returns the active highlight.
func (coordinator *Coordinator) State() State { return coordinator.state }

// IsHighlighted reports whether id is the active highlight.
func (coordinator *Coordinator) IsHighlighted(id string) bool {
	return coordinator.state.Active() && coordinator.state.TargetID == id
}

// LastProcessed returns the id of the most recent armed request.
func (coordinator *Coordinator) LastProcessed() string { return coordinator.lastProcessed }

// Request highlights the row with the given id if it is present in
// ordered, the filtered and sorted collection before pagination. It
// reports whether the coordinator armed.
//
// Requests are ignored when id is empty, when it equals the last id
// already processed, or when no row in ordered has that id. A request
// that was ignored because the row is missing is not remembered, so
// the owner can repeat it after the collection changes.
func (coordinator *Coordinator) Request(id string, ordered []record.Row, pager Pager) bool {
	if coordinator.closed || id == "" || id == coordinator.lastProcessed {
		return false
	}

	index := record.IndexOf(ordered, id)
	if index < 0 {
		coordinator.config.Logger.Debug("highlight target not in view", "id", id)
		return false
	}

	coordinator.cancelPending()
	coordinator.lastProcessed = id

	if pager != nil && pager.ClientPaging() {
		target := dataview.PageOf(index, pager.PageSize())
		if target != pager.CurrentPage() {
			pager.SetPage(target)
		}
	}

	coordinator.state = State{TargetID: id, ActivatedAt: coordinator.config.Clock.Now()}
	coordinator.notify()
	coordinator.config.Logger.Debug("highlight armed", "id", id, "index", index)

	generation := coordinator.generation
	coordinator.scheduleScroll(generation, id)
	coordinator.timer = coordinator.config.Clock.AfterFunc(coordinator.config.Duration, func() {
		coordinator.config.Dispatch(func() { coordinator.expire(generation) })
	})
	return true
}

// scheduleScroll waits for two committed frames before scrolling, so
// a page switch made while arming is rendered before the row is
// looked up.
func (coordinator *Coordinator) scheduleScroll(generation uint64, id string) {
	platform := coordinator.config.Platform
	coordinator.cancelFrame = platform.RequestFrame(func() {
		if coordinator.stale(generation) {
			return
		}
		coordinator.cancelFrame = platform.RequestFrame(func() {
			if coordinator.stale(generation) {
				return
			}
			platform.ScrollIntoView(id)
		})
	})
}

func (coordinator *Coordinator) expire(generation uint64) {
	if coordinator.stale(generation) {
		return
	}
	coordinator.config.Logger.Debug("highlight expired", "id", coordinator.state.TargetID)
	coordinator.timer = nil
	coordinator.state = State{}
	coordinator.config.Platform.RemoveQueryParam(coordinator.config.QueryParam)
	coordinator.notify()
}

// Reset forgets the last processed id so the same id can arm again.
func (coordinator *Coordinator) Reset() {
	coordinator.lastProcessed = ""
}

// Close cancels the pending expiry and deferred scroll. Later
// requests are ignored.
func (coordinator *Coordinator) Close() {
	if coordinator.closed {
		return
	}
	coordinator.cancelPending()
	coordinator.closed = true
	coordinator.state = State{}
}

func (coordinator *Coordinator) stale(generation uint64) bool {
	return coordinator.closed || generation != coordinator.generation
}

func (coordinator *Coordinator) cancelPending() {
	coordinator.generation++
	if coordinator.timer != nil {
		coordinator.timer.Stop()
		coordinator.timer = nil
	}
	if coordinator.cancelFrame != nil {
		coordinator.cancelFrame()
		coordinator.cancelFrame = nil
	}
}

func (coordinator *Coordinator) notify() {
	if coordinator.config.OnChange != nil {
		coordinator.config.OnChange(coordinator.state)
	}
}
