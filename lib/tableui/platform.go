// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"fmt"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/tabula/lib/highlight"
)

// frameMsg runs the frames whose render has been produced.
type frameMsg struct{}

type frame struct {
	fn       func()
	canceled bool

	// after is the render count when the frame was requested; the
	// frame runs once a later render exists.
	after uint64
}

// Platform implements highlight.Platform for the terminal viewer. It
// is used only from the bubbletea event loop.
//
// bubbletea renders Model.View after every Update, and View reports
// each render through markRendered. A requested frame runs on the
// first frameMsg handled after such a render.
type Platform struct {
	link *url.URL

	frames         []*frame
	frameScheduled bool
	renders        uint64

	scrollTarget  string
	scrollPending bool
}

var _ highlight.Platform = (*Platform)(nil)

// NewPlatform creates a platform for the given deep link, such as
// "tabula://quotes?highlight=q-17". An empty link is allowed.
func NewPlatform(link string) (*Platform, error) {
	platform := &Platform{}
	if link == "" {
		return platform, nil
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("parsing link %q: %w", link, err)
	}
	platform.link = parsed
	return platform, nil
}

// QueryParam returns the value of a query parameter of the link.
func (platform *Platform) QueryParam(name string) string {
	if platform.link == nil {
		return ""
	}
	return platform.link.Query().Get(name)
}

// Link returns the current deep link, or "".
func (platform *Platform) Link() string {
	if platform.link == nil {
		return ""
	}
	return platform.link.String()
}

// ScrollIntoView asks the model to bring the row into view, centered.
func (platform *Platform) ScrollIntoView(rowID string) {
	platform.scrollTarget = rowID
	platform.scrollPending = true
}

// RemoveQueryParam drops a parameter from the link, leaving the rest
// of the link untouched.
func (platform *Platform) RemoveQueryParam(name string) {
	if platform.link == nil {
		return
	}
	query := platform.link.Query()
	if !query.Has(name) {
		return
	}
	query.Del(name)
	platform.link.RawQuery = query.Encode()
}

// RequestFrame queues fn to run after the next render.
func (platform *Platform) RequestFrame(fn func()) (cancel func()) {
	queued := &frame{fn: fn, after: platform.renders}
	platform.frames = append(platform.frames, queued)
	return func() { queued.canceled = true }
}

// hasFrames reports whether a frame is waiting.
func (platform *Platform) hasFrames() bool {
	for _, queued := range platform.frames {
		if !queued.canceled {
			return true
		}
	}
	return false
}

// markRendered records that the model produced a frame.
func (platform *Platform) markRendered() {
	if platform != nil {
		platform.renders++
	}
}

// runFrames runs the frames requested before the latest render.
// Frames they request wait for the next render.
func (platform *Platform) runFrames() {
	platform.frameScheduled = false
	var due, waiting []*frame
	for _, queued := range platform.frames {
		switch {
		case queued.canceled:
		case queued.after < platform.renders:
			due = append(due, queued)
		default:
			waiting = append(waiting, queued)
		}
	}
	platform.frames = waiting
	for _, queued := range due {
		if !queued.canceled {
			queued.fn()
		}
	}
}

// takeScroll returns and clears the pending scroll target.
func (platform *Platform) takeScroll() (string, bool) {
	if !platform.scrollPending {
		return "", false
	}
	platform.scrollPending = false
	return platform.scrollTarget, true
}

// scheduleFrame returns a command delivering frameMsg, or nil when
// nothing is queued or a frameMsg is already on its way. The message
// is handled after the render that follows the current Update.
func (platform *Platform) scheduleFrame() tea.Cmd {
	if platform == nil || platform.frameScheduled || !platform.hasFrames() {
		return nil
	}
	platform.frameScheduled = true
	return func() tea.Msg { return frameMsg{} }
}

// dispatchMsg carries a function handed to the Dispatcher.
type dispatchMsg struct {
	fn func()
}

// Dispatcher moves work from other goroutines onto the event loop.
// Pass Dispatch to datatable.Deps and rowsource.BindingConfig.
type Dispatcher struct {
	queue chan func()
	done  chan struct{}
}

// NewDispatcher creates a dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		queue: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Dispatch queues fn for the event loop. It blocks while the queue is
// full and drops fn after Close. It must not be called from the event
// loop itself once the queue can fill.
func (dispatcher *Dispatcher) Dispatch(fn func()) {
	select {
	case dispatcher.queue <- fn:
	case <-dispatcher.done:
	}
}

// Close releases goroutines blocked in Dispatch. Call it after the
// program exits.
func (dispatcher *Dispatcher) Close() {
	select {
	case <-dispatcher.done:
	default:
		close(dispatcher.done)
	}
}

// listen returns a command that waits for the next dispatched
// function.
func (dispatcher *Dispatcher) listen() tea.Cmd {
	if dispatcher == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case fn := <-dispatcher.queue:
			return dispatchMsg{fn: fn}
		case <-dispatcher.done:
			return nil
		}
	}
}
