// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the time source for tabula's scheduled side
// effects: the highlight expiry timer and relative date rendering.
//
// Components hold a [Clock] instead of calling time.Now or
// time.AfterFunc. Production code passes [Real]; tests pass a
// [FakeClock] and move time explicitly:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	coordinator := highlight.New(highlight.Config{Clock: fake, ...})
//	coordinator.Request("q-7", rows, pager)
//	fake.Advance(3 * time.Second) // expiry fires synchronously here
//
// FakeClock runs AfterFunc callbacks on the goroutine that calls
// Advance, in deadline order, which makes timer-driven state machines
// deterministic without sleeping.
package clock
