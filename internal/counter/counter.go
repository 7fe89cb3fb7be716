/* Copyright (c) 2025 FuturesLab <https://futureslab.github.io>
 * SPDX-License-Identifier: BSD-3-Clause */

// Package counter produces the bug-count ticker animation: 0 up to the total
// over one second of 20ms ticks, linear increments rounded up so the last
// tick lands exactly on the total.
package counter

import (
	"context"
	"time"
)

const (
	Duration = time.Second
	Tick     = 20 * time.Millisecond
)

// TickMS is the tick interval in milliseconds, as embedded in the page.
const TickMS = int(Tick / time.Millisecond)

// Steps returns the successive values the counter displays. The sequence is
// strictly increasing and always ends on total; it never overshoots.
func Steps(total int) []int {
	if total <= 0 {
		return []int{0}
	}
	ticks := int(Duration / Tick)
	inc := (total + ticks - 1) / ticks
	steps := make([]int, 0, ticks)
	for v := inc; v < total; v += inc {
		steps = append(steps, v)
	}
	return append(steps, total)
}

// Run drives fn through Steps(total) on a real ticker. It stops early when
// ctx is cancelled and otherwise always delivers the final total.
func Run(ctx context.Context, total int, fn func(int)) error {
	t := time.NewTicker(Tick)
	defer t.Stop()
	for _, v := range Steps(total) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			fn(v)
		}
	}
	return nil
}
