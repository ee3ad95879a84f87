package gesture

import "time"

// Debouncer stabilizes one noisy digital touch channel by requiring two
// temporally separated raw reads to agree before the channel is reported
// active. The two samples come from consecutive ticks rather than an in-line
// wait, so debouncing adds no latency to the tick itself.
//
// This is a conservative two-sample debounce, not a counting or hysteresis
// debounce: it trades oscillation detection for simplicity, and any
// disagreement (or a first read, or reads closer together than the minimum
// stable interval) reports inactive.
type Debouncer struct {
	interval time.Duration
	state    ChannelState
}

// NewDebouncer creates a debouncer requiring reads at least interval apart.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Sample records one raw read and returns the debounced state.
// Agreement between this read and the previous one, taken at least the
// minimum stable interval apart, yields the agreed value; anything else is
// the fail-safe inactive.
func (d *Debouncer) Sample(raw bool, now time.Time) bool {
	prev := d.state
	d.state = ChannelState{Raw: raw, ReadAt: now, Primed: true}

	if !prev.Primed {
		return false
	}
	if raw != prev.Raw {
		return false
	}
	if now.Sub(prev.ReadAt) < d.interval {
		return false
	}
	return raw
}
