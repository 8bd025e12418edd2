package tui

import (
	"sort"
	"time"
)

// DefaultHold is how long a key press counts as held when no config is given.
const DefaultHold = 300 * time.Millisecond

// heldKeys turns terminal key presses into press/release pairs. Terminals
// report repeats while a key is held but never the release, so a key is
// released once no repeat arrived within the hold window.
type heldKeys struct {
	hold  time.Duration
	until map[int]time.Time
}

func newHeldKeys(hold time.Duration) *heldKeys {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &heldKeys{hold: hold, until: make(map[int]time.Time)}
}

// press records a press or repeat and reports whether the key was up before.
func (h *heldKeys) press(code int, now time.Time) bool {
	_, held := h.until[code]
	h.until[code] = now.Add(h.hold)
	return !held
}

// expire returns the keys whose hold window ended at or before now, sorted.
func (h *heldKeys) expire(now time.Time) []int {
	var released []int
	for code, t := range h.until {
		if !now.Before(t) {
			released = append(released, code)
			delete(h.until, code)
		}
	}
	sort.Ints(released)
	return released
}

// releaseAll forgets every held key and returns them, sorted.
func (h *heldKeys) releaseAll() []int {
	released := make([]int, 0, len(h.until))
	for code := range h.until {
		released = append(released, code)
	}
	clear(h.until)
	sort.Ints(released)
	return released
}
