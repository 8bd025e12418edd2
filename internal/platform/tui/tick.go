// Package tui runs the game in a terminal: a Bubble Tea frame loop over the
// software backend, key mapping, half-block presentation and an SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultTickRate = 30
	// maxFrameTime caps dt so a stalled terminal does not teleport the paddle.
	maxFrameTime = 250 * time.Millisecond
)

// TickMsg asks the model to run one frame at the carried time.
type TickMsg time.Time

// frameInterval is the time between frames at rate frames per second.
// Non-positive rates fall back to the default rate.
func frameInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = defaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// frameDelta is the simulation step for a frame at now. The first frame and
// frames whose clock went backwards get one interval; long gaps are capped.
func frameDelta(last, now time.Time, rate int) time.Duration {
	if last.IsZero() || !now.After(last) {
		return frameInterval(rate)
	}
	return min(now.Sub(last), maxFrameTime)
}

// tickCmd schedules the next frame. The frame loop re-arms it after every frame.
func tickCmd(rate int) tea.Cmd {
	return tea.Tick(frameInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
