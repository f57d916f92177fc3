package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MinTicksPerSecond is the slowest accepted simulation rate
	MinTicksPerSecond = 1

	// MaxTicksPerSecond is the fastest accepted simulation rate
	MaxTicksPerSecond = 50
)

// TickInterval converts a ticks-per-second setting into the scheduler interval
func TickInterval(ticksPerSecond int) time.Duration {
	if ticksPerSecond < MinTicksPerSecond {
		ticksPerSecond = MinTicksPerSecond
	}
	return time.Second / time.Duration(ticksPerSecond)
}
