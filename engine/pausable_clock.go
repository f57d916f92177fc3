package engine

import (
	"sync"
	"time"
)

// PausableClock tracks play time that stands still while the game is paused
type PausableClock struct {
	mu sync.RWMutex

	realStartTime time.Time // Real time at creation or last reset
	gameStartTime time.Time // Game time epoch

	paused          bool
	pauseStartTime  time.Time     // Real time the current pause began
	totalPausedTime time.Duration // Cumulative pause duration since reset

	source TimeProvider
}

// NewPausableClock creates a running clock reading from source, real time when nil
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	now := source.Now()
	return &PausableClock{
		realStartTime: now,
		gameStartTime: now,
		source:        source,
	}
}

// Now returns current game time, frozen during a pause
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.gameStartTime.Add(pc.elapsedLocked())
}

// PlayTime returns game time elapsed since creation or the last Reset
func (pc *PausableClock) PlayTime() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.elapsedLocked()
}

func (pc *PausableClock) elapsedLocked() time.Duration {
	end := pc.source.Now()
	if pc.paused {
		end = pc.pauseStartTime
	}
	return end.Sub(pc.realStartTime) - pc.totalPausedTime
}

// Pause stops game time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStartTime = pc.source.Now()
}

// Resume continues game time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
	pc.paused = false
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// Reset restarts play time at zero, keeping the pause state
func (pc *PausableClock) Reset() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := pc.source.Now()
	pc.realStartTime = now
	pc.gameStartTime = now
	pc.totalPausedTime = 0
	if pc.paused {
		pc.pauseStartTime = now
	}
}

// TotalPauseDuration returns cumulative pause time including the current pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.paused {
		total += pc.source.Now().Sub(pc.pauseStartTime)
	}
	return total
}
