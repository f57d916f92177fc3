package engine

import (
	"testing"
	"time"
)

func TestPausableClockFreezesWhilePaused(t *testing.T) {
	tp := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(tp)

	tp.Advance(1 * time.Second)
	if got := pc.PlayTime(); got != time.Second {
		t.Errorf("PlayTime = %v, want 1s", got)
	}

	pc.Pause()
	frozen := pc.Now()
	tp.Advance(5 * time.Second)
	if !pc.Now().Equal(frozen) {
		t.Errorf("Clock moved while paused: %v -> %v", frozen, pc.Now())
	}
	if got := pc.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("TotalPauseDuration = %v, want 5s", got)
	}

	pc.Resume()
	tp.Advance(2 * time.Second)
	if got := pc.PlayTime(); got != 3*time.Second {
		t.Errorf("PlayTime = %v, want 3s", got)
	}
}

func TestPausableClockIdempotentToggles(t *testing.T) {
	tp := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(tp)

	pc.Pause()
	tp.Advance(time.Second)
	pc.Pause() // Must not restart the pause
	tp.Advance(time.Second)
	pc.Resume()
	pc.Resume()

	if got := pc.TotalPauseDuration(); got != 2*time.Second {
		t.Errorf("TotalPauseDuration = %v, want 2s", got)
	}
	if pc.IsPaused() {
		t.Error("Expected running clock")
	}
}

func TestPausableClockReset(t *testing.T) {
	tp := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(tp)

	tp.Advance(10 * time.Second)
	pc.Pause()
	pc.Reset()
	tp.Advance(3 * time.Second)

	if got := pc.PlayTime(); got != 0 {
		t.Errorf("PlayTime after reset while paused = %v, want 0", got)
	}

	pc.Resume()
	tp.Advance(time.Second)
	if got := pc.PlayTime(); got != time.Second {
		t.Errorf("PlayTime = %v, want 1s", got)
	}
}
