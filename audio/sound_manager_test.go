package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-snake/config"
)

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(config.AudioConfig{Enabled: true, MasterVolume: 0.5})

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlayFood()
	sm.PlayBonus()
	sm.PlayBonusAppear()
	sm.PlayCollision()
	sm.PlayClear()
	sm.Cleanup()
}

func TestSoundManagerMute(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.AudioConfig
		wantMuted bool
	}{
		{"Enabled", config.AudioConfig{Enabled: true, MasterVolume: 0.5}, false},
		{"Disabled", config.AudioConfig{Enabled: false, MasterVolume: 0.5}, true},
		{"Zero volume", config.AudioConfig{Enabled: true, MasterVolume: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSoundManager(tt.cfg)
			if sm.Muted() != tt.wantMuted {
				t.Errorf("Muted() = %v, want %v", sm.Muted(), tt.wantMuted)
			}
			if got := sm.ToggleMute(); got == tt.wantMuted {
				t.Error("ToggleMute did not flip the state")
			}
		})
	}
}

func TestVolumeExponent(t *testing.T) {
	if got := VolumeExponent(1); got != 0 {
		t.Errorf("Full gain exponent = %f, want 0", got)
	}
	if got := VolumeExponent(0.5); math.Abs(got+1) > 1e-12 {
		t.Errorf("Half gain exponent = %f, want -1", got)
	}
	if got := VolumeExponent(0); !math.IsInf(got, -1) {
		t.Errorf("Zero gain exponent = %f, want -Inf", got)
	}
	if got := VolumeExponent(3); got != 0 {
		t.Errorf("Gain above 1 must clamp, got %f", got)
	}
}

// drain streams s to completion and returns the sample count and peak amplitude
func drain(s beep.Streamer, limit int) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestToneGeneratorIsFinite(t *testing.T) {
	g := NewToneGenerator(sampleRate, noteC5, noteG5, 70*time.Millisecond)
	n, peak := drain(g, sampleRate.N(time.Second))

	if want := sampleRate.N(70 * time.Millisecond); n != want {
		t.Errorf("Tone produced %d samples, want %d", n, want)
	}
	if peak <= 0 || peak > 1 {
		t.Errorf("Tone peak %f out of range", peak)
	}
	if err := g.Err(); err != nil {
		t.Errorf("Unexpected error %v", err)
	}
}

func TestCrashGeneratorBounded(t *testing.T) {
	want := sampleRate.N(400 * time.Millisecond)
	n, peak := drain(beep.Take(want, NewCrashGenerator(sampleRate, 42)), want*2)

	if n != want {
		t.Errorf("Crash produced %d samples, want %d", n, want)
	}
	if peak <= 0 || peak > 1 {
		t.Errorf("Crash peak %f out of range", peak)
	}
}
