package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-snake/config"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Note frequencies used by the effects
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
)

// SoundManager plays short synthesized effects for game events
// Every Play method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool
	crashSeed   int64
}

// NewSoundManager creates a sound manager with volume and mute from cfg
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	mixer := &beep.Mixer{}
	sm := &SoundManager{
		mixer: mixer,
		volume: &effects.Volume{
			Streamer: mixer,
			Base:     2,
		},
		crashSeed: time.Now().UnixNano(),
	}
	sm.volume.Volume = VolumeExponent(cfg.MasterVolume)
	sm.volume.Silent = !cfg.Enabled || cfg.MasterVolume <= 0
	return sm
}

// VolumeExponent converts a linear 0..1 gain into a base-2 exponent for effects.Volume
func VolumeExponent(gain float64) float64 {
	if gain <= 0 {
		return math.Inf(-1)
	}
	if gain > 1 {
		gain = 1
	}
	return math.Log2(gain)
}

// Initialize sets up the speaker; failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// 100ms buffer keeps latency low enough for per-move effects
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	log.Printf("audio: speaker ready at %d Hz", sampleRate)
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()

	// beep has no speaker close; clearing streamers silences output
	sm.initialized = false
}

// ToggleMute flips the silent flag and returns true when muted
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.volume.Silent = !sm.volume.Silent
	return sm.volume.Silent
}

// Muted reports whether output is silenced
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return sm.volume.Silent
}

// PlayFood plays a short rising blip
func (sm *SoundManager) PlayFood() {
	sm.play(NewToneGenerator(sampleRate, noteC5, noteG5, 70*time.Millisecond))
}

// PlayBonus plays a quick major arpeggio
func (sm *SoundManager) PlayBonus() {
	sm.play(beep.Seq(
		NewToneGenerator(sampleRate, noteC5, noteC5, 60*time.Millisecond),
		NewToneGenerator(sampleRate, noteE5, noteE5, 60*time.Millisecond),
		NewToneGenerator(sampleRate, noteG5, noteG5, 60*time.Millisecond),
		NewToneGenerator(sampleRate, noteC6, noteC6, 120*time.Millisecond),
	))
}

// PlayBonusAppear plays a soft high ping
func (sm *SoundManager) PlayBonusAppear() {
	sine, err := generators.SineTone(sampleRate, noteC6)
	if err != nil {
		log.Printf("audio: sine tone: %v", err)
		return
	}
	sm.play(&effects.Volume{
		Streamer: beep.Take(sampleRate.N(40*time.Millisecond), sine),
		Base:     2,
		Volume:   -2,
	})
}

// PlayCollision plays the crash noise
func (sm *SoundManager) PlayCollision() {
	sm.mu.Lock()
	sm.crashSeed++
	seed := sm.crashSeed
	sm.mu.Unlock()

	sm.play(beep.Take(sampleRate.N(400*time.Millisecond), NewCrashGenerator(sampleRate, seed)))
}

// PlayClear plays the victory fanfare
func (sm *SoundManager) PlayClear() {
	sm.play(beep.Seq(
		NewToneGenerator(sampleRate, noteG5, noteG5, 100*time.Millisecond),
		beep.Silence(sampleRate.N(30*time.Millisecond)),
		NewToneGenerator(sampleRate, noteG5, noteG5, 100*time.Millisecond),
		beep.Silence(sampleRate.N(30*time.Millisecond)),
		NewToneGenerator(sampleRate, noteC6, noteC6, 400*time.Millisecond),
	))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
