package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator produces a sine tone gliding linearly from one frequency to another
// with a short attack and exponential release
type ToneGenerator struct {
	sr       beep.SampleRate
	from, to float64
	samples  int
	pos      int
	phase    float64
}

// NewToneGenerator creates a finite tone lasting d
func NewToneGenerator(sr beep.SampleRate, from, to float64, d time.Duration) *ToneGenerator {
	return &ToneGenerator{
		sr:      sr,
		from:    from,
		to:      to,
		samples: sr.N(d),
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.samples {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.samples {
			return i, true
		}
		progress := float64(g.pos) / float64(g.samples)
		freq := g.from + (g.to-g.from)*progress

		// Phase accumulation keeps the glide click-free
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		attack := math.Min(float64(g.pos)/float64(g.sr)/0.005, 1.0)
		release := math.Exp(-progress * 3)
		sample := 0.3 * attack * release * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// CrashGenerator generates a filtered noise burst over a low rumble
type CrashGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
	last float64
}

// NewCrashGenerator creates an endless crash generator; bound it with beep.Take
func NewCrashGenerator(sr beep.SampleRate, seed int64) *CrashGenerator {
	return &CrashGenerator{sr: sr, seed: seed}
}

func (g *CrashGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Quick attack, slower decay
		envelope := math.Exp(-t * 6)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		// One-pole low-pass for a duller crunch
		g.last += 0.2 * (noise - g.last)

		rumble := 0.3 * math.Sin(2*math.Pi*70*t)
		sample := envelope * (0.35*g.last + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrashGenerator) Err() error {
	return nil
}
