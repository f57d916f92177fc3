package replay

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-snake/engine"
)

// ErrStalled reports a session left paused with inputs still pending at later ticks
var ErrStalled = errors.New("replay stalled while paused")

// Result compares one re-simulated session with its recorded outcome
type Result struct {
	Index int
	Seed  int64
	Ticks uint64

	WantScore   int
	GotScore    int
	WantOutcome engine.Outcome
	GotOutcome  engine.Outcome
}

// Match reports whether the re-simulation reproduced the recording
func (r Result) Match() bool {
	return r.WantScore == r.GotScore && r.WantOutcome == r.GotOutcome
}

func (r Result) String() string {
	status := "ok"
	if !r.Match() {
		status = "MISMATCH"
	}
	return fmt.Sprintf("session %d seed %d: %d ticks, score %d (recorded %d), %s (recorded %s): %s",
		r.Index+1, r.Seed, r.Ticks, r.GotScore, r.WantScore, r.GotOutcome, r.WantOutcome, status)
}

// Verify re-simulates every session of rec
func Verify(rec *Recording) ([]Result, error) {
	results := make([]Result, 0, len(rec.Sessions))
	for i := range rec.Sessions {
		res, err := Play(&rec.Sessions[i])
		if err != nil {
			return results, fmt.Errorf("session %d: %w", i+1, err)
		}
		res.Index = i
		results = append(results, res)
	}
	return results, nil
}

// Play re-simulates a single session log
// Inputs recorded at tick k are applied before the step that takes the counter past k
func Play(sl *SessionLog) (Result, error) {
	s, err := engine.NewSession(sl.Settings, sl.Seed)
	if err != nil {
		return Result{}, err
	}

	next := 0
	for s.Ticks() < sl.Ticks && s.State() != engine.StateOver {
		tick := s.Ticks()
		for next < len(sl.Inputs) && sl.Inputs[next].Tick == tick {
			s.Apply(sl.Inputs[next].Button)
			next++
		}
		if s.State() == engine.StatePaused {
			return Result{}, fmt.Errorf("%w at tick %d", ErrStalled, tick)
		}
		s.Step()
	}

	snap := s.Snapshot()
	return Result{
		Seed:        sl.Seed,
		Ticks:       snap.Ticks,
		WantScore:   sl.Score,
		GotScore:    snap.Score,
		WantOutcome: sl.Outcome,
		GotOutcome:  snap.Outcome,
	}, nil
}
