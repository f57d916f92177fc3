package engine

import (
	"github.com/lixenwraith/vi-snake/components"
	"github.com/lixenwraith/vi-snake/snake"
)

// GameState is the session lifecycle state
type GameState uint8

const (
	StateRunning GameState = iota
	StatePaused
	StateOver
)

func (s GameState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Outcome records why a session ended
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeCollision
	OutcomeBoardCleared
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "None"
	case OutcomeCollision:
		return "Collision"
	case OutcomeBoardCleared:
		return "BoardCleared"
	default:
		return "Unknown"
	}
}

// StepResult describes what one simulation step did
type StepResult struct {
	Moved         bool
	AteFood       bool
	AteBonus      bool
	BonusAppeared bool
	BonusExpired  bool
	GameOver      bool
	Outcome       Outcome
	Score         int
}

// Snapshot is a tick-consistent copy of everything the renderer draws
type Snapshot struct {
	Size     int
	Segments []snake.Segment // Head first

	Food        components.Position // Unplaced when absent
	Bonus       components.Position // Unplaced when absent
	BonusFlavor components.Flavor

	Score  int
	Length int
	Moves  uint64
	Ticks  uint64

	State   GameState
	Outcome Outcome
	Heading components.Direction

	ShowGridSquares bool
	HidePauseButton bool
}
