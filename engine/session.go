package engine

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/lixenwraith/vi-snake/components"
	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/grid"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/snake"
	"github.com/lixenwraith/vi-snake/systems"
)

// Recorder observes a session for later replay
// Calls arrive under the session lock and must not call back into the session
type Recorder interface {
	BeginSession(settings config.Settings, seed int64)
	RecordInput(tick uint64, b input.Button)
	EndSession(ticks uint64, score int, outcome Outcome)
}

// Session is one game: grid, snake, spawner, bonus schedule and score
// Step is driven by a single goroutine; input and snapshots may come from any goroutine
type Session struct {
	mu sync.Mutex

	settings config.Settings
	seed     int64
	rng      *rand.Rand

	grid    *grid.Grid
	body    *snake.Body
	spawner *systems.SpawnSystem
	bonus   *systems.BonusSchedule
	score   *systems.ScoreSystem

	food        components.Position
	bonusPos    components.Position
	bonusFlavor components.Flavor

	state   GameState
	outcome Outcome
	pending components.Direction
	ticks   uint64
	moves   uint64

	recorder  Recorder
	recording bool // A BeginSession is waiting for its EndSession
}

// NewSession validates settings and lays out a fresh game seeded with seed
func NewSession(settings config.Settings, seed int64) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		settings: settings,
		score:    systems.NewScoreSystem(),
	}
	s.resetLocked(seed)
	return s, nil
}

// resetLocked rebuilds every piece of game state from settings
func (s *Session) resetLocked(seed int64) {
	n := s.settings.GridSize
	length := s.settings.StartLength

	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
	s.grid = grid.New(n)
	s.body = snake.New(s.grid.Area())
	s.spawner = systems.NewSpawnSystem(s.grid, s.rng)
	s.bonus = systems.NewBonusSchedule(n, length)
	s.score.Reset()

	head := components.Position{
		Row: int(float64(n) * constants.StartRowFraction),
		Col: length + constants.StartColumnOffset,
	}
	if err := s.body.Lay(head, components.DirRight, length); err != nil {
		invariant(err, "lay %d segments at %v", length, head)
	}
	s.body.Walk(func(node snake.Node) bool {
		s.grid.Set(node.Pos, components.CellSnake)
		return true
	})

	s.bonusPos = components.Unplaced
	s.bonusFlavor = 0
	s.food, _ = s.spawner.PlaceFood(components.Unplaced)

	s.pending = components.DirRight
	s.outcome = OutcomeNone
	s.ticks, s.moves = 0, 0
	s.state = StateRunning
	if s.settings.StartPaused {
		s.state = StatePaused
	}

	if s.recorder != nil {
		s.recorder.BeginSession(s.settings, s.seed)
		s.recording = true
	}
}

// SetRecorder attaches r and announces the current session to it
func (s *Session) SetRecorder(r Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recorder = r
	if r != nil {
		r.BeginSession(s.settings, s.seed)
		s.recording = true
	}
}

// CloseRecording reports an unfinished session to the recorder as abandoned at the current tick
func (s *Session) CloseRecording() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endRecordingLocked()
}

func (s *Session) endRecordingLocked() {
	if s.recorder != nil && s.recording {
		s.recorder.EndSession(s.ticks, s.score.Score(), s.outcome)
		s.recording = false
	}
}

// SetScoreListener registers fn for every score change
// fn runs under the session lock and must not call back into the session
func (s *Session) SetScoreListener(fn func(score int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score.SetListener(fn)
}

// Step advances the game by one tick; a no-op unless running
func (s *Session) Step() StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return StepResult{GameOver: s.state == StateOver, Outcome: s.outcome, Score: s.score.Score()}
	}
	if s.body.Len() == 0 {
		invariant(nil, "step on empty body")
	}
	s.ticks++

	res := s.moveLocked()
	res.Score = s.score.Score()
	s.checkLocked()
	return res
}

func (s *Session) moveLocked() StepResult {
	var res StepResult

	dir := s.pending
	next := s.body.Head().Pos.Move(dir)

	// The tail square is free before the collision test, so chasing the tail is legal
	s.grid.Set(s.body.Tail().Pos, components.CellEmpty)

	if !s.grid.InBounds(next) || s.grid.At(next) == components.CellSnake {
		s.body.DropTail()
		s.endLocked(OutcomeCollision)
		res.GameOver, res.Outcome = true, OutcomeCollision
		return res
	}

	target := s.grid.At(next)
	vacated, vacatedDir := s.body.Advance(next, dir)
	s.grid.Set(next, components.CellSnake)
	s.moves++
	res.Moved = true

	switch target {
	case components.CellFood:
		res.AteFood = true
		s.food = components.Unplaced
	case components.CellBonus:
		res.AteBonus = true
		s.bonusPos = components.Unplaced
		s.bonus.Hide()
	}

	exclude := vacated
	if res.AteFood || res.AteBonus {
		s.bonus.Grow()
		s.body.Grow(vacated, vacatedDir)
		s.grid.Set(vacated, components.CellSnake)
		exclude = next

		if res.AteBonus {
			s.score.AwardBonus()
		} else {
			s.score.AwardFood()
		}

		if s.body.Len() == s.grid.Area() {
			s.endLocked(OutcomeBoardCleared)
			res.GameOver, res.Outcome = true, OutcomeBoardCleared
			return res
		}
		if res.AteFood {
			s.food, _ = s.spawner.PlaceFood(exclude)
		}
	}

	switch s.bonus.Advance() {
	case systems.BonusAppear:
		if s.body.Len() <= s.grid.Area()-constants.BonusMinFreeCells && !s.bonusPos.IsPlaced() {
			if pos, flavor, ok := s.spawner.PlaceBonus(exclude); ok {
				s.bonusPos, s.bonusFlavor = pos, flavor
				res.BonusAppeared = true
			}
		}
	case systems.BonusExpire:
		if s.bonusPos.IsPlaced() {
			s.grid.Set(s.bonusPos, components.CellEmpty)
			s.bonusPos = components.Unplaced
			res.BonusExpired = true
		}
	}

	// Food eaten while the bonus held the last free cell is placed once a cell frees up
	if !s.food.IsPlaced() {
		s.food, _ = s.spawner.PlaceFood(components.Unplaced)
	}

	return res
}

func (s *Session) endLocked(outcome Outcome) {
	s.state = StateOver
	s.outcome = outcome
	s.endRecordingLocked()
}

// checkLocked verifies grid occupancy against the body after every step
func (s *Session) checkLocked() {
	if err := s.body.Validate(); err != nil {
		invariant(err, "body chain after tick %d", s.ticks)
	}
	if got, want := s.grid.Count(components.CellSnake), s.body.Len(); got != want {
		invariant(nil, "grid holds %d snake cells, body length %d", got, want)
	}
	if n := s.grid.Count(components.CellFood); n > 1 {
		invariant(nil, "%d food cells", n)
	}
	if n := s.grid.Count(components.CellBonus); n > 1 {
		invariant(nil, "%d bonus cells", n)
	}
}

// Apply routes a logical button to steering or pause
func (s *Session) Apply(b input.Button) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateOver || b == input.ButtonNone {
		return
	}
	if s.recorder != nil && s.recording {
		s.recorder.RecordInput(s.ticks, b)
	}

	if b == input.ButtonTogglePause {
		s.togglePauseLocked()
		return
	}
	if d, ok := b.Direction(); ok {
		s.steerLocked(d)
	}
}

// Steer sets the direction for the next tick
// Rejected while not running or when it would reverse the last executed move
func (s *Session) Steer(d components.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steerLocked(d)
}

func (s *Session) steerLocked(d components.Direction) bool {
	if s.state != StateRunning {
		return false
	}
	next, ok := s.body.Heading().Turn(d)
	if !ok {
		return false
	}
	s.pending = next
	return true
}

// TogglePause flips between running and paused; no effect after game over
func (s *Session) TogglePause() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.togglePauseLocked()
	return s.state
}

func (s *Session) togglePauseLocked() {
	switch s.state {
	case StateRunning:
		s.state = StatePaused
	case StatePaused:
		s.state = StateRunning
	}
}

// Retry starts a new game from the same settings with a seed drawn from the current one
func (s *Session) Retry() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.endRecordingLocked()
	s.resetLocked(s.rng.Int63())
}

// State returns the lifecycle state
func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Score returns the current score
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score.Score()
}

// Ticks returns the number of steps executed while running
func (s *Session) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Seed returns the seed of the current game
func (s *Session) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Settings returns the settings the session was built from
func (s *Session) Settings() config.Settings {
	return s.settings
}

// Snapshot copies the drawable state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Size:            s.grid.Size(),
		Food:            s.food,
		Bonus:           s.bonusPos,
		BonusFlavor:     s.bonusFlavor,
		Score:           s.score.Score(),
		Length:          s.body.Len(),
		Moves:           s.moves,
		Ticks:           s.ticks,
		State:           s.state,
		Outcome:         s.outcome,
		ShowGridSquares: s.settings.ShowGridSquares,
		HidePauseButton: s.settings.HidePauseButton,
	}
	if s.body.Len() > 0 {
		snap.Segments = s.body.Segments()
		snap.Heading = s.body.Heading()
	}
	return snap
}
