package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/lixenwraith/vi-snake/components"
	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/snake"
)

func testSettings(gridSize, startLength int) config.Settings {
	return config.Settings{GridSize: gridSize, StartLength: startLength, TicksPerSecond: 5}
}

func newTestSession(t *testing.T, settings config.Settings) *Session {
	t.Helper()
	s, err := NewSession(settings, 1)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

// setFood moves the food item to pos
func setFood(s *Session, pos components.Position) {
	if s.food.IsPlaced() {
		s.grid.Set(s.food, components.CellEmpty)
	}
	s.grid.Set(pos, components.CellFood)
	s.food = pos
}

func pos(row, col int) components.Position {
	return components.Position{Row: row, Col: col}
}

func segmentPositions(snap Snapshot) []components.Position {
	out := make([]components.Position, len(snap.Segments))
	for i, seg := range snap.Segments {
		out[i] = seg.Pos
	}
	return out
}

func TestNewSessionRejectsInvalidSettings(t *testing.T) {
	_, err := NewSession(testSettings(8, 3), 1)
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestInitialLayout(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	snap := s.Snapshot()

	want := []components.Position{pos(7, 4), pos(7, 3), pos(7, 2)}
	got := segmentPositions(snap)
	if len(got) != len(want) {
		t.Fatalf("Expected %d segments, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Segment %d at %v, want %v", i, got[i], want[i])
		}
	}

	if snap.Heading != components.DirRight {
		t.Errorf("Expected initial heading right, got %v", snap.Heading)
	}
	if snap.State != StateRunning {
		t.Errorf("Expected running, got %v", snap.State)
	}
	if !snap.Food.IsPlaced() || s.grid.At(snap.Food) != components.CellFood {
		t.Errorf("Expected food on the grid, got %v", snap.Food)
	}
	if s.grid.Count(components.CellSnake) != 3 {
		t.Errorf("Expected 3 snake cells, got %d", s.grid.Count(components.CellSnake))
	}
}

func TestStepMovesHead(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	setFood(s, pos(1, 1))

	res := s.Step()
	if !res.Moved || res.GameOver {
		t.Fatalf("Unexpected step result %+v", res)
	}

	snap := s.Snapshot()
	if snap.Segments[0].Pos != pos(7, 5) {
		t.Errorf("Expected head at (7,5), got %v", snap.Segments[0].Pos)
	}
	if s.grid.At(pos(7, 2)) != components.CellEmpty {
		t.Error("Expected (7,2) vacated")
	}
	if snap.Length != 3 || snap.Score != 0 {
		t.Errorf("Expected length 3 score 0, got %d/%d", snap.Length, snap.Score)
	}
}

func TestEatFoodGrows(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	setFood(s, pos(7, 5))
	before := s.bonus.Appear

	res := s.Step()
	if !res.AteFood || res.Score != 50 {
		t.Fatalf("Expected food eaten for 50, got %+v", res)
	}

	snap := s.Snapshot()
	if snap.Length != 4 {
		t.Errorf("Expected length 4, got %d", snap.Length)
	}
	want := []components.Position{pos(7, 5), pos(7, 4), pos(7, 3), pos(7, 2)}
	for i, p := range segmentPositions(snap) {
		if p != want[i] {
			t.Errorf("Segment %d at %v, want %v", i, p, want[i])
		}
	}
	if !snap.Food.IsPlaced() || snap.Food == pos(7, 5) {
		t.Errorf("Expected new food elsewhere, got %v", snap.Food)
	}
	if s.grid.Count(components.CellFood) != 1 {
		t.Errorf("Expected one food cell, got %d", s.grid.Count(components.CellFood))
	}
	if s.bonus.Appear != before+1 {
		t.Errorf("Expected appear threshold to grow by 1, got %f -> %f", before, s.bonus.Appear)
	}
}

func TestWallCollision(t *testing.T) {
	// Head starts at (7,4) moving right on a 10x10 grid
	tests := []struct {
		name  string
		turns map[int]components.Direction // Steering applied before the given move (1-based)
		moves int                          // Move that leaves the grid
	}{
		{"column N+1", nil, 7},
		{"row 0", map[int]components.Direction{1: components.DirUp}, 7},
		{"row N+1", map[int]components.Direction{1: components.DirDown}, 4},
		{"column 0", map[int]components.Direction{1: components.DirUp, 2: components.DirLeft}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, testSettings(10, 3))
			setFood(s, pos(1, 1))

			for i := 1; i < tt.moves; i++ {
				if d, ok := tt.turns[i]; ok && !s.Steer(d) {
					t.Fatalf("Steer %v rejected before move %d", d, i)
				}
				if res := s.Step(); res.GameOver {
					t.Fatalf("Unexpected game over on move %d", i)
				}
			}
			if d, ok := tt.turns[tt.moves]; ok {
				s.Steer(d)
			}

			res := s.Step()
			if !res.GameOver || res.Outcome != OutcomeCollision {
				t.Fatalf("Expected collision on move %d, got %+v", tt.moves, res)
			}

			snap := s.Snapshot()
			if snap.State != StateOver {
				t.Errorf("Expected game over state, got %v", snap.State)
			}
			// The repositioned tail is dropped from the chain
			if snap.Length != 2 || s.grid.Count(components.CellSnake) != 2 {
				t.Errorf("Expected 2 remaining segments, got length %d cells %d", snap.Length, s.grid.Count(components.CellSnake))
			}

			// Further steps do nothing
			ticks := snap.Ticks
			s.Step()
			if s.Ticks() != ticks {
				t.Error("Step advanced after game over")
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	s := newTestSession(t, testSettings(10, 5))
	setFood(s, pos(1, 1))

	for _, d := range []components.Direction{components.DirUp, components.DirLeft} {
		if !s.Steer(d) {
			t.Fatalf("Steer %v rejected", d)
		}
		if res := s.Step(); res.GameOver {
			t.Fatalf("Unexpected game over steering %v", d)
		}
	}

	s.Steer(components.DirDown)
	res := s.Step()
	if !res.GameOver || res.Outcome != OutcomeCollision {
		t.Fatalf("Expected self collision, got %+v", res)
	}
}

func TestFollowingTailIsLegal(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	setFood(s, pos(7, 5))
	s.Step()
	setFood(s, pos(1, 1))

	// Circle a 2x2 square, re-entering the tail cell each move
	moves := []components.Direction{components.DirUp, components.DirLeft, components.DirDown, components.DirRight, components.DirUp}
	for i, d := range moves {
		s.Steer(d)
		if res := s.Step(); res.GameOver {
			t.Fatalf("Move %d (%v) ended the game", i+1, d)
		}
	}

	if got := s.Snapshot().Length; got != 4 {
		t.Errorf("Expected length 4, got %d", got)
	}
}

func TestSteerRejectsReversal(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	setFood(s, pos(1, 1))

	if s.Steer(components.DirLeft) {
		t.Error("Reversal accepted")
	}

	// Up then Down before a tick: Down reverses Up but not the last executed move
	if !s.Steer(components.DirUp) || !s.Steer(components.DirDown) {
		t.Fatal("Expected both turns accepted")
	}
	s.Step()
	if head := s.Snapshot().Segments[0].Pos; head != pos(8, 4) {
		t.Errorf("Expected last accepted turn to win, head at %v", head)
	}
}

func TestPauseBlocksSteppingAndSteering(t *testing.T) {
	settings := testSettings(10, 3)
	settings.StartPaused = true
	s := newTestSession(t, settings)
	setFood(s, pos(1, 1))

	if s.State() != StatePaused {
		t.Fatalf("Expected paused start, got %v", s.State())
	}
	if res := s.Step(); res.Moved || s.Ticks() != 0 {
		t.Error("Step ran while paused")
	}
	if s.Steer(components.DirUp) {
		t.Error("Steer accepted while paused")
	}

	s.Apply(input.ButtonTogglePause)
	if s.State() != StateRunning {
		t.Fatalf("Expected running after toggle, got %v", s.State())
	}
	if res := s.Step(); !res.Moved {
		t.Error("Expected move after unpause")
	}
}

func TestBoardClearedIsVictory(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	fillSerpentine(t, s)

	res := s.Step()
	if !res.GameOver || res.Outcome != OutcomeBoardCleared {
		t.Fatalf("Expected board cleared, got %+v", res)
	}
	if res.Score != 50 {
		t.Errorf("Expected the final food scored, got %d", res.Score)
	}
	if s.grid.Count(components.CellSnake) != 100 {
		t.Errorf("Expected full board, got %d", s.grid.Count(components.CellSnake))
	}
}

// fillSerpentine lays a 99-segment snake over a boustrophedon path with food on the last cell
func fillSerpentine(t *testing.T, s *Session) {
	t.Helper()
	path := laySerpentine(t, s, s.grid.Area()-1)
	last := path[len(path)-1]
	s.grid.Set(last, components.CellFood)
	s.food = last
}

// laySerpentine clears the board and lays a snake of length cells along a boustrophedon path,
// tail at (1,1), heading toward path[length]
func laySerpentine(t *testing.T, s *Session, length int) []components.Position {
	t.Helper()
	n := s.grid.Size()

	var path []components.Position
	for r := 1; r <= n; r++ {
		for c := 1; c <= n; c++ {
			col := c
			if r%2 == 0 {
				col = n + 1 - c
			}
			path = append(path, pos(r, col))
		}
	}

	s.grid.Clear()
	s.body = snake.New(s.grid.Area())
	head := length - 1
	if err := s.body.Lay(path[head], stepDir(t, path[head-1], path[head]), 1); err != nil {
		t.Fatal(err)
	}
	for k := head - 1; k >= 0; k-- {
		s.body.Grow(path[k], stepDir(t, path[k], path[k+1]))
	}
	for k := 0; k <= head; k++ {
		s.grid.Set(path[k], components.CellSnake)
	}
	s.food = components.Unplaced
	s.bonusPos = components.Unplaced
	s.pending = stepDir(t, path[head], path[head+1])
	return path
}

func stepDir(t *testing.T, from, to components.Position) components.Direction {
	t.Helper()
	for _, d := range []components.Direction{components.DirUp, components.DirDown, components.DirLeft, components.DirRight} {
		if from.Move(d) == to {
			return d
		}
	}
	t.Fatalf("%v and %v are not adjacent", from, to)
	return 0
}

func TestBonusAppearsAndIsEaten(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	setFood(s, pos(1, 1))
	s.bonus.Appear = 1

	res := s.Step()
	if !res.BonusAppeared {
		t.Fatalf("Expected bonus to appear, got %+v", res)
	}
	if s.grid.Count(components.CellBonus) != 1 {
		t.Errorf("Expected one bonus cell, got %d", s.grid.Count(components.CellBonus))
	}

	// Move the bonus in front of the head
	snap := s.Snapshot()
	s.grid.Set(snap.Bonus, components.CellEmpty)
	front := snap.Segments[0].Pos.Move(components.DirRight)
	s.grid.Set(front, components.CellBonus)
	s.bonusPos = front

	res = s.Step()
	if !res.AteBonus || res.Score != 200 {
		t.Fatalf("Expected bonus eaten for 200, got %+v", res)
	}

	snap = s.Snapshot()
	if snap.Bonus.IsPlaced() || snap.Length != 4 {
		t.Errorf("Expected bonus cleared and length 4, got %v/%d", snap.Bonus, snap.Length)
	}
	if snap.Food != pos(1, 1) {
		t.Errorf("Bonus must not respawn food, got %v", snap.Food)
	}
}

func TestBonusExpires(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	setFood(s, pos(1, 1))
	s.bonus.Appear = 1
	s.bonus.Disappear = 2

	if !s.Step().BonusAppeared {
		t.Fatal("Expected bonus to appear")
	}
	// Park the bonus away from the head's path
	s.grid.Set(s.bonusPos, components.CellEmpty)
	s.bonusPos = pos(1, 10)
	s.grid.Set(s.bonusPos, components.CellBonus)

	s.Steer(components.DirUp)
	s.Step()
	s.Steer(components.DirLeft)
	res := s.Step()
	if !res.BonusExpired {
		t.Fatalf("Expected bonus to expire on third move, got %+v", res)
	}
	if s.grid.Count(components.CellBonus) != 0 || s.Snapshot().Bonus.IsPlaced() {
		t.Error("Expired bonus still on the grid")
	}
}

func TestFoodReturnsWhenBonusExpires(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	path := laySerpentine(t, s, 98)

	// Food on the next cell, bonus on the only other free cell, due to expire this move
	s.grid.Set(path[98], components.CellFood)
	s.food = path[98]
	s.grid.Set(path[99], components.CellBonus)
	s.bonusPos = path[99]
	s.bonus.Visible = true
	s.bonus.MovesVisible = int(s.bonus.Disappear) + 1

	res := s.Step()
	if !res.AteFood || !res.BonusExpired {
		t.Fatalf("Expected food eaten and bonus expired, got %+v", res)
	}
	if s.food != path[99] || s.grid.At(path[99]) != components.CellFood {
		t.Fatalf("Expected food on the freed cell %v, got %v", path[99], s.food)
	}
	if s.grid.Count(components.CellFood) != 1 || s.grid.Count(components.CellEmpty) != 0 {
		t.Errorf("Expected one food and no empty cells, got food %d empty %d",
			s.grid.Count(components.CellFood), s.grid.Count(components.CellEmpty))
	}

	res = s.Step()
	if !res.GameOver || res.Outcome != OutcomeBoardCleared {
		t.Errorf("Expected board cleared once the last food is eaten, got %+v", res)
	}
}

func TestRetryRebuilds(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	setFood(s, pos(7, 5))
	s.Step()
	setFood(s, pos(1, 1))
	for s.State() != StateOver {
		s.Step()
	}
	seed := s.Seed()

	s.Retry()
	snap := s.Snapshot()
	if snap.State != StateRunning || snap.Score != 0 || snap.Length != 3 || snap.Ticks != 0 {
		t.Errorf("Retry did not reset: %+v", snap)
	}
	if snap.Segments[0].Pos != pos(7, 4) {
		t.Errorf("Expected head back at (7,4), got %v", snap.Segments[0].Pos)
	}
	if s.Seed() == seed {
		t.Error("Expected a new seed after retry")
	}
	if s.grid.Count(components.CellSnake) != 3 {
		t.Errorf("Expected 3 snake cells after retry, got %d", s.grid.Count(components.CellSnake))
	}
}

func TestInvariantViolationPanics(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	setFood(s, pos(2, 2))
	s.grid.Set(pos(1, 1), components.CellSnake)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvariant) {
			t.Fatalf("Expected ErrInvariant panic, got %v", r)
		}
	}()
	s.Step()
}

func TestDeterministicForSeed(t *testing.T) {
	run := func() []Snapshot {
		s, err := NewSession(testSettings(12, 4), 99)
		if err != nil {
			t.Fatal(err)
		}
		rng := rand.New(rand.NewSource(5))
		var out []Snapshot
		for i := 0; i < 300 && s.State() != StateOver; i++ {
			s.Apply(input.Button(rng.Intn(5) + 1))
			if s.State() == StatePaused {
				s.Apply(input.ButtonTogglePause)
			}
			s.Step()
			out = append(out, s.Snapshot())
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("Runs diverged in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Score != b[i].Score || a[i].Food != b[i].Food || a[i].Bonus != b[i].Bonus || a[i].Length != b[i].Length {
			t.Fatalf("Runs diverged at tick %d", i)
		}
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	for seed := int64(0); seed < 40; seed++ {
		s, err := NewSession(testSettings(10+int(seed%5), 3), seed)
		if err != nil {
			t.Fatal(err)
		}
		rng := rand.New(rand.NewSource(seed))
		prevScore := 0

		for i := 0; i < 2000 && s.State() != StateOver; i++ {
			if rng.Intn(3) == 0 {
				s.Steer(components.Direction(rng.Intn(4)))
			}
			s.Step()

			snap := s.Snapshot()
			if snap.Score < prevScore {
				t.Fatalf("seed %d: score decreased %d -> %d", seed, prevScore, snap.Score)
			}
			prevScore = snap.Score

			if s.grid.Count(components.CellSnake) != snap.Length {
				t.Fatalf("seed %d: snake cells %d, length %d", seed, s.grid.Count(components.CellSnake), snap.Length)
			}
			seen := make(map[components.Position]bool, len(snap.Segments))
			for _, seg := range snap.Segments {
				if seen[seg.Pos] {
					t.Fatalf("seed %d: two segments share %v", seed, seg.Pos)
				}
				seen[seg.Pos] = true
				if s.grid.At(seg.Pos) != components.CellSnake {
					t.Fatalf("seed %d: segment %v not marked on grid", seed, seg.Pos)
				}
			}
			if s.grid.Count(components.CellFood) > 1 || s.grid.Count(components.CellBonus) > 1 {
				t.Fatalf("seed %d: duplicate items", seed)
			}
		}
	}
}

type fakeRecorder struct {
	begins  []int64
	inputs  []input.Button
	endings []Outcome
}

func (r *fakeRecorder) BeginSession(_ config.Settings, seed int64) { r.begins = append(r.begins, seed) }
func (r *fakeRecorder) RecordInput(_ uint64, b input.Button)       { r.inputs = append(r.inputs, b) }
func (r *fakeRecorder) EndSession(_ uint64, _ int, o Outcome)      { r.endings = append(r.endings, o) }

func TestRecorderSeesSessions(t *testing.T) {
	s := newTestSession(t, testSettings(10, 3))
	setFood(s, pos(1, 1))
	rec := &fakeRecorder{}
	s.SetRecorder(rec)

	s.Apply(input.ButtonUp)
	for s.State() != StateOver {
		s.Step()
	}
	s.Apply(input.ButtonDown) // Ignored after game over
	s.Retry()
	s.CloseRecording()

	if len(rec.begins) != 2 || rec.begins[1] != s.Seed() {
		t.Errorf("Expected two sessions, second with current seed: %v", rec.begins)
	}
	if len(rec.inputs) != 1 || rec.inputs[0] != input.ButtonUp {
		t.Errorf("Unexpected inputs %v", rec.inputs)
	}
	if len(rec.endings) != 2 || rec.endings[0] != OutcomeCollision || rec.endings[1] != OutcomeNone {
		t.Errorf("Unexpected endings %v", rec.endings)
	}
}
