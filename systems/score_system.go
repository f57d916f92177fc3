package systems

import "github.com/lixenwraith/vi-snake/constants"

// ScoreSystem accumulates points for consumed items
// Score only ever increases within a session
type ScoreSystem struct {
	score   int
	foods   int
	bonuses int

	onChange func(score int)
}

// NewScoreSystem creates a zeroed score
func NewScoreSystem() *ScoreSystem {
	return &ScoreSystem{}
}

// SetListener registers fn to be called with the new score after every change
func (s *ScoreSystem) SetListener(fn func(score int)) {
	s.onChange = fn
}

// AwardFood adds the regular food value and returns the new score
func (s *ScoreSystem) AwardFood() int {
	s.foods++
	return s.add(constants.ScorePerFood)
}

// AwardBonus adds the bonus value and returns the new score
func (s *ScoreSystem) AwardBonus() int {
	s.bonuses++
	return s.add(constants.ScorePerBonus)
}

// Score returns the current total
func (s *ScoreSystem) Score() int {
	return s.score
}

// Foods returns the number of regular food items eaten
func (s *ScoreSystem) Foods() int {
	return s.foods
}

// Bonuses returns the number of bonus items eaten
func (s *ScoreSystem) Bonuses() int {
	return s.bonuses
}

// Reset zeroes the score and notifies the listener
func (s *ScoreSystem) Reset() {
	s.score, s.foods, s.bonuses = 0, 0, 0
	if s.onChange != nil {
		s.onChange(0)
	}
}

func (s *ScoreSystem) add(points int) int {
	if points <= 0 {
		return s.score
	}
	s.score += points
	if s.onChange != nil {
		s.onChange(s.score)
	}
	return s.score
}
