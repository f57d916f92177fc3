package systems

import "github.com/lixenwraith/vi-snake/constants"

// BonusAction is what the session must do with the bonus cell after a move
type BonusAction uint8

const (
	BonusNone   BonusAction = iota
	BonusAppear             // Place a bonus item
	BonusExpire             // Remove the visible bonus item
)

// BonusSchedule drives bonus appearance and disappearance in snake moves
// Thresholds are fractional and compared against whole move counters, so the
// effective wait is the next integer at or above the threshold
type BonusSchedule struct {
	Appear    float64 // Moves without a bonus before one appears
	Disappear float64 // Moves a bonus stays visible

	MovesWaiting int  // Moves counted while no bonus is visible
	MovesVisible int  // Moves counted while the bonus is visible
	Visible      bool // Whether the bonus phase is active
}

// NewBonusSchedule seeds thresholds from the grid size, then grows them once
// per starting segment
func NewBonusSchedule(gridSize, startLength int) *BonusSchedule {
	b := &BonusSchedule{}
	b.Reset(gridSize, startLength)
	return b
}

// Reset restores thresholds and counters for a new session
func (b *BonusSchedule) Reset(gridSize, startLength int) {
	b.Disappear = float64(gridSize) * constants.BonusVisibilityMultiplier
	b.Appear = b.Disappear * constants.BonusFrequencyMultiplier
	for i := 0; i < startLength; i++ {
		b.Grow()
	}
	b.Hide()
}

// Grow lengthens both the wait and the visible duration, called per food eaten
func (b *BonusSchedule) Grow() {
	b.Disappear += constants.BonusVisibleIncrease
	b.Appear += constants.BonusAppearIncrease
}

// Hide ends the bonus phase and restarts both counters
func (b *BonusSchedule) Hide() {
	b.MovesWaiting = 0
	b.MovesVisible = 0
	b.Visible = false
}

// Advance counts one move and reports the resulting bonus action
func (b *BonusSchedule) Advance() BonusAction {
	action := BonusNone

	if !b.Visible {
		b.MovesWaiting++
	}
	if float64(b.MovesWaiting) >= b.Appear {
		b.MovesWaiting = 0
		b.Visible = true
		action = BonusAppear
	}

	if float64(b.MovesVisible) >= b.Disappear {
		b.Hide()
		return BonusExpire
	} else if b.Visible {
		b.MovesVisible++
	}
	return action
}
