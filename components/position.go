package components

import "fmt"

// Position is a 1-indexed grid coordinate
type Position struct {
	Row int
	Col int
}

// Unplaced marks an absent food or bonus cell
var Unplaced = Position{}

// Move returns the position one square away in direction d
func (p Position) Move(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// IsPlaced reports whether p refers to a grid square
func (p Position) IsPlaced() bool {
	return p.Row > 0 && p.Col > 0
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
