package components

// Direction is the heading of the snake or of a single segment
type Direction uint8

const (
	DirRight Direction = iota // Initial heading
	DirUp
	DirLeft
	DirDown
)

// Delta returns the (row, col) offset of one step in this direction
// Up decreases the row, matching screen coordinates
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Turn returns next when it is not a reversal of d, otherwise d unchanged
// The bool result reports whether the turn was accepted
func (d Direction) Turn(next Direction) (Direction, bool) {
	if next == d.Opposite() {
		return d, false
	}
	return next, true
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
