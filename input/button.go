package input

import "github.com/lixenwraith/vi-snake/components"

// Button is one of the five logical game controls
type Button uint8

const (
	ButtonNone Button = iota
	ButtonUp
	ButtonLeft
	ButtonRight
	ButtonDown
	ButtonTogglePause
)

// Direction maps a movement button to its heading
func (b Button) Direction() (components.Direction, bool) {
	switch b {
	case ButtonUp:
		return components.DirUp, true
	case ButtonLeft:
		return components.DirLeft, true
	case ButtonRight:
		return components.DirRight, true
	case ButtonDown:
		return components.DirDown, true
	default:
		return 0, false
	}
}

func (b Button) String() string {
	switch b {
	case ButtonUp:
		return "up"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonDown:
		return "down"
	case ButtonTogglePause:
		return "pause"
	default:
		return "none"
	}
}
