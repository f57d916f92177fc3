package render

import (
	"github.com/lixenwraith/vi-snake/components"
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/input"
)

// buttonRows is the height of the up / left-pause-right / down pad
const buttonRows = 3

// ButtonRect is an on-screen button occupying one row
type ButtonRect struct {
	Button input.Button
	X, Y   int
	W      int
}

// Contains reports whether screen cell (x, y) is inside the button
func (b ButtonRect) Contains(x, y int) bool {
	return y == b.Y && x >= b.X && x < b.X+b.W
}

// Layout positions the status line, bordered grid and button pad on screen
type Layout struct {
	Fits bool // Whether the grid and status line fit the screen

	Size    int
	StatusY int
	FrameX  int // Top-left corner of the border
	FrameY  int
	FrameW  int
	FrameH  int

	Buttons []ButtonRect // Empty when the pad does not fit
}

// ComputeLayout centers the grid horizontally with the status line above and the button pad below
func ComputeLayout(screenW, screenH, size int, hidePause bool) Layout {
	l := Layout{
		Size:   size,
		FrameW: size*constants.CellWidth + 2,
		FrameH: size + 2,
	}

	if screenW < l.FrameW || screenH < constants.StatusRows+l.FrameH {
		return l
	}
	l.Fits = true
	l.FrameX = (screenW - l.FrameW) / 2
	l.FrameY = constants.StatusRows
	l.StatusY = l.FrameY - constants.StatusRows

	padY := l.FrameY + l.FrameH
	padW := 3*constants.ButtonWidth + 2*constants.ButtonGap
	if screenH < padY+buttonRows || screenW < padW {
		return l
	}

	centerX := l.FrameX + l.FrameW/2 - constants.ButtonWidth/2
	sideOffset := constants.ButtonWidth + constants.ButtonGap

	l.Buttons = append(l.Buttons,
		ButtonRect{Button: input.ButtonUp, X: centerX, Y: padY, W: constants.ButtonWidth},
		ButtonRect{Button: input.ButtonLeft, X: centerX - sideOffset, Y: padY + 1, W: constants.ButtonWidth},
		ButtonRect{Button: input.ButtonRight, X: centerX + sideOffset, Y: padY + 1, W: constants.ButtonWidth},
		ButtonRect{Button: input.ButtonDown, X: centerX, Y: padY + 2, W: constants.ButtonWidth},
	)
	if !hidePause {
		l.Buttons = append(l.Buttons, ButtonRect{Button: input.ButtonTogglePause, X: centerX, Y: padY + 1, W: constants.ButtonWidth})
	}
	return l
}

// HitTest maps a click to the button under it, ButtonNone when none
func (l Layout) HitTest(x, y int) input.Button {
	for _, b := range l.Buttons {
		if b.Contains(x, y) {
			return b.Button
		}
	}
	return input.ButtonNone
}

// CellOrigin returns the screen cell of the left rune of grid square pos
func (l Layout) CellOrigin(pos components.Position) (int, int) {
	x := l.FrameX + 1 + (pos.Col-1)*constants.CellWidth
	y := l.FrameY + 1 + pos.Row - 1
	return x, y
}
