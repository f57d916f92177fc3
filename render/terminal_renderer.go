package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/components"
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/snake"
)

// Frame is everything drawn in one refresh
type Frame struct {
	Snapshot engine.Snapshot
	PlayTime time.Duration
	Muted    bool
	Dialog   *DialogView // nil unless the game-over dialog is open
}

// DialogView is the game-over dialog content
type DialogView struct {
	Score     int
	Outcome   engine.Outcome
	Name      string
	Error     string // Shown in red under the name field
	Submitted bool
	Thanks    string // Player name echoed after a submit
}

// TerminalRenderer draws frames onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	base   tcell.Style
}

// NewTerminalRenderer creates a renderer for screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		base:   tcell.StyleDefault.Background(RgbBackground).Foreground(RgbStatusText),
	}
}

// Layout computes the current layout for a snapshot
func (r *TerminalRenderer) Layout(snap engine.Snapshot) Layout {
	w, h := r.screen.Size()
	return ComputeLayout(w, h, snap.Size, snap.HidePauseButton)
}

// RenderFrame draws f and returns the layout used, for mouse hit-testing
func (r *TerminalRenderer) RenderFrame(f Frame) Layout {
	r.screen.SetStyle(r.base)
	r.screen.Clear()

	l := r.Layout(f.Snapshot)
	if !l.Fits {
		r.drawTooSmall(l)
		r.screen.Show()
		return l
	}

	r.drawStatus(l, f)
	r.drawBorder(l)
	r.drawGrid(l, f.Snapshot)
	r.drawItems(l, f.Snapshot)
	r.drawSnake(l, f.Snapshot)
	r.drawButtons(l, f.Snapshot)

	if f.Snapshot.State == engine.StatePaused && f.Dialog == nil {
		r.drawCentered(l, l.FrameY+l.FrameH/2, constants.TextPaused, r.base.Background(RgbPausedBg).Foreground(RgbPausedText).Bold(true))
	}
	if f.Dialog != nil {
		r.drawDialog(l, f.Dialog)
	}

	r.screen.Show()
	return l
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

// drawCentered writes text centered over the grid frame
func (r *TerminalRenderer) drawCentered(l Layout, y int, text string, style tcell.Style) {
	x := l.FrameX + (l.FrameW-len([]rune(text)))/2
	r.drawText(x, y, text, style)
}

func (r *TerminalRenderer) drawTooSmall(l Layout) {
	w, h := r.screen.Size()
	msg := fmt.Sprintf("%s: need %dx%d", constants.TextTooSmall, l.FrameW, constants.StatusRows+l.FrameH)
	x := (w - len([]rune(msg))) / 2
	if x < 0 {
		x = 0
	}
	r.drawText(x, h/2, msg, r.base.Foreground(RgbDialogError))
}

// drawStatus writes score, length and play time above the frame
func (r *TerminalRenderer) drawStatus(l Layout, f Frame) {
	snap := f.Snapshot
	secs := int(f.PlayTime / time.Second)

	x := r.drawText(l.FrameX, l.StatusY, "Score ", r.base)
	x = r.drawText(x, l.StatusY, fmt.Sprintf("%d", snap.Score), r.base.Foreground(RgbStatusScore).Bold(true))
	x = r.drawText(x, l.StatusY, fmt.Sprintf("  Len %d  %02d:%02d", snap.Length, secs/60, secs%60), r.base)
	if f.Muted {
		r.drawText(x, l.StatusY, "  muted", r.base.Dim(true))
	}
}

func (r *TerminalRenderer) drawBorder(l Layout) {
	style := r.base.Foreground(RgbBorder)
	right, bottom := l.FrameX+l.FrameW-1, l.FrameY+l.FrameH-1

	for x := l.FrameX + 1; x < right; x++ {
		r.screen.SetContent(x, l.FrameY, '─', nil, style)
		r.screen.SetContent(x, bottom, '─', nil, style)
	}
	for y := l.FrameY + 1; y < bottom; y++ {
		r.screen.SetContent(l.FrameX, y, '│', nil, style)
		r.screen.SetContent(right, y, '│', nil, style)
	}
	r.screen.SetContent(l.FrameX, l.FrameY, '┌', nil, style)
	r.screen.SetContent(right, l.FrameY, '┐', nil, style)
	r.screen.SetContent(l.FrameX, bottom, '└', nil, style)
	r.screen.SetContent(right, bottom, '┘', nil, style)
}

// squareStyle returns the background of a grid square, checkered when enabled
func (r *TerminalRenderer) squareStyle(snap engine.Snapshot, pos components.Position) tcell.Style {
	if snap.ShowGridSquares && (pos.Row+pos.Col)%2 == 0 {
		return r.base.Background(RgbGridSquare)
	}
	return r.base
}

func (r *TerminalRenderer) drawGrid(l Layout, snap engine.Snapshot) {
	if !snap.ShowGridSquares {
		return
	}
	for row := 1; row <= snap.Size; row++ {
		for col := 1; col <= snap.Size; col++ {
			pos := components.Position{Row: row, Col: col}
			x, y := l.CellOrigin(pos)
			style := r.squareStyle(snap, pos)
			r.screen.SetContent(x, y, ' ', nil, style)
			r.screen.SetContent(x+1, y, ' ', nil, style)
		}
	}
}

func (r *TerminalRenderer) drawItems(l Layout, snap engine.Snapshot) {
	if snap.Food.IsPlaced() {
		x, y := l.CellOrigin(snap.Food)
		r.screen.SetContent(x, y, glyphFood, nil, r.squareStyle(snap, snap.Food).Foreground(RgbFood))
	}
	if snap.Bonus.IsPlaced() {
		x, y := l.CellOrigin(snap.Bonus)
		style := r.squareStyle(snap, snap.Bonus).Foreground(FlavorColor(snap.BonusFlavor)).Bold(true)
		r.screen.SetContent(x, y, FlavorGlyph(snap.BonusFlavor), nil, style)
	}
}

func (r *TerminalRenderer) drawSnake(l Layout, snap engine.Snapshot) {
	for _, seg := range snap.Segments {
		x, y := l.CellOrigin(seg.Pos)
		style := r.squareStyle(snap, seg.Pos)

		switch seg.Kind {
		case snake.KindHead:
			color := RgbSnakeHead
			if snap.Outcome == engine.OutcomeCollision {
				color = RgbSnakeDead
			}
			style = style.Foreground(color).Bold(true)
		case snake.KindTail:
			style = style.Foreground(RgbSnakeTail)
		default:
			style = style.Foreground(RgbSnakeBody)
		}

		center, bridge := SegmentGlyph(seg)
		r.screen.SetContent(x, y, center, nil, style)
		if bridge != ' ' {
			// The bridge sits on this square's background
			r.screen.SetContent(x+1, y, bridge, nil, style.Bold(false))
		}
	}
}

// buttonLabel returns the centered label of an on-screen button
func buttonLabel(b input.Button, state engine.GameState) string {
	switch b {
	case input.ButtonUp:
		return "  ▲  "
	case input.ButtonLeft:
		return "  ◀  "
	case input.ButtonRight:
		return "  ▶  "
	case input.ButtonDown:
		return "  ▼  "
	case input.ButtonTogglePause:
		if state == engine.StatePaused {
			return " ▶▶  "
		}
		return "  ‖  "
	}
	return "     "
}

func (r *TerminalRenderer) drawButtons(l Layout, snap engine.Snapshot) {
	style := r.base.Background(RgbButton).Foreground(RgbButtonText)
	for _, b := range l.Buttons {
		r.drawText(b.X, b.Y, buttonLabel(b.Button, snap.State), style)
	}
}

func (r *TerminalRenderer) drawDialog(l Layout, d *DialogView) {
	title := constants.TextGameOver
	if d.Outcome == engine.OutcomeBoardCleared {
		title = constants.TextBoardCleared
	}

	var lines []struct {
		text  string
		style tcell.Style
	}
	add := func(text string, style tcell.Style) {
		lines = append(lines, struct {
			text  string
			style tcell.Style
		}{text, style})
	}

	dialog := r.base.Background(RgbDialogBg)
	add(title, dialog.Foreground(RgbDialogTitle).Bold(true))
	add(fmt.Sprintf("Score: %d", d.Score), dialog)
	if d.Submitted {
		add(fmt.Sprintf(constants.TextThanks, d.Thanks), dialog.Foreground(RgbDialogAccent))
		add(constants.TextSubmitted, dialog.Foreground(RgbDialogAccent))
		add(constants.TextDialogDone, dialog.Dim(true))
	} else {
		add(constants.TextNamePrompt+d.Name+"_", dialog)
		add(d.Error, dialog.Foreground(RgbDialogError))
		add(constants.TextDialogHelp, dialog.Dim(true))
	}

	width := 0
	for _, ln := range lines {
		if n := len([]rune(ln.text)); n > width {
			width = n
		}
	}
	width += 4

	top := l.FrameY + (l.FrameH-len(lines)-2)/2
	if top < 0 {
		top = 0
	}
	left := l.FrameX + (l.FrameW-width)/2
	if left < 0 {
		left = 0
	}

	for y := top; y < top+len(lines)+2; y++ {
		for x := left; x < left+width; x++ {
			r.screen.SetContent(x, y, ' ', nil, dialog)
		}
	}
	for i, ln := range lines {
		x := left + (width-len([]rune(ln.text)))/2
		r.drawText(x, top+1+i, ln.text, ln.style)
	}
}
