package modes

import (
	"errors"
	"log"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/highscore"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/render"
)

// Game is the running game the handler steers
type Game interface {
	Apply(b input.Button)
	Retry()
}

// Muter toggles sound output
type Muter interface {
	ToggleMute() bool
}

// ScoreStore records a finished game
type ScoreStore interface {
	Submit(name string, score int) (int, error)
}

// InputHandler processes user input events
// Playing: keys and button clicks steer the game
// Game over: a dialog collects the player name
type InputHandler struct {
	keys   *input.KeyMap
	game   Game
	muter  Muter
	scores ScoreStore

	layout      render.Layout
	mouseButton tcell.ButtonMask // Buttons held at the previous mouse event

	dialog *render.DialogView
}

// NewInputHandler creates a new input handler; muter may be nil
func NewInputHandler(keys *input.KeyMap, game Game, muter Muter, scores ScoreStore) *InputHandler {
	return &InputHandler{
		keys:   keys,
		game:   game,
		muter:  muter,
		scores: scores,
	}
}

// SetLayout stores the layout of the last drawn frame for mouse hit-testing
func (h *InputHandler) SetLayout(l render.Layout) {
	h.layout = l
}

// OpenDialog switches to the game-over dialog
func (h *InputHandler) OpenDialog(score int, outcome engine.Outcome) {
	h.dialog = &render.DialogView{Score: score, Outcome: outcome}
}

// Dialog returns a copy of the open dialog, nil while playing
func (h *InputHandler) Dialog() *render.DialogView {
	if h.dialog == nil {
		return nil
	}
	d := *h.dialog
	return &d
}

// HandleEvent processes a tcell event and returns false if the game should exit
func (h *InputHandler) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if h.dialog != nil {
			return h.handleDialogKey(ev)
		}
		return h.handleGameKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	}
	return true
}

func (h *InputHandler) handleGameKey(ev *tcell.EventKey) bool {
	intent := h.keys.Resolve(ev)
	switch intent.Type {
	case input.IntentQuit:
		return false
	case input.IntentToggleMute:
		if h.muter != nil {
			muted := h.muter.ToggleMute()
			log.Printf("input: muted=%v", muted)
		}
	case input.IntentButton:
		h.game.Apply(intent.Button)
	}
	return true
}

// handleMouse fires a button on the press edge of the primary button
func (h *InputHandler) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && h.mouseButton&tcell.Button1 == 0
	h.mouseButton = buttons

	if !pressed || h.dialog != nil {
		return
	}
	x, y := ev.Position()
	if b := h.layout.HitTest(x, y); b != input.ButtonNone {
		h.game.Apply(b)
	}
}

func (h *InputHandler) handleDialogKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return false
	case tcell.KeyTab:
		h.dialog = nil
		h.game.Retry()
	case tcell.KeyEnter:
		h.submit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if h.dialog.Submitted || h.dialog.Name == "" {
			break
		}
		_, size := utf8.DecodeLastRuneInString(h.dialog.Name)
		h.dialog.Name = h.dialog.Name[:len(h.dialog.Name)-size]
	case tcell.KeyRune:
		r := ev.Rune()
		if h.dialog.Submitted || !unicode.IsPrint(r) {
			break
		}
		if utf8.RuneCountInString(h.dialog.Name) < constants.MaxPlayerNameLength {
			h.dialog.Name += string(r)
			h.dialog.Error = ""
		}
	}
	return true
}

func (h *InputHandler) submit() {
	d := h.dialog
	if d.Submitted {
		return
	}

	rank, err := h.scores.Submit(d.Name, d.Score)
	switch {
	case errors.Is(err, highscore.ErrBlankName):
		d.Error = err.Error()
	case err != nil:
		log.Printf("input: high score submit failed: %v", err)
		d.Error = "could not save score"
	default:
		log.Printf("input: %q ranked %d with %d", d.Name, rank, d.Score)
		d.Submitted = true
		d.Error = ""
		d.Thanks = strings.TrimSpace(d.Name)
	}
}
