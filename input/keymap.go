package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// Named special keys accepted in the [keys] table
var specialKeyNames = map[string]tcell.Key{
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"ctrl-c":    tcell.KeyCtrlC,
	"ctrl-q":    tcell.KeyCtrlQ,
	"ctrl-s":    tcell.KeyCtrlS,
}

// KeyMap maps special keys and runes to intents
type KeyMap struct {
	Keys  map[tcell.Key]Intent
	Runes map[rune]Intent
}

// DefaultKeyMap returns the default bindings: arrows, wasd, hjkl, p/space for pause
func DefaultKeyMap() *KeyMap {
	up := Intent{Type: IntentButton, Button: ButtonUp}
	left := Intent{Type: IntentButton, Button: ButtonLeft}
	right := Intent{Type: IntentButton, Button: ButtonRight}
	down := Intent{Type: IntentButton, Button: ButtonDown}
	pause := Intent{Type: IntentButton, Button: ButtonTogglePause}
	quit := Intent{Type: IntentQuit}

	return &KeyMap{
		Keys: map[tcell.Key]Intent{
			tcell.KeyUp:    up,
			tcell.KeyLeft:  left,
			tcell.KeyRight: right,
			tcell.KeyDown:  down,
			tcell.KeyCtrlC: quit,
			tcell.KeyCtrlQ: quit,
			tcell.KeyCtrlS: {Type: IntentToggleMute},
		},
		Runes: map[rune]Intent{
			'w': up, 'a': left, 'd': right, 's': down,
			'k': up, 'h': left, 'l': right, 'j': down,
			'p': pause, ' ': pause,
			'q': quit,
			'm': {Type: IntentToggleMute},
		},
	}
}

// LoadKeyMap applies [keys] overrides on top of the defaults
// Keys are single characters, rune aliases or special key names; values are action names
// Binding a key to "none" removes it
func LoadKeyMap(bindings map[string]string) (*KeyMap, error) {
	km := DefaultKeyMap()

	for keyStr, actionName := range bindings {
		in, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}

		if r, ok := resolveRune(keyStr); ok {
			km.bindRune(r, in)
			continue
		}

		k, ok := specialKeyNames[strings.ToLower(keyStr)]
		if !ok {
			return nil, fmt.Errorf("[keys] unknown key name: %q", keyStr)
		}
		km.bindKey(k, in)
	}

	return km, nil
}

// Resolve returns the intent bound to a key event, IntentNone when unbound
func (km *KeyMap) Resolve(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		return km.Runes[ev.Rune()]
	}
	return km.Keys[ev.Key()]
}

func (km *KeyMap) bindRune(r rune, in Intent) {
	if in.Type == IntentNone {
		delete(km.Runes, r)
		return
	}
	km.Runes[r] = in
}

func (km *KeyMap) bindKey(k tcell.Key, in Intent) {
	if in.Type == IntentNone {
		delete(km.Keys, k)
		return
	}
	km.Keys[k] = in
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}

func resolveAction(name string) (Intent, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	in, ok := ActionIntent(name)
	if !ok {
		return Intent{}, fmt.Errorf("unknown action: %q", name)
	}
	return in, nil
}
