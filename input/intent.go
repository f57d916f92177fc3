package input

// IntentType classifies what a key press asks the application to do
type IntentType uint8

const (
	IntentNone IntentType = iota
	IntentButton
	IntentQuit
	IntentToggleMute
)

// Intent is the resolved meaning of a key press
type Intent struct {
	Type   IntentType
	Button Button // Valid when Type == IntentButton
}

// actionIntents maps config action names to intents
var actionIntents = map[string]Intent{
	"none":  {Type: IntentNone},
	"up":    {Type: IntentButton, Button: ButtonUp},
	"left":  {Type: IntentButton, Button: ButtonLeft},
	"right": {Type: IntentButton, Button: ButtonRight},
	"down":  {Type: IntentButton, Button: ButtonDown},
	"pause": {Type: IntentButton, Button: ButtonTogglePause},
	"quit":  {Type: IntentQuit},
	"mute":  {Type: IntentToggleMute},
}

// ActionIntent looks up an intent by action name
func ActionIntent(name string) (Intent, bool) {
	in, ok := actionIntents[name]
	return in, ok
}
