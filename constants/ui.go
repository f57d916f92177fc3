package constants

// UI Layout Constants
const (
	// CellWidth is the number of terminal columns drawn per grid square
	CellWidth = 2

	// ButtonWidth is the width of an on-screen button in columns
	ButtonWidth = 5

	// ButtonGap is the horizontal gap between on-screen buttons
	ButtonGap = 1

	// StatusRows is the number of rows reserved above the grid for score and play time
	StatusRows = 1

	// MaxPlayerNameLength caps the name typed into the game-over dialog
	MaxPlayerNameLength = 24
)

// Status Text
const (
	TextPaused       = " PAUSED "
	TextGameOver     = "GAME OVER"
	TextBoardCleared = "BOARD CLEARED!"
	TextTooSmall     = "terminal too small"
	TextNamePrompt   = "Player name: "
	TextDialogHelp   = "[Enter] submit  [Tab] retry  [Esc] exit"
	TextDialogDone   = "[Tab] retry  [Esc] exit"
	TextThanks       = "Thanks %s!"
	TextSubmitted    = "Your score has been submitted."
)
