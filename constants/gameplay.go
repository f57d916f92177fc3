package constants

// Grid and Snake Limits
const (
	// MinGridSize is the smallest accepted number of squares per grid row
	MinGridSize = 10

	// MaxGridSize is the largest accepted number of squares per grid row
	MaxGridSize = 100

	// MinStartLength is the shortest starting snake
	MinStartLength = 3

	// StartLengthMargin is how many squares per row must stay free of the starting snake
	StartLengthMargin = 5
)

// Default Settings
const (
	DefaultGridSize       = 20
	DefaultStartLength    = 5
	DefaultTicksPerSecond = 5
)

// Snake Start Placement
const (
	// StartRowFraction positions the starting row as a fraction of the grid height
	StartRowFraction = 0.70

	// StartColumnOffset is the number of free squares left of the starting tail
	StartColumnOffset = 1
)

// Scoring
const (
	// ScorePerFood is awarded for each regular food eaten
	ScorePerFood = 50

	// ScorePerBonus is awarded for each bonus item eaten
	ScorePerBonus = 200
)

// Bonus Schedule
const (
	// BonusVisibilityMultiplier scales grid size into the initial visible duration (moves)
	BonusVisibilityMultiplier = 0.7

	// BonusFrequencyMultiplier scales the visible duration into the initial appear wait (moves)
	BonusFrequencyMultiplier = 5

	// BonusVisibleIncrease is added to the visible duration per food eaten
	BonusVisibleIncrease = 0.2

	// BonusAppearIncrease is added to the appear wait per food eaten
	BonusAppearIncrease = 1

	// BonusMinFreeCells is the number of free cells required before a bonus is placed
	BonusMinFreeCells = 2

	// BonusFlavorCount is the number of cosmetic bonus variants
	BonusFlavorCount = 5
)

// Spawn Sampling
const (
	// SpawnAttemptsPerCell bounds rejection sampling before falling back to enumeration
	SpawnAttemptsPerCell = 4
)
