package components

// Cell is the occupancy state of one grid square
type Cell uint8

const (
	CellEmpty Cell = iota
	CellSnake
	CellFood
	CellBonus
	cellCount
)

// CellKinds is the number of distinct cell states
const CellKinds = int(cellCount)

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellSnake:
		return "snake"
	case CellFood:
		return "food"
	case CellBonus:
		return "bonus"
	default:
		return "invalid"
	}
}

// Flavor is the cosmetic variant of a bonus item
type Flavor uint8

const (
	FlavorCheese Flavor = iota
	FlavorBeer
	FlavorHamburger
	FlavorPizza
	FlavorSushi
)

func (f Flavor) String() string {
	switch f {
	case FlavorCheese:
		return "cheese"
	case FlavorBeer:
		return "beer"
	case FlavorHamburger:
		return "hamburger"
	case FlavorPizza:
		return "pizza"
	case FlavorSushi:
		return "sushi"
	default:
		return "unknown"
	}
}
