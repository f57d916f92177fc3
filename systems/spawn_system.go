package systems

import (
	"math/rand"

	"github.com/lixenwraith/vi-snake/components"
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/grid"
)

// SpawnSystem places food and bonus items on uniformly random empty cells
type SpawnSystem struct {
	grid *grid.Grid
	rng  *rand.Rand
}

// NewSpawnSystem creates a spawn system drawing from rng
func NewSpawnSystem(g *grid.Grid, rng *rand.Rand) *SpawnSystem {
	return &SpawnSystem{grid: g, rng: rng}
}

// FindEmpty picks a uniformly random empty cell other than exclude
// Rejection sampling over the whole grid is tried first; after a bounded number of misses
// the remaining empty cells are enumerated and one is drawn uniformly
// Returns false when no such cell exists
func (s *SpawnSystem) FindEmpty(exclude components.Position) (components.Position, bool) {
	free := s.grid.Count(components.CellEmpty)
	if s.grid.InBounds(exclude) && s.grid.At(exclude) == components.CellEmpty {
		free--
	}
	if free <= 0 {
		return components.Unplaced, false
	}

	size := s.grid.Size()
	attempts := s.grid.Area() * constants.SpawnAttemptsPerCell
	for i := 0; i < attempts; i++ {
		p := components.Position{
			Row: s.rng.Intn(size) + 1,
			Col: s.rng.Intn(size) + 1,
		}
		if p != exclude && s.grid.At(p) == components.CellEmpty {
			return p, true
		}
	}

	// Dense grid: draw the k-th free cell directly
	k := s.rng.Intn(free)
	found := components.Unplaced
	s.grid.Each(func(p components.Position, c components.Cell) {
		if found.IsPlaced() || c != components.CellEmpty || p == exclude {
			return
		}
		if k == 0 {
			found = p
		}
		k--
	})
	return found, found.IsPlaced()
}

// PlaceFood marks a new food cell, avoiding the cell vacated on the same tick
func (s *SpawnSystem) PlaceFood(exclude components.Position) (components.Position, bool) {
	p, ok := s.FindEmpty(exclude)
	if !ok {
		return components.Unplaced, false
	}
	s.grid.Set(p, components.CellFood)
	return p, true
}

// PlaceBonus picks a flavor and marks a new bonus cell
func (s *SpawnSystem) PlaceBonus(exclude components.Position) (components.Position, components.Flavor, bool) {
	flavor := components.Flavor(s.rng.Intn(constants.BonusFlavorCount))
	p, ok := s.FindEmpty(exclude)
	if !ok {
		return components.Unplaced, flavor, false
	}
	s.grid.Set(p, components.CellBonus)
	return p, flavor, true
}
