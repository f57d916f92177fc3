package grid

import (
	"fmt"

	"github.com/lixenwraith/vi-snake/components"
)

// Grid is a dense N x N occupancy map addressed by 1-indexed (row, col)
// Cells are stored row-major in a flat slice: index = (row-1)*Size + (col-1)
type Grid struct {
	size   int
	cells  []components.Cell
	counts [components.CellKinds]int
}

// New creates an empty grid with size squares per row
func New(size int) *Grid {
	g := &Grid{
		size:  size,
		cells: make([]components.Cell, size*size),
	}
	g.counts[components.CellEmpty] = size * size
	return g
}

// Size returns the number of squares per row
func (g *Grid) Size() int {
	return g.size
}

// Area returns the total number of squares
func (g *Grid) Area() int {
	return g.size * g.size
}

// InBounds reports whether pos lies on the grid
func (g *Grid) InBounds(pos components.Position) bool {
	return pos.Row >= 1 && pos.Row <= g.size && pos.Col >= 1 && pos.Col <= g.size
}

// At returns the state of the cell at pos
// Panics outside bounds; callers check InBounds first
func (g *Grid) At(pos components.Position) components.Cell {
	return g.cells[g.index(pos)]
}

// Set overwrites the state of the cell at pos, keeping per-state counts current
func (g *Grid) Set(pos components.Position, c components.Cell) {
	idx := g.index(pos)
	old := g.cells[idx]
	if old == c {
		return
	}
	g.counts[old]--
	g.counts[c]++
	g.cells[idx] = c
}

// Count returns how many cells currently hold state c
// O(1), maintained by Set
func (g *Grid) Count(c components.Cell) int {
	return g.counts[c]
}

// Each calls fn for every cell in row-major order
func (g *Grid) Each(fn func(pos components.Position, c components.Cell)) {
	for i, c := range g.cells {
		fn(components.Position{Row: i/g.size + 1, Col: i%g.size + 1}, c)
	}
}

// Clear resets every cell to empty
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = components.CellEmpty
	}
	g.counts = [components.CellKinds]int{}
	g.counts[components.CellEmpty] = len(g.cells)
}

func (g *Grid) index(pos components.Position) int {
	if !g.InBounds(pos) {
		panic(fmt.Errorf("grid: index out of range: %v on %dx%d grid", pos, g.size, g.size))
	}
	return (pos.Row-1)*g.size + (pos.Col - 1)
}
