package board

import (
	"github.com/domino14/gomoku/move"
)

// MaxLookahead bounds how many empty cells Scan collects past a run.
const MaxLookahead = 4

// DefaultLookahead is the number of empty cells past a run whose potential
// is updated when a stone is played.
const DefaultLookahead = 2

// Chain is the result of scanning one half-direction from a cell.
type Chain struct {
	// Run is the length of the contiguous run of the scanned mark that
	// starts right next to the cell.
	Run int
	// N is the number of reachable empty cells past the run. Zero means the
	// direction is blocked by the opponent or the edge of the grid.
	N       int
	empties [MaxLookahead]Point
}

// Empties returns the empty cells reachable past the run.
func (c *Chain) Empties() []Point {
	return c.empties[:c.N]
}

// Blocked returns true if no empty cell lies past the run.
func (c *Chain) Blocked() bool {
	return c.N == 0
}

// Scan walks all 8 half-directions from (col, row). In each it counts the
// run of mark adjacent to the cell, then collects up to lookahead empty
// cells past the run, stopping at the first occupied or off-grid cell.
// The cell at (col, row) itself is not inspected.
func (b *Board) Scan(col, row int, mark move.Mark, lookahead int) [NumDirections]Chain {
	if lookahead > MaxLookahead {
		lookahead = MaxLookahead
	}
	var chains [NumDirections]Chain
	for d := 0; d < NumDirections; d++ {
		dx, dy := Directions[d][0], Directions[d][1]
		c := &chains[d]
		x, y := col+dx, row+dy
		for b.InBounds(x, y) && b.marks[b.index(x, y)] == mark {
			c.Run++
			x += dx
			y += dy
		}
		for c.N < lookahead && b.InBounds(x, y) && b.marks[b.index(x, y)] == move.Empty {
			c.empties[c.N] = Point{Col: x, Row: y}
			c.N++
			x += dx
			y += dy
		}
	}
	return chains
}
