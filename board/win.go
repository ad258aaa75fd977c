package board

import (
	"github.com/domino14/gomoku/move"
)

// lineOrientations are checked in this order: horizontal, vertical,
// anti-diagonal, diagonal. The first winning line found is reported.
var lineOrientations = [4][2]int{{1, 0}, {0, 1}, {1, -1}, {1, 1}}

// CheckWin looks for a run of winLength of m.Mark through the cell of m.
// The move must already have been applied. If a run is found its two end
// cells are returned.
func (b *Board) CheckWin(m move.Move, winLength int) (bool, Point, Point) {
	if winLength <= 0 || !b.InBounds(m.Col, m.Row) {
		return false, Point{}, Point{}
	}
	for _, o := range lineOrientations {
		dx, dy := o[0], o[1]
		// Slide a winLength window along the (clipped) line of 2*winLength-1
		// cells centred on the move.
		run := 0
		for i := -winLength + 1; i < winLength; i++ {
			x, y := m.Col+i*dx, m.Row+i*dy
			if !b.InBounds(x, y) {
				continue
			}
			if b.marks[b.index(x, y)] != m.Mark {
				run = 0
				continue
			}
			run++
			if run == winLength {
				start := Point{Col: x - (winLength-1)*dx, Row: y - (winLength-1)*dy}
				return true, start, Point{Col: x, Row: y}
			}
		}
	}
	return false, Point{}, Point{}
}
