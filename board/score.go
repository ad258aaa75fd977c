package board

import (
	"github.com/domino14/gomoku/move"
)

// ScoreBoard sums the value of every empty cell. Positive scores favour
// MarkA, negative scores MarkB.
func (b *Board) ScoreBoard() float64 {
	score := 0.0
	for idx := range b.marks {
		if b.marks[idx] == move.Empty {
			score += b.pots[idx].Total()
		}
	}
	return score
}

// ScoreFor returns the board score from mark's perspective.
func (b *Board) ScoreFor(mark move.Mark) float64 {
	return mark.Sign() * b.ScoreBoard()
}

// ScoreMove plays m speculatively and returns the summed value of the cells
// it touched. The board is left unchanged.
func (b *Board) ScoreMove(m move.Move) float64 {
	d := b.Apply(m)
	res := 0.0
	for _, e := range d.entries {
		res += b.pots[b.index(e.Col, e.Row)].Total()
	}
	b.Undo(d)
	return res
}
