package negamax

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/move"
)

func TestPVLineUpdate(t *testing.T) {
	is := is.New(t)
	child := PVLine{Moves: []move.Move{move.New(1, 1, move.MarkB), move.New(2, 2, move.MarkA)}, Score: 3}
	var pv PVLine
	pv.Update(move.New(0, 0, move.MarkA), child, -3)
	is.Equal(len(pv.Moves), 3)
	is.Equal(pv.Moves[0], move.New(0, 0, move.MarkA))
	is.Equal(pv.Score, -3.0)

	// a later, better move replaces the whole line.
	pv.Update(move.New(4, 4, move.MarkA), PVLine{}, 7)
	is.Equal(pv.Moves, []move.Move{move.New(4, 4, move.MarkA)})
	is.Equal(pv.String(), "PV; val 7.00; 1: E5 O")
}
