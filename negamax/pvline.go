package negamax

import (
	"fmt"
	"strings"

	"github.com/domino14/gomoku/move"
)

// PVLine is the principal variation: the line of play the search expects
// from a position. A line cut short by a transposition table hit or a
// game-ending move is shorter than the search depth.
type PVLine struct {
	Moves []move.Move
	Score float64
}

// Update makes the line m followed by the child's line.
func (pv *PVLine) Update(m move.Move, child PVLine, score float64) {
	pv.Moves = append(pv.Moves[:0], m)
	pv.Moves = append(pv.Moves, child.Moves...)
	pv.Score = score
}

func (pv PVLine) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %.2f;", pv.Score)
	for i, m := range pv.Moves {
		fmt.Fprintf(&sb, " %d: %v", i+1, m)
	}
	return sb.String()
}
