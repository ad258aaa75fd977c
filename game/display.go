package game

import (
	"fmt"
	"strings"

	"github.com/domino14/gomoku/move"
)

// ToDisplayText renders the board with a status line underneath.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	sb.WriteString("\n")
	switch g.playing {
	case Playing:
		fmt.Fprintf(&sb, "Turn %d, %v to move (%s)\n", g.Turn()+1, g.onturn, g.rules)
	case Won:
		fmt.Fprintf(&sb, "%v wins with %s-%s\n", g.winner,
			move.ToBoardGameCoords(g.winLine[0].Col, g.winLine[0].Row),
			move.ToBoardGameCoords(g.winLine[1].Col, g.winLine[1].Row))
	case Draw:
		sb.WriteString("The board is full; the game is a draw.\n")
	}
	return sb.String()
}
