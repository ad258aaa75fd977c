package board

import (
	"fmt"
	"strings"

	"github.com/domino14/gomoku/move"
)

func (b *Board) header(cellWidth int) string {
	var sb strings.Builder
	sb.WriteString("    ")
	for col := 0; col < b.cols; col++ {
		var label string
		if b.cols <= 26 {
			label = string(rune('A' + col))
		} else {
			label = fmt.Sprint(col)
		}
		fmt.Fprintf(&sb, "%-*s", cellWidth, label)
	}
	return strings.TrimRight(sb.String(), " ")
}

// ToDisplayText renders the grid, one line per row, with the last move
// highlighted.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(b.header(2))
	sb.WriteString("\n")
	last, hasLast := b.LastMove()
	for row := 0; row < b.rows; row++ {
		fmt.Fprintf(&sb, "%3d ", row+1)
		for col := 0; col < b.cols; col++ {
			m := b.At(col, row)
			if hasLast && last.Col == col && last.Row == row {
				sb.WriteString(strings.ToLower(m.String()))
			} else {
				sb.WriteString(m.String())
			}
			if col != b.cols-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToPotentialText renders each empty cell's MarkA sum and MarkB sum as
// "a,b"; occupied cells show their mark.
func (b *Board) ToPotentialText() string {
	var sb strings.Builder
	sb.WriteString(b.header(8))
	sb.WriteString("\n")
	for row := 0; row < b.rows; row++ {
		fmt.Fprintf(&sb, "%3d ", row+1)
		for col := 0; col < b.cols; col++ {
			idx := b.index(col, row)
			var cell string
			if b.marks[idx] != move.Empty {
				cell = b.marks[idx].String()
			} else {
				p := &b.pots[idx]
				cell = fmt.Sprintf("%d,%d", int(p.Sum(move.MarkA)), int(p.Sum(move.MarkB)))
			}
			fmt.Fprintf(&sb, "%-8s", cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
