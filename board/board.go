package board

import (
	"github.com/domino14/gomoku/move"
)

// NumDirections is the number of half-directions radiating from a cell.
const NumDirections = 8

// Directions holds the (dx, dy) step of every half-direction, going
// anti-clockwise from "down". Index i and Antiparallel(i) point in opposite
// directions along the same axis.
var Directions = [NumDirections][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

// Antiparallel returns the index of the half-direction opposite to i.
func Antiparallel(i int) int {
	return (i + NumDirections/2) % NumDirections
}

// Point is a cell coordinate.
type Point struct {
	Col int
	Row int
}

// Potential holds a cell's chain values for both marks, one entry per
// half-direction. Only the potentials of empty cells mean anything; once a
// cell is occupied its entries are left stale.
type Potential struct {
	A [NumDirections]float64
	B [NumDirections]float64
}

// For returns the direction table for mark. It panics on move.Empty.
func (p *Potential) For(mark move.Mark) *[NumDirections]float64 {
	switch mark {
	case move.MarkA:
		return &p.A
	case move.MarkB:
		return &p.B
	}
	panic("no potential for an empty mark")
}

// Sum returns the unsigned sum of mark's direction entries.
func (p *Potential) Sum(mark move.Mark) float64 {
	t := p.For(mark)
	s := 0.0
	for _, v := range t {
		s += v
	}
	return s
}

// Value returns the sign-adjusted value of the cell for mark: MarkA's sum
// counts positively and MarkB's negatively.
func (p *Potential) Value(mark move.Mark) float64 {
	return mark.Sign() * p.Sum(mark)
}

// Total is the cell's contribution to the board score.
func (p *Potential) Total() float64 {
	return p.Value(move.MarkA) + p.Value(move.MarkB)
}

// Board is the grid of marks plus the potential table used by the search
// heuristic. It is mutated in place by Apply and restored by Undo.
type Board struct {
	cols      int
	rows      int
	winLength int

	marks  []move.Mark
	pots   []Potential
	stones int

	// played is the stack of moves applied so far. Undo must pop from it
	// in order.
	played []move.Move
}

// NewBoard creates an empty cols x rows board. winLength is the length of
// the run that wins the game.
func NewBoard(cols, rows, winLength int) *Board {
	if cols <= 0 || rows <= 0 {
		panic("board dimensions must be positive")
	}
	return &Board{
		cols:      cols,
		rows:      rows,
		winLength: winLength,
		marks:     make([]move.Mark, cols*rows),
		pots:      make([]Potential, cols*rows),
	}
}

func (b *Board) Cols() int      { return b.cols }
func (b *Board) Rows() int      { return b.rows }
func (b *Board) WinLength() int { return b.winLength }

// Stones returns the number of occupied cells.
func (b *Board) Stones() int { return b.stones }

// NumCells returns cols*rows.
func (b *Board) NumCells() int { return len(b.marks) }

func (b *Board) index(col, row int) int {
	return row*b.cols + col
}

// InBounds returns true if (col, row) is on the grid.
func (b *Board) InBounds(col, row int) bool {
	return col >= 0 && col < b.cols && row >= 0 && row < b.rows
}

// At returns the mark at (col, row). The cell must be in bounds.
func (b *Board) At(col, row int) move.Mark {
	return b.marks[b.index(col, row)]
}

// PotentialAt returns a copy of the potential table at (col, row).
func (b *Board) PotentialAt(col, row int) Potential {
	return b.pots[b.index(col, row)]
}

// CellValue is the sign-adjusted sum of both marks' potentials at an empty
// cell; it is 0 for occupied cells.
func (b *Board) CellValue(col, row int) float64 {
	idx := b.index(col, row)
	if b.marks[idx] != move.Empty {
		return 0
	}
	return b.pots[idx].Total()
}

// LastMove returns the most recently applied move that has not been undone.
func (b *Board) LastMove() (move.Move, bool) {
	if len(b.played) == 0 {
		return move.Move{}, false
	}
	return b.played[len(b.played)-1], true
}

// Played returns the number of applied moves that have not been undone.
func (b *Board) Played() int {
	return len(b.played)
}

// CheckLegal returns true if m places a real mark on an empty, in-bounds cell.
func (b *Board) CheckLegal(m move.Move) bool {
	if m.Mark != move.MarkA && m.Mark != move.MarkB {
		return false
	}
	if !b.InBounds(m.Col, m.Row) {
		return false
	}
	return b.At(m.Col, m.Row) == move.Empty
}

// CheckFull returns true if there are no empty cells left.
func (b *Board) CheckFull() bool {
	return b.stones == len(b.marks)
}

// Center returns the middle cell of the grid.
func (b *Board) Center() Point {
	return Point{Col: b.cols / 2, Row: b.rows / 2}
}

// NearestEmpty returns the empty cell closest to p (squared euclidean
// distance, ties broken in row-major order). ok is false on a full board.
func (b *Board) NearestEmpty(p Point) (Point, bool) {
	best := Point{}
	bestDist := -1
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			if b.marks[b.index(col, row)] != move.Empty {
				continue
			}
			dc, dr := col-p.Col, row-p.Row
			d := dc*dc + dr*dr
			if bestDist < 0 || d < bestDist {
				best = Point{Col: col, Row: row}
				bestDist = d
			}
		}
	}
	return best, bestDist >= 0
}

// EmptyCells calls fn for every empty cell in row-major order.
func (b *Board) EmptyCells(fn func(col, row int, p *Potential)) {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			idx := b.index(col, row)
			if b.marks[idx] == move.Empty {
				fn(col, row, &b.pots[idx])
			}
		}
	}
}
