package board

import (
	"fmt"
	"math"

	"github.com/domino14/gomoku/move"
)

// DiffEntry is the potential table of one cell as it was before a move.
type DiffEntry struct {
	Point
	Prior Potential
}

// Diff records everything Apply changed, so that Undo can put it back.
// Diffs must be undone in the reverse order they were produced.
type Diff struct {
	move    move.Move
	height  int
	entries []DiffEntry
}

// Move returns the move that produced this diff.
func (d *Diff) Move() move.Move {
	return d.move
}

// Entries returns the cells whose potentials the move changed, with their
// prior values. Every cell appears at most once.
func (d *Diff) Entries() []DiffEntry {
	return d.entries
}

// Touches returns true if the diff holds an entry for (col, row).
func (d *Diff) Touches(col, row int) bool {
	for i := range d.entries {
		if d.entries[i].Col == col && d.entries[i].Row == row {
			return true
		}
	}
	return false
}

// shrink undoes one step of the 1 + n^2 growth of a potential entry.
func shrink(v float64) float64 {
	if v <= 0 {
		return v
	}
	n := math.Sqrt(v-1) - 1
	if n < 0 {
		n = 0
	}
	return 1 + n*n
}

// Apply places m on the board and updates the potentials of the empty cells
// around it. The move must be legal (see CheckLegal). The returned diff must
// be passed back to Undo before any earlier diff is undone.
func (b *Board) Apply(m move.Move) Diff {
	idx := b.index(m.Col, m.Row)
	b.marks[idx] = m.Mark
	b.stones++
	b.played = append(b.played, m)

	opp := m.Mark.Opponent()
	same := b.Scan(m.Col, m.Row, m.Mark, DefaultLookahead)
	theirs := b.Scan(m.Col, m.Row, opp, DefaultLookahead)

	d := Diff{
		move:    m,
		height:  len(b.played),
		entries: make([]DiffEntry, 0, NumDirections*DefaultLookahead),
	}

	for i := 0; i < NumDirections; i++ {
		j := Antiparallel(i)

		var touched []Point
		var chainVal float64
		extends := !same[i].Blocked()
		if extends {
			touched = same[i].Empties()
			combined := same[i].Run + same[j].Run + 1
			if same[j].Blocked() {
				combined--
			}
			chainVal = 1 + float64(combined*combined)
		} else if theirs[i].Run > 0 && theirs[i].Run < b.winLength-1 {
			// The new stone sits at the end of an opponent run; the cells
			// past that run lose some of their opponent potential.
			touched = theirs[i].Empties()
		}

		for _, pt := range touched {
			ci := b.index(pt.Col, pt.Row)
			d.entries = append(d.entries, DiffEntry{Point: pt, Prior: b.pots[ci]})
			p := &b.pots[ci]
			if extends {
				p.For(m.Mark)[j] = chainVal
			}
			ot := p.For(opp)
			ot[i] = shrink(ot[i])
			ot[j] = shrink(ot[j])
		}
	}
	return d
}

// Undo reverts the move that produced d. It panics if d is not the most
// recent outstanding diff.
func (b *Board) Undo(d Diff) {
	top := len(b.played)
	if top == 0 || d.height != top || b.played[top-1] != d.move {
		panic(fmt.Sprintf("undo out of order: diff for %v at height %d, board height %d",
			d.move, d.height, top))
	}
	b.played = b.played[:top-1]
	b.marks[b.index(d.move.Col, d.move.Row)] = move.Empty
	b.stones--
	for i := range d.entries {
		e := &d.entries[i]
		b.pots[b.index(e.Col, e.Row)] = e.Prior
	}
}

// ApplySequence applies moves in order and returns their diffs.
func (b *Board) ApplySequence(moves []move.Move) []Diff {
	diffs := make([]Diff, 0, len(moves))
	for _, m := range moves {
		diffs = append(diffs, b.Apply(m))
	}
	return diffs
}

// UndoSequence undoes diffs produced by ApplySequence, last first.
func (b *Board) UndoSequence(diffs []Diff) {
	for i := len(diffs) - 1; i >= 0; i-- {
		b.Undo(diffs[i])
	}
}
