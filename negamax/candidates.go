package negamax

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

// ScorePair is an empty cell's value for each mark. A is MarkA's sum of
// potentials (>= 0); B is MarkB's sum negated (<= 0).
type ScorePair struct {
	A float64
	B float64
}

// Favours returns the mark whose potential dominates. Exact ties go to
// MarkB.
func (s ScorePair) Favours() move.Mark {
	if math.Abs(s.A) > math.Abs(s.B) {
		return move.MarkA
	}
	return move.MarkB
}

// Candidate is an empty cell worth trying, with its score pair.
type Candidate struct {
	board.Point
	Scores ScorePair
}

func (c Candidate) magnitude(mark move.Mark) float64 {
	if mark == move.MarkA {
		return c.Scores.A
	}
	return -c.Scores.B
}

// Candidates holds two lists of empty cells: those that favour MarkA and
// those that favour MarkB. Each list is ordered best first for its mark.
type Candidates struct {
	A []Candidate
	B []Candidate
}

// For returns the list favouring mark.
func (c Candidates) For(mark move.Mark) []Candidate {
	if mark == move.MarkA {
		return c.A
	}
	return c.B
}

// Len is the total number of candidates in both lists.
func (c Candidates) Len() int {
	return len(c.A) + len(c.B)
}

func scoreCell(p *board.Potential, col, row int) Candidate {
	return Candidate{
		Point: board.Point{Col: col, Row: row},
		Scores: ScorePair{
			A: p.Value(move.MarkA),
			B: p.Value(move.MarkB),
		},
	}
}

func hasPotential(c Candidate) bool {
	return c.Scores.A != 0 || c.Scores.B != 0
}

// sortBest orders cands best first for mark. Equal magnitudes keep
// row-major order so that results are reproducible.
func sortBest(cands []Candidate, mark move.Mark) {
	sort.SliceStable(cands, func(i, j int) bool {
		mi, mj := cands[i].magnitude(mark), cands[j].magnitude(mark)
		if mi != mj {
			return mi > mj
		}
		if cands[i].Row != cands[j].Row {
			return cands[i].Row < cands[j].Row
		}
		return cands[i].Col < cands[j].Col
	})
}

func partition(cands []Candidate) Candidates {
	c := Candidates{
		A: lo.Filter(cands, func(c Candidate, _ int) bool { return c.Scores.Favours() == move.MarkA }),
		B: lo.Filter(cands, func(c Candidate, _ int) bool { return c.Scores.Favours() == move.MarkB }),
	}
	sortBest(c.A, move.MarkA)
	sortBest(c.B, move.MarkB)
	return c
}

// Generate scans every empty cell of b and returns the ones that carry any
// potential, split by the mark they favour. Cells with no potential at all
// (nowhere near a stone) are left out.
func Generate(b *board.Board) Candidates {
	var all []Candidate
	b.EmptyCells(func(col, row int, p *board.Potential) {
		c := scoreCell(p, col, row)
		if hasPotential(c) {
			all = append(all, c)
		}
	})
	return partition(all)
}

// Update refreshes cands after the move that produced d, without scanning
// the whole board. Cells in the diff are rescored, the played cell is
// dropped, and each list is truncated to half the branch cap.
func Update(b *board.Board, cands Candidates, d *board.Diff, branchCap int) Candidates {
	played := d.Move()
	fresh := func(c Candidate, _ int) bool {
		if c.Col == played.Col && c.Row == played.Row {
			return false
		}
		if d.Touches(c.Col, c.Row) {
			return false
		}
		return b.At(c.Col, c.Row) == move.Empty
	}
	kept := make([]Candidate, 0, cands.Len()+len(d.Entries()))
	kept = append(kept, lo.Filter(cands.A, fresh)...)
	kept = append(kept, lo.Filter(cands.B, fresh)...)

	for _, e := range d.Entries() {
		if b.At(e.Col, e.Row) != move.Empty {
			continue
		}
		p := b.PotentialAt(e.Col, e.Row)
		c := scoreCell(&p, e.Col, e.Row)
		if hasPotential(c) {
			kept = append(kept, c)
		}
	}
	next := partition(kept)
	keep := branchCap / 2
	if keep < 1 {
		keep = 1
	}
	if len(next.A) > keep {
		next.A = next.A[:keep]
	}
	if len(next.B) > keep {
		next.B = next.B[:keep]
	}
	return next
}

// Capped limits the candidates to branchCap entries, split evenly between
// the two lists. If one list is short, the other takes up the slack.
func (c Candidates) Capped(branchCap int) Candidates {
	if branchCap < 1 {
		branchCap = 1
	}
	nA := min(len(c.A), branchCap/2)
	nB := min(len(c.B), branchCap-nA)
	nA = min(len(c.A), branchCap-nB)
	return Candidates{A: c.A[:nA], B: c.B[:nB]}
}

// Interleave produces the search order for a frame where onTurn is to move:
// the first half of onTurn's list, the first half of the opponent's list,
// then the rest of each.
func Interleave(c Candidates, onTurn move.Mark) []Candidate {
	own := c.For(onTurn)
	other := c.For(onTurn.Opponent())
	order := make([]Candidate, 0, len(own)+len(other))
	order = append(order, own[:len(own)/2]...)
	order = append(order, other[:len(other)/2]...)
	order = append(order, own[len(own)/2:]...)
	order = append(order, other[len(other)/2:]...)
	return order
}
