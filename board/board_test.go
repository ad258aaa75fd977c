package board

import (
	"math/rand"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/gomoku/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newStd() *Board {
	return NewBoard(15, 15, 5)
}

func snapshot(b *Board) ([]move.Mark, []Potential) {
	marks := make([]move.Mark, len(b.marks))
	copy(marks, b.marks)
	pots := make([]Potential, len(b.pots))
	copy(pots, b.pots)
	return marks, pots
}

func manualScore(b *Board) float64 {
	s := 0.0
	b.EmptyCells(func(col, row int, p *Potential) {
		s += p.Sum(move.MarkA) - p.Sum(move.MarkB)
	})
	return s
}

func TestAntiparallel(t *testing.T) {
	is := is.New(t)
	for i := 0; i < NumDirections; i++ {
		j := Antiparallel(i)
		is.Equal(Directions[i][0], -Directions[j][0])
		is.Equal(Directions[i][1], -Directions[j][1])
		is.Equal(Antiparallel(j), i)
	}
}

func TestCheckLegal(t *testing.T) {
	is := is.New(t)
	b := newStd()
	is.True(b.CheckLegal(move.New(0, 0, move.MarkA)))
	is.True(b.CheckLegal(move.New(14, 14, move.MarkB)))
	is.True(!b.CheckLegal(move.New(-1, 0, move.MarkA)))
	is.True(!b.CheckLegal(move.New(0, -1, move.MarkA)))
	is.True(!b.CheckLegal(move.New(15, 0, move.MarkA)))
	is.True(!b.CheckLegal(move.New(0, 15, move.MarkA)))
	is.True(!b.CheckLegal(move.New(3, 3, move.Empty)))

	b.Apply(move.New(7, 7, move.MarkA))
	is.True(!b.CheckLegal(move.New(7, 7, move.MarkA)))
	is.True(!b.CheckLegal(move.New(7, 7, move.MarkB)))
	is.True(b.CheckLegal(move.New(7, 8, move.MarkB)))
}

func TestCheckFull(t *testing.T) {
	is := is.New(t)
	b := NewBoard(3, 3, 3)
	mark := move.MarkA
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			is.True(!b.CheckFull())
			b.Apply(move.New(col, row, mark))
			mark = mark.Opponent()
		}
	}
	is.True(b.CheckFull())
	is.Equal(b.Stones(), 9)
	_, ok := b.NearestEmpty(b.Center())
	is.True(!ok)
}

func TestNearestEmpty(t *testing.T) {
	is := is.New(t)
	b := newStd()
	p, ok := b.NearestEmpty(b.Center())
	is.True(ok)
	is.Equal(p, Point{Col: 7, Row: 7})

	b.Apply(move.New(7, 7, move.MarkA))
	p, ok = b.NearestEmpty(b.Center())
	is.True(ok)
	// (7,6) comes first in row-major order among the four neighbours.
	is.Equal(p, Point{Col: 7, Row: 6})
}

func TestScan(t *testing.T) {
	is := is.New(t)
	b := newStd()
	b.Apply(move.New(1, 0, move.MarkA))
	b.Apply(move.New(2, 0, move.MarkA))
	b.Apply(move.New(5, 0, move.MarkB))

	chains := b.Scan(0, 0, move.MarkA, DefaultLookahead)
	// direction 2 is +x
	is.Equal(chains[2].Run, 2)
	is.Equal(chains[2].Empties(), []Point{{3, 0}, {4, 0}})
	// direction 4 is -y, off the grid straight away.
	is.Equal(chains[4].Run, 0)
	is.True(chains[4].Blocked())
	// direction 0 is +y
	is.Equal(chains[0].Run, 0)
	is.Equal(chains[0].Empties(), []Point{{0, 1}, {0, 2}})

	// Scanning from (3,0) towards +x reaches (4,0) then stops at the X.
	chains = b.Scan(3, 0, move.MarkA, 3)
	is.Equal(chains[2].Run, 0)
	is.Equal(chains[2].Empties(), []Point{{4, 0}})
	is.Equal(chains[6].Run, 2)
	is.Equal(chains[6].Empties(), []Point{{0, 0}})
	// The empty cell before the X still counts at the engine's lookahead.
	chains = b.Scan(3, 0, move.MarkA, DefaultLookahead)
	is.Equal(chains[2].Empties(), []Point{{4, 0}})
	is.True(!chains[2].Blocked())

	// Opponent adjacency blocks the direction for our mark.
	chains = b.Scan(4, 0, move.MarkA, 2)
	is.Equal(chains[2].Run, 0)
	is.True(chains[2].Blocked())
}

func TestApplyPotentials(t *testing.T) {
	is := is.New(t)
	b := newStd()
	d := b.Apply(move.New(7, 7, move.MarkA))
	is.Equal(b.At(7, 7), move.MarkA)
	// 8 directions, 2 cells each.
	is.Equal(len(d.Entries()), 16)

	p := b.PotentialAt(7, 8)
	is.Equal(p.A[4], 2.0)
	is.Equal(p.Sum(move.MarkA), 2.0)
	is.Equal(p.Sum(move.MarkB), 0.0)
	is.Equal(b.ScoreBoard(), 32.0)
	is.Equal(b.ScoreFor(move.MarkB), -32.0)

	b.Apply(move.New(8, 7, move.MarkB))
	// (9,7) is on X's open side but X's other side is blocked by O.
	p = b.PotentialAt(9, 7)
	is.Equal(p.B[6], 1.0)
	// and O's reach through the new X shrinks.
	is.Equal(p.A[6], 1.0)
	// O's other side is shortened too.
	is.Equal(b.PotentialAt(6, 7).A[2], 1.0)
	is.Equal(b.PotentialAt(5, 7).A[2], 1.0)
	// untouched O diagonal potential is kept.
	is.Equal(b.PotentialAt(8, 6).A[7], 2.0)
	is.Equal(b.ScoreBoard(), manualScore(b))
}

func TestApplyGrowsRuns(t *testing.T) {
	is := is.New(t)
	b := newStd()
	b.Apply(move.New(5, 7, move.MarkA))
	b.Apply(move.New(6, 7, move.MarkA))
	b.Apply(move.New(7, 7, move.MarkA))
	// A three-stone open run: the cells at both ends see 1 + 3^2.
	is.Equal(b.PotentialAt(8, 7).A[6], 10.0)
	is.Equal(b.PotentialAt(9, 7).A[6], 10.0)
	is.Equal(b.PotentialAt(4, 7).A[2], 10.0)

	// Blocking one end drops the other end's value to 1 + (4-1)^2.
	b.Apply(move.New(4, 7, move.MarkB))
	b.Apply(move.New(8, 7, move.MarkA))
	is.Equal(b.PotentialAt(9, 7).A[6], 10.0)
}

func TestApplyUndoRestores(t *testing.T) {
	is := is.New(t)
	b := newStd()
	marks0, pots0 := snapshot(b)
	sum0 := b.Checksum()

	d := b.Apply(move.New(7, 7, move.MarkA))
	is.True(b.Checksum() != sum0)
	b.Undo(d)
	marks1, pots1 := snapshot(b)
	is.Equal(marks0, marks1)
	is.Equal(pots0, pots1)
	is.Equal(b.Checksum(), sum0)
	is.Equal(b.Stones(), 0)
	is.Equal(b.Played(), 0)
}

func TestApplyUndoRandomSequences(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		b := NewBoard(9+rng.Intn(8), 9+rng.Intn(8), 5)
		type level struct {
			diff  Diff
			sum   uint64
			score float64
		}
		var levels []level
		mark := move.MarkA
		for i := 0; i < 60 && !b.CheckFull(); i++ {
			sum := b.Checksum()
			score := b.ScoreBoard()
			var m move.Move
			for {
				m = move.New(rng.Intn(b.Cols()), rng.Intn(b.Rows()), mark)
				if b.CheckLegal(m) {
					break
				}
			}
			d := b.Apply(m)
			is.Equal(b.ScoreBoard(), manualScore(b))
			levels = append(levels, level{d, sum, score})
			mark = mark.Opponent()
		}
		for i := len(levels) - 1; i >= 0; i-- {
			b.Undo(levels[i].diff)
			is.Equal(b.Checksum(), levels[i].sum)
			is.Equal(b.ScoreBoard(), levels[i].score)
		}
		is.Equal(b.Stones(), 0)
	}
}

func TestApplySequence(t *testing.T) {
	is := is.New(t)
	b := newStd()
	sum := b.Checksum()
	diffs := b.ApplySequence([]move.Move{
		move.New(7, 7, move.MarkA), move.New(8, 8, move.MarkB), move.New(6, 6, move.MarkA),
	})
	is.Equal(len(diffs), 3)
	is.Equal(b.Stones(), 3)
	last, ok := b.LastMove()
	is.True(ok)
	is.Equal(last, move.New(6, 6, move.MarkA))
	b.UndoSequence(diffs)
	is.Equal(b.Checksum(), sum)
}

func TestUndoOutOfOrderPanics(t *testing.T) {
	is := is.New(t)
	b := newStd()
	d1 := b.Apply(move.New(7, 7, move.MarkA))
	b.Apply(move.New(8, 8, move.MarkB))
	defer func() {
		r := recover()
		is.True(r != nil)
	}()
	b.Undo(d1)
}

func TestScoreMoveLeavesBoard(t *testing.T) {
	is := is.New(t)
	b := newStd()
	b.Apply(move.New(7, 7, move.MarkA))
	sum := b.Checksum()
	v := b.ScoreMove(move.New(8, 7, move.MarkB))
	is.True(v != 0)
	is.Equal(b.Checksum(), sum)
	is.Equal(b.At(8, 7), move.Empty)
}

func TestCellValue(t *testing.T) {
	is := is.New(t)
	b := newStd()
	b.Apply(move.New(7, 7, move.MarkA))
	is.Equal(b.CellValue(7, 8), 2.0)
	is.Equal(b.CellValue(7, 7), 0.0)
	is.Equal(b.CellValue(0, 0), 0.0)
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	b := NewBoard(3, 3, 3)
	b.Apply(move.New(0, 0, move.MarkA))
	b.Apply(move.New(1, 1, move.MarkB))
	is.Equal(b.ToDisplayText(), "    A B C\n  1 O . .\n  2 . x .\n  3 . . .\n")
}
