package negamax

import (
	"math/rand"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func cands(n int, col int) []Candidate {
	cs := make([]Candidate, n)
	for i := range cs {
		cs[i] = Candidate{Point: board.Point{Col: col, Row: i}}
	}
	return cs
}

func TestGenerateEmptyBoard(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard(15, 15, 5)
	c := Generate(b)
	is.Equal(c.Len(), 0)
}

func TestGenerateAfterOneStone(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard(15, 15, 5)
	b.Apply(move.New(7, 7, move.MarkA))
	c := Generate(b)
	is.Equal(len(c.A), 16)
	is.Equal(len(c.B), 0)
	for _, cand := range c.A {
		is.Equal(cand.Scores.A, 2.0)
		is.Equal(cand.Scores.B, 0.0)
	}
	// equal scores come out in row-major order
	is.Equal(c.A[0].Point, board.Point{Col: 5, Row: 5})
	is.Equal(c.A[1].Point, board.Point{Col: 7, Row: 5})

	b.Apply(move.New(8, 7, move.MarkB))
	c = Generate(b)
	is.True(len(c.B) > 0)
	for i := 1; i < len(c.A); i++ {
		is.True(c.A[i-1].Scores.A >= c.A[i].Scores.A)
	}
	for i := 1; i < len(c.B); i++ {
		is.True(c.B[i-1].Scores.B <= c.B[i].Scores.B)
	}
}

func TestFavoursTieGoesToB(t *testing.T) {
	is := is.New(t)
	is.Equal(ScorePair{A: 2, B: -2}.Favours(), move.MarkB)
	is.Equal(ScorePair{A: 3, B: -2}.Favours(), move.MarkA)
	is.Equal(ScorePair{A: 1, B: -2}.Favours(), move.MarkB)
}

func TestUpdateMatchesGenerate(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(3))
	b := board.NewBoard(15, 15, 5)
	mark := move.MarkA
	// Stay near the centre so that moves interact.
	for i := 0; i < 40; i++ {
		var m move.Move
		for {
			m = move.New(4+rng.Intn(7), 4+rng.Intn(7), mark)
			if b.CheckLegal(m) {
				break
			}
		}
		before := Generate(b)
		d := b.Apply(m)
		updated := Update(b, before, &d, 10000)
		is.Equal(updated, Generate(b))
		mark = mark.Opponent()
	}
}

func TestUpdateNeverReturnsOccupied(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(11))
	b := board.NewBoard(11, 11, 5)
	c := Generate(b)
	mark := move.MarkA
	for i := 0; i < 60 && !b.CheckFull(); i++ {
		var m move.Move
		for {
			m = move.New(rng.Intn(11), rng.Intn(11), mark)
			if b.CheckLegal(m) {
				break
			}
		}
		d := b.Apply(m)
		c = Update(b, c, &d, 8)
		is.True(len(c.A) <= 4)
		is.True(len(c.B) <= 4)
		for _, cand := range append(append([]Candidate{}, c.A...), c.B...) {
			is.Equal(b.At(cand.Col, cand.Row), move.Empty)
			is.True(!(cand.Col == m.Col && cand.Row == m.Row))
		}
		mark = mark.Opponent()
	}
}

func TestCapped(t *testing.T) {
	is := is.New(t)
	c := Candidates{A: cands(2, 0), B: cands(20, 1)}.Capped(10)
	is.Equal(len(c.A), 2)
	is.Equal(len(c.B), 8)

	c = Candidates{A: cands(20, 0), B: cands(20, 1)}.Capped(10)
	is.Equal(len(c.A), 5)
	is.Equal(len(c.B), 5)

	c = Candidates{A: cands(20, 0), B: cands(2, 1)}.Capped(10)
	is.Equal(len(c.A), 8)
	is.Equal(len(c.B), 2)

	c = Candidates{A: cands(1, 0), B: cands(1, 1)}.Capped(10)
	is.Equal(c.Len(), 2)
}

func TestInterleave(t *testing.T) {
	is := is.New(t)
	c := Candidates{A: cands(4, 0), B: cands(2, 1)}
	order := Interleave(c, move.MarkA)
	is.Equal(len(order), 6)
	expected := []board.Point{{Col: 0, Row: 0}, {Col: 0, Row: 1}, {Col: 1, Row: 0}, {Col: 0, Row: 2}, {Col: 0, Row: 3}, {Col: 1, Row: 1}}
	for i, p := range expected {
		is.Equal(order[i].Point, p)
	}

	order = Interleave(c, move.MarkB)
	expected = []board.Point{{Col: 1, Row: 0}, {Col: 0, Row: 0}, {Col: 0, Row: 1}, {Col: 1, Row: 1}, {Col: 0, Row: 2}, {Col: 0, Row: 3}}
	for i, p := range expected {
		is.Equal(order[i].Point, p)
	}
}
