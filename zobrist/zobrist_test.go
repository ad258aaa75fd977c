package zobrist

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

func TestEmptyBoard(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(15, 15)
	b := board.NewBoard(15, 15, 5)
	is.Equal(z.Hash(b), uint64(0))
	cols, rows := z.Dims()
	is.Equal(cols, 15)
	is.Equal(rows, 15)
}

func TestAddMoveMatchesHash(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(12, 10)
	b := board.NewBoard(12, 10, 5)
	rng := rand.New(rand.NewSource(7))
	key := z.Hash(b)
	mark := move.MarkA
	for i := 0; i < 50; i++ {
		var m move.Move
		for {
			m = move.New(rng.Intn(12), rng.Intn(10), mark)
			if b.CheckLegal(m) {
				break
			}
		}
		b.Apply(m)
		key = z.AddMove(key, m)
		is.Equal(key, z.Hash(b))
		mark = mark.Opponent()
	}
}

func TestOrderIndependent(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(15, 15)
	moves := []move.Move{
		move.New(7, 7, move.MarkA), move.New(8, 8, move.MarkB),
		move.New(6, 6, move.MarkA), move.New(9, 9, move.MarkB),
	}
	b1 := board.NewBoard(15, 15, 5)
	b1.ApplySequence(moves)
	b2 := board.NewBoard(15, 15, 5)
	b2.ApplySequence([]move.Move{moves[2], moves[3], moves[0], moves[1]})
	is.Equal(z.Hash(b1), z.Hash(b2))

	// Swapping which mark owns a cell must change the key.
	b3 := board.NewBoard(15, 15, 5)
	b3.ApplySequence([]move.Move{
		move.New(7, 7, move.MarkB), move.New(8, 8, move.MarkA),
		move.New(6, 6, move.MarkA), move.New(9, 9, move.MarkB),
	})
	is.True(z.Hash(b1) != z.Hash(b3))
}

func TestAddMoveTakesBack(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(15, 15)
	m := move.New(3, 4, move.MarkB)
	key := z.AddMove(12345, m)
	is.True(key != 12345)
	is.Equal(z.AddMove(key, m), uint64(12345))
}
