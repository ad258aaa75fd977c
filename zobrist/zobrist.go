package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

const bignum = 1<<63 - 2

// Zobrist generates a position fingerprint for a five-in-a-row grid.
// https://en.wikipedia.org/wiki/Zobrist_hashing
// The key only depends on which marks occupy which cells, so it does not
// matter in which order the stones were played.
type Zobrist struct {
	cols, rows int
	// posTable[cell][mark-1]
	posTable [][2]uint64
}

func (z *Zobrist) Initialize(cols, rows int) {
	z.cols = cols
	z.rows = rows
	z.posTable = make([][2]uint64, cols*rows)
	for i := range z.posTable {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
}

// Dims returns the grid size the table was initialized for.
func (z *Zobrist) Dims() (int, int) {
	return z.cols, z.rows
}

func (z *Zobrist) key(col, row int, mark move.Mark) uint64 {
	return z.posTable[row*z.cols+col][mark-1]
}

// Hash computes the fingerprint of b from scratch.
func (z *Zobrist) Hash(b *board.Board) uint64 {
	key := uint64(0)
	for row := 0; row < z.rows; row++ {
		for col := 0; col < z.cols; col++ {
			mark := b.At(col, row)
			if mark == move.Empty {
				continue
			}
			key ^= z.key(col, row, mark)
		}
	}
	return key
}

// AddMove returns the fingerprint of the position reached by playing m from
// the position with fingerprint key. Calling it again with the same move
// takes the stone back off.
func (z *Zobrist) AddMove(key uint64, m move.Move) uint64 {
	return key ^ z.key(m.Col, m.Row, m.Mark)
}
