package board

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash"
)

// Checksum digests the marks and every potential entry of the board. Two
// boards with equal checksums are, for all practical purposes, bit-for-bit
// identical. It is meant for verification, not for transposition lookups.
func (b *Board) Checksum() uint64 {
	buf := make([]byte, 0, len(b.marks)*(1+2*NumDirections*8))
	for idx := range b.marks {
		buf = append(buf, byte(b.marks[idx]))
		p := &b.pots[idx]
		for d := 0; d < NumDirections; d++ {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.A[d]))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.B[d]))
		}
	}
	return xxhash.Sum64(buf)
}
