package negamax

import (
	"math"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

const entrySize = 24

const (
	minTableSizePowerOf2 = 10
	maxTableSizePowerOf2 = 24
)

// TableEntry is a memoized search result. It is only valid for the exact
// depth it was searched to.
type TableEntry struct {
	hash  uint64
	score float64
	depth uint16
	used  bool
}

func (t TableEntry) valid() bool {
	return t.used
}

// TranspositionTable maps (position fingerprint, remaining depth) to a score
// from MarkA's point of view. It is owned by one search at a time.
type TranspositionTable struct {
	table        []TableEntry
	sizePowerOf2 int
	sizeMask     uint64

	created uint64
	lookups uint64
	hits    uint64
	// collisions counts lookups that found a different position (or the same
	// position at a different depth) in their bucket.
	collisions uint64
}

// TableStats is a snapshot of the table's counters.
type TableStats struct {
	Created    uint64
	Lookups    uint64
	Hits       uint64
	Collisions uint64
}

// bucket mixes the depth into the fingerprint so that the same position at
// different depths lands in different slots.
func (t *TranspositionTable) bucket(zval uint64, depth int) uint64 {
	return (zval ^ (uint64(depth) * 0x9e3779b97f4a7c15)) & t.sizeMask
}

// Lookup returns the score stored for (zval, depth). Entries stored at any
// other depth are never returned.
func (t *TranspositionTable) Lookup(zval uint64, depth int) (float64, bool) {
	t.lookups++
	e := t.table[t.bucket(zval, depth)]
	if !e.valid() {
		return 0, false
	}
	if e.hash != zval || int(e.depth) != depth {
		t.collisions++
		return 0, false
	}
	t.hits++
	return e.score, true
}

// Store saves score for (zval, depth), overwriting whatever is in the slot.
func (t *TranspositionTable) Store(zval uint64, depth int, score float64) {
	t.table[t.bucket(zval, depth)] = TableEntry{
		hash:  zval,
		score: score,
		depth: uint16(depth),
		used:  true,
	}
	t.created++
}

// Reset sizes the table to roughly fractionOfMemory of system memory (in
// entries, rounded down to a power of two) and empties it.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	power := minTableSizePowerOf2
	if desiredNElems >= 1 {
		power = int(math.Log2(desiredNElems))
	}
	t.ResetWithSize(power)
	log.Debug().Float64("desired-num-elems", desiredNElems).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-size-from-memory")
}

func clampTableSize(p int) int {
	return max(minTableSizePowerOf2, min(p, maxTableSizePowerOf2))
}

// ResetWithSize allocates 2^sizePowerOf2 entries (clamped to a sane range)
// and empties the table.
func (t *TranspositionTable) ResetWithSize(sizePowerOf2 int) {
	sizePowerOf2 = clampTableSize(sizePowerOf2)
	t.sizePowerOf2 = sizePowerOf2
	numElems := 1 << sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}
	log.Debug().Int("num-elems", numElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Bool("reset", reset).
		Msg("transposition-table-size")
	t.resetCounters()
}

// Clear empties the table without reallocating it.
func (t *TranspositionTable) Clear() {
	clear(t.table)
	t.resetCounters()
}

func (t *TranspositionTable) resetCounters() {
	t.created = 0
	t.lookups = 0
	t.hits = 0
	t.collisions = 0
}

func (t *TranspositionTable) Stats() TableStats {
	return TableStats{
		Created:    t.created,
		Lookups:    t.lookups,
		Hits:       t.hits,
		Collisions: t.collisions,
	}
}

// Size returns the number of slots in the table.
func (t *TranspositionTable) Size() int {
	return len(t.table)
}
