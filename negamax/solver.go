package negamax

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/zobrist"
)

var (
	ErrNoLegalMoves = errors.New("no legal moves left on the board")
	ErrNotInit      = errors.New("solver has not been initialized")
)

const (
	DefaultDepth      = 5
	DefaultBranchCap  = 20
	DefaultTimeBudget = 5 * time.Second

	// DefaultTableFractionOfMem is how much of system memory the
	// transposition table may use.
	DefaultTableFractionOfMem = 1.0 / 256
)

// Config holds the knobs of one search. It is passed by value down the
// recursion.
type Config struct {
	// Depth is the deepest ply iterative deepening will search to.
	Depth int
	// BranchCap is the most candidate moves tried at any one frame.
	BranchCap int
	// TimeBudget is checked between completed depths only, so a search can
	// overrun it by the duration of its last depth.
	TimeBudget time.Duration
}

func DefaultConfig() Config {
	return Config{
		Depth:      DefaultDepth,
		BranchCap:  DefaultBranchCap,
		TimeBudget: DefaultTimeBudget,
	}
}

func (c Config) normalized() Config {
	if c.Depth < 1 {
		c.Depth = 1
	}
	if c.BranchCap < 1 {
		c.BranchCap = 1
	}
	return c
}

// Stats are the diagnostics of a single search invocation.
type Stats struct {
	Nodes     uint64
	TTLookups uint64
	TTHits    uint64
	Cutoffs   uint64
	Fallbacks uint64

	// TTBoundsSkipped counts scores left out of the table because a cutoff
	// below them made them bounds.
	TTBoundsSkipped uint64
	DepthReached    int
	Elapsed         time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("depth=%d nodes=%d tt-hits=%d/%d cutoffs=%d bounds-skipped=%d fallbacks=%d elapsed=%s",
		s.DepthReached, s.Nodes, s.TTHits, s.TTLookups, s.Cutoffs, s.TTBoundsSkipped, s.Fallbacks, s.Elapsed)
}

// ScoredMove is a move and its value from the point of view of the mark
// that plays it.
type ScoredMove struct {
	Move  move.Move
	Score float64
}

// Result is what a completed search found.
type Result struct {
	Move  move.Move
	Score float64
	// Depth is the deepest fully completed iteration.
	Depth int
	// Choices are the root moves evaluated at Depth, in search order.
	Choices []ScoredMove
	// PV is the expected line of play starting with Move.
	PV    PVLine
	Stats Stats
}

// Solver searches a board for the best move. The board is shared and is
// mutated and restored in place during the search, so only one search may
// run on a board at a time.
type Solver struct {
	board   *board.Board
	zobrist *zobrist.Zobrist
	ttable  *TranspositionTable

	ttFractionOfMem float64
	ttSizePowerOf2  int
	// verifyUndo checks, after every speculative move, that the board is
	// exactly as it was before. Slow; meant for tests and debugging.
	verifyUndo bool
}

// Init attaches the solver to b, creating its hasher and transposition table.
func (s *Solver) Init(b *board.Board) error {
	if b == nil {
		return errors.New("nil board")
	}
	s.board = b
	cols, rows := b.Cols(), b.Rows()
	if s.zobrist == nil {
		s.zobrist = &zobrist.Zobrist{}
	}
	if c, r := s.zobrist.Dims(); c != cols || r != rows {
		log.Debug().Int("cols", cols).Int("rows", rows).Msg("creating-zobrist-hash")
		s.zobrist.Initialize(cols, rows)
	}
	if s.ttable == nil {
		s.ttable = &TranspositionTable{}
	}
	if s.ttSizePowerOf2 > 0 {
		s.ttable.ResetWithSize(s.ttSizePowerOf2)
	} else {
		if s.ttFractionOfMem <= 0 {
			s.ttFractionOfMem = DefaultTableFractionOfMem
		}
		s.ttable.Reset(s.ttFractionOfMem)
	}
	return nil
}

// SetTableFractionOfMem sizes the transposition table from system memory
// on the next Init.
func (s *Solver) SetTableFractionOfMem(f float64) {
	s.ttFractionOfMem = f
	s.ttSizePowerOf2 = 0
}

// SetTableSizePowerOf2 fixes the transposition table at 2^p entries on the
// next Init.
func (s *Solver) SetTableSizePowerOf2(p int) {
	s.ttSizePowerOf2 = p
}

func (s *Solver) SetVerifyUndo(v bool) {
	s.verifyUndo = v
}

func (s *Solver) Board() *board.Board {
	return s.board
}

// TableStats returns the transposition table counters of the last search.
func (s *Solver) TableStats() TableStats {
	return s.ttable.Stats()
}

// BestMove returns the move the engine would play for mark.
func (s *Solver) BestMove(ctx context.Context, mark move.Mark, cfg Config) (move.Move, error) {
	res, err := s.IterativeDeepening(ctx, mark, cfg)
	if err != nil {
		return move.Move{}, err
	}
	return res.Move, nil
}
