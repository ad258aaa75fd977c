package negamax

import (
	"fmt"
	"math"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

// search is the state of a single search invocation.
type search struct {
	s     *Solver
	cfg   Config
	stats *Stats
}

func onTurnMark(maximizing bool) move.Mark {
	if maximizing {
		return move.MarkA
	}
	return move.MarkB
}

// fallback is used when a frame has no candidates at all, which happens when
// no empty cell carries any potential (e.g. an empty board). It picks the
// empty cell nearest the centre.
func (sr *search) fallback() ([]Candidate, bool) {
	b := sr.s.board
	p, ok := b.NearestEmpty(b.Center())
	if !ok {
		return nil, false
	}
	sr.stats.Fallbacks++
	return []Candidate{{Point: p}}, true
}

// negamax searches the children of the current position to depth plies. The
// side to move is MarkA if maximizing, otherwise MarkB. Scores are from the
// side to move's point of view. If order is nil the frame's order is built
// from cands. It returns the best move, every (move, score) evaluated at this
// frame, the principal variation, and false if there was nothing to play.
// The best score is exact only if no frame at or below this one was cut off;
// otherwise it is a bound and must not go into the transposition table.
func (sr *search) negamax(key uint64, depth int, maximizing bool, cands Candidates,
	order []Candidate, α, β float64) (best ScoredMove, choices []ScoredMove, pv PVLine, exact, ok bool) {

	onTurn := onTurnMark(maximizing)
	if order == nil {
		order = Interleave(cands.Capped(sr.cfg.BranchCap), onTurn)
	}
	if len(order) == 0 {
		order, ok = sr.fallback()
		if !ok {
			return ScoredMove{}, nil, PVLine{}, true, false
		}
	}

	b := sr.s.board
	best = ScoredMove{Score: math.Inf(-1)}
	choices = make([]ScoredMove, 0, len(order))
	exact = true

	for _, c := range order {
		m := move.New(c.Col, c.Row, onTurn)
		var sum uint64
		if sr.s.verifyUndo {
			sum = b.Checksum()
		}
		d := b.Apply(m)
		sr.stats.Nodes++
		score, terminal, childExact, line := sr.evaluate(sr.s.zobrist.AddMove(key, m), depth,
			maximizing, m, &d, cands, α, β)
		b.Undo(d)
		if sr.s.verifyUndo && b.Checksum() != sum {
			panic(fmt.Sprintf("board not restored after %v at depth %d", m, depth))
		}

		sm := ScoredMove{Move: m, Score: score}
		choices = append(choices, sm)
		if len(choices) == 1 || score > best.Score {
			best = sm
			pv.Update(m, line, score)
		}
		if terminal {
			// a win settles the frame whatever the earlier bounds were.
			return best, choices, pv, exact || math.IsInf(score, 1), true
		}
		exact = exact && childExact
		if score > α {
			α = score
		}
		if α > β {
			sr.stats.Cutoffs++
			return best, choices, pv, false, true
		}
	}
	return best, choices, pv, exact, true
}

// evaluate scores the position right after m was applied, from the point of
// view of m.Mark. terminal is true if m won the game or filled the board.
// exact is false if the score is only a bound left by a cutoff further down.
// The returned line is the expected continuation after m.
func (sr *search) evaluate(key uint64, depth int, maximizing bool, m move.Move,
	d *board.Diff, cands Candidates, α, β float64) (float64, bool, bool, PVLine) {

	b := sr.s.board
	tt := sr.s.ttable
	sign := m.Mark.Sign()

	sr.stats.TTLookups++
	if v, ok := tt.Lookup(key, depth); ok {
		sr.stats.TTHits++
		return sign * v, false, true, PVLine{}
	}

	if won, _, _ := b.CheckWin(m, b.WinLength()); won {
		score := math.Inf(1)
		tt.Store(key, depth, sign*score)
		return score, true, true, PVLine{}
	}
	if b.CheckFull() {
		tt.Store(key, depth, 0)
		return 0, true, true, PVLine{}
	}

	var score float64
	var line PVLine
	exact := true
	if depth <= 1 {
		score = b.ScoreFor(m.Mark)
	} else {
		next := Update(b, cands, d, sr.cfg.BranchCap)
		reply, _, replyLine, replyExact, ok := sr.negamax(key, depth-1, !maximizing, next, nil, -β, -α)
		if ok {
			score = -reply.Score
			line = replyLine
			exact = replyExact
		} else {
			score = b.ScoreFor(m.Mark)
		}
	}
	if exact {
		tt.Store(key, depth, sign*score)
	} else {
		sr.stats.TTBoundsSkipped++
	}
	return score, false, exact, line
}
