package negamax

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/move"
)

// reorder sorts the root candidates by the scores of the last completed
// depth, best first. Candidates that were never evaluated (cut off) keep
// their relative order at the end.
func reorder(order []Candidate, choices []ScoredMove) []Candidate {
	scored := make([]ScoredMove, len(choices))
	copy(scored, choices)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	byCell := make(map[[2]int]Candidate, len(order))
	for _, c := range order {
		byCell[[2]int{c.Col, c.Row}] = c
	}
	seen := make(map[[2]int]bool, len(scored))
	next := make([]Candidate, 0, len(order))
	for _, sm := range scored {
		k := [2]int{sm.Move.Col, sm.Move.Row}
		c, ok := byCell[k]
		if !ok {
			c.Col, c.Row = sm.Move.Col, sm.Move.Row
		}
		seen[k] = true
		next = append(next, c)
	}
	for _, c := range order {
		if !seen[[2]int{c.Col, c.Row}] {
			next = append(next, c)
		}
	}
	return next
}

// IterativeDeepening searches for mark's best move at depth 1, 2, ... up to
// cfg.Depth. Each depth always runs to completion; the time budget and ctx
// are only consulted in between, so the budget is a soft limit. The answer of
// the deepest completed depth is returned. A depth that finds a forced win
// or loss ends the search early.
func (s *Solver) IterativeDeepening(ctx context.Context, mark move.Mark, cfg Config) (*Result, error) {
	if s.board == nil {
		return nil, ErrNotInit
	}
	if s.board.CheckFull() {
		return nil, ErrNoLegalMoves
	}
	cfg = cfg.normalized()
	start := time.Now()
	stats := &Stats{}
	sr := &search{s: s, cfg: cfg, stats: stats}
	s.ttable.Clear()

	key := s.zobrist.Hash(s.board)
	maximizing := mark == move.MarkA
	cands := Generate(s.board)
	order := Interleave(cands.Capped(cfg.BranchCap), mark)
	log.Debug().Int("num-candidates", cands.Len()).Int("root-order", len(order)).
		Str("mark", mark.String()).Msg("root-candidates")

	var res *Result
	for depth := 1; depth <= cfg.Depth; depth++ {
		best, choices, pv, _, ok := sr.negamax(key, depth, maximizing, cands, order, math.Inf(-1), math.Inf(1))
		if !ok {
			return nil, ErrNoLegalMoves
		}
		stats.DepthReached = depth
		res = &Result{Move: best.Move, Score: best.Score, Depth: depth, Choices: choices, PV: pv}
		log.Debug().Int("depth", depth).Str("best", best.Move.String()).
			Float64("score", best.Score).Uint64("nodes", stats.Nodes).
			Msg("deepening-iteratively")

		if math.IsInf(best.Score, 0) {
			log.Debug().Int("depth", depth).Msg("conclusive-score")
			break
		}
		order = reorder(order, choices)
		if time.Since(start) > cfg.TimeBudget {
			log.Debug().Int("depth", depth).Dur("budget", cfg.TimeBudget).Msg("time-budget-exceeded")
			break
		}
		if ctx.Err() != nil {
			log.Debug().Int("depth", depth).Err(ctx.Err()).Msg("search-cancelled")
			break
		}
	}
	stats.Elapsed = time.Since(start)
	ts := s.ttable.Stats()
	res.Stats = *stats
	log.Info().Str("move", res.Move.String()).Float64("score", res.Score).
		Int("depth", res.Depth).Uint64("nodes", stats.Nodes).
		Uint64("tt-created", ts.Created).Uint64("tt-collisions", ts.Collisions).
		Dur("elapsed", stats.Elapsed).Msg("best-move")
	return res, nil
}
