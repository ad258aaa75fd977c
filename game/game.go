// Package game runs a single game of five-in-a-row: it enforces turn order,
// keeps the committed move history so that moves can be taken back, and
// detects wins and draws. The engine is reached through BestMove.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/negamax"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("the game is over")
	ErrNoHistory   = errors.New("there are no moves to take back")
	ErrBadRules    = errors.New("bad rules")
)

type PlayState int

const (
	Playing PlayState = iota
	Won
	Draw
)

func (p PlayState) String() string {
	switch p {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// MoveEvent is sent to listeners after a move is committed or taken back.
type MoveEvent struct {
	Move     move.Move
	Takeback bool
	Turn     int
	State    PlayState
	Winner   move.Mark
	// WinLine holds the two end cells of the winning run, if State is Won.
	WinLine [2]board.Point
}

type Listener func(MoveEvent)

// Game is one game on one board. MarkA always moves first.
type Game struct {
	rules Rules
	board *board.Board
	diffs []board.Diff

	onturn  move.Mark
	playing PlayState
	winner  move.Mark
	winLine [2]board.Point

	solver    *negamax.Solver
	listeners []Listener
}

// NewGame starts an empty game.
func NewGame(rules Rules) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		rules:  rules,
		board:  board.NewBoard(rules.Cols, rules.Rows, rules.WinLength),
		onturn: move.MarkA,
	}
	log.Debug().Str("rules", rules.String()).Msg("new-game")
	return g, nil
}

func (g *Game) Rules() Rules            { return g.rules }
func (g *Game) Board() *board.Board     { return g.board }
func (g *Game) PlayerOnTurn() move.Mark { return g.onturn }
func (g *Game) Playing() PlayState      { return g.playing }
func (g *Game) Winner() move.Mark       { return g.winner }
func (g *Game) WinLine() [2]board.Point { return g.winLine }
func (g *Game) Turn() int               { return len(g.diffs) }

// AddListener registers fn to hear about every committed move and takeback.
func (g *Game) AddListener(fn Listener) {
	g.listeners = append(g.listeners, fn)
}

func (g *Game) notify(evt MoveEvent) {
	for _, fn := range g.listeners {
		fn(evt)
	}
}

// History returns the committed moves, oldest first.
func (g *Game) History() []move.Move {
	h := make([]move.Move, len(g.diffs))
	for i := range g.diffs {
		h[i] = g.diffs[i].Move()
	}
	return h
}

func (g *Game) event(m move.Move, takeback bool) MoveEvent {
	return MoveEvent{
		Move:     m,
		Takeback: takeback,
		Turn:     len(g.diffs),
		State:    g.playing,
		Winner:   g.winner,
		WinLine:  g.winLine,
	}
}

// Play commits m. The mark must be the one on turn.
func (g *Game) Play(m move.Move) error {
	if g.playing != Playing {
		return fmt.Errorf("%w: %v", ErrGameOver, m)
	}
	if m.Mark != g.onturn {
		return fmt.Errorf("%w: %v is not on turn", ErrIllegalMove, m.Mark)
	}
	if !g.board.CheckLegal(m) {
		return fmt.Errorf("%w: %v", ErrIllegalMove, m)
	}
	g.diffs = append(g.diffs, g.board.Apply(m))

	if won, start, end := g.board.CheckWin(m, g.rules.WinLength); won {
		g.playing = Won
		g.winner = m.Mark
		g.winLine = [2]board.Point{start, end}
		log.Debug().Str("winner", m.Mark.String()).
			Str("from", move.ToBoardGameCoords(start.Col, start.Row)).
			Str("to", move.ToBoardGameCoords(end.Col, end.Row)).Msg("game-won")
	} else if g.board.CheckFull() {
		g.playing = Draw
		log.Debug().Msg("game-drawn")
	}
	g.onturn = g.onturn.Opponent()
	g.notify(g.event(m, false))
	return nil
}

// PlayCoords plays for whoever is on turn.
func (g *Game) PlayCoords(col, row int) error {
	return g.Play(move.New(col, row, g.onturn))
}

// Takeback undoes the last committed move. A finished game goes back to
// being in progress.
func (g *Game) Takeback() (move.Move, error) {
	if len(g.diffs) == 0 {
		return move.Move{}, ErrNoHistory
	}
	d := g.diffs[len(g.diffs)-1]
	g.diffs = g.diffs[:len(g.diffs)-1]
	g.board.Undo(d)
	g.playing = Playing
	g.winner = move.Empty
	g.winLine = [2]board.Point{}
	g.onturn = d.Move().Mark
	g.notify(g.event(d.Move(), true))
	return d.Move(), nil
}

// SetSolver makes the game use s for its engine moves.
func (g *Game) SetSolver(s *negamax.Solver) error {
	if err := s.Init(g.board); err != nil {
		return err
	}
	g.solver = s
	return nil
}

func (g *Game) ensureSolver() error {
	if g.solver != nil {
		return nil
	}
	return g.SetSolver(&negamax.Solver{})
}

// BestMove asks the engine for a move for the player on turn. The board is
// left as it was.
func (g *Game) BestMove(ctx context.Context, cfg negamax.Config) (*negamax.Result, error) {
	if g.playing != Playing {
		return nil, ErrGameOver
	}
	if err := g.ensureSolver(); err != nil {
		return nil, err
	}
	return g.solver.IterativeDeepening(ctx, g.onturn, cfg)
}

// PlayBest searches and then commits the engine's move.
func (g *Game) PlayBest(ctx context.Context, cfg negamax.Config) (*negamax.Result, error) {
	res, err := g.BestMove(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := g.Play(res.Move); err != nil {
		return nil, err
	}
	return res, nil
}
