// Package automatic plays engine-vs-engine games, for benchmarking the
// search and for tuning its settings.
package automatic

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/negamax"
)

// GameRecord is the log entry of one finished game.
type GameRecord struct {
	Game      int       `yaml:"game"`
	Thread    int       `yaml:"thread"`
	Rules     string    `yaml:"rules"`
	Result    string    `yaml:"result"`
	Winner    string    `yaml:"winner,omitempty"`
	Moves     []string  `yaml:"moves"`
	MoveTimes []float64 `yaml:"move_times"`
	Nodes     uint64    `yaml:"nodes"`
}

// Settings is everything a batch of games needs, read out of a Config once
// so that the games never touch the Config while it may still change.
type Settings struct {
	Rules  game.Rules
	Search negamax.Config
	// TTFraction is the share of system memory all runners' tables may use
	// together.
	TTFraction float64
	Logfile    string
}

// NewSettings reads the autoplay settings from cfg.
func NewSettings(cfg *config.Config) (Settings, error) {
	rules, err := game.NewRules(cfg)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Rules: rules,
		Search: negamax.Config{
			Depth:      cfg.GetInt(config.ConfigDepth),
			BranchCap:  cfg.GetInt(config.ConfigBranchCap),
			TimeBudget: cfg.GetDuration(config.ConfigTimeBudget),
		},
		TTFraction: cfg.GetFloat64(config.ConfigTTFractionOfMem),
		Logfile:    cfg.GetString(config.ConfigAutoplayLogfile),
	}, nil
}

// GameRunner plays games one after another on its own board and solver.
type GameRunner struct {
	rules  game.Rules
	search negamax.Config
	solver *negamax.Solver
	thread int
}

// NewGameRunner sets up a runner. ttFraction is the share of system memory
// its transposition table may use.
func NewGameRunner(settings Settings, thread int, ttFraction float64) (*GameRunner, error) {
	if err := settings.Rules.Validate(); err != nil {
		return nil, err
	}
	s := &negamax.Solver{}
	s.SetTableFractionOfMem(ttFraction)
	return &GameRunner{
		rules:  settings.Rules,
		search: settings.Search,
		solver: s,
		thread: thread,
	}, nil
}

// randomOpening places MarkA's first stone anywhere on the board, so that
// otherwise deterministic engine games differ.
func (r *GameRunner) randomOpening(g *game.Game) error {
	col := frand.Intn(r.rules.Cols)
	row := frand.Intn(r.rules.Rows)
	return g.PlayCoords(col, row)
}

// PlayGame plays one full game. A cancelled ctx stops it between moves.
func (r *GameRunner) PlayGame(ctx context.Context, gameNum int) (*GameRecord, error) {
	g, err := game.NewGame(r.rules)
	if err != nil {
		return nil, err
	}
	if err := g.SetSolver(r.solver); err != nil {
		return nil, err
	}
	rec := &GameRecord{Game: gameNum, Thread: r.thread, Rules: r.rules.String()}
	g.AddListener(func(e game.MoveEvent) {
		rec.Moves = append(rec.Moves, e.Move.String())
	})

	if err := r.randomOpening(g); err != nil {
		return nil, err
	}
	for g.Playing() == game.Playing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ts := time.Now()
		res, err := g.PlayBest(ctx, r.search)
		if err != nil {
			return nil, err
		}
		rec.MoveTimes = append(rec.MoveTimes, time.Since(ts).Seconds())
		rec.Nodes += res.Stats.Nodes
	}
	rec.Result = g.Playing().String()
	if g.Playing() == game.Won {
		rec.Winner = g.Winner().String()
	}
	log.Debug().Int("game", gameNum).Int("thread", r.thread).Str("result", rec.Result).
		Str("winner", rec.Winner).Int("moves", len(rec.Moves)).Msg("game-finished")
	return rec, nil
}

func winnerMark(rec *GameRecord) move.Mark {
	m, _ := move.MarkFromString(rec.Winner)
	return m
}
