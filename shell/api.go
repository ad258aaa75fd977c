package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/gomoku/automatic"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/negamax"
)

const defaultTopChoices = 5

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) DurationDefault(key string, defaultD time.Duration) (time.Duration, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultD, nil
	}
	return time.ParseDuration(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

// searchConfig is the configured search, with any per-command overrides.
func (sc *ShellController) searchConfig(cmd *shellcmd) (negamax.Config, error) {
	var err error
	cfg := negamax.Config{}
	if cfg.Depth, err = cmd.options.IntDefault("depth", sc.config.GetInt(config.ConfigDepth)); err != nil {
		return cfg, err
	}
	if cfg.BranchCap, err = cmd.options.IntDefault("branch-cap", sc.config.GetInt(config.ConfigBranchCap)); err != nil {
		return cfg, err
	}
	if cfg.TimeBudget, err = cmd.options.DurationDefault("time-budget",
		sc.config.GetDuration(config.ConfigTimeBudget)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	rules, err := game.NewRules(sc.config)
	if err != nil {
		return nil, err
	}
	dims := []*int{&rules.Cols, &rules.Rows, &rules.WinLength}
	if len(cmd.args) > len(dims) {
		return nil, errors.New("usage: new [cols rows win-length]")
	}
	for i, a := range cmd.args {
		if *dims[i], err = strconv.Atoi(a); err != nil {
			return nil, err
		}
	}
	g, err := game.NewGame(rules)
	if err != nil {
		return nil, err
	}
	s := &negamax.Solver{}
	s.SetTableFractionOfMem(sc.config.GetFloat64(config.ConfigTTFractionOfMem))
	if err := g.SetSolver(s); err != nil {
		return nil, err
	}
	g.AddListener(func(e game.MoveEvent) {
		log.Debug().Str("move", e.Move.String()).Bool("takeback", e.Takeback).
			Int("turn", e.Turn).Str("state", e.State.String()).Msg("move-committed")
	})
	sc.game = g
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: play <coords>, e.g. play H8 or play 7 7")
	}
	col, row, err := move.FromBoardGameCoords(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayCoords(col, row); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func choicesTable(choices []negamax.ScoredMove, top int) string {
	sorted := make([]negamax.ScoredMove, len(choices))
	copy(sorted, choices)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if len(sorted) > top {
		sorted = sorted[:top]
	}
	var sb strings.Builder
	sb.WriteString("     Move      Score\n")
	for i, c := range sorted {
		fmt.Fprintf(&sb, "%3d: %-10s%.2f\n", i+1, c.Move.String(), c.Score)
	}
	return sb.String()
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	scfg, err := sc.searchConfig(cmd)
	if err != nil {
		return nil, err
	}
	top, err := cmd.options.IntDefault("top", defaultTopChoices)
	if err != nil {
		return nil, err
	}
	res, err := sc.game.BestMove(context.Background(), scfg)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Best move: %v (score %.2f at depth %d)\n", res.Move, res.Score, res.Depth)
	sb.WriteString(choicesTable(res.Choices, top))
	sb.WriteString(res.PV.String() + "\n")
	sb.WriteString(res.Stats.String())
	return msg(sb.String()), nil
}

func (sc *ShellController) engineMove(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	scfg, err := sc.searchConfig(cmd)
	if err != nil {
		return nil, err
	}
	res, err := sc.game.PlayBest(context.Background(), scfg)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Engine played %v\n%s", res.Move, sc.game.ToDisplayText())), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	m, err := sc.game.Takeback()
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Took back %v\n%s", m, sc.game.ToDisplayText())), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) potentials(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.Board().ToPotentialText()), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	switch len(cmd.args) {
	case 0:
		return sc.settings(cmd)
	case 1:
		if !sc.config.IsSet(cmd.args[0]) {
			return nil, fmt.Errorf("%w: unknown key %s", config.ErrBadSetting, cmd.args[0])
		}
		return msg(fmt.Sprintf("%s: %v", cmd.args[0], sc.config.Get(cmd.args[0]))), nil
	}
	key, value := cmd.args[0], cmd.args[1]
	if err := sc.config.SetValue(key, value); err != nil {
		return nil, err
	}
	m := "set " + key + " to " + value
	switch key {
	case config.ConfigCols, config.ConfigRows, config.ConfigWinLength:
		m += " (takes effect on the next `new`)"
	}
	return msg(m), nil
}

func (sc *ShellController) settings(cmd *shellcmd) (*Response, error) {
	out, err := yaml.Marshal(sc.config.SanitizedSettings())
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(string(out), "\n")), nil
}

func (sc *ShellController) autoplayRunning() bool {
	if sc.autoplayDone == nil {
		return false
	}
	select {
	case <-sc.autoplayDone:
		return false
	default:
		return true
	}
}

func (sc *ShellController) waitForAutoplay() {
	if sc.autoplayDone != nil {
		<-sc.autoplayDone
	}
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 && cmd.args[0] == "stop" {
		if !sc.autoplayRunning() {
			return nil, errors.New("no autoplay to stop")
		}
		sc.autoplayCancel()
		sc.waitForAutoplay()
		return msg("autoplay stopped"), nil
	}
	if sc.autoplayRunning() {
		return nil, errors.New("autoplay is already running, please do `autoplay stop` first")
	}
	numGames := 1
	if len(cmd.args) > 0 {
		var err error
		if numGames, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}

	// The games run in the background while `set` may change the config, so
	// read everything they need now.
	settings, err := automatic.NewSettings(sc.config)
	if err != nil {
		return nil, err
	}
	if settings.Search, err = sc.searchConfig(cmd); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc.autoplayCancel, sc.autoplayDone = cancel, done
	go func() {
		defer close(done)
		defer cancel()
		summary, err := automatic.PlayGames(ctx, settings, numGames, threads)
		if err != nil {
			sc.showError(err)
		}
		if summary != nil {
			sc.showMessage(summary.String())
		}
	}()
	return msg(fmt.Sprintf("Playing %d games in the background. `autoplay stop` to stop.", numGames)), nil
}
