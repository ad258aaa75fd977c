package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format for option")
	errNoGame            = errors.New("please start a game first with the `new` command")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	game *game.Game

	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func prompt(g *game.Game) string {
	if g == nil || g.Playing() != game.Playing {
		return "\033[31mgomoku>\033[0m "
	}
	return fmt.Sprintf("\033[31mgomoku (%v)>\033[0m ", g.PlayerOnTurn())
}

func NewShellController(cfg *config.Config) *ShellController {
	sc := &ShellController{config: cfg}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(nil),
		HistoryFile:     "/tmp/gomoku_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its positional arguments and
// its -key value options. A lone "-3" is a (negative) argument, not an
// option.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			if _, err := strconv.ParseFloat(f, 64); err != nil {
				if i == len(fields)-1 {
					return nil, errWrongOptionSyntax
				}
				key := f[1:]
				cmd.options[key] = append(cmd.options[key], fields[i+1])
				i++
				continue
			}
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new":
		return sc.newGame(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "best":
		return sc.best(cmd)
	case "go":
		return sc.engineMove(cmd)
	case "undo":
		return sc.undo(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "potentials":
		return sc.potentials(cmd)
	case "set":
		return sc.set(cmd)
	case "settings":
		return sc.settings(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "script":
		return sc.script(cmd)
	case "help":
		return sc.help(cmd)
	case "exit", "bye":
		return nil, errQuit
	}
	return nil, fmt.Errorf("unknown command %q, try `help`", cmd.cmd)
}

// standardModeSwitch runs one line. It only returns an error if the shell
// should stop.
func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if err != nil {
		if err != errNoData {
			sc.showError(err)
		}
		return nil
	}
	resp, err := sc.dispatch(cmd)
	if err == errQuit {
		sig <- syscall.SIGINT
		return err
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

// Execute runs a single command line, for non-interactive use.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if err := sc.standardModeSwitch(line, sig); err != nil {
		log.Debug().Err(err).Msg("execute")
	}
	sc.waitForAutoplay()
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if err := sc.standardModeSwitch(line, sig); err != nil {
			log.Debug().Err(err).Msg("leaving-loop")
			break
		}
		sc.l.SetPrompt(prompt(sc.game))
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops any running autoplay.
func (sc *ShellController) Cleanup() {
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
	}
	sc.waitForAutoplay()
}
