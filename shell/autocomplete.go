package shell

import (
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/gomoku/config"
)

// ShellCompleter completes command names, their options, and setting keys.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"best": {
		Options: []string{"-depth", "-branch-cap", "-time-budget", "-top"},
	},
	"go": {
		Options: []string{"-depth", "-branch-cap", "-time-budget"},
	},
	"autoplay": {
		Args:    []string{"stop"},
		Options: []string{"-threads", "-depth", "-branch-cap", "-time-budget"},
	},
	"help": {
		Args: []string{"new", "play", "best", "go", "set", "autoplay", "script"},
	},
}

var commandNames = []string{
	"help", "new", "play", "best", "go", "undo", "show", "potentials",
	"set", "settings", "autoplay", "script", "exit",
}

func settingKeys(cfg *config.Config) []string {
	keys := cfg.AllKeys()
	sort.Strings(keys)
	return keys
}

// Do implements readline.AutoCompleter.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	switch {
	case len(fields) == 0 || (len(fields) == 1 && !endsWithSpace):
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	default:
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		argPos := len(fields) - 1
		if endsWithSpace {
			argPos++
		}
		if cmdName == "set" && argPos == 1 {
			completions = settingKeys(c.sc.config)
			break
		}
		md, ok := commandMetadata[cmdName]
		if !ok {
			break
		}
		if strings.HasPrefix(prefix, "-") || len(md.Args) == 0 {
			completions = md.Options
		} else {
			completions = md.Args
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
