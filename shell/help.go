package shell

import (
	"embed"
	"strings"
)

//go:embed helptext
var helptext embed.FS

func usage(topic string) (string, error) {
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(dat), "\n"), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		u, err := usage("usage")
		if err != nil {
			return nil, err
		}
		return msg(u), nil
	}
	u, err := usage(cmd.args[0])
	if err != nil {
		return msg("There is no help text for the topic " + cmd.args[0]), nil
	}
	return msg(u), nil
}
