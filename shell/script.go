package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("gomoku_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand exposes a shell command to scripts. The script passes the rest
// of the command line as a single string and gets the command's output back,
// or a string starting with ERROR.
func luaCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		line := name
		if L.GetTop() > 0 {
			line += " " + L.ToString(1)
		}
		sc := getShell(L)
		cmd, err := extractFields(line)
		if err != nil {
			log.Err(err).Str("command", name).Msg("error-parsing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		r, err := sc.dispatch(cmd)
		if err != nil {
			log.Err(err).Str("command", name).Msg("error-executing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		if r == nil {
			L.Push(lua.LString(""))
		} else {
			L.Push(lua.LString(r.message))
		}
		// number of results pushed to the stack.
		return 1
	}
}

// luaState returns the script's view of the game: the player on turn, the
// play state, and the number of moves made.
func luaState(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		L.Push(lua.LString("none"))
		L.Push(lua.LNumber(0))
		return 3
	}
	L.Push(lua.LString(sc.game.PlayerOnTurn().String()))
	L.Push(lua.LString(sc.game.Playing().String()))
	L.Push(lua.LNumber(sc.game.Turn()))
	return 3
}

var scriptCommands = []string{"new", "play", "best", "go", "undo", "show", "set", "potentials"}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("gomoku_shell", lsc)
	for _, c := range scriptCommands {
		L.SetGlobal("gomoku_"+c, L.NewFunction(luaCommand(c)))
	}
	L.SetGlobal("gomoku_state", L.NewFunction(luaState))

	// Script arguments are available as the global table `args`.
	args := L.NewTable()
	for _, a := range cmd.args[1:] {
		args.Append(lua.LString(a))
	}
	L.SetGlobal("args", args)

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("script-error")
		return nil, err
	}
	return nil, nil
}
