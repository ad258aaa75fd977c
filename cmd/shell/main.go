// shell is the interactive gomoku engine. With positional arguments it runs
// them as one shell command and exits.
//
//	shell --depth 6 --time-budget 3s
//	shell autoplay 50 -threads 4
package main

import (
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/shell"
)

//go:embed gomoku.txt
var gomokubanner string

func newLogger(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}
	fmt.Println(gomokubanner)

	log.Logger = newLogger(cfg.GetBool(config.ConfigDebug))
	log.Debug().Interface("settings", cfg.SanitizedSettings()).Msg("loaded-config")

	if fn := cfg.GetString(config.ConfigCPUProfile); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create cpu profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start cpu profile")
		}
		defer pprof.StopCPUProfile()
	}

	// The shell loop sends on sig when the user exits, as does a real signal.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	sc := shell.NewShellController(cfg)
	if line := strings.TrimSpace(strings.Join(cfg.Args(), " ")); line != "" {
		sc.Execute(sig, line)
	} else {
		go sc.Loop(sig)
		<-sig
	}
	sc.Cleanup()

	if fn := cfg.GetString(config.ConfigMemProfile); fn != "" {
		if err := writeMemProfile(fn); err != nil {
			log.Err(err).Msg("could-not-write-mem-profile")
		}
	}
	log.Info().Msg("shell-shutting-down")
}
