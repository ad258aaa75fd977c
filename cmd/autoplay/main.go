// autoplay plays a batch of engine-vs-engine games and prints a summary.
//
//	autoplay --cols 15 --rows 15 --depth 4 --autoplay-threads 8 100
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/automatic"
	"github.com/domino14/gomoku/config"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	numGames := 10
	if args := cfg.Args(); len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("number of games must be an integer")
		}
		numGames = n
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	settings, err := automatic.NewSettings(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-settings")
	}
	summary, err := automatic.PlayGames(ctx, settings, numGames, cfg.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		log.Fatal().Err(err).Msg("autoplay-failed")
	}
	fmt.Print(summary.String())
}
