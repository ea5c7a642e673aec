package main

import (
	"context"
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/awasora/candyfall/config"
	"github.com/awasora/candyfall/runner"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.ProfilePath != "" {
		f, err := os.Create(cfg.ProfilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	r := runner.NewGameRunner(cfg, os.Stdin, os.Stdout)
	score, err := r.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
	log.Info().Float64("score", score).Msg("done")
}
