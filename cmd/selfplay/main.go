package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/awasora/candyfall/automatic"
	"github.com/awasora/candyfall/config"
	"github.com/awasora/candyfall/montecarlo"
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

	logchan := make(chan string, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for line := range logchan {
			fmt.Print(line)
		}
	}()

	r := automatic.NewGameRunner(cfg, logchan)

	var err error
	if strings.Contains(cfg.Player, ",") {
		names := strings.Split(cfg.Player, ",")
		var best string
		var stats map[string]*montecarlo.Statistic
		best, stats, err = r.ComparePlayers(names, cfg.Games)
		if err == nil {
			for name, agg := range stats {
				log.Info().Str("player", name).
					Float64("mean", agg.Mean()).
					Float64("stdev", agg.Stdev()).
					Msg("player results")
			}
			log.Info().Str("best", best).Msg("comparison done")
		}
	} else {
		_, _, err = r.PlayGames(cfg.Player, cfg.Games)
	}

	close(logchan)
	wg.Wait()

	if err != nil {
		log.Fatal().Err(err).Msg("self-play failed")
	}
}
