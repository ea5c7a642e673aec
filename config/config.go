// Package config holds the runtime knobs for the player. Everything is
// constructed once at startup and passed by pointer; there are no
// ambient globals.
package config

import (
	"time"

	"github.com/namsral/flag"
)

type Config struct {
	// TimeThresholdMs is the global wall-clock budget for all decisions
	// of one game combined.
	TimeThresholdMs int
	// SimulationMax bounds the pregenerated simulation table.
	SimulationMax int
	// SimSeed keys the simulation-table generator.
	SimSeed uint64
	// ActionSeed keys the random rollout policy and self-play insertion
	// positions.
	ActionSeed uint64
	// Threads is the number of search workers.
	Threads int
	Debug   bool
	// ProfilePath, if set, enables a CPU profile for the whole run.
	ProfilePath string

	// Self-play only.
	Games  int
	Player string
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("candyfall", flag.ContinueOnError)
	fs.IntVar(&c.TimeThresholdMs, "time-threshold-ms", 1950, "global wall-clock budget in milliseconds")
	fs.IntVar(&c.SimulationMax, "simulation-max", 14000, "size of the pregenerated simulation table")
	fs.Uint64Var(&c.SimSeed, "sim-seed", 0, "seed for the simulation table")
	fs.Uint64Var(&c.ActionSeed, "action-seed", 80, "seed for the random policy and self-play insertions")
	fs.IntVar(&c.Threads, "threads", 1, "number of search workers")
	fs.BoolVar(&c.Debug, "debug", false, "debug logging")
	fs.StringVar(&c.ProfilePath, "profilepath", "", "path for CPU profile")
	fs.IntVar(&c.Games, "games", 10, "number of self-play games")
	fs.StringVar(&c.Player, "player", "montecarlo", "self-play player: table, random or montecarlo")
	return fs.Parse(args)
}

// TimeThreshold is the configured budget as a duration.
func (c *Config) TimeThreshold() time.Duration {
	return time.Duration(c.TimeThresholdMs) * time.Millisecond
}
