// Package automatic plays games without a judge: schedules and
// insertion positions are drawn from a seeded generator, so whole
// batches are reproducible. Its job is comparing players — the bare
// rule table, the random baseline, and the full search — over many
// games.
package automatic

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/awasora/candyfall/board"
	"github.com/awasora/candyfall/budget"
	"github.com/awasora/candyfall/config"
	"github.com/awasora/candyfall/montecarlo"
	"github.com/awasora/candyfall/policy"
	"github.com/awasora/candyfall/schedule"
)

// Player chooses the real move each turn of a self-play game.
type Player interface {
	Name() string
	Choose(b *board.Board) board.Action
}

// PolicyPlayer promotes a rollout policy to a full player.
type PolicyPlayer struct {
	name string
	pol  policy.Policy
}

func NewPolicyPlayer(name string, pol policy.Policy) *PolicyPlayer {
	return &PolicyPlayer{name: name, pol: pol}
}

func (p *PolicyPlayer) Name() string { return p.name }

func (p *PolicyPlayer) Choose(b *board.Board) board.Action {
	return p.pol.Action(b)
}

// SearchPlayer runs the Monte Carlo search for every move, under the
// same per-turn budget discipline as the judge protocol.
type SearchPlayer struct {
	simmer *montecarlo.Simmer
	bud    *budget.Budget
}

func NewSearchPlayer(simmer *montecarlo.Simmer, bud *budget.Budget) *SearchPlayer {
	return &SearchPlayer{simmer: simmer, bud: bud}
}

func (p *SearchPlayer) Name() string { return "montecarlo" }

func (p *SearchPlayer) Choose(b *board.Board) board.Action {
	p.bud.BeginTurn(b.Turn())
	return p.simmer.BestAction(context.Background(), b)
}

// GameResult is one finished self-play game.
type GameResult struct {
	Game   int
	Player string
	Score  float64
}

// GameRunner is the master struct for batch self-play.
type GameRunner struct {
	cfg     *config.Config
	rng     *frand.RNG
	logchan chan string
}

// NewGameRunner builds a batch runner. logchan may be nil; if set,
// every finished game emits one CSV line (game,player,score).
func NewGameRunner(cfg *config.Config, logchan chan string) *GameRunner {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], cfg.ActionSeed)
	return &GameRunner{
		cfg:     cfg,
		rng:     frand.NewCustom(key[:], 1024, 12),
		logchan: logchan,
	}
}

// randomSchedule draws a fresh game's insertion values.
func (r *GameRunner) randomSchedule() *schedule.Schedule {
	vals := make([]uint8, board.EndTurn)
	for i := range vals {
		vals[i] = uint8(r.rng.Intn(schedule.MaxTileValue)) + 1
	}
	s, err := schedule.New(vals)
	if err != nil {
		// Generated in-range by construction.
		panic(err)
	}
	return s
}

// playerFor builds the configured player over a game's schedule.
func (r *GameRunner) playerFor(name string, sched *schedule.Schedule) (Player, error) {
	switch name {
	case "table":
		return NewPolicyPlayer(name, policy.NewTable(sched)), nil
	case "random":
		return NewPolicyPlayer(name, policy.NewRandom(r.cfg.ActionSeed)), nil
	case "montecarlo":
		bud := budget.New(r.cfg.TimeThreshold(), board.EndTurn)
		simTable := schedule.NewSimTable(r.cfg.SimSeed, r.cfg.SimulationMax)
		simmer := montecarlo.NewSimmer(sched, simTable, policy.NewTable(sched), bud, r.cfg.Threads)
		return NewSearchPlayer(simmer, bud), nil
	}
	return nil, fmt.Errorf("unknown player %q", name)
}

// playGame runs one full game: every turn a scheduled value lands in a
// uniformly drawn empty cell and the player shifts gravity.
func (r *GameRunner) playGame(p Player, sched *schedule.Schedule) float64 {
	b := board.New()
	for !b.IsDone() {
		pos := r.rng.Intn(b.EmptyCells()) + 1
		b.Insert(sched.Value(b.Turn()), pos)
		b.Advance(p.Choose(b))
	}
	return b.Score()
}

// PlayGames plays n games with the configured player and returns the
// per-game results plus an aggregate statistic.
func (r *GameRunner) PlayGames(name string, n int) ([]GameResult, *montecarlo.Statistic, error) {
	results := make([]GameResult, 0, n)
	agg := &montecarlo.Statistic{}
	for i := 0; i < n; i++ {
		sched := r.randomSchedule()
		p, err := r.playerFor(name, sched)
		if err != nil {
			return nil, nil, err
		}
		score := r.playGame(p, sched)
		agg.Push(score)
		results = append(results, GameResult{Game: i, Player: p.Name(), Score: score})
		if r.logchan != nil {
			r.logchan <- fmt.Sprintf("%d,%s,%.0f\n", i, p.Name(), score)
		}
		log.Debug().Int("game", i).Str("player", p.Name()).Float64("score", score).Msg("game finished")
	}
	log.Info().Str("player", name).Int("games", n).
		Float64("mean", agg.Mean()).Float64("stdev", agg.Stdev()).
		Msg("batch finished")
	return results, agg, nil
}

// ComparePlayers runs the same batch size for each named player and
// returns the name with the highest mean score.
func (r *GameRunner) ComparePlayers(names []string, gamesPer int) (string, map[string]*montecarlo.Statistic, error) {
	aggs := map[string]*montecarlo.Statistic{}
	for _, name := range names {
		_, agg, err := r.PlayGames(name, gamesPer)
		if err != nil {
			return "", nil, err
		}
		aggs[name] = agg
	}
	best := lo.MaxBy(names, func(a, b string) bool {
		return aggs[a].Mean() > aggs[b].Mean()
	})
	return best, aggs, nil
}
