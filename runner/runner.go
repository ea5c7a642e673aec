// Package runner drives the real game against the judge: it consumes
// the insertion schedule and per-turn positions from the input stream,
// asks the search for each move, and emits one action character per
// turn. All protocol validation lives here so the components below it
// can treat their preconditions as guaranteed.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/awasora/candyfall/board"
	"github.com/awasora/candyfall/budget"
	"github.com/awasora/candyfall/config"
	"github.com/awasora/candyfall/montecarlo"
	"github.com/awasora/candyfall/policy"
	"github.com/awasora/candyfall/schedule"
)

// GameRunner owns the real board and everything the search needs. One
// runner plays exactly one game.
type GameRunner struct {
	cfg *config.Config
	in  *bufio.Scanner
	out *bufio.Writer
}

// NewGameRunner wires a runner to the judge's streams.
func NewGameRunner(cfg *config.Config, in io.Reader, out io.Writer) *GameRunner {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &GameRunner{
		cfg: cfg,
		in:  sc,
		out: bufio.NewWriter(out),
	}
}

func (r *GameRunner) readInt() (int, error) {
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.Atoi(r.in.Text())
}

func (r *GameRunner) readSchedule() (*schedule.Schedule, error) {
	vals := make([]uint8, board.EndTurn)
	for t := range vals {
		v, err := r.readInt()
		if err != nil {
			return nil, fmt.Errorf("reading schedule value %d: %w", t, err)
		}
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("schedule value %d at turn %d not a tile value", v, t)
		}
		vals[t] = uint8(v)
	}
	return schedule.New(vals)
}

// Run plays the whole game and returns the final score. Malformed input
// aborts the game: a wrong move has no recovery path in the fixed-turn
// protocol, so there is nothing useful to do but stop.
func (r *GameRunner) Run(ctx context.Context) (float64, error) {
	sched, err := r.readSchedule()
	if err != nil {
		return 0, err
	}

	simTable := schedule.NewSimTable(r.cfg.SimSeed, r.cfg.SimulationMax)
	log.Debug().Int("simulations", simTable.Size()).Msg("simulation table ready")

	// The clock starts after the pregeneration work, covering only the
	// decision loop.
	bud := budget.New(r.cfg.TimeThreshold(), board.EndTurn)
	simmer := montecarlo.NewSimmer(sched, simTable, policy.NewTable(sched), bud, r.cfg.Threads)

	b := board.New()
	for turn := 0; turn < board.EndTurn; turn++ {
		bud.BeginTurn(turn)

		pos, err := r.readInt()
		if err != nil {
			return 0, fmt.Errorf("reading position for turn %d: %w", turn, err)
		}
		if empties := b.EmptyCells(); pos < 1 || pos > empties {
			return 0, fmt.Errorf("turn %d: position %d outside [1, %d]", turn, pos, empties)
		}
		b.Insert(sched.Value(turn), pos)

		action := simmer.BestAction(ctx, b)
		if _, err := fmt.Fprintln(r.out, action); err != nil {
			return 0, fmt.Errorf("writing action for turn %d: %w", turn, err)
		}
		if err := r.out.Flush(); err != nil {
			return 0, fmt.Errorf("flushing action for turn %d: %w", turn, err)
		}
		b.Advance(action)
	}

	score := b.Score()
	log.Info().Float64("score", score).Msg("game over")
	log.Debug().Msg("\n" + b.String())
	return score, nil
}
