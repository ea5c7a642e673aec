// Package montecarlo implements the time-budgeted action search. In
// other words, "simming": for each of the four first moves we play the
// rest of the game out many times against pregenerated futures and keep
// whichever move accumulated the highest total score before the turn's
// time allowance ran out.
package montecarlo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/awasora/candyfall/board"
	"github.com/awasora/candyfall/budget"
	"github.com/awasora/candyfall/policy"
	"github.com/awasora/candyfall/schedule"
)

const numActions = len(board.LegalActions)

// Simmer runs the search. The schedule and simulation table are shared
// read-only data; every rollout clones the base board, so the real game
// state is never touched. Safe for use from one goroutine at a time;
// internally it fans out across the configured number of workers.
type Simmer struct {
	sched    *schedule.Schedule
	simTable *schedule.SimTable
	pol      policy.Policy
	budget   *budget.Budget
	threads  int

	iterationCount atomic.Uint64
	nodeCount      atomic.Uint64

	mu     sync.Mutex
	totals [numActions]float64
	stats  [numActions]Statistic
}

// NewSimmer wires a searcher to its inputs. threads < 1 is clamped to a
// single worker, the protocol's synchronous default.
func NewSimmer(sched *schedule.Schedule, simTable *schedule.SimTable,
	pol policy.Policy, bud *budget.Budget, threads int) *Simmer {
	if threads < 1 {
		threads = 1
	}
	return &Simmer{
		sched:    sched,
		simTable: simTable,
		pol:      pol,
		budget:   bud,
		threads:  threads,
	}
}

func (s *Simmer) resetStats() {
	s.iterationCount.Store(0)
	s.nodeCount.Store(0)
	s.totals = [numActions]float64{}
	s.stats = [numActions]Statistic{}
}

// rollout plays the game to completion from base with a forced first
// move, using trajectory sim's pregenerated insertion positions and the
// rollout policy for every later move. Returns the terminal score.
func (s *Simmer) rollout(base *board.Board, first board.Action, sim int) float64 {
	b := base.Copy()
	b.Advance(first)
	nodes := uint64(1)
	for !b.IsDone() {
		turn := b.Turn()
		b.Insert(s.sched.Value(turn), s.simTable.Position(sim, turn))
		b.Advance(s.pol.Action(b))
		nodes++
	}
	s.nodeCount.Add(nodes)
	return b.Score()
}

// runIteration plays all four first moves for one trajectory index into
// the local accumulators. Using the same trajectory for every branch
// keeps the four totals comparable (common random numbers).
func (s *Simmer) runIteration(base *board.Board, sim int,
	totals *[numActions]float64, stats *[numActions]Statistic) {
	for d, action := range board.LegalActions {
		score := s.rollout(base, action, sim)
		totals[d] += score
		stats[d].Push(score)
	}
}

func (s *Simmer) simWorker(ctx context.Context, base *board.Board) error {
	var totals [numActions]float64
	var stats [numActions]Statistic
	defer func() {
		s.mu.Lock()
		for d := range totals {
			s.totals[d] += totals[d]
			s.stats[d].Merge(&stats[d])
		}
		s.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if s.budget.TimeOver() {
			return nil
		}
		sim := int(s.iterationCount.Add(1)) - 1
		if sim >= s.simTable.Size() {
			// The budget is expected to stop us long before the table
			// runs out; getting here means the setup is broken.
			panic(fmt.Sprintf("simulation table exhausted at index %d", sim))
		}
		s.runIteration(base, sim, &totals, &stats)
	}
}

// BestAction searches from the given position until the turn's time
// allowance expires and returns the action with the highest accumulated
// rollout score. Ties keep the earliest action in enumeration order; if
// the budget allowed zero rollouts, that is Forward.
func (s *Simmer) BestAction(ctx context.Context, b *board.Board) board.Action {
	s.resetStats()

	tstart := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for t := 0; t < s.threads; t++ {
		g.Go(func() error {
			return s.simWorker(ctx, b)
		})
	}
	// Workers only exit on budget/ctx; no errors to propagate.
	_ = g.Wait()

	best := s.pickBest()
	if e := log.Debug(); e.Enabled() {
		elapsed := time.Since(tstart)
		nodes := s.nodeCount.Load()
		e.Int("turn", b.Turn()).
			Uint64("iterations", s.iterationCount.Load()).
			Uint64("nodes", nodes).
			Float64("nps", float64(nodes)/elapsed.Seconds()).
			Str("action", best.String()).
			Msg("sim-ended")
	}
	return best
}

// BestActionN runs exactly n iterations on a single worker with no time
// budget. The result is a pure function of the board, the schedule, the
// simulation table, and the policy; tests rely on that.
func (s *Simmer) BestActionN(b *board.Board, n int) board.Action {
	s.resetStats()
	if n > s.simTable.Size() {
		panic(fmt.Sprintf("%d iterations exceed the simulation table (%d)", n, s.simTable.Size()))
	}
	for sim := 0; sim < n; sim++ {
		s.iterationCount.Add(1)
		s.runIteration(b, sim, &s.totals, &s.stats)
	}
	return s.pickBest()
}

func (s *Simmer) pickBest() board.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	bestScore := 0.0
	bestIdx := 0
	for d, w := range s.totals {
		if w > bestScore {
			bestIdx = d
			bestScore = w
		}
	}
	return board.LegalActions[bestIdx]
}

// Iterations returns the number of whole rollout iterations of the last
// search (each iteration covers all four first moves).
func (s *Simmer) Iterations() int {
	return int(s.iterationCount.Load())
}

// Details renders the per-action score distribution of the last search.
func (s *Simmer) Details() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-8s%-16s%-12s%-12s%s\n", "Action", "Total", "Mean", "Stdev", "Iters")
	for d, action := range board.LegalActions {
		fmt.Fprintf(&sb, "%-8s%-16.0f%-12.2f%-12.2f%d\n",
			action, s.totals[d], s.stats[d].Mean(), s.stats[d].Stdev(),
			s.stats[d].Iterations())
	}
	return sb.String()
}
