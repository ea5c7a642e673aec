// Package policy provides the rollout-finishing strategies: once a
// candidate first move has been applied, a policy picks every remaining
// action of the simulated game. Which strategy to use is chosen at
// construction, so the search itself never cares how its rollouts are
// finished.
package policy

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/awasora/candyfall/board"
	"github.com/awasora/candyfall/schedule"
)

// Policy picks the next action for a board mid-rollout.
type Policy interface {
	Action(b *board.Board) board.Action
}

// ruleTable maps (current scheduled value - 1, next scheduled value - 1)
// to an action. Hand-tuned; the exact contents materially affect
// simulated scores and therefore the search's action ranking, so they
// must not be "improved" casually.
var ruleTable = [schedule.MaxTileValue][schedule.MaxTileValue]board.Action{
	{board.Forward, board.Back, board.Back},
	{board.Forward, board.Left, board.Right},
	{board.Forward, board.Left, board.Right},
}

// Table is the deterministic rule-table policy. All randomness in a
// table-driven rollout comes from the insertion positions, never from
// the action choice.
type Table struct {
	sched *schedule.Schedule
}

// NewTable returns a rule-table policy over the given schedule.
func NewTable(sched *schedule.Schedule) *Table {
	return &Table{sched: sched}
}

// Action looks up the rule for the value inserted this turn and the one
// scheduled next. On the last turn there is no next value; the rule is
// always Forward.
func (p *Table) Action(b *board.Board) board.Action {
	turn := b.Turn()
	if turn >= board.EndTurn-1 {
		return board.Forward
	}
	cur := p.sched.Value(turn) - 1
	next := p.sched.Value(turn+1) - 1
	return ruleTable[cur][next]
}

// Random picks uniformly among the legal actions. Not safe for
// concurrent use; give each worker its own instance.
type Random struct {
	rng *frand.RNG
}

// NewRandom returns a random policy seeded deterministically.
func NewRandom(seed uint64) *Random {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return &Random{rng: frand.NewCustom(key[:], 1024, 12)}
}

func (p *Random) Action(b *board.Board) board.Action {
	return board.LegalActions[p.rng.Intn(len(board.LegalActions))]
}
