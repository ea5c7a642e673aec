// Package budget apportions one global wall-clock allowance across the
// remaining turns of a game. The allowance is rebalanced live: whatever
// time is left is divided by however many turns remain, so a turn that
// runs over shrinks the budget of every later turn.
package budget

import "time"

// Budget tracks the global deadline and the current turn's share of it.
type Budget struct {
	start     time.Time
	turnStart time.Time
	threshold time.Duration
	endTurn   int
	turn      int
	now       func() time.Time
}

// New starts the clock on a budget covering endTurn turns in total.
func New(threshold time.Duration, endTurn int) *Budget {
	return newWithClock(threshold, endTurn, time.Now)
}

func newWithClock(threshold time.Duration, endTurn int, now func() time.Time) *Budget {
	t := now()
	return &Budget{
		start:     t,
		turnStart: t,
		threshold: threshold,
		endTurn:   endTurn,
		now:       now,
	}
}

// BeginTurn records the turn index and restarts the per-turn clock.
func (b *Budget) BeginTurn(turn int) {
	b.turn = turn
	b.turnStart = b.now()
}

// allowance is the current turn's share of the remaining time. Only
// meaningful while the game is running (turn < endTurn).
func (b *Budget) allowance(at time.Time) time.Duration {
	remaining := b.threshold - at.Sub(b.start)
	return remaining / time.Duration(b.endTurn-b.turn)
}

// TimeOver reports whether the current turn has used up its allowance.
func (b *Budget) TimeOver() bool {
	now := b.now()
	return now.Sub(b.turnStart) >= b.allowance(now)
}
