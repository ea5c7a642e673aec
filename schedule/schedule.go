// Package schedule holds the two pieces of future knowledge the search
// runs on: the real insertion-value schedule supplied by the judge at
// startup, and a pregenerated table of insertion positions that gives
// every rollout trajectory its own reproducible future.
package schedule

import (
	"fmt"

	"github.com/awasora/candyfall/board"
)

// MaxTileValue is the number of distinct tile kinds. The rollout rule
// table is keyed by value pairs, so a schedule carrying anything outside
// [1, MaxTileValue] is rejected up front instead of blowing up mid-game.
const MaxTileValue = 3

// Schedule is the full game's insertion-value sequence, immutable once
// constructed.
type Schedule struct {
	values [board.EndTurn]uint8
}

// New validates and wraps a judge-supplied value sequence. It must hold
// exactly one value per turn, each in [1, MaxTileValue].
func New(values []uint8) (*Schedule, error) {
	if len(values) != board.EndTurn {
		return nil, fmt.Errorf("schedule has %d values, want %d", len(values), board.EndTurn)
	}
	s := &Schedule{}
	for t, v := range values {
		if v < 1 || v > MaxTileValue {
			return nil, fmt.Errorf("schedule value %d at turn %d out of range [1, %d]",
				v, t, MaxTileValue)
		}
		s.values[t] = v
	}
	return s, nil
}

// Value returns the tile value scheduled for the given turn. An
// out-of-range turn is a programming error.
func (s *Schedule) Value(turn int) uint8 {
	if turn < 0 || turn >= board.EndTurn {
		panic(fmt.Sprintf("schedule turn %d out of range", turn))
	}
	return s.values[turn]
}

// Len returns the number of scheduled turns.
func (s *Schedule) Len() int {
	return board.EndTurn
}
