package schedule

import (
	"encoding/binary"
	"fmt"

	"lukechampine.com/frand"

	"github.com/awasora/candyfall/board"
)

// DefaultSimulationMax caps how many independent rollout trajectories
// the table holds. In practice the time budget stops the search long
// before the cap is reached.
const DefaultSimulationMax = 14000

// SimTable is the precomputed simulation universe: one row per rollout
// trajectory, one insertion position per turn. All search branches at a
// given rollout number share a row, so the four action totals are
// compared under common random numbers. Read-only after construction.
type SimTable struct {
	positions [][]int
}

// NewSimTable builds the table from a deterministic generator keyed by
// seed. At turn t the board holds t tiles, so the position is uniform in
// [1, EndTurn-t], the empty-cell count at that turn.
func NewSimTable(seed uint64, sims int) *SimTable {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	rng := frand.NewCustom(key[:], 1024, 12)

	t := &SimTable{positions: make([][]int, sims)}
	for sim := 0; sim < sims; sim++ {
		row := make([]int, board.EndTurn)
		for turn := 0; turn < board.EndTurn; turn++ {
			remain := board.EndTurn - turn
			row[turn] = rng.Intn(remain) + 1
		}
		t.positions[sim] = row
	}
	return t
}

// Size returns the number of trajectories in the table.
func (t *SimTable) Size() int {
	return len(t.positions)
}

// Position returns the insertion position for the given trajectory and
// turn. Indexing past either bound is a programming error; the search
// treats an exhausted table as fatal.
func (t *SimTable) Position(sim, turn int) int {
	if sim < 0 || sim >= len(t.positions) {
		panic(fmt.Sprintf("simulation index %d out of range (table holds %d)", sim, len(t.positions)))
	}
	if turn < 0 || turn >= board.EndTurn {
		panic(fmt.Sprintf("simulation turn %d out of range", turn))
	}
	return t.positions[sim][turn]
}
