// Package board implements the 10x10 candyfall grid. The board owns all
// mutation logic: inserting a scheduled tile into the n-th empty cell,
// compacting every line toward an edge when gravity shifts, and scoring
// the final position by connected groups.
package board

import (
	"fmt"
	"strings"
)

const (
	// Height and Width are the board dimensions.
	Height = 10
	Width  = 10
	// EndTurn is the number of turns in a game. One tile is inserted
	// per turn, so the board is exactly full when the game ends.
	EndTurn = 100
)

// Action is one of the four gravity-shift moves.
type Action uint8

const (
	Forward Action = iota
	Back
	Left
	Right
)

// LegalActions enumerates every action, in the order the search and
// tie-breaking rules use.
var LegalActions = [4]Action{Forward, Back, Left, Right}

func (a Action) String() string {
	switch a {
	case Forward:
		return "F"
	case Back:
		return "B"
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return "?"
}

// ActionFromChar parses a single protocol character into an Action.
func ActionFromChar(c byte) (Action, error) {
	switch c {
	case 'F':
		return Forward, nil
	case 'B':
		return Back, nil
	case 'L':
		return Left, nil
	case 'R':
		return Right, nil
	}
	return Forward, fmt.Errorf("unknown action character %q", c)
}

// Board is a full game position: cell values (0 = empty, 1..3 = a tile)
// plus the turn counter. It has value semantics; assignment copies the
// whole grid, which is what lets every rollout branch own an independent
// future.
type Board struct {
	cells [Height][Width]uint8
	turn  int
}

// New returns an empty board at turn 0.
func New() *Board {
	return &Board{}
}

// Copy returns an independent clone for a rollout branch.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Turn returns the current turn index.
func (b *Board) Turn() int {
	return b.turn
}

// IsDone reports whether the game is over.
func (b *Board) IsDone() bool {
	return b.turn >= EndTurn
}

// EmptyCells returns the number of empty cells.
func (b *Board) EmptyCells() int {
	n := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if b.cells[y][x] == 0 {
				n++
			}
		}
	}
	return n
}

// Insert places value into the pos-th empty cell (1-based) in row-major
// scan order. It does not advance the turn counter. Callers must pass a
// position within the live empty-cell count; a position past the end of
// the scan is silently ignored.
func (b *Board) Insert(value uint8, pos int) {
	cnt := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if b.cells[y][x] != 0 {
				continue
			}
			cnt++
			if cnt == pos {
				b.cells[y][x] = value
				return
			}
		}
	}
}

// Advance shifts gravity in the given direction and increments the turn
// counter. Every affected line compacts against the target edge with a
// stable partition: non-empty cells keep their relative order along the
// line, values are never changed or merged.
func (b *Board) Advance(action Action) {
	switch action {
	case Forward:
		for x := 0; x < Width; x++ {
			dest := 0
			for y := 0; y < Height; y++ {
				if b.cells[y][x] == 0 {
					continue
				}
				b.cells[y][x], b.cells[dest][x] = b.cells[dest][x], b.cells[y][x]
				dest++
			}
		}
	case Back:
		for x := 0; x < Width; x++ {
			dest := Height - 1
			for y := Height - 1; y >= 0; y-- {
				if b.cells[y][x] == 0 {
					continue
				}
				b.cells[y][x], b.cells[dest][x] = b.cells[dest][x], b.cells[y][x]
				dest--
			}
		}
	case Left:
		for y := 0; y < Height; y++ {
			dest := 0
			for x := 0; x < Width; x++ {
				if b.cells[y][x] == 0 {
					continue
				}
				b.cells[y][x], b.cells[y][dest] = b.cells[y][dest], b.cells[y][x]
				dest++
			}
		}
	case Right:
		for y := 0; y < Height; y++ {
			dest := Width - 1
			for x := Width - 1; x >= 0; x-- {
				if b.cells[y][x] == 0 {
					continue
				}
				b.cells[y][x], b.cells[y][dest] = b.cells[y][dest], b.cells[y][x]
				dest--
			}
		}
	}
	b.turn++
}

var (
	deltaY = [4]int{0, 0, 1, -1}
	deltaX = [4]int{1, -1, 0, 0}
)

// groupSize runs a BFS from (y, x) over 4-connected cells of the same
// value, marking them visited, and returns the component size.
func (b *Board) groupSize(y, x int, visited *[Height][Width]bool) int {
	value := b.cells[y][x]
	visited[y][x] = true

	queue := [][2]int{{y, x}}
	cnt := 0
	for len(queue) > 0 {
		cnt++
		cur := queue[0]
		queue = queue[1:]
		for i := 0; i < 4; i++ {
			ny := cur[0] + deltaY[i]
			nx := cur[1] + deltaX[i]
			if ny < 0 || ny >= Height || nx < 0 || nx >= Width {
				continue
			}
			if !visited[ny][nx] && b.cells[ny][nx] == value {
				visited[ny][nx] = true
				queue = append(queue, [2]int{ny, nx})
			}
		}
	}
	return cnt
}

// Score partitions all non-empty cells into 4-connected same-value
// groups and returns the sum of squared group sizes. An empty board
// scores 0.
func (b *Board) Score() float64 {
	score := 0.0
	var visited [Height][Width]bool
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if b.cells[y][x] != 0 && !visited[y][x] {
				n := b.groupSize(y, x, &visited)
				score += float64(n * n)
			}
		}
	}
	return score
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if b.cells[y][x] == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + b.cells[y][x])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
