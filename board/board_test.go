package board

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// tileValues returns the multiset of non-empty values, sorted.
func tileValues(b *Board) []uint8 {
	vals := []uint8{}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if b.cells[y][x] != 0 {
				vals = append(vals, b.cells[y][x])
			}
		}
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
	return vals
}

func TestInsertRowMajor(t *testing.T) {
	b := New()
	b.Insert(1, 1)
	b.Insert(2, 1)
	assert.Equal(t, uint8(1), b.cells[0][0])
	// Cell (0,0) is occupied now, so the first empty cell is (0,1).
	assert.Equal(t, uint8(2), b.cells[0][1])

	b.Insert(3, 11)
	// 11th empty cell: row 0 has 8 empties left, so it lands at (1,2).
	assert.Equal(t, uint8(3), b.cells[1][2])
	assert.Equal(t, 97, b.EmptyCells())
	assert.Equal(t, 0, b.Turn())
}

func TestInsertPastEndIsNoOp(t *testing.T) {
	b := New()
	b.Insert(1, Height*Width+1)
	assert.Equal(t, Height*Width, b.EmptyCells())
}

func TestAdvanceCompactsStably(t *testing.T) {
	b := New()
	// Row 3 holds tiles 1, 2, 3 scattered with gaps.
	b.cells[3][1] = 1
	b.cells[3][4] = 2
	b.cells[3][8] = 3

	b.Advance(Left)
	assert.Equal(t, [3]uint8{1, 2, 3}, [3]uint8{b.cells[3][0], b.cells[3][1], b.cells[3][2]})
	assert.Equal(t, 1, b.Turn())

	b.Advance(Right)
	assert.Equal(t, [3]uint8{1, 2, 3}, [3]uint8{b.cells[3][7], b.cells[3][8], b.cells[3][9]})

	b.Advance(Forward)
	// Each tile is alone in its column; all slide to row 0.
	assert.Equal(t, uint8(1), b.cells[0][7])
	assert.Equal(t, uint8(2), b.cells[0][8])
	assert.Equal(t, uint8(3), b.cells[0][9])

	b.Advance(Back)
	assert.Equal(t, uint8(1), b.cells[Height-1][7])
	assert.Equal(t, uint8(2), b.cells[Height-1][8])
	assert.Equal(t, uint8(3), b.cells[Height-1][9])
}

func TestAdvanceColumnOrderPreserved(t *testing.T) {
	b := New()
	b.cells[2][5] = 3
	b.cells[6][5] = 1
	b.cells[9][5] = 2

	b.Advance(Forward)
	assert.Equal(t, uint8(3), b.cells[0][5])
	assert.Equal(t, uint8(1), b.cells[1][5])
	assert.Equal(t, uint8(2), b.cells[2][5])

	b = New()
	b.cells[2][5] = 3
	b.cells[6][5] = 1
	b.cells[9][5] = 2
	b.Advance(Back)
	// Scanning from the bottom, the 2 stays nearest the bottom edge.
	assert.Equal(t, uint8(2), b.cells[9][5])
	assert.Equal(t, uint8(1), b.cells[8][5])
	assert.Equal(t, uint8(3), b.cells[7][5])
}

func TestAdvanceConservesTiles(t *testing.T) {
	b := New()
	b.Insert(1, 5)
	b.Insert(2, 17)
	b.Insert(3, 40)
	b.Insert(1, 63)
	b.Insert(2, 12)
	want := tileValues(b)

	for _, a := range LegalActions {
		b.Advance(a)
		assert.Equal(t, want, tileValues(b), "action %v changed the tile multiset", a)
	}
}

func TestAdvanceIdempotent(t *testing.T) {
	for _, a := range LegalActions {
		b := New()
		b.Insert(1, 14)
		b.Insert(2, 31)
		b.Insert(3, 55)
		b.Insert(1, 2)

		b.Advance(a)
		once := b.cells
		b.Advance(a)
		assert.Equal(t, once, b.cells, "second %v compaction moved tiles", a)
	}
}

func TestAdvanceFullAndEmptyLines(t *testing.T) {
	b := New()
	// Row 0 fully occupied, everything else empty.
	for x := 0; x < Width; x++ {
		b.cells[0][x] = uint8(x%3) + 1
	}
	before := b.cells
	b.Advance(Left)
	assert.Equal(t, before, b.cells)
}

func TestScore(t *testing.T) {
	b := New()
	assert.Equal(t, 0.0, b.Score())

	// A group of 3 and a disjoint group of 5, same value.
	b.cells[0][0] = 1
	b.cells[0][1] = 1
	b.cells[1][0] = 1
	b.cells[5][5] = 1
	b.cells[5][6] = 1
	b.cells[5][7] = 1
	b.cells[6][5] = 1
	b.cells[6][6] = 1
	assert.Equal(t, 34.0, b.Score())
}

func TestScoreSingleGroupFullBoard(t *testing.T) {
	b := New()
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			b.cells[y][x] = 2
		}
	}
	assert.Equal(t, 10000.0, b.Score())
}

func TestScoreDiagonalNotConnected(t *testing.T) {
	b := New()
	b.cells[0][0] = 1
	b.cells[1][1] = 1
	assert.Equal(t, 2.0, b.Score())
}

func TestScoreDifferentValuesSplitGroups(t *testing.T) {
	b := New()
	b.cells[0][0] = 1
	b.cells[0][1] = 2
	b.cells[0][2] = 2
	assert.Equal(t, 5.0, b.Score())
}

func TestCopyIsIndependent(t *testing.T) {
	b := New()
	b.Insert(1, 1)
	c := b.Copy()
	c.Insert(2, 1)
	c.Advance(Left)
	assert.Equal(t, uint8(0), b.cells[0][1])
	assert.Equal(t, 0, b.Turn())
	assert.Equal(t, 1, c.Turn())
}

func TestInsertThenLeftScenario(t *testing.T) {
	// Three insertions filling row 0 left to right, then a Left shift:
	// the three tiles end up adjacent at the left edge in insertion order.
	b := New()
	b.Insert(1, 1)
	b.Insert(1, 1)
	b.Insert(1, 1)
	b.Advance(Left)
	assert.Equal(t, uint8(1), b.cells[0][0])
	assert.Equal(t, uint8(1), b.cells[0][1])
	assert.Equal(t, uint8(1), b.cells[0][2])
	assert.Equal(t, uint8(0), b.cells[0][3])
	assert.Equal(t, 9.0, b.Score())
}

func TestActionRoundTrip(t *testing.T) {
	for _, a := range LegalActions {
		got, err := ActionFromChar(a.String()[0])
		assert.Nil(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ActionFromChar('X')
	assert.NotNil(t, err)
}
