package domain

import "fmt"

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// Full reports whether every cell holds a mark.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Location is a (row, col) pair on the board.
type Location struct {
	Row int
	Col int
}

func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.Row, l.Col)
}

func locationOf(idx int) Location {
	return Location{Row: idx / 3, Col: idx % 3}
}

// Locate returns where next differs from prev. The two boards must differ
// in exactly one cell; anything else means history was corrupted and panics.
func Locate(prev, next Board) Location {
	idx, diffs := -1, 0
	for i := range prev {
		if prev[i] != next[i] {
			if idx < 0 {
				idx = i
			}
			diffs++
		}
	}
	if diffs != 1 {
		panic(fmt.Sprintf("domain: boards differ in %d cells, want 1", diffs))
	}
	return locationOf(idx)
}
