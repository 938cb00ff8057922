package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateEveryLine(t *testing.T) {
	for _, p := range []Cell{X, O} {
		for _, ln := range Lines {
			t.Run(fmt.Sprintf("%s%v", p, ln), func(t *testing.T) {
				var b Board
				for _, i := range ln {
					b[i] = p
				}
				w, ok := Evaluate(b)
				require.True(t, ok)
				assert.Equal(t, p, w.Player)
				assert.Equal(t, ln, w.Cells)
			})
		}
	}
}

func TestEvaluateNoWinner(t *testing.T) {
	boards := map[string]Board{
		"empty":   {},
		"partial": {X, O, X, Empty, O, Empty, Empty, Empty, Empty},
		"mixed":   {X, X, O, Empty, Empty, Empty, Empty, Empty, Empty},
		"tie":     {X, O, X, X, O, O, O, X, X},
	}
	for name, b := range boards {
		_, ok := Evaluate(b)
		assert.False(t, ok, name)
	}
}

func TestEvaluatePicksFirstLineInOrder(t *testing.T) {
	// top row and left column both complete; rows come first
	b := Board{X, X, X, X, O, O, X, O, O}
	w, ok := Evaluate(b)
	require.True(t, ok)
	assert.Equal(t, [3]int{0, 1, 2}, w.Cells)
}

func TestLocate(t *testing.T) {
	for i := 0; i < 9; i++ {
		var prev, next Board
		next[i] = O
		assert.Equal(t, Location{Row: i / 3, Col: i % 3}, Locate(prev, next), "index %d", i)
	}
	assert.Equal(t, "(2, 1)", Locate(Board{}, Board{7: X}).String())
}

func TestLocatePanicsOnMisuse(t *testing.T) {
	assert.Panics(t, func() { Locate(Board{}, Board{}) })
	assert.Panics(t, func() { Locate(Board{}, Board{0: X, 1: O}) })
}

func TestBoardFull(t *testing.T) {
	assert.False(t, Board{}.Full())
	assert.True(t, Board{X, O, X, X, O, O, O, X, X}.Full())
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "X", X.String())
	assert.Equal(t, "O", O.String())
	assert.Equal(t, "", Empty.String())
}
