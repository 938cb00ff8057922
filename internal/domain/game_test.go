package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to apply a sequence of moves
func playMoves(t *testing.T, g *Game, cells ...int) {
	t.Helper()
	for i, c := range cells {
		require.NoError(t, g.Play(c), "move %d (cell %d)", i, c)
	}
}

func TestNewGameInitialState(t *testing.T) {
	g := New()
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 0, g.Step())
	assert.True(t, g.XIsNext())
	assert.True(t, g.SortDescending())
	assert.Equal(t, Board{}, g.Current())
	assert.Equal(t, "Next player: X", g.Status())
	assert.Nil(t, g.WinningCells())
}

func TestPlayOutOfBounds(t *testing.T) {
	g := New()
	for _, c := range []int{-1, 9, 42} {
		require.ErrorIs(t, g.Play(c), ErrOutOfBounds, "cell %d", c)
	}
	assert.Equal(t, 1, g.Len())
}

func TestPlayOccupiedIsNoop(t *testing.T) {
	g := New()
	playMoves(t, &g, 4)

	// When: O targets the cell X just took
	err := g.Play(4)

	// Then: nothing changes
	require.ErrorIs(t, err, ErrOccupied)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 1, g.Step())
	assert.False(t, g.XIsNext())
	assert.Equal(t, X, g.Current()[4])
}

func TestTurnFlipsAfterValidMove(t *testing.T) {
	g := New()
	playMoves(t, &g, 4)
	assert.Equal(t, O, g.Next())
	assert.Equal(t, "Next player: O", g.Status())
	playMoves(t, &g, 0)
	assert.Equal(t, X, g.Next())
}

func TestSnapshotsAreIndependent(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 4, 8)

	h := g.History()
	require.Len(t, h, 4)
	assert.Equal(t, Board{}, h[0])
	for n := 1; n < len(h); n++ {
		diff := 0
		for i := range h[n] {
			if h[n-1][i] != h[n][i] {
				diff++
				assert.Equal(t, Empty, h[n-1][i])
			}
		}
		assert.Equal(t, 1, diff, "snapshot %d", n)
	}

	// mutating the returned copy must not leak into the game
	h[1][1] = O
	assert.Equal(t, Empty, g.History()[1][1])
}

func TestTopRowWinScenario(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 4, 1, 3, 2)

	assert.Equal(t, "Winner: X", g.Status())
	assert.Equal(t, []int{0, 1, 2}, g.WinningCells())
	assert.Equal(t, X, g.Winner())
}

func TestGameOverBlocksFurtherMoves(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 4, 1, 3, 2)

	require.ErrorIs(t, g.Play(8), ErrGameOver)
	assert.Equal(t, 6, g.Len())
	assert.Equal(t, 5, g.Step())
}

func TestWinConditionsForO(t *testing.T) {
	// X plays the first three cells off each line, O plays the line.
	checked := 0
	for _, ln := range Lines {
		var fillers []int
		for c := 0; c < 9 && len(fillers) < 3; c++ {
			if c != ln[0] && c != ln[1] && c != ln[2] {
				fillers = append(fillers, c)
			}
		}
		g := New()
		playMoves(t, &g, fillers[0], ln[0], fillers[1], ln[1], fillers[2])
		if g.Winner() != Empty {
			// the fillers completed a line of their own
			continue
		}
		playMoves(t, &g, ln[2])
		assert.Equal(t, "Winner: O", g.Status(), "line %v", ln)
		assert.Equal(t, ln[:], g.WinningCells(), "line %v", ln)
		checked++
	}
	assert.Greater(t, checked, 4)
}

func TestTieAfterNineMoves(t *testing.T) {
	g := New()
	// X O X / X O O / O X X
	playMoves(t, &g, 0, 1, 2, 4, 3, 5, 7, 6, 8)

	assert.Equal(t, 9, g.Step())
	assert.Equal(t, "Tie", g.Status())
	assert.Nil(t, g.WinningCells())
}

func TestJumpTo(t *testing.T) {
	t.Run("back to start", func(t *testing.T) {
		g := New()
		playMoves(t, &g, 0, 4, 8)

		require.NoError(t, g.JumpTo(0))

		assert.Equal(t, 0, g.Step())
		assert.True(t, g.XIsNext())
		assert.Equal(t, Board{}, g.Current())
		assert.Equal(t, 4, g.Len(), "jump must not touch history")
	})

	t.Run("turn follows parity", func(t *testing.T) {
		g := New()
		playMoves(t, &g, 0, 4, 8)
		require.NoError(t, g.JumpTo(1))
		assert.Equal(t, O, g.Next())
		require.NoError(t, g.JumpTo(2))
		assert.Equal(t, X, g.Next())
	})

	t.Run("out of range is rejected", func(t *testing.T) {
		g := New()
		playMoves(t, &g, 0)
		for _, s := range []int{-1, 2, 100} {
			require.ErrorIs(t, g.JumpTo(s), ErrStepOutOfRange)
		}
		assert.Equal(t, 1, g.Step())
		assert.False(t, g.XIsNext())
	})

	t.Run("jump back out of a win reopens play", func(t *testing.T) {
		g := New()
		playMoves(t, &g, 0, 4, 1, 3, 2)
		require.NoError(t, g.JumpTo(4))
		assert.Equal(t, "Next player: X", g.Status())
		require.NoError(t, g.Play(8))
		assert.Equal(t, 6, g.Len())
	})
}

func TestPlayAfterJumpTruncatesHistory(t *testing.T) {
	// Given: five moves recorded
	g := New()
	playMoves(t, &g, 0, 4, 1, 3, 6)
	before := g.History()

	// When: jumping to step 2 and playing a fresh move
	require.NoError(t, g.JumpTo(2))
	require.NoError(t, g.Play(8))

	// Then: history is k+2 long and the old future is gone
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 3, g.Step())
	assert.Equal(t, before[:3], g.History()[:3])
	assert.Equal(t, X, g.Current()[8])
	assert.Equal(t, Empty, g.Current()[3])
	assert.False(t, g.XIsNext())
}

func TestPlayAfterJumpIntoDiscardedCell(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 4, 1)
	require.NoError(t, g.JumpTo(1))

	// cell 1 is filled only in the future being discarded
	require.NoError(t, g.Play(1))
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, O, g.Current()[1])
}

func TestClone(t *testing.T) {
	g := New()
	playMoves(t, &g, 0, 4)
	cp := g.Clone()
	require.NoError(t, g.JumpTo(0))
	require.NoError(t, g.Play(8))

	assert.Equal(t, 2, cp.Step())
	assert.Equal(t, O, cp.Current()[4])
	assert.Equal(t, 3, cp.Len())
}
