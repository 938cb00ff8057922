package domain

import (
	"errors"
	"fmt"
	"slices"
)

// Errors returned by domain operations. A rejected command leaves the game untouched.
var (
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrOccupied       = errors.New("cell occupied")
	ErrGameOver       = errors.New("game over")
	ErrStepOutOfRange = errors.New("step out of range")
)

// Game holds the move history of a match and the step currently displayed.
//
// history[0] is always the empty board and each later entry adds exactly one
// mark to its predecessor. Playing after a jump back discards everything past
// the displayed step before appending.
type Game struct {
	history        []Board
	step           int
	xIsNext        bool
	sortDescending bool
}

// New returns a new game with X to move.
func New() Game {
	return Game{
		history:        []Board{{}},
		xIsNext:        true,
		sortDescending: true,
	}
}

// Play places the next mark at cell (0..8) on the displayed board.
func (g *Game) Play(cell int) error {
	if cell < 0 || cell >= len(Board{}) {
		return ErrOutOfBounds
	}
	cur := g.Current()
	if _, won := Evaluate(cur); won {
		return ErrGameOver
	}
	if cur[cell] != Empty {
		return ErrOccupied
	}

	// Board is an array, so cur is already a private copy.
	cur[cell] = g.Next()
	g.history = append(g.history[:g.step+1:g.step+1], cur)
	g.step = len(g.history) - 1
	g.xIsNext = !g.xIsNext
	return nil
}

// JumpTo displays the board after the given step without touching history.
func (g *Game) JumpTo(step int) error {
	if step < 0 || step >= len(g.history) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrStepOutOfRange, step, len(g.history))
	}
	g.step = step
	g.xIsNext = step%2 == 0
	return nil
}

// ToggleSortOrder flips the order of the move list.
func (g *Game) ToggleSortOrder() {
	g.sortDescending = !g.sortDescending
}

// Current returns the displayed board.
func (g *Game) Current() Board { return g.history[g.step] }

func (g *Game) Step() int            { return g.step }
func (g *Game) Len() int             { return len(g.history) }
func (g *Game) XIsNext() bool        { return g.xIsNext }
func (g *Game) SortDescending() bool { return g.sortDescending }

// History returns a copy of all recorded boards.
func (g *Game) History() []Board { return slices.Clone(g.history) }

// Next returns the mark the next move will place.
func (g *Game) Next() Cell {
	if g.xIsNext {
		return X
	}
	return O
}

// Winner returns the winning mark on the displayed board, or Empty.
func (g *Game) Winner() Cell {
	w, _ := Evaluate(g.Current())
	return w.Player
}

// WinningCells returns the indices of the completed line, or nil.
func (g *Game) WinningCells() []int {
	w, ok := Evaluate(g.Current())
	if !ok {
		return nil
	}
	return w.Cells[:]
}

// Status describes the displayed board for the player.
func (g *Game) Status() string {
	cur := g.Current()
	if w, ok := Evaluate(cur); ok {
		return "Winner: " + w.Player.String()
	}
	if cur.Full() {
		return "Tie"
	}
	return "Next player: " + g.Next().String()
}

// Clone returns a deep copy safe to hand to another goroutine.
func (g *Game) Clone() Game {
	cp := *g
	cp.history = slices.Clone(g.history)
	return cp
}
