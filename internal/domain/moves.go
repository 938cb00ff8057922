package domain

import (
	"slices"
	"strconv"
)

// MoveEntry describes one row of the move list.
type MoveEntry struct {
	// Move is the history index the entry was built from; it stays stable
	// across sort toggles and doubles as the jump target.
	Move     int
	Label    string
	Location *Location
	// Current marks the displayed step, rendered as text instead of a button.
	Current bool
}

// Moves lists every recorded step, oldest first unless the sort order was toggled.
func (g *Game) Moves() []MoveEntry {
	out := make([]MoveEntry, len(g.history))
	for move := range g.history {
		e := MoveEntry{Move: move, Current: move == g.step}
		var where string
		if move > 0 {
			loc := Locate(g.history[move-1], g.history[move])
			e.Location = &loc
			where = " " + loc.String()
		}
		switch {
		case e.Current:
			e.Label = "You are at move #" + strconv.Itoa(move) + where
		case move == 0:
			e.Label = "Go to game start"
		default:
			e.Label = "Go to move #" + strconv.Itoa(move) + where
		}
		out[move] = e
	}
	if !g.sortDescending {
		slices.Reverse(out)
	}
	return out
}

// SortLabel is the caption of the sort toggle.
func (g *Game) SortLabel() string {
	if g.sortDescending {
		return "Sort Descending"
	}
	return "Sort Ascending"
}

// View is everything a renderer needs to draw the displayed step.
type View struct {
	Board     Board
	Winning   [9]bool
	Status    string
	Moves     []MoveEntry
	SortLabel string
	Step      int
	Len       int
	Next      Cell
}

// View derives the render state of g.
func (g *Game) View() View {
	v := View{
		Board:     g.Current(),
		Status:    g.Status(),
		Moves:     g.Moves(),
		SortLabel: g.SortLabel(),
		Step:      g.step,
		Len:       len(g.history),
		Next:      g.Next(),
	}
	for _, i := range g.WinningCells() {
		v.Winning[i] = true
	}
	return v
}
