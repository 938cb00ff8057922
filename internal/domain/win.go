package domain

// Lines lists every winning triple in evaluation order.
var Lines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// Win describes a completed line.
type Win struct {
	Player Cell
	Cells  [3]int
}

// Evaluate returns the first completed line on b, if any.
func Evaluate(b Board) (Win, bool) {
	for _, ln := range Lines {
		a := b[ln[0]]
		if a != Empty && a == b[ln[1]] && a == b[ln[2]] {
			return Win{Player: a, Cells: ln}, true
		}
	}
	return Win{}, false
}
