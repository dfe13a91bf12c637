// Package field provides the minefield model: cells, mine layout and the reveal engine.
package field

import "strconv"

// Kind is what a cell holds: a mine or the number of adjacent mines.
type Kind int8

// Mine marks a cell holding a mine. Numbers 0..8 are stored as Kind(n).
const Mine Kind = -1

// Number returns the kind of a safe cell with n adjacent mines.
func Number(n int) Kind {
	return Kind(n)
}

// IsMine returns true if the kind is a mine.
func (k Kind) IsMine() bool {
	return k == Mine
}

// Count returns the number of adjacent mines, or 0 for a mine.
func (k Kind) Count() int {
	if k.IsMine() {
		return 0
	}
	return int(k)
}

// String returns "mine" or the adjacent-mine count.
func (k Kind) String() string {
	if k.IsMine() {
		return "mine"
	}
	return strconv.Itoa(int(k))
}

// Point is a cell coordinate on the board.
type Point struct {
	X, Y int
}

// Cell is a single square of the minefield.
type Cell struct {
	X, Y     int
	Kind     Kind // Frozen once the board is numbered
	Revealed bool
	Flagged  bool
	Starter  bool // Part of the first-click safe zone; never holds a mine
	Exploded bool // The mine that ended the game
}

// Point returns the cell's coordinates.
func (c Cell) Point() Point {
	return Point{X: c.X, Y: c.Y}
}

// Hidden returns true if the cell is neither revealed nor flagged.
func (c Cell) Hidden() bool {
	return !c.Revealed && !c.Flagged
}
