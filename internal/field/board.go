package field

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrOutOfBounds is returned for coordinates outside the board.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	// ErrInvalidConfiguration is returned when a mine layout cannot be satisfied.
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	// ErrAlreadyNumbered is returned when layout or numbering runs a second time.
	ErrAlreadyNumbered = errors.New("board already numbered")
)

// directions are the eight compass offsets, clockwise from north.
var directions = [8]Point{
	{0, -1},  // north
	{1, -1},  // northeast
	{1, 0},   // east
	{1, 1},   // southeast
	{0, 1},   // south
	{-1, 1},  // southwest
	{-1, 0},  // west
	{-1, -1}, // northwest
}

// Board is a fixed-size grid of cells.
type Board struct {
	Width  int
	Height int

	cells        [][]Cell
	mines        []Point
	flagged      int
	revealedSafe int
	numbered     bool
}

// NewBoard creates a board of unrevealed, unflagged Number(0) cells.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: board size %dx%d", ErrInvalidConfiguration, width, height)
	}

	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{X: x, Y: y, Kind: Number(0)}
		}
	}

	return &Board{
		Width:  width,
		Height: height,
		cells:  cells,
	}, nil
}

// Size returns the total number of cells.
func (b *Board) Size() int {
	return b.Width * b.Height
}

// InBounds returns true if the coordinates are on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// CellAt returns a copy of the cell at the given position.
func (b *Board) CellAt(x, y int) (Cell, error) {
	if !b.InBounds(x, y) {
		return Cell{}, outOfBounds(x, y)
	}
	return b.cells[y][x], nil
}

// Neighbors returns the in-bounds cells around (x, y), clockwise from north.
func (b *Board) Neighbors(x, y int) ([]Cell, error) {
	if !b.InBounds(x, y) {
		return nil, outOfBounds(x, y)
	}
	points := b.neighborPoints(Point{x, y})
	cells := make([]Cell, len(points))
	for i, p := range points {
		cells[i] = b.cells[p.Y][p.X]
	}
	return cells, nil
}

// Mines returns a copy of the mine positions, in placement order.
func (b *Board) Mines() []Point {
	return slices.Clone(b.mines)
}

// FlaggedCount returns the number of flagged cells.
func (b *Board) FlaggedCount() int {
	return b.flagged
}

// RevealedSafeCount returns the number of revealed non-mine cells.
func (b *Board) RevealedSafeCount() int {
	return b.revealedSafe
}

// Numbered returns true once mines are laid out and counts are frozen.
func (b *Board) Numbered() bool {
	return b.numbered
}

// neighborPoints returns the in-bounds neighbors of p.
func (b *Board) neighborPoints(p Point) []Point {
	points := make([]Point, 0, len(directions))
	for _, d := range directions {
		nx, ny := p.X+d.X, p.Y+d.Y
		if b.InBounds(nx, ny) {
			points = append(points, Point{nx, ny})
		}
	}
	return points
}

func (b *Board) at(p Point) *Cell {
	return &b.cells[p.Y][p.X]
}

func outOfBounds(x, y int) error {
	return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
}
