package field

// Sweep is the outcome of a reveal or chord.
type Sweep struct {
	Opened    []Point // Newly revealed cells, including a detonated mine
	Detonated bool    // A mine was revealed
	Mine      Point   // The detonated mine, valid when Detonated is set
}

// Reveal opens the cell at (x, y). Flagged or revealed cells are left
// untouched. Opening a Number(0) cell cascades through every connected
// zero cell and its border, clearing flags on the cells it opens.
func (b *Board) Reveal(x, y int) (Sweep, error) {
	if !b.InBounds(x, y) {
		return Sweep{}, outOfBounds(x, y)
	}

	var sweep Sweep
	start := Point{x, y}
	cell := b.at(start)
	if cell.Flagged || cell.Revealed {
		return sweep, nil
	}

	cell.Revealed = true
	sweep.Opened = append(sweep.Opened, start)
	if cell.Kind.IsMine() {
		sweep.Detonated = true
		sweep.Mine = start
		return sweep, nil
	}
	b.revealedSafe++

	if cell.Kind != Number(0) {
		return sweep, nil
	}

	// Explicit worklist; each cell is pushed at most once since it is
	// marked revealed before being pushed.
	stack := []Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range b.neighborPoints(p) {
			next := b.at(n)
			if next.Kind.IsMine() || next.Revealed {
				continue
			}
			if next.Flagged {
				next.Flagged = false
				b.flagged--
			}
			next.Revealed = true
			b.revealedSafe++
			sweep.Opened = append(sweep.Opened, n)
			if next.Kind == Number(0) {
				stack = append(stack, n)
			}
		}
	}

	return sweep, nil
}

// ToggleFlag flips the flag on a hidden cell. A new flag is refused once
// limit flags are placed. Returns true if the flag changed.
func (b *Board) ToggleFlag(x, y, limit int) (bool, error) {
	if !b.InBounds(x, y) {
		return false, outOfBounds(x, y)
	}

	cell := b.at(Point{x, y})
	if cell.Revealed {
		return false, nil
	}
	if cell.Flagged {
		cell.Flagged = false
		b.flagged--
		return true, nil
	}
	if limit-b.flagged <= 0 {
		return false, nil
	}
	cell.Flagged = true
	b.flagged++
	return true, nil
}

// FlaggedNeighbors returns how many neighbors of (x, y) are flagged.
func (b *Board) FlaggedNeighbors(x, y int) (int, error) {
	if !b.InBounds(x, y) {
		return 0, outOfBounds(x, y)
	}
	count := 0
	for _, n := range b.neighborPoints(Point{x, y}) {
		if b.at(n).Flagged {
			count++
		}
	}
	return count, nil
}

// ChordTargets returns the hidden, unflagged neighbors of (x, y): the cells
// a chord would open and a held press previews.
func (b *Board) ChordTargets(x, y int) ([]Point, error) {
	if !b.InBounds(x, y) {
		return nil, outOfBounds(x, y)
	}
	var targets []Point
	for _, n := range b.neighborPoints(Point{x, y}) {
		if b.at(n).Hidden() {
			targets = append(targets, n)
		}
	}
	return targets, nil
}

// Chord reveals every unflagged neighbor of a revealed number once at
// least that many neighbors are flagged. Every neighbor is revealed even
// after a mine goes off; Mine is the first one hit.
func (b *Board) Chord(x, y int) (Sweep, error) {
	if !b.InBounds(x, y) {
		return Sweep{}, outOfBounds(x, y)
	}

	var sweep Sweep
	cell := b.at(Point{x, y})
	if !cell.Revealed || cell.Kind.IsMine() {
		return sweep, nil
	}

	flags, _ := b.FlaggedNeighbors(x, y)
	if flags < cell.Kind.Count() {
		return sweep, nil
	}

	for _, n := range b.neighborPoints(Point{x, y}) {
		step, _ := b.Reveal(n.X, n.Y)
		sweep.Opened = append(sweep.Opened, step.Opened...)
		if step.Detonated && !sweep.Detonated {
			sweep.Detonated = true
			sweep.Mine = step.Mine
		}
	}

	return sweep, nil
}

// Explode ends a lost game: every flag is cleared, every mine revealed and
// the mine at (x, y) marked exploded. Returns the cells that changed.
func (b *Board) Explode(x, y int) ([]Point, error) {
	if !b.InBounds(x, y) {
		return nil, outOfBounds(x, y)
	}

	var changed []Point
	for row := range b.cells {
		for col := range b.cells[row] {
			cell := &b.cells[row][col]
			if !cell.Flagged {
				continue
			}
			cell.Flagged = false
			changed = append(changed, cell.Point())
		}
	}
	b.flagged = 0

	for _, p := range b.mines {
		cell := b.at(p)
		if !cell.Revealed {
			cell.Revealed = true
			changed = append(changed, p)
		}
	}

	if cell := b.at(Point{x, y}); cell.Kind.IsMine() {
		cell.Exploded = true
	}
	return changed, nil
}

// FlagAllMines flags every unrevealed mine. Returns the cells that changed.
func (b *Board) FlagAllMines() []Point {
	var changed []Point
	for _, p := range b.mines {
		cell := b.at(p)
		if cell.Revealed || cell.Flagged {
			continue
		}
		cell.Flagged = true
		b.flagged++
		changed = append(changed, p)
	}
	return changed
}

// Cleared returns true once every non-mine cell is revealed.
func (b *Board) Cleared() bool {
	return b.Size()-b.revealedSafe == len(b.mines)
}
