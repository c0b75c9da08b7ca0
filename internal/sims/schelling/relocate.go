package schelling

import "fmt"

// Relocate moves the occupant of c to the nearest empty cell where it would
// be satisfied, or failing that to the nearest empty cell at all. Ties go to
// the candidate with the smallest row-major index.
func (b *Board) Relocate(c Coord) (StepResult, error) {
	if !b.inBounds(c) {
		return StepResult{}, fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if b.At(c) == Empty {
		return StepResult{}, fmt.Errorf("%w: relocation requested for %v", ErrEmptyCell, c)
	}
	g := b.occupant(c)

	dest, ok := b.nearestEmpty(c, g, true)
	if !ok {
		dest, ok = b.nearestEmpty(c, g, false)
	}
	if !ok {
		return StepResult{Outcome: NoDestination, From: c, To: c}, nil
	}

	from := b.grid.Index(c.X, c.Y)
	to := b.grid.Index(dest.X, dest.Y)
	b.grid.Swap(from, to)
	b.empty.remove(to)
	b.empty.add(from)
	return StepResult{Outcome: Moved, From: c, To: dest}, nil
}

// nearestEmpty scans the empty index for the closest cell to c by Euclidean
// distance. With satisfying set, only cells where g would meet the threshold
// qualify.
func (b *Board) nearestEmpty(c Coord, g Label, satisfying bool) (Coord, bool) {
	cells := b.grid.Cells()
	best := -1
	bestDist := 0
	for _, idx := range b.empty.cells {
		x, y := idx%b.size, idx/b.size
		if satisfying && satisfactionOf(cells, b.size, x, y, g) < b.cfg.Threshold {
			continue
		}
		dx, dy := x-c.X, y-c.Y
		d := dx*dx + dy*dy
		if best < 0 || d < bestDist || (d == bestDist && idx < best) {
			best = idx
			bestDist = d
		}
	}
	if best < 0 {
		return c, false
	}
	return b.coord(best), true
}
