package schelling

import "fmt"

// Neighbors returns the in-bounds Moore neighbourhood of c: 3 cells at a
// corner, 5 on an edge and 8 in the interior.
func (b *Board) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Coord{X: c.X + dx, Y: c.Y + dy}
			if b.inBounds(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// Satisfaction returns the fraction of c's neighbours that share its group or
// are empty.
func (b *Board) Satisfaction(c Coord) (float64, error) {
	if !b.inBounds(c) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if b.At(c) == Empty {
		return 0, fmt.Errorf("%w: satisfaction requested for %v", ErrEmptyCell, c)
	}
	return b.SatisfactionAs(c, b.At(c))
}

// SatisfactionAs evaluates c as if it were occupied by g. Occupied cells are
// always evaluated with their actual group and g is ignored.
func (b *Board) SatisfactionAs(c Coord, g Label) (float64, error) {
	if !b.inBounds(c) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if cur := b.At(c); cur != Empty {
		g = b.occupant(c)
	} else if !g.IsGroup() {
		return 0, fmt.Errorf("%w: %v", ErrInvalidGroup, g)
	}
	return satisfactionOf(b.grid.Cells(), b.size, c.X, c.Y, g), nil
}

// MeanSatisfaction averages the satisfaction of every occupied cell. An empty
// board reports zero.
func (b *Board) MeanSatisfaction() float64 {
	cells := b.grid.Cells()
	sum := 0.0
	occupied := 0
	for idx, v := range cells {
		if Label(v) == Empty {
			continue
		}
		c := b.coord(idx)
		sum += satisfactionOf(cells, b.size, c.X, c.Y, b.occupant(c))
		occupied++
	}
	if occupied == 0 {
		return 0
	}
	return sum / float64(occupied)
}

// occupant returns the group at c and panics when the grid holds a label that
// is neither a group nor empty.
func (b *Board) occupant(c Coord) Label {
	g := b.At(c)
	if !g.IsGroup() {
		panic(fmt.Errorf("%w: cell %v holds %v", ErrInvalidGroup, c, g))
	}
	return g
}

// satisfactionOf counts neighbours of (x, y) holding g or Empty. A cell
// without neighbours (a 1x1 grid) is fully satisfied.
func satisfactionOf(cells []uint8, size, x, y int, g Label) float64 {
	same, total := 0, 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= size {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= size {
				continue
			}
			if dx == 0 && dy == 0 {
				continue
			}
			total++
			if n := Label(cells[ny*size+nx]); n == g || n == Empty {
				same++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(same) / float64(total)
}

// SatisfactionField computes the satisfaction of every occupied cell of a
// size x size frame. Empty cells and unknown labels report -1.
func SatisfactionField(cells []uint8, size int) []float64 {
	out := make([]float64, len(cells))
	if size <= 0 || len(cells) != size*size {
		for i := range out {
			out[i] = -1
		}
		return out
	}
	for idx, v := range cells {
		g := Label(v)
		if !g.IsGroup() {
			out[idx] = -1
			continue
		}
		out[idx] = satisfactionOf(cells, size, idx%size, idx/size, g)
	}
	return out
}
