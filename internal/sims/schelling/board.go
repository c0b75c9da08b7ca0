package schelling

import (
	"fmt"
	"slices"

	"schelling/internal/core"
	prng "schelling/pkg/core"
)

// Label is the tri-state content of a grid cell.
type Label uint8

const (
	Empty Label = iota
	GroupA
	GroupB
)

// IsGroup reports whether l names an occupant group.
func (l Label) IsGroup() bool { return l == GroupA || l == GroupB }

func (l Label) String() string {
	switch l {
	case Empty:
		return "empty"
	case GroupA:
		return "A"
	case GroupB:
		return "B"
	default:
		return fmt.Sprintf("label(%d)", uint8(l))
	}
}

// Coord addresses a grid cell. X is the column and Y the row.
type Coord struct {
	X, Y int
}

// Counts tallies grid labels.
type Counts struct {
	Empty  int
	GroupA int
	GroupB int
}

// Board owns the grid, its empty-cell index and the random source driving a run.
// A Board is not safe for concurrent use.
type Board struct {
	cfg  Config
	size int

	grid    *core.ByteGrid
	empty   emptyIndex
	rng     *prng.RNG
	history []Frame
}

// New places a random population according to cfg, seeded from cfg.Seed.
func New(cfg Config) (*Board, error) {
	return NewWithRNG(cfg, nil)
}

// NewWithRNG is like New but draws from r. A nil r is seeded from cfg.Seed.
func NewWithRNG(cfg Config, r *prng.RNG) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = prng.NewRNG(cfg.Seed)
	}
	b := &Board{
		cfg:   cfg,
		size:  cfg.Size,
		grid:  core.NewByteGrid(cfg.Size, cfg.Size),
		empty: newEmptyIndex(cfg.Size * cfg.Size),
		rng:   r,
	}
	b.place()
	return b, nil
}

// Name returns the simulation identifier.
func (b *Board) Name() string { return "schelling" }

// Config returns the parameters the board was built with.
func (b *Board) Config() Config { return b.cfg }

// Size returns the grid dimensions.
func (b *Board) Size() core.Size { return b.grid.Size() }

// Cells exposes the live grid labels in row-major order. Callers must not mutate it.
func (b *Board) Cells() []uint8 { return b.grid.Cells() }

// At returns the label stored at c.
func (b *Board) At(c Coord) Label { return Label(b.grid.At(c.X, c.Y)) }

// Counts tallies the labels currently on the grid.
func (b *Board) Counts() Counts {
	return Counts{
		Empty:  b.grid.Count(uint8(Empty)),
		GroupA: b.grid.Count(uint8(GroupA)),
		GroupB: b.grid.Count(uint8(GroupB)),
	}
}

// EmptyCells lists the indexed empty coordinates in row-major order.
func (b *Board) EmptyCells() []Coord {
	idx := slices.Clone(b.empty.cells)
	slices.Sort(idx)
	out := make([]Coord, len(idx))
	for i, v := range idx {
		x, y := b.grid.Coords(v)
		out[i] = Coord{X: x, Y: y}
	}
	return out
}

// Reset re-places the population with a fresh random source and clears the
// history. A zero seed reuses the configured one; any other seed becomes the
// configured seed.
func (b *Board) Reset(seed int64) {
	if seed == 0 {
		seed = b.cfg.Seed
	}
	b.cfg.Seed = seed
	b.rng = prng.NewRNG(seed)
	b.place()
}

// place writes a uniformly random permutation of the label multiset into the
// grid in row-major order and rebuilds the empty index.
func (b *Board) place() {
	groupA, groupB := b.cfg.Population()
	cells := b.grid.Cells()
	i := 0
	for ; i < b.cfg.Empty; i++ {
		cells[i] = uint8(Empty)
	}
	for end := i + groupA; i < end; i++ {
		cells[i] = uint8(GroupA)
	}
	for end := i + groupB; i < end; i++ {
		cells[i] = uint8(GroupB)
	}
	b.rng.ShuffleBytes(cells)
	b.empty.rebuild(cells)
	b.history = nil
}

func (b *Board) inBounds(c Coord) bool { return b.grid.InBounds(c.X, c.Y) }

func (b *Board) coord(idx int) Coord {
	x, y := b.grid.Coords(idx)
	return Coord{X: x, Y: y}
}
