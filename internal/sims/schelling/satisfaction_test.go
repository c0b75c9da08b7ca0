package schelling

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighborCounts(t *testing.T) {
	b := boardFromRows(t, 0.5,
		"AAAA",
		"AAAA",
		"AAAA",
		"AAAA",
	)
	tests := []struct {
		name string
		c    Coord
		want int
	}{
		{"top-left corner", Coord{0, 0}, 3},
		{"top-right corner", Coord{3, 0}, 3},
		{"bottom-left corner", Coord{0, 3}, 3},
		{"bottom-right corner", Coord{3, 3}, 3},
		{"top edge", Coord{1, 0}, 5},
		{"left edge", Coord{0, 2}, 5},
		{"right edge", Coord{3, 1}, 5},
		{"bottom edge", Coord{2, 3}, 5},
		{"interior", Coord{1, 1}, 8},
		{"interior", Coord{2, 2}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Neighbors(tt.c)
			assert.Len(t, got, tt.want)
			for _, n := range got {
				assert.NotEqual(t, tt.c, n)
				assert.True(t, b.inBounds(n), "neighbour %v out of bounds", n)
			}
		})
	}
}

func TestSatisfactionCountsSameAndEmpty(t *testing.T) {
	b := boardFromRows(t, 0.5,
		"AB.",
		"AAB",
		"...",
	)

	got, err := b.Satisfaction(Coord{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 6.0/8.0, got, 1e-12)

	got, err = b.Satisfaction(Coord{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, got, 1e-12)

	got, err = b.Satisfaction(Coord{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/5.0, got, 1e-12)

	got, err = b.SatisfactionAs(Coord{2, 0}, GroupB)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, got, 1e-12)

	got, err = b.SatisfactionAs(Coord{2, 0}, GroupA)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, got, 1e-12)

	// Occupied cells ignore the hypothetical group.
	got, err = b.SatisfactionAs(Coord{1, 0}, GroupA)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/5.0, got, 1e-12)
}

func TestSatisfactionRejectsMisuse(t *testing.T) {
	b := boardFromRows(t, 0.5,
		"AB.",
		"AAB",
		"...",
	)

	_, err := b.Satisfaction(Coord{2, 0})
	assert.True(t, errors.Is(err, ErrEmptyCell), "got %v", err)

	_, err = b.SatisfactionAs(Coord{2, 0}, Empty)
	assert.True(t, errors.Is(err, ErrInvalidGroup), "got %v", err)

	_, err = b.SatisfactionAs(Coord{2, 0}, Label(7))
	assert.True(t, errors.Is(err, ErrInvalidGroup), "got %v", err)

	_, err = b.Satisfaction(Coord{3, 0})
	assert.True(t, errors.Is(err, ErrOutOfBounds), "got %v", err)

	_, err = b.SatisfactionAs(Coord{-1, 1}, GroupA)
	assert.True(t, errors.Is(err, ErrOutOfBounds), "got %v", err)
}

func TestCorruptedLabelPanics(t *testing.T) {
	b := boardFromRows(t, 0.5,
		"AB.",
		"AAB",
		"...",
	)
	b.grid.Set(0, 0, 9)
	assert.Panics(t, func() { _, _ = b.Satisfaction(Coord{0, 0}) })
	assert.Panics(t, func() { b.MeanSatisfaction() })
}

func TestSingleCellBoardIsSatisfied(t *testing.T) {
	b := boardFromRows(t, 1, "A")
	got, err := b.Satisfaction(Coord{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
	assert.Equal(t, 1.0, b.MeanSatisfaction())
}

func TestMeanSatisfactionSkipsEmptyCells(t *testing.T) {
	b := boardFromRows(t, 0.5,
		"AB.",
		"AAB",
		"...",
	)
	want := 0.0
	occupied := 0
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			c := Coord{x, y}
			if b.At(c) == Empty {
				continue
			}
			s, err := b.Satisfaction(c)
			require.NoError(t, err)
			want += s
			occupied++
		}
	}
	assert.InDelta(t, want/float64(occupied), b.MeanSatisfaction(), 1e-12)

	allEmpty := boardFromRows(t, 0.5, "..", "..")
	assert.Equal(t, 0.0, allEmpty.MeanSatisfaction())
}

func TestSatisfactionStaysInRangeDuringRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 12
	cfg.Empty = 20
	cfg.Threshold = 0.6
	b, err := New(cfg)
	require.NoError(t, err)

	for i := 0; i < 400; i++ {
		b.Step()
		if i%40 != 0 {
			continue
		}
		for y := 0; y < cfg.Size; y++ {
			for x := 0; x < cfg.Size; x++ {
				c := Coord{x, y}
				if b.At(c) == Empty {
					continue
				}
				s, err := b.Satisfaction(c)
				require.NoError(t, err)
				if s < 0 || s > 1 || math.IsNaN(s) {
					t.Fatalf("satisfaction of %v out of range: %f", c, s)
				}
			}
		}
	}
}

func TestSatisfactionFieldMatchesBoard(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 9
	cfg.Empty = 12
	b, err := New(cfg)
	require.NoError(t, err)

	field := SatisfactionField(b.Cells(), cfg.Size)
	require.Len(t, field, cfg.Size*cfg.Size)
	for idx, v := range field {
		c := b.coord(idx)
		if b.At(c) == Empty {
			assert.Equal(t, -1.0, v)
			continue
		}
		s, err := b.Satisfaction(c)
		require.NoError(t, err)
		assert.InDelta(t, s, v, 1e-12)
	}

	for _, v := range SatisfactionField([]uint8{1, 2, 0}, 2) {
		assert.Equal(t, -1.0, v, "mismatched frame size must be rejected")
	}
}
