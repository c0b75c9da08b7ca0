package core

import (
	"slices"
	"testing"
)

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
	if NewRNG(1).IntN(1<<30) == NewRNG(2).IntN(1<<30) {
		t.Fatalf("different seeds produced the same first draw")
	}
}

func TestRNGIntNRange(t *testing.T) {
	r := NewRNG(7)
	if r.IntN(0) != 0 || r.IntN(-5) != 0 {
		t.Fatalf("non-positive n should return 0")
	}
	for i := 0; i < 1000; i++ {
		if v := r.IntN(3); v < 0 || v >= 3 {
			t.Fatalf("IntN(3) = %d", v)
		}
	}
}

func TestShuffleBytesPermutes(t *testing.T) {
	buf := []uint8{0, 0, 1, 1, 1, 2, 2, 2, 2}
	orig := slices.Clone(buf)
	NewRNG(9).ShuffleBytes(buf)

	sorted := slices.Clone(buf)
	slices.Sort(sorted)
	if !slices.Equal(sorted, orig) {
		t.Fatalf("shuffle changed the multiset: %v", buf)
	}

	again := slices.Clone(orig)
	NewRNG(9).ShuffleBytes(again)
	if !slices.Equal(buf, again) {
		t.Fatalf("same seed produced different shuffles: %v vs %v", buf, again)
	}
}
