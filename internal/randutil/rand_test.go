package randutil

import (
	"testing"
)

func TestIntBetween_Bounds(t *testing.T) {
	r := New(1, 2)
	for i := 0; i < 1000; i++ {
		got := r.IntBetween(3, 7)
		if got < 3 || got > 7 {
			t.Fatalf("IntBetween(3, 7) = %d, out of range", got)
		}
	}
}

func TestIntBetween_HitsBothEnds(t *testing.T) {
	r := New(1, 2)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		seen[r.IntBetween(0, 3)] = true
	}
	for v := 0; v <= 3; v++ {
		if !seen[v] {
			t.Errorf("value %d never drawn", v)
		}
	}
}

func TestIntBetween_DegenerateRange(t *testing.T) {
	r := New(1, 2)
	if got := r.IntBetween(5, 5); got != 5 {
		t.Errorf("IntBetween(5, 5) = %d, want 5", got)
	}
	if got := r.IntBetween(9, 4); got != 9 {
		t.Errorf("IntBetween(9, 4) = %d, want min", got)
	}
}

func TestFloatBetween_Range(t *testing.T) {
	r := New(7, 11)
	for i := 0; i < 1000; i++ {
		got := r.FloatBetween(0.6, 0.9)
		if got < 0.6 || got >= 0.9 {
			t.Fatalf("FloatBetween(0.6, 0.9) = %f, out of range", got)
		}
	}
}

func TestShuffle_DoesNotModifyInput(t *testing.T) {
	r := New(3, 4)
	in := []int{1, 2, 3, 4, 5}
	_ = Shuffle(r, in)
	for i, v := range []int{1, 2, 3, 4, 5} {
		if in[i] != v {
			t.Fatalf("input modified at %d: %v", i, in)
		}
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	r := New(3, 4)
	in := []int{1, 2, 3, 4, 5}
	out := Shuffle(r, in)
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	counts := make(map[int]int)
	for _, v := range out {
		counts[v]++
	}
	for _, v := range in {
		if counts[v] != 1 {
			t.Errorf("value %d appears %d times", v, counts[v])
		}
	}
}

func TestPickOne_Empty(t *testing.T) {
	r := New(1, 1)
	if _, err := PickOne(r, []string{}); err == nil {
		t.Error("expected error for empty slice")
	}
}

func TestPickOne_Single(t *testing.T) {
	r := New(1, 1)
	got, err := PickOne(r, []string{"only"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "only" {
		t.Errorf("got %q, want %q", got, "only")
	}
}

func TestPickManyUnique_NoReplacement(t *testing.T) {
	r := New(5, 6)
	in := []int{10, 20, 30, 40, 50}
	out := PickManyUnique(r, in, 3)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	seen := make(map[int]bool)
	for _, v := range out {
		if seen[v] {
			t.Errorf("value %d drawn twice", v)
		}
		seen[v] = true
	}
}

func TestPickManyUnique_CountExceedsLen(t *testing.T) {
	r := New(5, 6)
	in := []int{1, 2, 3}
	out := PickManyUnique(r, in, 10)
	if len(out) != 3 {
		t.Fatalf("len = %d, want full copy of 3", len(out))
	}
}

func TestPickManyUnique_PositionalSemantics(t *testing.T) {
	// Duplicate values are distinct by position and may both appear.
	r := New(8, 9)
	in := []string{"a", "a", "a"}
	out := PickManyUnique(r, in, 2)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	for _, v := range out {
		if v != "a" {
			t.Errorf("unexpected value %q", v)
		}
	}
}

func TestDeterministicWithFixedSeed(t *testing.T) {
	a := New(42, 43)
	b := New(42, 43)
	for i := 0; i < 100; i++ {
		if a.IntBetween(0, 1000) != b.IntBetween(0, 1000) {
			t.Fatal("same seed produced different sequences")
		}
	}
}
