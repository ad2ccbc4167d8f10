package fireworks

import (
	"math"
	"testing"
)

func TestRandomBetweenStaysInRange(t *testing.T) {
	r := NewRandom(42)
	for i := 0; i < 10000; i++ {
		v := r.Between(2, 4)
		if v < 2 || v >= 4 {
			t.Fatalf("sample %d out of [2,4): %v", i, v)
		}
	}
	if got := r.Between(2.5, 2.5); got != 2.5 {
		t.Errorf("degenerate range should return min, got %v", got)
	}
	if got := r.Between(3, 1); got != 3 {
		t.Errorf("inverted range should return min, got %v", got)
	}
}

func TestRandomAngle(t *testing.T) {
	r := NewRandom(7)
	for i := 0; i < 1000; i++ {
		if a := r.Angle(); a < 0 || a >= 2*math.Pi {
			t.Fatalf("angle out of [0, 2π): %v", a)
		}
	}
}

func TestRandomChance(t *testing.T) {
	r := NewRandom(3)
	for i := 0; i < 100; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) must never be true")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) must always be true")
		}
	}

	hits := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if r.Chance(0.5) {
			hits++
		}
	}
	if hits < 4700 || hits > 5300 {
		t.Errorf("Chance(0.5) hit %d of %d times", hits, n)
	}
}

func TestRandomIndex(t *testing.T) {
	r := NewRandom(11)
	seen := make([]int, 6)
	for i := 0; i < 6000; i++ {
		idx := r.Index(6)
		if idx < 0 || idx >= 6 {
			t.Fatalf("index out of range: %d", idx)
		}
		seen[idx]++
	}
	for i, c := range seen {
		if c == 0 {
			t.Errorf("index %d never picked", i)
		}
	}
	if r.Index(0) != 0 || r.Index(1) != 0 {
		t.Error("Index of empty or single set should be 0")
	}
}

func TestRandomSeedIsDeterministic(t *testing.T) {
	a, b := NewRandom(99), NewRandom(99)
	for i := 0; i < 100; i++ {
		if a.Between(0, 1) != b.Between(0, 1) {
			t.Fatal("same seed produced different sequences")
		}
	}
}
