package sim

import (
	"math"
	"testing"
)

func TestBeltDeterministicForSeed(t *testing.T) {
	a := Belt(DefaultBeltCount, 42)
	b := Belt(DefaultBeltCount, 42)
	if len(a) != DefaultBeltCount {
		t.Fatalf("expected %d asteroids, got %d", DefaultBeltCount, len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("asteroid %d differs between identical seeds: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBeltBounds(t *testing.T) {
	for _, ast := range Belt(DefaultBeltCount, 7) {
		r := math.Hypot(float64(ast.Position.X()), float64(ast.Position.Z()))
		if r < 5.5 || r > 8.0 {
			t.Errorf("asteroid ring radius %v outside [5.5, 8.0]", r)
		}
		if y := float64(ast.Position.Y()); y < -0.125 || y > 0.125 {
			t.Errorf("asteroid height %v outside [-0.125, 0.125]", y)
		}
		if s := float64(ast.Scale); s < 0.02 || s > 0.0375 {
			t.Errorf("asteroid scale %v outside [0.02, 0.0375]", s)
		}
	}
}

func TestBeltAnglesEvenlySpaced(t *testing.T) {
	const count = 8
	belt := Belt(count, 1)
	for i, ast := range belt {
		want := float64(i) / count * 2 * math.Pi
		got := math.Atan2(float64(ast.Position.Z()), float64(ast.Position.X()))
		if got < 0 {
			got += 2 * math.Pi
		}
		if math.Abs(got-want) > 1e-4 && math.Abs(got-want-2*math.Pi) > 1e-4 {
			t.Errorf("asteroid %d ring angle %v, want %v", i, got, want)
		}
	}
}

func TestBeltEmptyForNonPositiveCount(t *testing.T) {
	if got := Belt(0, 1); got != nil {
		t.Errorf("expected nil belt for count 0, got %d asteroids", len(got))
	}
	if got := Belt(-5, 1); got != nil {
		t.Errorf("expected nil belt for negative count, got %d asteroids", len(got))
	}
}
