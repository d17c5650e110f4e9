package physics

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Errorf("Distance = %f, want 5", d)
	}
	if d := DistanceSquared(1, 1, 4, 5); d != 25 {
		t.Errorf("DistanceSquared = %f, want 25", d)
	}
}

func TestCirclesOverlapIsStrict(t *testing.T) {
	// Touching circles do not overlap: the capture test is distance < r1+r2.
	if CirclesOverlap(0, 0, 10, 30, 0, 20) {
		t.Error("touching circles reported as overlapping")
	}
	if !CirclesOverlap(0, 0, 10, 29.9, 0, 20) {
		t.Error("overlapping circles not detected")
	}
	if !CirclesOverlap(5, 5, 10, 5, 5, 20) {
		t.Error("concentric circles not detected")
	}
}

func TestClampAxis(t *testing.T) {
	tests := []struct {
		v, limit, want float64
	}{
		{850, 800, 799},
		{-3, 800, 1},
		{400, 800, 400},
		{800, 800, 800},
		{0, 800, 0},
	}
	for _, tt := range tests {
		if got := ClampAxis(tt.v, tt.limit); got != tt.want {
			t.Errorf("ClampAxis(%v, %v) = %v, want %v", tt.v, tt.limit, got, tt.want)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-math.Pi / 2, 3 * math.Pi / 2},
		{0, 0},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
