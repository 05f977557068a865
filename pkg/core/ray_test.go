package core

import (
	"math"
	"testing"
)

func TestRay_At(t *testing.T) {
	origin := NewVec3(3, 2, 1)
	dir := NewVec3(2, 3, 5)
	ray := NewRay(origin, dir)

	if !ray.Origin.Equals(origin) || !ray.Direction.Equals(dir) {
		t.Errorf("Ray fields not preserved: %v", ray)
	}
	if got, want := ray.At(3), origin.Add(dir.Multiply(3)); !got.Equals(want) {
		t.Errorf("At(3) = %v, want %v", got, want)
	}
	if got := ray.At(0); !got.Equals(origin) {
		t.Errorf("At(0) should be the origin, got %v", got)
	}
}

func TestRay_BackgroundColor(t *testing.T) {
	tests := []struct {
		name     string
		dir      Vec3
		expected Color
	}{
		{"straight up", NewVec3(0, 1, 0), NewColor(0.5, 0.7, 1.0)},
		{"straight down", NewVec3(0, -1, 0), NewColor(1, 1, 1)},
		{"horizon", NewVec3(1, 0, 0), NewColor(0.75, 0.85, 1.0)},
		{"oblique", NewVec3(2, 3, 5), NewColor(0.6283339341519281, 0.7770003604911568, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRay(NewVec3(3, 2, 1), tt.dir).BackgroundColor()
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRay_BackgroundColorIgnoresDirectionScale(t *testing.T) {
	a := NewRay(Vec3{}, NewVec3(0.3, 0.4, -1)).BackgroundColor()
	b := NewRay(Vec3{}, NewVec3(3, 4, -10)).BackgroundColor()
	if math.Abs(a.Subtract(b).Length()) > 1e-12 {
		t.Errorf("Background should depend only on direction: %v vs %v", a, b)
	}
}
