package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		tMin     float64
		tMax     float64
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0.001, math.Inf(1), true},
		{"negative direction on every axis", NewRay(NewVec3(5, 5, 5), NewVec3(-1, -1, -1)), 0.001, math.Inf(1), true},
		{"pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), 0.001, math.Inf(1), false},
		{"misses to the side", NewRay(NewVec3(3, 0, 5), NewVec3(0, 0, -1)), 0.001, math.Inf(1), false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 2, 3)), 0.001, math.Inf(1), true},
		{"interval ends before box", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0.001, 3.0, false},
		{"parallel inside slab", NewRay(NewVec3(0.5, -5, 0.5), NewVec3(0, 1, 0)), 0.001, math.Inf(1), true},
		{"parallel outside slab", NewRay(NewVec3(2, -5, 0.5), NewVec3(0, 1, 0)), 0.001, math.Inf(1), false},
		{"parallel on slab plane", NewRay(NewVec3(1, -5, 0), NewVec3(0, 1, 0)), 0.001, math.Inf(1), true},
		{"negative zero component", NewRay(NewVec3(0, 0, 5), NewVec3(math.Copysign(0, -1), 0, -1)), 0.001, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.tMin, tt.tMax); got != tt.expected {
				t.Errorf("Hit() = %t, expected %t", got, tt.expected)
			}
		})
	}
}

func TestAABB_UnionContainsBothAndCommutes(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		a := NewAABB(RandomVec3(random, -10, 10), RandomVec3(random, -10, 10))
		b := NewAABB(RandomVec3(random, -10, 10), RandomVec3(random, -10, 10))

		ab := a.Union(b)
		ba := b.Union(a)

		if ab != ba {
			t.Fatalf("Union is not commutative: %v vs %v", ab, ba)
		}
		if !ab.Contains(a) || !ab.Contains(b) {
			t.Fatalf("Union %v does not contain %v and %v", ab, a, b)
		}
		if a.Union(a) != a {
			t.Fatalf("Union is not idempotent for %v", a)
		}
		if !ab.IsValid() {
			t.Fatalf("Union produced invalid box %v", ab)
		}
	}
}

func TestAABB_NewAABBOrdersCorners(t *testing.T) {
	box := NewAABB(NewVec3(1, -2, 3), NewVec3(-1, 2, -3))
	if box.Min != NewVec3(-1, -2, -3) || box.Max != NewVec3(1, 2, 3) {
		t.Errorf("Expected ordered corners, got %v", box)
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		box      AABB
		expected int
	}{
		{NewAABB(NewVec3(0, 0, 0), NewVec3(5, 1, 1)), 0},
		{NewAABB(NewVec3(0, 0, 0), NewVec3(1, 5, 1)), 1},
		{NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 5)), 2},
	}
	for _, tt := range tests {
		if got := tt.box.LongestAxis(); got != tt.expected {
			t.Errorf("LongestAxis(%v) = %d, expected %d", tt.box, got, tt.expected)
		}
	}
}
