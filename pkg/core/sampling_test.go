package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomInUnitSphere_StrictlyInside(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		p := RandomInUnitSphere(random)
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Sample %d outside unit sphere: %v", i, p)
		}
	}
}

func TestRandomUnitVector_IsUnit(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		v := RandomUnitVector(random)
		if math.Abs(v.Length()-1.0) > 1e-9 {
			t.Fatalf("Sample %d not unit length: %f", i, v.Length())
		}
		mean = mean.Add(v)
	}

	// Uniform directions average out near the origin
	mean = mean.Multiply(1.0 / n)
	if mean.Length() > 0.05 {
		t.Errorf("Expected mean direction near zero, got %v", mean)
	}
}

func TestRandomInUnitDisk_FlatAndInside(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	for i := 0; i < 10000; i++ {
		p := RandomInUnitDisk(random)
		if p.Z != 0 {
			t.Fatalf("Disk sample has non-zero Z: %v", p)
		}
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Disk sample outside unit disk: %v", p)
		}
	}
}

func TestRandomInHemisphere_FacesNormal(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	normal := NewVec3(0, 0, 1)
	for i := 0; i < 5000; i++ {
		p := RandomInHemisphere(normal, random)
		if p.Dot(normal) < 0 {
			t.Fatalf("Hemisphere sample below surface: %v", p)
		}
	}
}

func TestRandomVec3_Range(t *testing.T) {
	random := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		v := RandomVec3(random, 0.5, 1.0)
		for axis := 0; axis < 3; axis++ {
			c := v.Get(axis)
			if c < 0.5 || c >= 1.0 {
				t.Fatalf("Component %d out of range: %f", axis, c)
			}
		}
	}
}
