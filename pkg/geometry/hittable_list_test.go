package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// MockShape for testing
type MockShape struct {
	boundingBox core.AABB
	hasBox      bool
	hitFn       func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool)
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}

func (m MockShape) BoundingBox() (core.AABB, bool) {
	return m.boundingBox, m.hasBox
}

// makeHitFn returns a hit function reporting a fixed t whenever it lies in range
func makeHitFn(tValue float64) func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
		if tValue >= tMin && tValue <= tMax {
			return &core.HitRecord{T: tValue}, true
		}
		return nil, false
	}
}

func TestHittableList_Empty(t *testing.T) {
	list := NewHittableList()

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	if hit, isHit := list.Hit(ray, 0.001, math.Inf(1)); isHit || hit != nil {
		t.Error("Expected no hit for empty list")
	}

	if _, ok := list.BoundingBox(); ok {
		t.Error("Expected empty list to have no bounding box")
	}
}

func TestHittableList_NearestHitRegardlessOfOrder(t *testing.T) {
	// Overlapping spheres along the -Z axis
	spheres := []core.Hittable{
		NewSphere(core.NewVec3(0, 0, -3), 1.0, nil),
		NewSphere(core.NewVec3(0, 0, -2), 0.8, nil),
		NewSphere(core.NewVec3(0, 0, -4), 2.0, nil),
		NewSphere(core.NewVec3(0.2, 0, -2.5), 0.6, nil),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	reference, isHit := NewHittableList(spheres...).Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	// The sphere at z=-2 with radius 0.8 is entered first at t=1.2
	if math.Abs(reference.T-1.2) > 1e-9 {
		t.Fatalf("Expected nearest hit at t=1.2, got %f", reference.T)
	}

	random := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := make([]core.Hittable, len(spheres))
		copy(shuffled, spheres)
		random.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		hit, isHit := NewHittableList(shuffled...).Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			t.Fatalf("Permutation %d: expected hit", i)
		}
		if hit.T != reference.T || hit.Point != reference.Point || hit.Normal != reference.Normal {
			t.Fatalf("Permutation %d: expected t=%f, got t=%f", i, reference.T, hit.T)
		}
	}
}

func TestHittableList_ShrinksTMax(t *testing.T) {
	var seenTMax []float64
	recorder := func(tValue float64) core.Hittable {
		return MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
			seenTMax = append(seenTMax, tMax)
			return makeHitFn(tValue)(ray, tMin, tMax)
		}}
	}

	list := NewHittableList(recorder(5), recorder(3), recorder(4))
	hit, isHit := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), 0.001, 100)

	if !isHit || hit.T != 3 {
		t.Fatalf("Expected closest hit at t=3, got %v", hit)
	}
	expected := []float64{100, 5, 3}
	for i := range expected {
		if seenTMax[i] != expected[i] {
			t.Errorf("Call %d: expected tMax %f, got %f", i, expected[i], seenTMax[i])
		}
	}
}

func TestHittableList_BoundingBox(t *testing.T) {
	list := NewHittableList(
		NewSphere(core.NewVec3(0, 0, 0), 1, nil),
		NewSphere(core.NewVec3(5, 1, -2), 0.5, nil),
	)

	box, ok := list.BoundingBox()
	if !ok {
		t.Fatal("Expected a bounding box")
	}
	expected := core.NewAABB(core.NewVec3(-1, -1, -2.5), core.NewVec3(5.5, 1.5, 1))
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}

	list.Add(MockShape{hasBox: false, hitFn: makeHitFn(1)})
	if _, ok := list.BoundingBox(); ok {
		t.Error("Expected no box once an unbounded member is added")
	}
	if list.Len() != 3 {
		t.Errorf("Expected 3 members, got %d", list.Len())
	}
}
