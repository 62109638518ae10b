package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// HittableList is a flat aggregate searched linearly for the nearest hit
type HittableList struct {
	objects []core.Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...core.Hittable) *HittableList {
	list := &HittableList{}
	list.objects = append(list.objects, objects...)
	return list
}

// Add appends an object to the list
func (l *HittableList) Add(object core.Hittable) {
	l.objects = append(l.objects, object)
}

// Objects returns the members of the list. The slice must not be modified.
func (l *HittableList) Objects() []core.Hittable {
	return l.objects
}

// Len returns the number of members
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Hit returns the nearest intersection among all members
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, object := range l.objects {
		// Shrinking tMax guarantees later members can only replace a hit with a nearer one
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the union of every member's box. An empty list, or one with an
// unbounded member, has no box.
func (l *HittableList) BoundingBox() (core.AABB, bool) {
	if len(l.objects) == 0 {
		return core.AABB{}, false
	}

	var box core.AABB
	for i, object := range l.objects {
		objectBox, ok := object.BoundingBox()
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			box = objectBox
		} else {
			box = box.Union(objectBox)
		}
	}
	return box, true
}
