package core

import "math/rand"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-object intersection.
// It is built by a shape's Hit and treated as read-only afterwards.
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit normal, always facing against the incoming ray
	T         float64  // Parameter t along the ray
	U, V      float64  // Surface coordinates in [0,1]
	FrontFace bool     // Whether the ray approached from outside
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Hittable is anything a ray can be intersected with: primitives, lists and BVH nodes
type Hittable interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	// BoundingBox returns false when the object has no finite bounds
	BoundingBox() (AABB, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Per-channel color attenuation
}

// Material interface for objects that can scatter rays.
// Scatter returns false when the ray is absorbed.
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// Scene is the read-only view of a scene needed by the integrator
type Scene interface {
	GetWorld() Hittable
	GetBackgroundColors() (topColor, bottomColor Vec3)
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width                     int // Image width
	Height                    int // Image height
	SamplesPerPixel           int // Number of rays per pixel
	MaxDepth                  int // Maximum ray bounce depth
	RussianRouletteMinBounces int // Bounces before Russian roulette may end a path (0 disables it)
}
