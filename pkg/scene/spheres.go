package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const (
	spheresSceneCount       = 50
	spheresScenePlacements  = 100000 // Placement attempts before giving up
	spheresSceneMinRadius   = 0.3
	spheresSceneMaxRadius   = 0.8
	spheresSceneHalfExtentX = 6.0
	spheresSceneHalfExtentY = 3.5
	spheresSceneHalfExtentZ = 4.0
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewRandomSpheres places count non-overlapping spheres inside the box [-halfExtent, halfExtent].
// Materials are mostly diffuse with evenly spread hues, plus some metal and glass.
func NewRandomSpheres(count int, halfExtent core.Vec3, random *rand.Rand) ([]core.Hittable, error) {
	spheres := make([]*geometry.Sphere, 0, count)

	for attempt := 0; len(spheres) < count; attempt++ {
		if attempt >= spheresScenePlacements {
			return nil, fmt.Errorf("placed only %d of %d spheres without overlap", len(spheres), count)
		}

		radius := spheresSceneMinRadius + random.Float64()*(spheresSceneMaxRadius-spheresSceneMinRadius)
		center := core.NewVec3(
			(2*random.Float64()-1)*(halfExtent.X-radius),
			(2*random.Float64()-1)*(halfExtent.Y-radius),
			(2*random.Float64()-1)*(halfExtent.Z-radius),
		)

		if overlapsAny(center, radius, spheres) {
			continue
		}

		spheres = append(spheres, geometry.NewSphere(center, radius, randomSphereMaterial(len(spheres), count, random)))
	}

	objects := make([]core.Hittable, len(spheres))
	for i, sphere := range spheres {
		objects[i] = sphere
	}
	return objects, nil
}

// overlapsAny reports whether a sphere at center with radius intersects any placed sphere
func overlapsAny(center core.Vec3, radius float64, spheres []*geometry.Sphere) bool {
	for _, other := range spheres {
		if center.Subtract(other.Center).Length() < radius+other.Radius {
			return true
		}
	}
	return false
}

// randomSphereMaterial picks the material of the index-th sphere out of count
func randomSphereMaterial(index, count int, random *rand.Rand) core.Material {
	choice := random.Float64()
	hue := float64(index) / float64(count) * 360.0

	switch {
	case choice < 0.7:
		return material.NewLambertian(oklchToRGB(0.65, 0.15, hue))
	case choice < 0.9:
		return material.NewMetal(oklchToRGB(0.8, 0.05, hue), random.Float64()*0.3)
	default:
		return material.NewDielectric(1.5)
	}
}

// newSpheresScene creates fifty random non-overlapping spheres floating in front of the camera
func newSpheresScene(options Options, random *rand.Rand) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(0, 0, 16),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   DefaultAspectRatio,
		VFov:          40.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}

	s := newScene(cameraConfig, options.Width)

	halfExtent := core.NewVec3(spheresSceneHalfExtentX, spheresSceneHalfExtentY, spheresSceneHalfExtentZ)
	spheres, err := NewRandomSpheres(spheresSceneCount, halfExtent, random)
	if err != nil {
		return nil, err
	}
	s.Add(spheres...)

	return s, nil
}
