package integrator

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance carried back along ray, following at most depth bounces
	RayColor(ray core.Ray, scene core.Scene, random *rand.Rand, depth int) core.Vec3
}
