package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Russian roulette never keeps a path with more than this probability
const maxSurvivalProbability = 0.95

// minHitDistance skips self-intersections caused by floating point error at the ray origin
const minHitDistance = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a sky gradient as the only light
type PathTracingIntegrator struct {
	config core.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene core.Scene, random *rand.Rand, depth int) core.Vec3 {
	return pt.rayColor(ray, scene, random, depth, 0, core.NewVec3(1, 1, 1))
}

// rayColor follows one path. bounces counts the surfaces already scattered off and
// throughput is the product of their attenuations.
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, scene core.Scene, random *rand.Rand, depth, bounces int, throughput core.Vec3) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	shouldTerminate, rrCompensation := pt.applyRussianRoulette(bounces, throughput, random)
	if shouldTerminate {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := scene.GetWorld().Hit(ray, minHitDistance, math.Inf(1))
	if !isHit {
		return pt.backgroundGradient(ray, scene).Multiply(rrCompensation)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	newThroughput := throughput.MultiplyVec(scatter.Attenuation)
	incoming := pt.rayColor(scatter.Scattered, scene, random, depth-1, bounces+1, newThroughput)

	return scatter.Attenuation.MultiplyVec(incoming).Multiply(rrCompensation)
}

// applyRussianRoulette decides whether to end the path early. Surviving paths are
// weighted by the inverse survival probability so the estimate stays unbiased.
func (pt *PathTracingIntegrator) applyRussianRoulette(bounces int, throughput core.Vec3, random *rand.Rand) (bool, float64) {
	minBounces := pt.config.RussianRouletteMinBounces
	if minBounces <= 0 || bounces < minBounces {
		return false, 1.0
	}

	survivalProbability := math.Min(maxSurvivalProbability, throughput.MaxComponent())
	if survivalProbability <= 0 || random.Float64() > survivalProbability {
		return true, 0.0
	}

	return false, 1.0 / survivalProbability
}

// backgroundGradient blends the scene's bottom and top colors by the ray's height
func (pt *PathTracingIntegrator) backgroundGradient(ray core.Ray, scene core.Scene) core.Vec3 {
	topColor, bottomColor := scene.GetBackgroundColors()

	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Multiply(1.0 - a).Add(topColor.Multiply(a))
}
