package renderer

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Scene is what the renderer needs from a scene: the world and sky for the
// integrator plus the camera and sampling settings
type Scene interface {
	core.Scene
	GetCamera() *Camera
	GetSamplingConfig() core.SamplingConfig
}

// Raytracer turns camera samples into pixel colors. It is read-only after
// construction and safe for concurrent use by many workers.
type Raytracer struct {
	scene      Scene
	camera     *Camera
	width      int
	height     int
	config     core.SamplingConfig
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer for the scene's sampling configuration
func NewRaytracer(scene Scene, logger core.Logger) *Raytracer {
	config := scene.GetSamplingConfig()
	return &Raytracer{
		scene:      scene,
		camera:     scene.GetCamera(),
		width:      config.Width,
		height:     config.Height,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integrator integrator.Integrator) {
	rt.integrator = integrator
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// PixelRay returns the camera ray through pixel (x, y) at sub-pixel offset (dx, dy) in
// [0,1). y=0 is the top row of the image.
func (rt *Raytracer) PixelRay(x, y int, dx, dy float64, random *rand.Rand) core.Ray {
	// Image rows run top-down, screen t runs bottom-up
	row := float64(rt.height - 1 - y)
	s := (float64(x) + dx) / float64(max(rt.width-1, 1))
	t := (row + dy) / float64(max(rt.height-1, 1))
	return rt.camera.GetRay(s, t, random)
}

// SampleColor returns the summed radiance of all samples for pixel (x, y)
func (rt *Raytracer) SampleColor(x, y int, random *rand.Rand) core.Vec3 {
	var pixelColor core.Vec3
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		dx := random.Float64()
		dy := random.Float64()
		ray := rt.PixelRay(x, y, dx, dy, random)
		pixelColor = pixelColor.Add(rt.integrator.RayColor(ray, rt.scene, random, rt.config.MaxDepth))
	}
	return pixelColor
}

// RenderPixel averages the samples for pixel (x, y) and converts the result to 8-bit color
func (rt *Raytracer) RenderPixel(x, y int, random *rand.Rand) color.RGBA {
	return Vec3ToColor(rt.SampleColor(x, y, random), rt.config.SamplesPerPixel)
}

// RenderRow renders every pixel of image row y, left to right, from a single generator
func (rt *Raytracer) RenderRow(y int, random *rand.Rand) RowResult {
	pixels := make([]color.RGBA, rt.width)
	for x := range pixels {
		pixels[x] = rt.RenderPixel(x, y, random)
	}

	return RowResult{
		Y:       y,
		Pixels:  pixels,
		Samples: rt.width * rt.config.SamplesPerPixel,
	}
}

// Vec3ToColor converts a summed color to RGBA: average over samples, gamma 2.0,
// clamp to [0, 0.999] and quantize to 8 bits
func Vec3ToColor(colorVec core.Vec3, samples int) color.RGBA {
	if samples > 0 {
		colorVec = colorVec.Multiply(1.0 / float64(samples))
	}

	return color.RGBA{
		R: quantize(colorVec.X),
		G: quantize(colorVec.Y),
		B: quantize(colorVec.Z),
		A: 255,
	}
}

// quantize gamma-corrects one linear channel and maps it to [0, 255]
func quantize(c float64) uint8 {
	// NaN and negative radiance both render black
	if !(c > 0) {
		return 0
	}
	c = math.Sqrt(c)
	return uint8(256 * math.Max(0, math.Min(0.999, c)))
}
