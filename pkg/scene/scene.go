package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Default image settings shared by the built-in scenes
const (
	DefaultWidth           = 400
	DefaultAspectRatio     = 16.0 / 9.0
	DefaultSamplesPerPixel = 100
	DefaultMaxDepth        = 50
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Objects        []core.Hittable // Objects in the scene
	World          core.Hittable   // Aggregate over Objects, built by Preprocess
	SamplingConfig core.SamplingConfig
	TopColor       core.Vec3 // Sky color straight up
	BottomColor    core.Vec3 // Sky color straight down
}

// newScene creates an empty scene with the standard sky for the given camera and image width
func newScene(cameraConfig renderer.CameraConfig, width int) *Scene {
	if width <= 0 {
		width = DefaultWidth
	}
	height := max(int(float64(width)/cameraConfig.AspectRatio), 1)

	return &Scene{
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		SamplingConfig: core.SamplingConfig{
			Width:           width,
			Height:          height,
			SamplesPerPixel: DefaultSamplesPerPixel,
			MaxDepth:        DefaultMaxDepth,
		},
		TopColor:    core.NewVec3(0.5, 0.7, 1.0), // Blue sky
		BottomColor: core.NewVec3(1.0, 1.0, 1.0), // White horizon
	}
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...core.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// Preprocess builds the world aggregate: a BVH when useBVH is set, otherwise a flat list.
// It must be called before rendering and the scene must not change afterwards.
func (s *Scene) Preprocess(useBVH bool, random *rand.Rand) error {
	if !useBVH {
		s.World = geometry.NewHittableList(s.Objects...)
		return nil
	}

	bvh, err := geometry.NewBVH(s.Objects, random)
	if err != nil {
		return fmt.Errorf("failed to build BVH: %w", err)
	}
	s.World = bvh
	return nil
}

// GetWorld returns the aggregate the integrator intersects rays with
func (s *Scene) GetWorld() core.Hittable {
	return s.World
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetSamplingConfig returns the scene's sampling configuration
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
