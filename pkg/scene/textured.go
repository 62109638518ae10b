package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Size of the generated texture used when no image is given
const (
	generatedTextureWidth  = 256
	generatedTextureHeight = 128
)

// newTexturedScene wraps a globe in the image at options.TexturePath, or in a generated
// latitude/longitude grid when no path is given
func newTexturedScene(options Options, random *rand.Rand) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(0, 0, 12),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   DefaultAspectRatio,
		VFov:          20.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}

	s := newScene(cameraConfig, options.Width)

	var texture material.Texture
	if options.TexturePath != "" {
		imageTexture, err := loaders.LoadImageTexture(options.TexturePath, false)
		if err != nil {
			return nil, err
		}
		texture = imageTexture
	} else {
		texture = newGridTexture(generatedTextureWidth, generatedTextureHeight)
	}

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture)))

	return s, nil
}

// newGridTexture creates a texture showing UV coordinates as colors, with dark grid
// lines every 30 degrees of longitude and latitude
func newGridTexture(width, height int) *material.ImageTexture {
	pixels := make([]core.Vec3, width*height)
	cellX := max(width/12, 1)
	cellY := max(height/6, 1)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(width-1)
			v := 1.0 - float64(y)/float64(height-1) // Row 0 is the top of the image

			color := core.NewVec3(u, v, 0.5)
			if x%cellX == 0 || y%cellY == 0 {
				color = color.Multiply(0.2)
			}
			pixels[y*width+x] = color
		}
	}

	return material.NewImageTexture(width, height, pixels)
}
