package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials.
// u,v are the surface coordinates of the hit, p the hit point.
type Texture interface {
	Value(u, v float64, p core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of coordinates
func (s *SolidColor) Value(u, v float64, p core.Vec3) core.Vec3 {
	return s.Color
}

// DefaultCheckerScale is the spatial frequency used by NewChecker
const DefaultCheckerScale = 10.0

// Checker is a solid 3D checker pattern alternating between two textures
type Checker struct {
	Odd   Texture
	Even  Texture
	Scale float64
}

// NewChecker creates a checker with solid odd/even colors at the default scale
func NewChecker(odd, even core.Vec3) *Checker {
	return &Checker{
		Odd:   NewSolidColor(odd),
		Even:  NewSolidColor(even),
		Scale: DefaultCheckerScale,
	}
}

// Value selects Odd where sin(sx)*sin(sy)*sin(sz) is negative, Even otherwise
func (c *Checker) Value(u, v float64, p core.Vec3) core.Vec3 {
	sines := math.Sin(c.Scale*p.X) * math.Sin(c.Scale*p.Y) * math.Sin(c.Scale*p.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, p)
	}
	return c.Even.Value(u, v, p)
}

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], y=0 is the top row
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Value samples the texture using nearest-neighbor filtering.
// u and v are clamped to [0,1]; v=1 is the top row of the image.
func (t *ImageTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	// Debug cyan for a missing image
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return core.NewVec3(0, 1, 1)
	}

	u = math.Max(0, math.Min(1, u))
	v = 1.0 - math.Max(0, math.Min(1, v))

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}
