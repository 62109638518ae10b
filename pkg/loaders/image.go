package loaders

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 is the top of the image
}

// LoadImage loads an image in any format imaging can decode (PNG, JPEG, GIF, TIFF, BMP)
// and converts it to a Vec3 color array. EXIF orientation is applied.
func LoadImage(filename string) (*ImageData, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}
	return NewImageData(img), nil
}

// LoadImageTexture loads an image as a texture. bottomUp flips the image vertically for
// files stored with their first row at the bottom.
func LoadImageTexture(filename string, bottomUp bool) (*material.ImageTexture, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", filename, err)
	}

	if bottomUp {
		img = imaging.FlipV(img)
	}

	data := NewImageData(img)
	return material.NewImageTexture(data.Width, data.Height, data.Pixels), nil
}

// NewImageData converts a decoded image to [0,1] RGB values, dropping alpha
func NewImageData(img image.Image) *ImageData {
	// Clone normalizes every source format to non-premultiplied 8-bit RGBA at origin (0,0)
	nrgba := imaging.Clone(img)

	bounds := nrgba.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := y*nrgba.Stride + x*4
			pixels[y*width+x] = core.NewVec3(
				float64(nrgba.Pix[offset])/255.0,
				float64(nrgba.Pix[offset+1])/255.0,
				float64(nrgba.Pix[offset+2])/255.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
