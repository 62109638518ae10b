package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	white = core.NewVec3(1.0, 1.0, 1.0)
	red   = core.NewVec3(1.0, 0.0, 0.0)
	green = core.NewVec3(0.0, 1.0, 0.0)
	blue  = core.NewVec3(0.0, 0.0, 1.0)
)

// writeTestImage writes a 2x2 image: white, red on top; green, blue on the bottom
func writeTestImage(t *testing.T, filename string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(filename)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
}

func checkColor(t *testing.T, name string, got, expected core.Vec3) {
	t.Helper()
	if got.Subtract(expected).Length() > 0.01 {
		t.Errorf("%s: expected %v, got %v", name, expected, got)
	}
}

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")
	writeTestImage(t, testFile)

	imageData, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if imageData.Width != 2 || imageData.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}
	if len(imageData.Pixels) != 4 {
		t.Fatalf("Expected 4 pixels, got %d", len(imageData.Pixels))
	}

	checkColor(t, "Top-left (white)", imageData.Pixels[0], white)
	checkColor(t, "Top-right (red)", imageData.Pixels[1], red)
	checkColor(t, "Bottom-left (green)", imageData.Pixels[2], green)
	checkColor(t, "Bottom-right (blue)", imageData.Pixels[3], blue)
}

// TestLoadImageJPEG verifies formats other than PNG decode through the same path
func TestLoadImageJPEG(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "solid.jpg")

	img := imaging.New(8, 8, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	if err := imaging.Save(img, testFile, imaging.JPEGQuality(100)); err != nil {
		t.Fatalf("Failed to save JPEG: %v", err)
	}

	imageData, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if imageData.Width != 8 || imageData.Height != 8 {
		t.Fatalf("Expected 8x8 image, got %dx%d", imageData.Width, imageData.Height)
	}

	// JPEG is lossy, allow a few levels of error
	expected := core.NewVec3(200.0/255, 100.0/255, 50.0/255)
	if imageData.Pixels[27].Subtract(expected).Length() > 0.05 {
		t.Errorf("Expected %v, got %v", expected, imageData.Pixels[27])
	}
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	if _, err := LoadImage("nonexistent.png"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
	if _, err := LoadImageTexture("nonexistent.png", false); err == nil {
		t.Error("Expected error for non-existent texture, got nil")
	}
}

func TestLoadImageTexture(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "texture.png")
	writeTestImage(t, testFile)

	texture, err := LoadImageTexture(testFile, false)
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}

	// v=1 is the top row of the file
	checkColor(t, "top-left", texture.Value(0.1, 0.9, core.Vec3{}), white)
	checkColor(t, "bottom-right", texture.Value(0.9, 0.1, core.Vec3{}), blue)

	flipped, err := LoadImageTexture(testFile, true)
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}

	// Flipped, the file's bottom row becomes the top of the texture
	checkColor(t, "flipped top-left", flipped.Value(0.1, 0.9, core.Vec3{}), green)
	checkColor(t, "flipped bottom-right", flipped.Value(0.9, 0.1, core.Vec3{}), red)
}
