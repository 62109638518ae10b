package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/scene"
)

type nullLogger struct{}

func (nullLogger) Printf(format string, args ...interface{}) {}

// noEnv points the loader at a file that does not exist
func noEnv(t *testing.T) string {
	return "-env=" + filepath.Join(t.TempDir(), "none.env")
}

func TestParseConfigFlags(t *testing.T) {
	t.Setenv("RT_SCENE", "")
	t.Setenv("RT_WIDTH", "")
	t.Setenv("RT_SAMPLES", "")

	cfg, err := parseConfig([]string{noEnv(t), "-scene=checker", "-width=64", "-samples=4", "-bvh=false", "-sequential"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Scene != "checker" || cfg.Width != 64 || cfg.SamplesPerPixel != 4 {
		t.Errorf("Flags not applied: %+v", cfg)
	}
	if cfg.UseBVH || !cfg.Sequential {
		t.Errorf("Boolean flags not applied: %+v", cfg)
	}
	if cfg.MaxDepth != config.Default().MaxDepth {
		t.Errorf("Unset flags should keep defaults, got depth %d", cfg.MaxDepth)
	}
}

func TestParseConfigFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("RT_SCENE", "materials")
	t.Setenv("RT_WIDTH", "128")
	t.Setenv("RT_SAMPLES", "")

	cfg, err := parseConfig([]string{noEnv(t), "-width=32"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Scene != "materials" {
		t.Errorf("Expected scene from environment, got %q", cfg.Scene)
	}
	if cfg.Width != 32 {
		t.Errorf("Expected width from flag, got %d", cfg.Width)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"bad integer", []string{"-width=abc"}},
		{"zero samples", []string{"-samples=0"}},
		{"negative workers", []string{"-workers=-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{noEnv(t)}, tt.args...)
			if _, err := parseConfig(args, &bytes.Buffer{}); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := parseConfig([]string{"-help"}, &out)
	if !errors.Is(err, errHelp) {
		t.Fatalf("Expected errHelp, got %v", err)
	}

	for _, name := range scene.Names() {
		if !strings.Contains(out.String(), name) {
			t.Errorf("Help output should list scene %q", name)
		}
	}
}

func TestRenderEveryScene(t *testing.T) {
	for _, name := range scene.Names() {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Scene = name
			cfg.Width = 16
			cfg.SamplesPerPixel = 1
			cfg.MaxDepth = 4

			img, stats, err := renderScene(context.Background(), cfg, nullLogger{})
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if img.Bounds().Dx() != 16 {
				t.Errorf("Expected width 16, got %d", img.Bounds().Dx())
			}
			if stats.TotalPixels != img.Bounds().Dx()*img.Bounds().Dy() {
				t.Errorf("Expected %d pixels, got %d", img.Bounds().Dx()*img.Bounds().Dy(), stats.TotalPixels)
			}
		})
	}
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Scene = "default"
	cfg.Width = 40
	cfg.SamplesPerPixel = 2
	cfg.MaxDepth = 5
	cfg.Output = filepath.Join(dir, "renders", "out.png")
	cfg.ThumbnailWidth = 10

	if err := run(context.Background(), cfg, nullLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	img, err := imaging.Open(cfg.Output)
	if err != nil {
		t.Fatalf("Render was not written: %v", err)
	}
	if img.Bounds().Dx() != 40 {
		t.Errorf("Expected width 40, got %d", img.Bounds().Dx())
	}

	thumb, err := imaging.Open(filepath.Join(dir, "renders", "out_thumb.png"))
	if err != nil {
		t.Fatalf("Thumbnail was not written: %v", err)
	}
	if thumb.Bounds().Dx() != 10 {
		t.Errorf("Expected thumbnail width 10, got %d", thumb.Bounds().Dx())
	}
}

func TestRunUnknownScene(t *testing.T) {
	cfg := config.Default()
	cfg.Scene = "nonexistent"
	cfg.Output = filepath.Join(t.TempDir(), "out.png")

	err := run(context.Background(), cfg, nullLogger{})
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.Default()
	cfg.Width = 16
	cfg.SamplesPerPixel = 1
	cfg.Output = filepath.Join(t.TempDir(), "out.png")

	if err := run(ctx, cfg, nullLogger{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
