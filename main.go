package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// errHelp is returned by parseConfig when usage was requested
var errHelp = errors.New("help requested")

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stdout)
	if errors.Is(err, errHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseConfig loads the env file and environment, then applies the flags that were set
// explicitly on the command line.
func parseConfig(args []string, stdout io.Writer) (config.Config, error) {
	defaults := config.Default()

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stdout)

	sceneName := fs.String("scene", defaults.Scene, "Scene to render (see -help for the list)")
	width := fs.Int("width", defaults.Width, "Image width in pixels")
	samples := fs.Int("samples", defaults.SamplesPerPixel, "Samples per pixel")
	depth := fs.Int("depth", defaults.MaxDepth, "Maximum ray bounce depth")
	rr := fs.Int("rr", defaults.RussianRouletteMinBounces, "Bounces before Russian roulette starts (0 disables it)")
	workers := fs.Int("workers", defaults.Workers, "Number of render workers (0 uses every CPU)")
	seed := fs.Int64("seed", defaults.Seed, "Random seed for scene generation and sampling")
	useBVH := fs.Bool("bvh", defaults.UseBVH, "Accelerate intersection with a bounding volume hierarchy")
	sequential := fs.Bool("sequential", defaults.Sequential, "Render on a single goroutine")
	out := fs.String("output", defaults.Output, "Output image path (png, jpg, gif, tif or bmp)")
	thumbnail := fs.Int("thumbnail", defaults.ThumbnailWidth, "Also write a thumbnail of this width (0 disables it)")
	texture := fs.String("texture", defaults.TexturePath, "Image used by the textured scene")
	envFile := fs.String("env", ".env", "Environment file with RT_* settings")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return config.Config{}, errHelp
		}
		return config.Config{}, err
	}

	if *help {
		printUsage(fs, stdout)
		return config.Config{}, errHelp
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return config.Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneName
		case "width":
			cfg.Width = *width
		case "samples":
			cfg.SamplesPerPixel = *samples
		case "depth":
			cfg.MaxDepth = *depth
		case "rr":
			cfg.RussianRouletteMinBounces = *rr
		case "workers":
			cfg.Workers = *workers
		case "seed":
			cfg.Seed = *seed
		case "bvh":
			cfg.UseBVH = *useBVH
		case "sequential":
			cfg.Sequential = *sequential
		case "output":
			cfg.Output = *out
		case "thumbnail":
			cfg.ThumbnailWidth = *thumbnail
		case "texture":
			cfg.TexturePath = *texture
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func printUsage(fs *flag.FlagSet, stdout io.Writer) {
	fmt.Fprintln(stdout, "Path Tracer")
	fmt.Fprintln(stdout, "Usage: pathtracer [options]")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(stdout, "  %-10s %s\n", info.Name, info.Description)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Settings can also come from RT_* environment variables or the -env file.")
}

// renderScene builds, preprocesses and renders the configured scene
func renderScene(ctx context.Context, cfg config.Config, logger core.Logger) (*image.RGBA, renderer.RenderStats, error) {
	random := rand.New(rand.NewSource(cfg.Seed))

	s, err := scene.Create(cfg.Scene, scene.Options{
		Width:                     cfg.Width,
		SamplesPerPixel:           cfg.SamplesPerPixel,
		MaxDepth:                  cfg.MaxDepth,
		RussianRouletteMinBounces: cfg.RussianRouletteMinBounces,
		TexturePath:               cfg.TexturePath,
	}, random)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	if err := s.Preprocess(cfg.UseBVH, random); err != nil {
		return nil, renderer.RenderStats{}, fmt.Errorf("failed to preprocess scene: %w", err)
	}
	logger.Printf("Scene %q: %d primitives (BVH: %v)\n", cfg.Scene, s.GetPrimitiveCount(), cfg.UseBVH)

	raytracer := renderer.NewRaytracer(s, logger)

	lastDecile := 0
	options := renderer.RenderOptions{
		Seed:       cfg.Seed,
		NumWorkers: cfg.Workers,
		Progress: func(rowsDone, totalRows int) {
			if decile := rowsDone * 10 / totalRows; decile > lastDecile {
				lastDecile = decile
				logger.Printf("Progress: %d%% (%d/%d rows)\n", decile*10, rowsDone, totalRows)
			}
		},
	}

	if cfg.Sequential {
		return raytracer.RenderSequential(ctx, options)
	}
	return raytracer.Render(ctx, options)
}

// run renders and writes every configured output
func run(ctx context.Context, cfg config.Config, logger core.Logger) error {
	img, stats, err := renderScene(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Printf("%d samples in %v (%.0f samples/s)\n", stats.TotalSamples, stats.Duration, stats.SamplesPerSecond())

	if err := output.Save(img, cfg.Output); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", cfg.Output)

	if cfg.ThumbnailWidth > 0 {
		thumbPath := output.ThumbnailPath(cfg.Output)
		if err := output.Save(output.Thumbnail(img, cfg.ThumbnailWidth), thumbPath); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	if cfg.S3 != nil {
		uploader, err := output.NewS3Uploader(cfg.S3)
		if err != nil {
			return err
		}
		key, err := uploader.Upload(ctx, filepath.Base(cfg.Output), img)
		if err != nil {
			return err
		}
		logger.Printf("Uploaded to s3://%s/%s\n", cfg.S3.Bucket, key)
	}

	return nil
}
