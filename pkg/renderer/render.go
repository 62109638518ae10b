package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressFunc observes render progress. It is only ever called from the goroutine
// assembling the image, once per delivered row.
type ProgressFunc func(rowsDone, totalRows int)

// RenderOptions configures a render
type RenderOptions struct {
	Seed       int64        // Row y draws from a generator seeded with Seed+y
	NumWorkers int          // Parallel workers (0 = use CPU count); ignored by RenderSequential
	Progress   ProgressFunc // Optional progress observer
}

// Render renders the image with rows fanned out over a worker pool. A single aggregator
// writes rows into the image as they arrive, so completion order does not matter.
// When ctx is cancelled, no further rows are rendered and ctx.Err() is returned.
func (rt *Raytracer) Render(ctx context.Context, options RenderOptions) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()

	pool := NewWorkerPool(rt, options.NumWorkers, rt.height)
	rt.logger.Printf("Rendering %dx%d at %d samples per pixel using %d workers...\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, pool.GetNumWorkers())

	pool.Start(ctx)

	for y := 0; y < rt.height; y++ {
		if ctx.Err() != nil {
			break
		}
		pool.SubmitTask(RowTask{Y: y, Seed: options.Seed + int64(y)})
	}

	// Stop closes the result queue once every submitted row has been reported
	go pool.Stop()

	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	stats := RenderStats{
		Width:   rt.width,
		Height:  rt.height,
		Workers: pool.GetNumWorkers(),
	}

	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		rt.writeRow(img, result, &stats, options.Progress)
	}

	stats.Duration = time.Since(startTime)

	if err := ctx.Err(); err != nil {
		rt.logger.Printf("Render cancelled after %d of %d rows\n", stats.Rows, rt.height)
		return nil, stats, err
	}
	if stats.Rows != rt.height {
		return nil, stats, fmt.Errorf("render incomplete: %d of %d rows delivered", stats.Rows, rt.height)
	}

	rt.logger.Printf("Render completed in %v\n", stats.Duration)
	return img, stats, nil
}

// RenderSequential renders every row on the calling goroutine. Given the same seed it
// produces exactly the same image as Render.
func (rt *Raytracer) RenderSequential(ctx context.Context, options RenderOptions) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()
	rt.logger.Printf("Rendering %dx%d at %d samples per pixel sequentially...\n",
		rt.width, rt.height, rt.config.SamplesPerPixel)

	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	stats := RenderStats{
		Width:   rt.width,
		Height:  rt.height,
		Workers: 1,
	}

	for y := 0; y < rt.height; y++ {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(startTime)
			rt.logger.Printf("Render cancelled after %d of %d rows\n", stats.Rows, rt.height)
			return nil, stats, err
		}

		random := rand.New(rand.NewSource(options.Seed + int64(y)))
		rt.writeRow(img, rt.RenderRow(y, random), &stats, options.Progress)
	}

	stats.Duration = time.Since(startTime)
	rt.logger.Printf("Render completed in %v\n", stats.Duration)
	return img, stats, nil
}

// writeRow copies a finished row into the image at its tagged position and updates stats.
// It is the only code that writes to img.
func (rt *Raytracer) writeRow(img *image.RGBA, result RowResult, stats *RenderStats, progress ProgressFunc) {
	for x, pixel := range result.Pixels {
		img.SetRGBA(x, result.Y, pixel)
	}

	stats.Rows++
	stats.TotalPixels += len(result.Pixels)
	stats.TotalSamples += result.Samples

	if progress != nil {
		progress(stats.Rows, rt.height)
	}
}
