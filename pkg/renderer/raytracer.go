package renderer

import (
	"image"
	"image/color"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Raytracer handles the rendering process
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator // nil means a path tracer built from config.MaxDepth
	config     scene.SamplingConfig
	workers    int
	seed       int64
}

// Option configures a Raytracer
type Option func(*Raytracer)

// WithWorkers sets the number of render goroutines; n <= 0 uses runtime.NumCPU()
func WithWorkers(n int) Option {
	return func(rt *Raytracer) {
		rt.workers = n
	}
}

// WithSeed sets the base seed from which every scanline derives its random stream
func WithSeed(seed int64) Option {
	return func(rt *Raytracer) {
		rt.seed = seed
	}
}

// WithIntegrator replaces the default path tracing integrator.
// The integrator is shared by all workers and must be safe for concurrent use.
func WithIntegrator(integ integrator.Integrator) Option {
	return func(rt *Raytracer) {
		rt.integrator = integ
	}
}

// NewRaytracer creates a new raytracer using the scene's sampling configuration
func NewRaytracer(s *scene.Scene, opts ...Option) *Raytracer {
	rt := &Raytracer{
		scene:  s,
		config: s.SamplingConfig,
		seed:   42, // Deterministic by default
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.workers <= 0 {
		rt.workers = runtime.NumCPU()
	}
	return rt
}

// SetSamplingConfig updates the sampling configuration.
// A zero height is derived from the width and the camera aspect ratio.
func (rt *Raytracer) SetSamplingConfig(config scene.SamplingConfig) {
	if config.Height <= 0 {
		config.Height = scene.HeightFor(config.Width, rt.scene.CameraConfig.AspectRatio)
	}
	rt.config = config
}

// SamplingConfig returns the active sampling configuration
func (rt *Raytracer) SamplingConfig() scene.SamplingConfig {
	return rt.config
}

func (rt *Raytracer) activeIntegrator() integrator.Integrator {
	if rt.integrator != nil {
		return rt.integrator
	}
	return integrator.NewPathTracingIntegrator(rt.config.MaxDepth)
}

// renderView is the scene as seen with the active sampling configuration
func (rt *Raytracer) renderView() *scene.Scene {
	view := *rt.scene
	view.SamplingConfig = rt.config
	return &view
}

// RenderScanline renders image row `row` (0 is the top of the picture).
// The row's random stream depends only on the seed and row, so results do
// not depend on which worker renders it.
func (rt *Raytracer) RenderScanline(row int) []color.RGBA {
	return rt.renderScanline(rt.renderView(), rt.activeIntegrator(), row)
}

func (rt *Raytracer) renderScanline(view *scene.Scene, integ integrator.Integrator, row int) []color.RGBA {
	width := view.SamplingConfig.Width
	height := view.SamplingConfig.Height
	j := height - 1 - row

	sampler := core.NewSeededSampler(rt.seed + int64(row))
	pixels := make([]color.RGBA, width)
	for i := 0; i < width; i++ {
		c := integrator.SamplePixel(integ, view, i, j, view.SamplingConfig.SamplesPerPixel, sampler)
		pixels[i] = core.ToRGBA(c)
	}
	return pixels
}

// RenderPass renders every scanline in parallel and returns the assembled image
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	width, height := rt.config.Width, rt.config.Height
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	logger := core.Logger()

	stats := RenderStats{
		TotalPixels: width * height,
		Rows:        height,
		Workers:     rt.workers,
	}
	startTime := time.Now()

	logger.Info("render started",
		"scene", rt.scene.Name,
		"width", width,
		"height", height,
		"samples", rt.config.SamplesPerPixel,
		"maxDepth", rt.config.MaxDepth,
		"workers", rt.workers)

	pool := NewWorkerPool(rt, rt.workers, height)
	pool.Start()
	for row := 0; row < height; row++ {
		pool.SubmitTask(ScanlineTask{Row: row})
	}

	// Rows finish in any order; each is copied to its own place in the image
	for remaining := height; remaining > 0; remaining-- {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		offset := img.PixOffset(0, result.Row)
		for i, px := range result.Pixels {
			img.Pix[offset+4*i+0] = px.R
			img.Pix[offset+4*i+1] = px.G
			img.Pix[offset+4*i+2] = px.B
			img.Pix[offset+4*i+3] = px.A
		}
		stats.TotalSamples += result.Samples
		logger.Debug("scanline done", "row", result.Row, "remaining", remaining-1)
	}
	pool.Stop()

	stats.Elapsed = time.Since(startTime)
	logger.Info("render finished",
		"scene", rt.scene.Name,
		"elapsed", stats.Elapsed,
		"samples", stats.TotalSamples)

	return img, stats
}
