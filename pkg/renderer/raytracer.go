package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// minHitDistance keeps scattered rays from hitting the surface they leave
const minHitDistance = 1e-5

var (
	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Rows rendered concurrently (0 = use CPU count)
	Seed            int64 // Base seed; row j samples with Seed+j
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 25,
		MaxDepth:        10,
		NumWorkers:      0,
		Seed:            42,
	}
}

// MergeSamplingConfig returns base with every positive field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	if override.SamplesPerPixel > 0 {
		base.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		base.MaxDepth = override.MaxDepth
	}
	if override.NumWorkers > 0 {
		base.NumWorkers = override.NumWorkers
	}
	if override.Seed != 0 {
		base.Seed = override.Seed
	}
	return base
}

// Raytracer renders a world through a camera
type Raytracer struct {
	camera     *Camera
	world      geometry.Shape
	config     SamplingConfig
	logger     core.Logger
	newSampler func(row int) core.Sampler
}

// NewRaytracer creates a new raytracer. The world must not be modified while
// a render is in progress.
func NewRaytracer(camera *Camera, world geometry.Shape, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt := &Raytracer{
		camera: camera,
		world:  world,
		config: config,
		logger: logger,
	}
	rt.newSampler = rt.seededSampler
	return rt
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// Config returns the current sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// seededSampler gives every row an independent, reproducible random stream
func (rt *Raytracer) seededSampler(row int) core.Sampler {
	return core.NewSeededSampler(rt.config.Seed + int64(row))
}

// RayColor returns the color carried back along ray, following at most
// depth scattering events
func (rt *Raytracer) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := rt.world.Hit(ray, core.NewInterval(minHitDistance, math.Inf(1)))
	if !isHit {
		return backgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1, sampler))
}

// backgroundGradient returns the sky color seen along the ray's direction
func backgroundGradient(r core.Ray) core.Vec3 {
	// Normalize so the gradient depends on the angle only, not ray length
	unitDirection := r.Direction.Normalize()

	// Map the y-component from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyWhite.Lerp(skyBlue, t)
}

// RenderPixel averages SamplesPerPixel jittered samples of pixel (i, j) and
// returns the gamma corrected color
func (rt *Raytracer) RenderPixel(i, j int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	for range rt.config.SamplesPerPixel {
		ray := rt.camera.GetRay(i, j, sampler)
		ps.AddSample(rt.RayColor(ray, rt.config.MaxDepth, sampler))
	}
	// Go from linear to gamma 2.0 space
	return ps.GetColor().Sqrt()
}

// Render computes every pixel and returns them in row-major order, top row
// first. Rows are rendered in parallel; for a given seed the result does not
// depend on the number of workers.
func (rt *Raytracer) Render(ctx context.Context) ([]core.Vec3, RenderStats, error) {
	if rt.config.SamplesPerPixel <= 0 {
		return nil, RenderStats{}, fmt.Errorf("samples per pixel must be positive, got %d", rt.config.SamplesPerPixel)
	}

	width, height := rt.camera.Width(), rt.camera.Height()
	pool := NewWorkerPool(rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d, %d workers\n",
		width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	start := time.Now()
	pixels := make([]core.Vec3, width*height)

	// Each row writes only its own slice of pixels
	err := pool.Run(ctx, height, func(ctx context.Context, j int) error {
		sampler := rt.newSampler(j)
		row := pixels[j*width : (j+1)*width]
		for i := range row {
			row[i] = rt.RenderPixel(i, j, sampler)
		}
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render aborted: %w", err)
	}

	stats := RenderStats{
		TotalPixels:     width * height,
		TotalSamples:    width * height * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Rows:            height,
		Workers:         pool.GetNumWorkers(),
		Duration:        time.Since(start),
	}
	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)

	return pixels, stats, nil
}

// vec3ToColor converts a gamma corrected color to RGBA with clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// ToImage converts row-major pixels from Render into an RGBA image
func ToImage(pixels []core.Vec3, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height {
		return nil, fmt.Errorf("got %d pixels for a %dx%d image", len(pixels), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			img.SetRGBA(i, j, vec3ToColor(pixels[j*width+i]))
		}
	}
	return img, nil
}
