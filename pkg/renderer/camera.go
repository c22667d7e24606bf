package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidCameraConfig is returned when a camera cannot derive a viewport
var ErrInvalidCameraConfig = errors.New("invalid camera config")

// focalLength is the distance from the camera origin to the viewport plane
const focalLength = 1.0

// CameraConfig describes the camera placement and image resolution
type CameraConfig struct {
	Transform core.Transform // Camera orientation and world position
	VFov      float64        // Vertical field of view in degrees
	Width     int            // Image width in pixels
	Height    int            // Image height in pixels
}

// Validate checks that a viewport can be derived from the config
func (c CameraConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d must be positive", ErrInvalidCameraConfig, c.Width, c.Height)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("%w: vertical fov %v must be in (0, 180) degrees", ErrInvalidCameraConfig, c.VFov)
	}
	return nil
}

// Viewport is the world-space rectangle rays are cast through, derived from
// a CameraConfig
type Viewport struct {
	AspectRatio float64
	Width       float64 // Viewport width in camera units
	Height      float64 // Viewport height in camera units
	FocalLength float64

	U           core.Vec3 // Full horizontal edge, left to right
	V           core.Vec3 // Full vertical edge, top to bottom
	PixelDeltaU core.Vec3 // Step between horizontally adjacent pixels
	PixelDeltaV core.Vec3 // Step between vertically adjacent pixels
	Origin      core.Vec3 // Top-left corner of the viewport
	Pixel00     core.Vec3 // Center of pixel (0, 0)
}

// Camera generates primary rays through a viewport. A Camera always holds a
// viewport consistent with its config.
type Camera struct {
	config   CameraConfig
	viewport Viewport
}

// NewCamera creates a camera and derives its viewport
func NewCamera(config CameraConfig) (*Camera, error) {
	c := &Camera{}
	if err := c.Initialize(config); err != nil {
		return nil, err
	}
	return c, nil
}

// Initialize recomputes the viewport from config. On error the camera keeps
// its previous state.
func (c *Camera) Initialize(config CameraConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	aspectRatio := float64(config.Width) / float64(config.Height)

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	viewportHeight := 2 * halfHeight
	viewportWidth := aspectRatio * viewportHeight

	// Camera space: +X right, +Y up, looking down -Z. Image rows grow downward.
	localU := core.NewVec3(viewportWidth, 0, 0)
	localV := core.NewVec3(0, -viewportHeight, 0)
	pixelDeltaU := localU.Multiply(1 / float64(config.Width))
	pixelDeltaV := localV.Multiply(1 / float64(config.Height))
	localOrigin := core.NewVec3(-viewportWidth/2, viewportHeight/2, -focalLength)
	localPixel00 := localOrigin.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	tr := config.Transform
	c.config = config
	c.viewport = Viewport{
		AspectRatio: aspectRatio,
		Width:       viewportWidth,
		Height:      viewportHeight,
		FocalLength: focalLength,
		U:           tr.TransformVector(localU),
		V:           tr.TransformVector(localV),
		PixelDeltaU: tr.TransformVector(pixelDeltaU),
		PixelDeltaV: tr.TransformVector(pixelDeltaV),
		Origin:      tr.TransformPoint(localOrigin),
		Pixel00:     tr.TransformPoint(localPixel00),
	}
	return nil
}

// Config returns the configuration the viewport was derived from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Viewport returns the derived world-space viewport
func (c *Camera) Viewport() Viewport {
	return c.viewport
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.config.Height
}

// Position returns the camera's world position, the origin of every primary ray
func (c *Camera) Position() core.Vec3 {
	return c.config.Transform.Translation()
}

// PixelCenter returns the world position of the center of pixel (i, j)
func (c *Camera) PixelCenter(i, j int) core.Vec3 {
	return c.viewport.Pixel00.
		Add(c.viewport.PixelDeltaU.Multiply(float64(i))).
		Add(c.viewport.PixelDeltaV.Multiply(float64(j)))
}

// GetRay returns a ray through a random point inside pixel (i, j).
// The direction is not normalized.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	pixelSample := c.PixelCenter(i, j).Add(c.sampleSquare(sampler))
	origin := c.Position()
	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// sampleSquare returns a random offset within half a pixel step on both axes
func (c *Camera) sampleSquare(sampler core.Sampler) core.Vec3 {
	ru := sampler.Get1D() - 0.5
	rv := sampler.Get1D() - 0.5
	return c.viewport.PixelDeltaU.Multiply(ru).Add(c.viewport.PixelDeltaV.Multiply(rv))
}
