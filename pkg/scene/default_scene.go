package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates the demo scene: four spheres resting on a large
// ground sphere, seen from above and to the left
func NewDefaultScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		Transform: core.NewLookAtTransform(core.NewVec3(-2, 2, 1), core.NewVec3(0, 0, -1)),
		VFov:      90.0,
		Width:     1920,
		Height:    1080,
	}

	// Create materials
	lambertianRed := material.NewLambertian(core.NewVec3(0.9, 0.2, 0.1))
	lambertianGreen := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.0))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.9))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.1)
	materialGlass := material.NewDielectric(1.5)

	world := geometry.NewHittableCollection(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianRed),
		geometry.NewSphere(core.NewVec3(1, 2, -2), 0.5, metalSilver),
		geometry.NewSphere(core.NewVec3(0.3, -0.75, -1), 1.0, lambertianBlue),
		geometry.NewSphere(core.NewVec3(1.5, 0, -0.6), 0.5, materialGlass),
		// Ground
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGreen),
	)

	return &Scene{
		Name:           "default",
		CameraConfig:   cameraConfig,
		World:          world,
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}
}
