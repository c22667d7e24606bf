package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// SolidColor is a diffuse material with a fixed color. Unlike Lambertian it
// does not guard against a degenerate scatter direction.
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color material
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Scatter implements the Material interface
func (s *SolidColor) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, hit.Normal.Add(core.RandomUnitVector(sampler))),
		Attenuation: s.Color,
	}, true
}
