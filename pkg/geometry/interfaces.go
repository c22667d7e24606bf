package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit only reports intersections whose t lies strictly inside interval.
type Shape interface {
	Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool)
}
