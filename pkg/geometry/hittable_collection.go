package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableCollection is an insertion-ordered group of shapes that resolves
// the closest intersection along a ray. It is read-only while rendering and
// safe to share between goroutines once built.
type HittableCollection struct {
	shapes []Shape
}

// NewHittableCollection creates a collection holding the given shapes
func NewHittableCollection(shapes ...Shape) *HittableCollection {
	c := &HittableCollection{}
	for _, s := range shapes {
		c.Add(s)
	}
	return c
}

// Add appends a shape to the collection
func (c *HittableCollection) Add(shape Shape) {
	c.shapes = append(c.shapes, shape)
}

// Len returns the number of shapes in the collection
func (c *HittableCollection) Len() int {
	return len(c.shapes)
}

// Shapes returns the shapes in insertion order
func (c *HittableCollection) Shapes() []Shape {
	return c.shapes
}

// Hit returns the closest intersection within interval.
// Each hit shrinks the search interval, and since shapes only accept roots
// strictly inside it, a later shape at exactly the same depth never
// replaces an earlier one.
func (c *HittableCollection) Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := interval.End

	for _, shape := range c.shapes {
		if hit, isHit := shape.Hit(ray, interval.WithEnd(closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
