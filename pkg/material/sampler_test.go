package material

import "github.com/df07/go-pathtracer/pkg/core"

// constantSampler returns the same value for every draw, which makes the
// unit sphere sample the fixed direction -(1,1,1)/√3 for value 0.25
type constantSampler struct {
	value float64
}

func (c constantSampler) Get1D() float64 { return c.value }
func (c constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(c.value, c.value)
}
func (c constantSampler) Get3D() core.Vec3 {
	return core.NewVec3(c.value, c.value, c.value)
}

// antiDiagonal is the unit vector a constantSampler{0.25} produces
var antiDiagonal = core.NewVec3(-1, -1, -1).Normalize()
