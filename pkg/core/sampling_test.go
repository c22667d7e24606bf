package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

// constantSampler returns the same value for every draw
type constantSampler struct {
	value float64
}

func (c constantSampler) Get1D() float64 { return c.value }
func (c constantSampler) Get2D() Vec2    { return NewVec2(c.value, c.value) }
func (c constantSampler) Get3D() Vec3    { return NewVec3(c.value, c.value, c.value) }

func TestRandomVec_Range(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	for range 1000 {
		v := RandomVec(sampler)
		for _, c := range []float64{v.X, v.Y, v.Z} {
			assert.GreaterOrEqual(t, c, 0.0)
			assert.Less(t, c, 1.0)
		}
	}
}

func TestRandomInUnitSphere_InsideSphere(t *testing.T) {
	sampler := NewSeededSampler(7)
	for range 1000 {
		p := RandomInUnitSphere(sampler)
		assert.Less(t, p.LengthSquared(), 1.0)
	}
}

func TestRandomInUnitSphere_TerminatesWhenRejectionNeverAccepts(t *testing.T) {
	// Every cube point is (0.998, 0.998, 0.998), which lies outside the sphere
	p := RandomInUnitSphere(constantSampler{value: 0.999})
	assert.LessOrEqual(t, p.Length(), 1.0)
}

func TestRandomUnitVector_Distribution(t *testing.T) {
	sampler := NewSeededSampler(42)
	const n = 20000

	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	for i := range n {
		v := RandomUnitVector(sampler)
		require.InDelta(t, 1.0, v.Length(), 1e-9)
		xs[i], ys[i], zs[i] = v.X, v.Y, v.Z
	}

	// A uniform distribution on the sphere has zero mean and variance 1/3 per axis
	for _, axis := range [][]float64{xs, ys, zs} {
		assert.InDelta(t, 0.0, stat.Mean(axis, nil), 0.02)
		assert.InDelta(t, 1.0/3.0, stat.Variance(axis, nil), 0.02)
	}
}

func TestRandomOnHemisphere_AlignedWithNormal(t *testing.T) {
	sampler := NewSeededSampler(3)
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 1, 1).Normalize(),
	}

	for _, normal := range normals {
		for range 500 {
			v := RandomOnHemisphere(sampler, normal)
			assert.GreaterOrEqual(t, v.Dot(normal), 0.0)
			assert.Less(t, v.LengthSquared(), 1.0)
		}
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	tests := []struct {
		name     string
		sample   Vec2
		expected Vec3
	}{
		{"north pole", NewVec2(0, 0), NewVec3(0, 0, 1)},
		{"south pole", NewVec2(1, 0), NewVec3(0, 0, -1)},
		{"equator", NewVec2(0.5, 0.25), NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := SampleOnUnitSphere(tt.sample)
			assert.InDelta(t, 0, v.Subtract(tt.expected).Length(), 1e-9)
		})
	}
}

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(11)
	for range 1000 {
		p := SamplePointInUnitSphere(sampler.Get3D())
		assert.LessOrEqual(t, p.Length(), 1.0+1e-12)
	}
}

func TestReflect(t *testing.T) {
	n := NewVec3(0, 1, 0)
	v := NewVec3(1, -1, 0)

	r := Reflect(v, n)
	assert.InDelta(t, 0, r.Subtract(NewVec3(1, 1, 0)).Length(), 1e-12)
	// Angle with the normal is preserved, only its side flips
	assert.InDelta(t, -v.Dot(n), r.Dot(n), 1e-12)
}

func TestRefract_SnellsLaw(t *testing.T) {
	n := NewVec3(0, 1, 0)
	const glass = 1.5

	for _, angle := range []float64{0, 0.2, 0.5, 0.9, 1.3} {
		v := NewVec3(math.Sin(angle), -math.Cos(angle), 0)

		refracted := Refract(v, n, 1/glass)
		require.InDelta(t, 1.0, refracted.Length(), 1e-9, "refracted ray stays unit length")

		sinIn := v.Cross(n).Length()
		sinOut := refracted.Cross(n).Length()
		assert.InDelta(t, sinIn, glass*sinOut, 1e-9, "n1 sin(i) = n2 sin(t) at angle %v", angle)
		assert.Less(t, refracted.Dot(n), 0.0, "refracted ray continues through the surface")

		// Leaving the glass along the reversed path recovers the original direction
		back := Refract(refracted.Negate(), n.Negate(), glass)
		assert.InDelta(t, 0, back.Subtract(v.Negate()).Length(), 1e-9)

		reflected := Reflect(v, n)
		assert.InDelta(t, sinIn, reflected.Cross(n).Length(), 1e-9)
		assert.InDelta(t, -v.Dot(n), reflected.Dot(n), 1e-9)
	}
}
