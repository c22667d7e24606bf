package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a rigid affine transform: a rotation followed by a translation.
// Camera space looks down -Z with +Y up and +X to the right.
type Transform struct {
	basis       *r3.Mat // columns are the local X, Y and Z axes in world space
	translation Vec3
}

var (
	unitX = r3.Vec{X: 1}
	unitY = r3.Vec{Y: 1}
	unitZ = r3.Vec{Z: 1}
)

// IdentityTransform returns a transform at the origin with no rotation
func IdentityTransform() Transform {
	return Transform{basis: basisFromColumns(unitX, unitY, unitZ)}
}

// NewTransform creates a transform from a rotation and a world position
func NewTransform(rotation r3.Rotation, translation Vec3) Transform {
	return Transform{
		basis:       basisFromColumns(rotation.Rotate(unitX), rotation.Rotate(unitY), rotation.Rotate(unitZ)),
		translation: translation,
	}
}

// NewLookAtTransform places a camera at from, looking towards at with no roll.
// The rotation is a pitch about X followed by a yaw about Y, so local +Y
// stays in the world's vertical plane.
func NewLookAtTransform(from, at Vec3) Transform {
	dir := at.Subtract(from).Normalize()
	if dir.LengthSquared() == 0 {
		return Transform{basis: basisFromColumns(unitX, unitY, unitZ), translation: from}
	}

	yaw := math.Atan2(-dir.X, -dir.Z)
	pitch := math.Asin(max(-1, min(1, dir.Y)))

	pitchRot := r3.NewRotation(pitch, unitX)
	yawRot := r3.NewRotation(yaw, unitY)
	rotate := func(v r3.Vec) r3.Vec {
		return yawRot.Rotate(pitchRot.Rotate(v))
	}

	return Transform{
		basis:       basisFromColumns(rotate(unitX), rotate(unitY), rotate(unitZ)),
		translation: from,
	}
}

// Rotated applies an extra world-space rotation about the origin to both the
// orientation and the position of the transform
func (t Transform) Rotated(rotation r3.Rotation) Transform {
	return Transform{
		basis: basisFromColumns(
			rotation.Rotate(t.column(0)),
			rotation.Rotate(t.column(1)),
			rotation.Rotate(t.column(2)),
		),
		translation: fromR3(rotation.Rotate(toR3(t.translation))),
	}
}

// TransformPoint maps a camera-space point into world space
func (t Transform) TransformPoint(p Vec3) Vec3 {
	return t.TransformVector(p).Add(t.translation)
}

// TransformVector maps a camera-space direction into world space, ignoring translation
func (t Transform) TransformVector(v Vec3) Vec3 {
	if t.basis == nil {
		return v
	}
	return fromR3(t.basis.MulVec(toR3(v)))
}

// Translation returns the world position of the transform's origin
func (t Transform) Translation() Vec3 {
	return t.translation
}

// Forward returns the world-space viewing direction (local -Z)
func (t Transform) Forward() Vec3 {
	return t.TransformVector(NewVec3(0, 0, -1))
}

// Up returns the world-space local +Y axis
func (t Transform) Up() Vec3 {
	return t.TransformVector(NewVec3(0, 1, 0))
}

func (t Transform) column(j int) r3.Vec {
	if t.basis == nil {
		return [3]r3.Vec{unitX, unitY, unitZ}[j]
	}
	return r3.Vec{X: t.basis.At(0, j), Y: t.basis.At(1, j), Z: t.basis.At(2, j)}
}

func basisFromColumns(x, y, z r3.Vec) *r3.Mat {
	return r3.NewMat([]float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	})
}

func toR3(v Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromR3(v r3.Vec) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}
