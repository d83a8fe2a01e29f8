package geo

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Eps is the geometric comparison tolerance, in model units (mm).
const Eps = 1e-9

// IsZero reports whether x is zero within Eps.
func IsZero(x float64) bool {
	return math.Abs(x) < Eps
}

// EqualScalar reports whether a and b are equal within Eps.
func EqualScalar(a, b float64) bool {
	return math.Abs(a-b) < Eps
}

// EqualV2 reports whether two 2D points coincide within Eps.
func EqualV2(a, b v2.Vec) bool {
	return IsZero(a.X-b.X) && IsZero(a.Y-b.Y)
}

// EqualV3 reports whether two 3D points coincide within Eps.
func EqualV3(a, b v3.Vec) bool {
	return IsZero(a.X-b.X) && IsZero(a.Y-b.Y) && IsZero(a.Z-b.Z)
}

// Cross2 returns the scalar cross product of two 2D vectors.
func Cross2(a, b v2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Dot2 returns the dot product of two 2D vectors.
func Dot2(a, b v2.Vec) float64 {
	return a.X*b.X + a.Y*b.Y
}

// TransformPoint applies an affine transform to a position.
func TransformPoint(m sdf.M44, p v3.Vec) v3.Vec {
	return m.MulPosition(p)
}

// TransformDir applies an affine transform to a direction, discarding
// the translational part.
func TransformDir(m sdf.M44, d v3.Vec) v3.Vec {
	return m.MulPosition(d).Sub(m.MulPosition(v3.Vec{}))
}

// FlattenXY drops the Z component of a point, projecting it onto the
// XY plane of its current frame.
func FlattenXY(p v3.Vec) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y}
}

// To2D converts a point in a Z=0 plane to its 2D representation.
func To2D(p v3.Vec) v2.Vec {
	return v2.Vec{X: p.X, Y: p.Y}
}

// To3D lifts a 2D point into the Z=0 plane.
func To3D(p v2.Vec) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y}
}

// RotateTo returns the rotation aligning direction a with direction b.
func RotateTo(a, b v3.Vec) sdf.M44 {
	return sdf.RotateToVector(a, b)
}
