// Package frame models the transformation pair between a reference
// view (UVS) coordinate system and world coordinates. A placement
// session creates one Transform from whichever view the user picked
// the shape or placement curve in and treats it as read-only afterwards.
package frame

import (
	"errors"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/geo"
)

// ErrNonInvertible is returned when the reference-view matrix is
// singular. This is fatal for the current input; callers re-prompt the
// user rather than attempting recovery.
var ErrNonInvertible = errors.New("frame: reference view transform is not invertible")

// Transform is a pair of mutually inverse affine transforms between
// world space and a reference view.
type Transform struct {
	worldToRef sdf.M44
	refToWorld sdf.M44
}

// Identity returns the transform of the global view: both directions
// are the identity.
func Identity() *Transform {
	return &Transform{
		worldToRef: sdf.Identity3d(),
		refToWorld: sdf.Identity3d(),
	}
}

// New builds a Transform from the world-to-view matrix of a reference
// view. A nil matrix means no reference view was given and yields the
// identity. A singular matrix yields ErrNonInvertible.
func New(worldToRef *sdf.M44) (*Transform, error) {
	if worldToRef == nil {
		return Identity(), nil
	}
	if math.Abs(worldToRef.Determinant()) < geo.Eps {
		return nil, ErrNonInvertible
	}
	return &Transform{
		worldToRef: *worldToRef,
		refToWorld: worldToRef.Inverse(),
	}, nil
}

// FromBasis builds a Transform for a view whose origin and X/Y axes are
// given in world coordinates. The Y axis is re-orthogonalized against X
// and the view direction is their cross product. Degenerate axes yield
// ErrNonInvertible.
func FromBasis(origin, xdir, ydir v3.Vec) (*Transform, error) {
	if xdir.Length() < geo.Eps {
		return nil, ErrNonInvertible
	}
	x := xdir.Normalize()
	y := ydir.Sub(x.MulScalar(x.Dot(ydir)))
	if y.Length() < geo.Eps {
		return nil, ErrNonInvertible
	}
	y = y.Normalize()
	z := x.Cross(y)

	// Rotate global Z onto the view direction, then spin about it until
	// the image of global X lands on the requested X axis.
	var tilt sdf.M44
	if z.Add(v3.Vec{Z: 1}).Length() < geo.Eps {
		tilt = sdf.RotateX(math.Pi)
	} else {
		tilt = sdf.RotateToVector(v3.Vec{Z: 1}, z)
	}
	xImg := geo.TransformDir(tilt, v3.Vec{X: 1})
	spin := math.Atan2(xImg.Cross(x).Dot(z), xImg.Dot(x))
	rot := sdf.Rotate3d(z, spin).Mul(tilt)

	refToWorld := sdf.Translate3d(origin).Mul(rot)
	return &Transform{
		worldToRef: refToWorld.Inverse(),
		refToWorld: refToWorld,
	}, nil
}

// ToReference returns the world-to-view matrix.
func (t *Transform) ToReference() sdf.M44 {
	return t.worldToRef
}

// ToWorld returns the view-to-world matrix, the inverse of ToReference.
func (t *Transform) ToWorld() sdf.M44 {
	return t.refToWorld
}

// PointToReference re-expresses a world-space point in view coordinates.
func (t *Transform) PointToReference(p v3.Vec) v3.Vec {
	return t.worldToRef.MulPosition(p)
}

// PointToWorld re-expresses a view-space point in world coordinates.
func (t *Transform) PointToWorld(p v3.Vec) v3.Vec {
	return t.refToWorld.MulPosition(p)
}

// DirToReference re-expresses a world-space direction in view
// coordinates, ignoring translation.
func (t *Transform) DirToReference(d v3.Vec) v3.Vec {
	return geo.TransformDir(t.worldToRef, d)
}

// DirToWorld re-expresses a view-space direction in world coordinates,
// ignoring translation.
func (t *Transform) DirToWorld(d v3.Vec) v3.Vec {
	return geo.TransformDir(t.refToWorld, d)
}

// ViewDir returns the view direction in world coordinates: the world
// vector that maps onto the view's Z axis.
func (t *Transform) ViewDir() v3.Vec {
	return t.DirToWorld(v3.Vec{Z: 1})
}
