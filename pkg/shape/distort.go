package shape

import (
	"errors"
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/geo"
)

// ErrVertexIndexOutOfRange is returned when a distortion utility is
// applied to a shape with fewer vertices than the marked index set
// expects. This signals a wiring defect — the utility was built for a
// different shape topology — not a recoverable user-input condition.
var ErrVertexIndexOutOfRange = errors.New("shape: distortion vertex index out of range")

// DistortionUtil stretches copies of one specific shape topology. It
// is constructed with the indices of the vertices on the far side of
// the cut line and the direction along which the shape may grow or
// shrink. Only the marked vertices move; all others stay fixed.
type DistortionUtil struct {
	farVertices []int
	direction   v3.Vec
}

// NewDistortionUtil builds a utility for the given far-side vertex
// indices and distortion direction. The direction need not be a unit
// vector.
func NewDistortionUtil(farVertices []int, direction v3.Vec) *DistortionUtil {
	idx := append([]int(nil), farVertices...)
	return &DistortionUtil{farVertices: idx, direction: direction}
}

// Direction returns the distortion direction.
func (u *DistortionUtil) Direction() v3.Vec {
	return u.direction
}

// Dimension measures the shape's bounding extent along the distortion
// direction: all polyline points are rotated into a frame where the
// direction maps to world Z and the Z extent of the bounding box is
// returned.
func (u *DistortionUtil) Dimension(s BendingShape) float64 {
	rotation := geo.RotateTo(u.direction, v3.Vec{Z: 1})
	min, max := math.Inf(1), math.Inf(-1)
	for _, p := range s.Polyline.Points {
		z := rotation.MulPosition(p).Z
		min = math.Min(min, z)
		max = math.Max(max, z)
	}
	if min > max {
		return 0
	}
	return max - min
}

// Distort stretches the shape to the target dimension by moving the
// far-side vertices along the distortion direction by the difference
// between target and current dimension.
func (u *DistortionUtil) Distort(s *BendingShape, target float64) error {
	for _, i := range u.farVertices {
		if i < 0 || i >= s.Polyline.Count() {
			return fmt.Errorf("%w: index %d, shape has %d vertices", ErrVertexIndexOutOfRange, i, s.Polyline.Count())
		}
	}

	delta := target - u.Dimension(*s)
	move := u.direction.Normalize().MulScalar(delta)
	for _, i := range u.farVertices {
		s.Polyline.Points[i] = s.Polyline.Points[i].Add(move)
	}
	return nil
}
