// Package shape defines the bending shape entity — the bent rebar
// silhouette with its geometric and metallurgical attributes — and the
// distortion utility that stretches a shape to a locally varying
// cross-section height.
package shape

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/geo"
)

// Type classifies a bending shape (ISO 4066 shape code family).
type Type int

const (
	TypeUnknown Type = iota
	TypeStraight
	TypeStirrup
	TypeHook
	TypeSpiral
)

func (t Type) String() string {
	switch t {
	case TypeStraight:
		return "straight"
	case TypeStirrup:
		return "stirrup"
	case TypeHook:
		return "hook"
	case TypeSpiral:
		return "spiral"
	default:
		return "unknown"
	}
}

// ErrRollerCount is returned when the bending-radius factor list does
// not have exactly one entry per internal corner of the polyline.
var ErrRollerCount = errors.New("shape: bending roller count must equal vertex count - 1")

// BendingShape is an ordered 3D polyline (the bent rebar silhouette)
// plus the scalar attributes read from the selected bar group. A shape
// is always copied, never aliased, before a positional mutation, so
// one baseline can stamp out many placements.
type BendingShape struct {
	Polyline       geo.Polyline3
	Diameter       float64
	SteelGrade     int
	ConcreteGrade  int
	Type           Type
	BendingRollers []float64
}

// New builds a validated bending shape. The roller list must carry one
// bending-radius factor per internal corner (vertex count - 1).
func New(polyline geo.Polyline3, diameter float64, steelGrade, concreteGrade int, typ Type, rollers []float64) (BendingShape, error) {
	if len(rollers) != polyline.Count()-1 {
		return BendingShape{}, fmt.Errorf("%w: %d vertices, %d rollers", ErrRollerCount, polyline.Count(), len(rollers))
	}
	return BendingShape{
		Polyline:       polyline,
		Diameter:       diameter,
		SteelGrade:     steelGrade,
		ConcreteGrade:  concreteGrade,
		Type:           typ,
		BendingRollers: rollers,
	}, nil
}

// Copy returns a deep copy owning independent buffers.
func (s BendingShape) Copy() BendingShape {
	c := s
	c.Polyline = s.Polyline.Copy()
	c.BendingRollers = append([]float64(nil), s.BendingRollers...)
	return c
}

// Move translates the shape polyline, in place.
func (s *BendingShape) Move(v v3.Vec) {
	s.Polyline.Move(v)
}

// Transform applies an affine transform to the shape polyline, in place.
func (s *BendingShape) Transform(m sdf.M44) {
	s.Polyline.Transform(m)
}

// Plane returns the plane of the shape polyline.
func (s BendingShape) Plane() (geo.Plane, bool) {
	return s.Polyline.Plane()
}

// Normal returns the shape's plane normal, or the zero vector for a
// degenerate polyline.
func (s BendingShape) Normal() v3.Vec {
	plane, ok := s.Plane()
	if !ok {
		return v3.Vec{}
	}
	return plane.Normal
}

// ProjectOntoPoint moves the shape so its defining plane passes
// through target. Only the out-of-plane component of the offset is
// applied, preserving any in-plane positioning.
func (s *BendingShape) ProjectOntoPoint(target v3.Vec) error {
	plane, ok := s.Plane()
	if !ok {
		return errors.New("shape: polyline is not planar")
	}
	s.Move(plane.OffsetTo(target))
	return nil
}
