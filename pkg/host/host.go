// Package host declares the interfaces this library needs from the
// CAD application it runs inside: element lookup, parent traversal and
// bar metadata. The host owns the document and the element tree; the
// core only consumes the handful of operations declared here. An
// in-memory implementation is provided for tests and the CLI.
package host

import (
	"errors"

	"github.com/bmarciniec/place-in-regions/pkg/frame"
	"github.com/bmarciniec/place-in-regions/pkg/geo"
	"github.com/bmarciniec/place-in-regions/pkg/shape"
)

// ElementRef is an opaque handle to a host-owned element.
type ElementRef string

// ElementKind classifies the host elements the core cares about.
type ElementKind int

const (
	KindUnknown ElementKind = iota

	// KindBarsRepresentation is the 2D silhouette of a placed bar
	// group inside a view, the element the user actually picks.
	KindBarsRepresentation

	// KindBarsDefinition is the defining ancestor of a representation,
	// carrying the bar metadata.
	KindBarsDefinition
)

// ErrNoDefiningAncestor is returned when walking the parent chain of a
// picked element never reaches a bars definition.
var ErrNoDefiningAncestor = errors.New("host: element has no bars definition ancestor")

// ErrWrongElementKind is returned when an operation is invoked with an
// element of an unexpected kind.
var ErrWrongElementKind = errors.New("host: unexpected element kind")

// BarData is the metadata the host keeps for a bars definition. The
// core consumes these values verbatim and never recomputes them.
type BarData struct {
	Diameter      float64
	SteelGrade    int
	Position      int
	ShapeCode     string
	BendingRoller float64
}

// Document is the read side of the host document the core needs.
type Document interface {
	// Kind reports the element kind of a handle.
	Kind(ElementRef) ElementKind

	// Geometry returns the 2D silhouette polyline of a bars
	// representation, in the coordinates of the view it lives in.
	Geometry(ElementRef) (geo.Polyline3, error)

	// ResolveDefiningAncestor walks the parent chain of an element up
	// to its bars definition.
	ResolveDefiningAncestor(ElementRef) (ElementRef, error)

	// BarData returns the bar metadata of a bars definition.
	BarData(ElementRef) (BarData, error)
}

// AcquireShape resolves a picked bars-representation element to a
// world-space bending shape: the silhouette polyline is read from the
// pick view, transformed to world space, and combined with the
// metadata of the defining bars definition. One bending-radius factor
// is carried per polyline segment.
func AcquireShape(doc Document, picked ElementRef, view *frame.Transform) (shape.BendingShape, BarData, error) {
	if k := doc.Kind(picked); k != KindBarsRepresentation {
		return shape.BendingShape{}, BarData{}, ErrWrongElementKind
	}

	polyline, err := doc.Geometry(picked)
	if err != nil {
		return shape.BendingShape{}, BarData{}, err
	}
	def, err := doc.ResolveDefiningAncestor(picked)
	if err != nil {
		return shape.BendingShape{}, BarData{}, err
	}
	data, err := doc.BarData(def)
	if err != nil {
		return shape.BendingShape{}, BarData{}, err
	}

	world := polyline.Copy()
	world.Transform(view.ToWorld())

	rollers := make([]float64, world.SegmentCount())
	for i := range rollers {
		rollers[i] = data.BendingRoller
	}

	s, err := shape.New(world, data.Diameter, data.SteelGrade, -1, shapeTypeFromCode(data.ShapeCode), rollers)
	if err != nil {
		return shape.BendingShape{}, BarData{}, err
	}
	return s, data, nil
}

// shapeTypeFromCode maps the leading character of an ISO 4066 shape
// code to the shape classification.
func shapeTypeFromCode(code string) shape.Type {
	if code == "" {
		return shape.TypeUnknown
	}
	switch code[0] {
	case 'A':
		return shape.TypeStraight
	case 'D', 'E':
		return shape.TypeStirrup
	case 'B', 'C':
		return shape.TypeHook
	case 'S':
		return shape.TypeSpiral
	default:
		return shape.TypeUnknown
	}
}
