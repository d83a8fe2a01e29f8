package host

import (
	"fmt"

	"github.com/bmarciniec/place-in-regions/pkg/geo"
)

// MemoryDocument is an in-memory Document used by tests and the CLI.
// Elements form a parent tree; bars representations carry geometry,
// bars definitions carry metadata.
type MemoryDocument struct {
	elements map[ElementRef]*memoryElement
}

type memoryElement struct {
	kind     ElementKind
	parent   ElementRef
	geometry geo.Polyline3
	barData  BarData
}

// NewMemoryDocument returns an empty document.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{elements: map[ElementRef]*memoryElement{}}
}

// AddBarsDefinition registers a bars definition with its metadata.
func (d *MemoryDocument) AddBarsDefinition(ref ElementRef, data BarData) {
	d.elements[ref] = &memoryElement{kind: KindBarsDefinition, barData: data}
}

// AddBarsRepresentation registers a representation element under a
// parent with its view-space silhouette polyline. Intermediate tree
// levels can be modeled by chaining representations.
func (d *MemoryDocument) AddBarsRepresentation(ref, parent ElementRef, silhouette geo.Polyline3) {
	d.elements[ref] = &memoryElement{kind: KindBarsRepresentation, parent: parent, geometry: silhouette}
}

// AddIntermediate registers an untyped tree element, such as the bar
// placement group between a representation and its definition.
func (d *MemoryDocument) AddIntermediate(ref, parent ElementRef) {
	d.elements[ref] = &memoryElement{kind: KindUnknown, parent: parent}
}

// Kind implements Document.
func (d *MemoryDocument) Kind(ref ElementRef) ElementKind {
	if el, ok := d.elements[ref]; ok {
		return el.kind
	}
	return KindUnknown
}

// Geometry implements Document.
func (d *MemoryDocument) Geometry(ref ElementRef) (geo.Polyline3, error) {
	el, ok := d.elements[ref]
	if !ok || el.kind != KindBarsRepresentation {
		return geo.Polyline3{}, fmt.Errorf("%w: %q is not a bars representation", ErrWrongElementKind, ref)
	}
	return el.geometry.Copy(), nil
}

// ResolveDefiningAncestor implements Document by walking the parent
// chain until a bars definition is found.
func (d *MemoryDocument) ResolveDefiningAncestor(ref ElementRef) (ElementRef, error) {
	cur, ok := d.elements[ref]
	if !ok {
		return "", fmt.Errorf("%w: unknown element %q", ErrNoDefiningAncestor, ref)
	}
	for {
		if cur.parent == "" {
			return "", fmt.Errorf("%w: reached root from %q", ErrNoDefiningAncestor, ref)
		}
		parent, ok := d.elements[cur.parent]
		if !ok {
			return "", fmt.Errorf("%w: broken parent chain at %q", ErrNoDefiningAncestor, cur.parent)
		}
		if parent.kind == KindBarsDefinition {
			return cur.parent, nil
		}
		cur = parent
	}
}

// BarData implements Document.
func (d *MemoryDocument) BarData(ref ElementRef) (BarData, error) {
	el, ok := d.elements[ref]
	if !ok || el.kind != KindBarsDefinition {
		return BarData{}, fmt.Errorf("%w: %q is not a bars definition", ErrWrongElementKind, ref)
	}
	return el.barData, nil
}
