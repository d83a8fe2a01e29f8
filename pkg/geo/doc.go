// Package geo provides the geometric primitives used by the placement
// engine: 3D polylines and polygons built on the sdfx vector and matrix
// types, planes, and the 2D polygon operations (winding normalization,
// vertical splitting, probe-line intersection) that the polygonal
// placement pipeline needs.
//
// Conventions: points and directions are v3.Vec / v2.Vec values, affine
// transforms are sdf.M44. All comparisons use the package tolerance Eps
// unless a function documents otherwise.
package geo
