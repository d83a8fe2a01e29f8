package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/frame"
	"github.com/bmarciniec/place-in-regions/pkg/geo"
)

// sceneFile is the TOML description consumed by the analyze command:
// a placement outline, the shape plane normal and an optional view.
//
//	shape_normal = [1.0, 0.0, 0.0]
//
//	[view]
//	origin = [0.0, 0.0, 0.0]
//	x_axis = [1.0, 0.0, 0.0]
//	y_axis = [0.0, 1.0, 0.0]
//
//	[outline]
//	points = [[0, 0, 0], [2000, 0, 0], [2000, 800, 0], [0, 400, 0]]
type sceneFile struct {
	ShapeNormal []float64    `toml:"shape_normal"`
	View        viewTable    `toml:"view"`
	Outline     outlineTable `toml:"outline"`
}

type viewTable struct {
	Origin []float64 `toml:"origin"`
	XAxis  []float64 `toml:"x_axis"`
	YAxis  []float64 `toml:"y_axis"`
}

type outlineTable struct {
	Points [][]float64 `toml:"points"`
}

func loadSceneFile(path string) (*sceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf sceneFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sf, nil
}

// vec3Of converts a 3-element TOML array into a vector.
func vec3Of(a []float64, name string) (v3.Vec, error) {
	if len(a) != 3 {
		return v3.Vec{}, fmt.Errorf("%s: expected 3 components, got %d", name, len(a))
	}
	return v3.Vec{X: a[0], Y: a[1], Z: a[2]}, nil
}

// view builds the reference view transform, defaulting to the global
// view when no [view] table is present.
func (sf *sceneFile) view() (*frame.Transform, error) {
	if sf.View.Origin == nil && sf.View.XAxis == nil && sf.View.YAxis == nil {
		return frame.Identity(), nil
	}

	origin := v3.Vec{}
	xdir := v3.Vec{X: 1}
	ydir := v3.Vec{Y: 1}
	var err error

	if sf.View.Origin != nil {
		if origin, err = vec3Of(sf.View.Origin, "view.origin"); err != nil {
			return nil, err
		}
	}
	if sf.View.XAxis != nil {
		if xdir, err = vec3Of(sf.View.XAxis, "view.x_axis"); err != nil {
			return nil, err
		}
	}
	if sf.View.YAxis != nil {
		if ydir, err = vec3Of(sf.View.YAxis, "view.y_axis"); err != nil {
			return nil, err
		}
	}
	return frame.FromBasis(origin, xdir, ydir)
}

func (sf *sceneFile) outline() (geo.Polygon3, error) {
	if len(sf.Outline.Points) < 3 {
		return geo.Polygon3{}, fmt.Errorf("outline.points: expected at least 3 vertices, got %d", len(sf.Outline.Points))
	}
	pts := make([]v3.Vec, 0, len(sf.Outline.Points))
	for i, p := range sf.Outline.Points {
		v, err := vec3Of(p, fmt.Sprintf("outline.points[%d]", i))
		if err != nil {
			return geo.Polygon3{}, err
		}
		pts = append(pts, v)
	}
	return geo.NewPolygon3(pts...), nil
}

func (sf *sceneFile) shapeNormal() (v3.Vec, error) {
	if sf.ShapeNormal == nil {
		return v3.Vec{}, fmt.Errorf("shape_normal is required")
	}
	n, err := vec3Of(sf.ShapeNormal, "shape_normal")
	if err != nil {
		return v3.Vec{}, err
	}
	if geo.IsZero(n.Length()) {
		return v3.Vec{}, fmt.Errorf("shape_normal must be non-zero")
	}
	return n, nil
}
