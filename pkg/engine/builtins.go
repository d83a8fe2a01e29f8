package engine

import (
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/bmarciniec/place-in-regions/pkg/frame"
	"github.com/bmarciniec/place-in-regions/pkg/geo"
	"github.com/bmarciniec/place-in-regions/pkg/placement"
	"github.com/bmarciniec/place-in-regions/pkg/shape"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms placement script source before handing it
// to zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     This avoids registering keyword symbols as globals, which would
//     conflict with script variables of the same name.
//
//  2. Kebab-case to underscore: place-linear -> place_linear. zygomys
//     reads a hyphen inside an identifier as subtraction.
//
//  3. ; line comments become // comments, which is what zygomys reads.
//
// All three transformations respect string literal boundaries, so region
// strings like "2*100+$" pass through untouched.
func preprocessSource(source string) string {
	out := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"' || b[i] == '`':
			i = copyStringLiteral(b, i, &out)

		case b[i] == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}

		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2

		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j

		case b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]):
			// Hyphen between identifier characters, not a minus operator.
			out = append(out, '_')
			i++

		default:
			out = append(out, b[i])
			i++
		}
	}
	return string(out)
}

// copyStringLiteral copies a quoted literal starting at b[i] verbatim,
// honoring backslash escapes inside double quotes. It returns the index
// past the closing quote.
func copyStringLiteral(b []byte, i int, out *[]byte) int {
	quote := b[i]
	*out = append(*out, b[i])
	i++
	for i < len(b) && b[i] != quote {
		if quote == '"' && b[i] == '\\' && i+1 < len(b) {
			*out = append(*out, b[i], b[i+1])
			i += 2
			continue
		}
		*out = append(*out, b[i])
		i++
	}
	if i < len(b) {
		*out = append(*out, b[i])
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a world-space point or direction.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpLine wraps a geo.Line3 so it can be passed to placement builtins.
type sexpLine struct {
	line geo.Line3
}

func (l *sexpLine) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(line %.0f)", l.line.Length())
}
func (l *sexpLine) Type() *zygo.RegisteredType { return nil }

// sexpPolygon wraps a geo.Polygon3.
type sexpPolygon struct {
	poly geo.Polygon3
}

func (p *sexpPolygon) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(polygon %d)", len(p.poly.Points))
}
func (p *sexpPolygon) Type() *zygo.RegisteredType { return nil }

// sexpBar wraps a shape.BendingShape so it can be returned from `bar`
// and consumed by the placement builtins.
type sexpBar struct {
	bar shape.BendingShape
}

func (b *sexpBar) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(bar d%.0f %s)", b.bar.Diameter, b.bar.Type)
}
func (b *sexpBar) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			// Keyword at end with no value, treat as flag with nil.
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_stirrup) and plain strings.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toVec3 extracts a v3.Vec from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toLine extracts a geo.Line3 from a sexpLine.
func toLine(s zygo.Sexp) (geo.Line3, error) {
	if l, ok := s.(*sexpLine); ok {
		return l.line, nil
	}
	return geo.Line3{}, fmt.Errorf("expected line, got %T (%s)", s, s.SexpString(nil))
}

// toPolygon extracts a geo.Polygon3 from a sexpPolygon.
func toPolygon(s zygo.Sexp) (geo.Polygon3, error) {
	if p, ok := s.(*sexpPolygon); ok {
		return p.poly, nil
	}
	return geo.Polygon3{}, fmt.Errorf("expected polygon, got %T (%s)", s, s.SexpString(nil))
}

// toBar extracts a shape.BendingShape from a sexpBar.
func toBar(s zygo.Sexp) (shape.BendingShape, error) {
	if b, ok := s.(*sexpBar); ok {
		return b.bar, nil
	}
	return shape.BendingShape{}, fmt.Errorf("expected bar, got %T (%s)", s, s.SexpString(nil))
}

// toShapeType converts a keyword or string to a shape.Type.
func toShapeType(s zygo.Sexp) (shape.Type, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return shape.TypeUnknown, fmt.Errorf("expected shape type keyword: %w", err)
	}
	switch strings.ReplaceAll(name, "_", "-") {
	case "straight":
		return shape.TypeStraight, nil
	case "stirrup":
		return shape.TypeStirrup, nil
	case "hook":
		return shape.TypeHook, nil
	case "spiral":
		return shape.TypeSpiral, nil
	}
	return shape.TypeUnknown, fmt.Errorf("invalid shape type %q, expected straight, stirrup, hook or spiral", name)
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// defaultBendingRoller is used when a bar gives no :rollers list,
// expressed as a multiple of the bar diameter.
const defaultBendingRoller = 4.0

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the placement DSL builtins into a zygomys
// environment. The builtins populate the provided Scene during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens arrive as recognizable string
// literals.
func registerBuiltins(env *zygo.Zlisp, scene *Scene) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v v3.Vec
		var err error
		if v.X, err = toFloat64(args[0]); err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		if v.Y, err = toFloat64(args[1]); err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		if v.Z, err = toFloat64(args[2]); err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (line (vec3 0 0 0) (vec3 1000 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("line requires exactly 2 points, got %d", len(args))
		}
		start, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: start: %w", err)
		}
		end, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: end: %w", err)
		}
		return &sexpLine{line: geo.Line3{Start: start, End: end}}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon (vec3 ...) (vec3 ...) (vec3 ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 3 {
			return zygo.SexpNull, fmt.Errorf("polygon requires at least 3 vertices, got %d", len(args))
		}
		pts := make([]v3.Vec, 0, len(args))
		for i, a := range args {
			p, err := toVec3(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: vertex %d: %w", i, err)
			}
			pts = append(pts, p)
		}
		return &sexpPolygon{poly: geo.NewPolygon3(pts...)}, nil
	})

	// -----------------------------------------------------------------------
	// (bar :diameter 12 :steel-grade 4 :concrete-grade 4 :type :stirrup
	//      :vertices (list (vec3 ...) ...) :rollers (list 4 4 4))
	// -----------------------------------------------------------------------
	env.AddFunction("bar", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		diameter := 0.0
		steelGrade := 0
		concreteGrade := 0
		typ := shape.TypeUnknown
		var pts []v3.Vec
		var rollers []float64

		if v, ok := pa.kw["diameter"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("bar: diameter: %w", err)
			}
			diameter = f
		}
		if v, ok := pa.kw["steel-grade"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("bar: steel-grade: %w", err)
			}
			steelGrade = n
		}
		if v, ok := pa.kw["concrete-grade"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("bar: concrete-grade: %w", err)
			}
			concreteGrade = n
		}
		if v, ok := pa.kw["type"]; ok {
			t, err := toShapeType(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("bar: type: %w", err)
			}
			typ = t
		}
		if v, ok := pa.kw["vertices"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("bar: vertices: %w", err)
			}
			for i, item := range items {
				p, err := toVec3(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("bar: vertex %d: %w", i, err)
				}
				pts = append(pts, p)
			}
		}
		if v, ok := pa.kw["rollers"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("bar: rollers: %w", err)
			}
			for i, item := range items {
				r, err := toFloat64(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("bar: roller %d: %w", i, err)
				}
				rollers = append(rollers, r)
			}
		}

		if len(pts) < 2 {
			return zygo.SexpNull, fmt.Errorf("bar requires at least 2 vertices, got %d", len(pts))
		}
		if diameter <= 0 {
			return zygo.SexpNull, fmt.Errorf("bar requires a positive :diameter")
		}
		if rollers == nil {
			rollers = make([]float64, len(pts)-1)
			for i := range rollers {
				rollers[i] = defaultBendingRoller
			}
		}

		b, err := shape.New(geo.NewPolyline3(pts...), diameter, steelGrade, concreteGrade, typ, rollers)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bar: %w", err)
		}
		return &sexpBar{bar: b}, nil
	})

	// -----------------------------------------------------------------------
	// (view :origin (vec3 0 0 0) :x-dir (vec3 1 0 0) :y-dir (vec3 0 0 1))
	// -----------------------------------------------------------------------
	env.AddFunction("view", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		origin := v3.Vec{}
		xdir := v3.Vec{X: 1}
		ydir := v3.Vec{Y: 1}

		if v, ok := pa.kw["origin"]; ok {
			p, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("view: origin: %w", err)
			}
			origin = p
		}
		if v, ok := pa.kw["x-dir"]; ok {
			d, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("view: x-dir: %w", err)
			}
			xdir = d
		}
		if v, ok := pa.kw["y-dir"]; ok {
			d, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("view: y-dir: %w", err)
			}
			ydir = d
		}

		t, err := frame.FromBasis(origin, xdir, ydir)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("view: %w", err)
		}
		scene.View = t
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (covers :start 30 :end 30 :leg-reduction 60)
	// -----------------------------------------------------------------------
	env.AddFunction("covers", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if v, ok := pa.kw["start"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("covers: start: %w", err)
			}
			scene.Config.StartCover = f
		}
		if v, ok := pa.kw["end"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("covers: end: %w", err)
			}
			scene.Config.EndCover = f
		}
		if v, ok := pa.kw["leg-reduction"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("covers: leg-reduction: %w", err)
			}
			scene.Config.LegReduction = f
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (base-position 7)
	// -----------------------------------------------------------------------
	env.AddFunction("base_position", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("base-position requires exactly 1 argument, got %d", len(args))
		}
		n, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("base-position: %w", err)
		}
		if n < 1 {
			return zygo.SexpNull, fmt.Errorf("base-position must be at least 1, got %d", n)
		}
		scene.BasePosition = n
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (place-linear bar :line (line ...) :regions "2*100+$+3*150")
	// -----------------------------------------------------------------------
	env.AddFunction("place_linear", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place-linear requires a bar as first argument")
		}
		bar, err := toBar(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place-linear: bar: %w", err)
		}

		v, ok := pa.kw["line"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("place-linear requires a :line")
		}
		ln, err := toLine(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place-linear: line: %w", err)
		}

		v, ok = pa.kw["regions"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("place-linear requires a :regions string")
		}
		spec, err := toString(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place-linear: regions: %w", err)
		}

		scene.Requests = append(scene.Requests, SceneRequest{
			Bar: bar,
			Req: placement.LinearRequest{Line: ln, RegionsSpec: spec},
		})
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (place-polygonal bar :outline (polygon ...) :cut-axis (line ...)
	//                  :spacing 150)
	// -----------------------------------------------------------------------
	env.AddFunction("place_polygonal", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place-polygonal requires a bar as first argument")
		}
		bar, err := toBar(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place-polygonal: bar: %w", err)
		}

		v, ok := pa.kw["outline"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("place-polygonal requires an :outline")
		}
		outline, err := toPolygon(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place-polygonal: outline: %w", err)
		}

		v, ok = pa.kw["cut-axis"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("place-polygonal requires a :cut-axis")
		}
		axis, err := toLine(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place-polygonal: cut-axis: %w", err)
		}

		spacing := 0.0
		if v, ok := pa.kw["spacing"]; ok {
			spacing, err = toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place-polygonal: spacing: %w", err)
			}
		}
		if spacing <= 0 {
			return zygo.SexpNull, fmt.Errorf("place-polygonal requires a positive :spacing")
		}

		scene.Requests = append(scene.Requests, SceneRequest{
			Bar: bar,
			Req: placement.PolygonalRequest{Outline: outline, CutAxis: axis, Spacing: spacing},
		})
		return zygo.SexpNull, nil
	})
}
