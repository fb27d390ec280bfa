package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/Gadiguibou/creaform-technical-challenge/pkg/geom"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms geometry-script source before passing it
// to zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     This avoids registering keyword symbols as globals, which would
//     conflict with user variables of the same name.
//
//  2. ; line comments become // comments, which is what zygomys
//     expects instead of the traditional Lisp ;.
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing geometry values through the environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Vector3.
type sexpVec3 struct {
	vec geom.Vector3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpLine wraps a geom.Line.
type sexpLine struct {
	line geom.Line
}

func (l *sexpLine) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(line :point (vec3 %g %g %g) :direction (vec3 %g %g %g))",
		l.line.Point.X, l.line.Point.Y, l.line.Point.Z,
		l.line.Direction.X, l.line.Direction.Y, l.line.Direction.Z)
}
func (l *sexpLine) Type() *zygo.RegisteredType { return nil }

// sexpPlane wraps a geom.Plane.
type sexpPlane struct {
	plane geom.Plane
}

func (p *sexpPlane) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(plane (vec3 %g %g %g) (vec3 %g %g %g) (vec3 %g %g %g))",
		p.plane.V0.X, p.plane.V0.Y, p.plane.V0.Z,
		p.plane.V1.X, p.plane.V1.Y, p.plane.V1.Z,
		p.plane.V2.X, p.plane.V2.Y, p.plane.V2.Z)
}
func (p *sexpPlane) Type() *zygo.RegisteredType { return nil }

// sexpPyramid wraps a geom.Pyramid.
type sexpPyramid struct {
	pyramid geom.Pyramid
}

func (p *sexpPyramid) SexpString(ps *zygo.PrintState) string {
	var sb strings.Builder
	sb.WriteString("(pyramid")
	for _, v := range p.pyramid.Vertices {
		fmt.Fprintf(&sb, " (vec3 %g %g %g)", v.X, v.Y, v.Z)
	}
	sb.WriteString(")")
	return sb.String()
}
func (p *sexpPyramid) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
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

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
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
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
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

// toVec3 extracts a Vector3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vector3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vector3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toLine extracts a Line from a sexpLine.
func toLine(s zygo.Sexp) (geom.Line, error) {
	if l, ok := s.(*sexpLine); ok {
		return l.line, nil
	}
	return geom.Line{}, fmt.Errorf("expected line, got %T (%s)", s, s.SexpString(nil))
}

// toPlane extracts a Plane from a sexpPlane.
func toPlane(s zygo.Sexp) (geom.Plane, error) {
	if p, ok := s.(*sexpPlane); ok {
		return p.plane, nil
	}
	return geom.Plane{}, fmt.Errorf("expected plane, got %T (%s)", s, s.SexpString(nil))
}

// toPyramid extracts a Pyramid from a sexpPyramid.
func toPyramid(s zygo.Sexp) (geom.Pyramid, error) {
	if p, ok := s.(*sexpPyramid); ok {
		return p.pyramid, nil
	}
	return geom.Pyramid{}, fmt.Errorf("expected pyramid, got %T (%s)", s, s.SexpString(nil))
}

// vec3Args extracts exactly n vec3 arguments.
func vec3Args(name string, args []zygo.Sexp, n int) ([]geom.Vector3, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d vec3 arguments, got %d", name, n, len(args))
	}
	out := make([]geom.Vector3, n)
	for i, a := range args {
		v, err := toVec3(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the geometry builtins into a zygomys
// environment. The intersects builtin records each query into the
// provided trace.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens become recognizable string
// literals.
func registerBuiltins(env *zygo.Zlisp, trace *Trace) {

	// -----------------------------------------------------------------------
	// (vec3 x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires 3 numbers, got %d arguments", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: component %d: %w", i+1, err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: geom.Vector3{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (add a b), (sub a b), (cross a b)
	// -----------------------------------------------------------------------
	binaryVec := func(name string, op func(a, b geom.Vector3) geom.Vector3) {
		env.AddFunction(name, func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
			vs, err := vec3Args(name, args, 2)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpVec3{vec: op(vs[0], vs[1])}, nil
		})
	}
	binaryVec("add", geom.Vector3.Add)
	binaryVec("sub", geom.Vector3.Sub)
	binaryVec("cross", geom.Vector3.Cross)

	// -----------------------------------------------------------------------
	// (scale v k)
	// -----------------------------------------------------------------------
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("scale requires a vec3 and a number")
		}
		v, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		k, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		return &sexpVec3{vec: v.Scale(k)}, nil
	})

	// -----------------------------------------------------------------------
	// (dot a b)
	// -----------------------------------------------------------------------
	env.AddFunction("dot", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vs, err := vec3Args("dot", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: vs[0].Dot(vs[1])}, nil
	})

	// -----------------------------------------------------------------------
	// (magnitude v)
	// -----------------------------------------------------------------------
	env.AddFunction("magnitude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vs, err := vec3Args("magnitude", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: vs[0].Magnitude()}, nil
	})

	// -----------------------------------------------------------------------
	// (line :point (vec3 ...) :direction (vec3 ...)), or (line p d)
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var point, direction zygo.Sexp

		if v, ok := pa.kw["point"]; ok {
			point = v
		}
		if v, ok := pa.kw["direction"]; ok {
			direction = v
		}
		if point == nil && len(pa.positional) > 0 {
			point = pa.positional[0]
		}
		if direction == nil && len(pa.positional) > 1 {
			direction = pa.positional[1]
		}
		if point == nil || direction == nil {
			return zygo.SexpNull, fmt.Errorf("line requires a point and a direction")
		}

		p, err := toVec3(point)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: point: %w", err)
		}
		d, err := toVec3(direction)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: direction: %w", err)
		}
		return &sexpLine{line: geom.NewLine(p, d)}, nil
	})

	// -----------------------------------------------------------------------
	// (plane v0 v1 v2)
	// -----------------------------------------------------------------------
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vs, err := vec3Args("plane", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPlane{plane: geom.NewPlane(vs[0], vs[1], vs[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (pyramid v0 v1 v2 v3)
	// -----------------------------------------------------------------------
	env.AddFunction("pyramid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vs, err := vec3Args("pyramid", args, 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPyramid{pyramid: geom.NewPyramid(vs[0], vs[1], vs[2], vs[3])}, nil
	})

	// -----------------------------------------------------------------------
	// (face pyr i): the i-th face (0..3) in the fixed enumeration order
	// -----------------------------------------------------------------------
	env.AddFunction("face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("face requires a pyramid and an index")
		}
		p, err := toPyramid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: %w", err)
		}
		idx, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: index: %w", err)
		}
		i := int(idx)
		if i < 0 || i > 3 {
			return zygo.SexpNull, fmt.Errorf("face: index %d out of range [0,3]", i)
		}
		return &sexpPlane{plane: p.Faces()[i]}, nil
	})

	// -----------------------------------------------------------------------
	// (intersection ln pl): intersection point, or nil
	// -----------------------------------------------------------------------
	env.AddFunction("intersection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersection requires a line and a plane")
		}
		l, err := toLine(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersection: %w", err)
		}
		pl, err := toPlane(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersection: %w", err)
		}
		point, ok := l.IntersectPlane(pl)
		if !ok {
			return zygo.SexpNull, nil
		}
		return &sexpVec3{vec: point}, nil
	})

	// -----------------------------------------------------------------------
	// (contains pl pt): triangle membership
	// -----------------------------------------------------------------------
	env.AddFunction("contains", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("contains requires a plane and a vec3")
		}
		pl, err := toPlane(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		pt, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		return &zygo.SexpBool{Val: pl.ContainsPoint(pt)}, nil
	})

	// -----------------------------------------------------------------------
	// (intersects ln pyr): the boundary intersection query; recorded
	// -----------------------------------------------------------------------
	env.AddFunction("intersects", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersects requires a line and a pyramid")
		}
		l, err := toLine(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersects: %w", err)
		}
		p, err := toPyramid(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersects: %w", err)
		}
		hit := p.Intersects(l)
		trace.Queries = append(trace.Queries, Query{Line: l, Pyramid: p, Hit: hit})
		return &zygo.SexpBool{Val: hit}, nil
	})
}
