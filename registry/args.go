package registry

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/symbolic"
	"github.com/njchilds90/geographer/value"
)

// IntervalValue is a closed interval with Lo < Hi.
type IntervalValue struct {
	Lo, Hi value.Value
}

func (iv IntervalValue) Floats() (float64, float64) { return iv.Lo.Float(), iv.Hi.Float() }

// coerce converts a raw argument into the Go type of its kind and checks
// the argument's constraints.
func coerce(c *value.Calc, spec ArgSpec, raw any) (any, error) {
	v, err := convert(c, spec, raw)
	if err != nil {
		if diag.KindOf(err) == diag.Internal {
			err = diag.Invalid("%v", err)
		}
		return nil, prefix(spec.Name, err)
	}
	if err := checkConstraints(c, spec, v); err != nil {
		return nil, prefix(spec.Name, err)
	}
	return v, nil
}

func prefix(name string, err error) error {
	return diag.Errorf(diag.KindOf(err), "argument %q: %w", name, err)
}

func convert(c *value.Calc, spec ArgSpec, raw any) (any, error) {
	switch spec.Kind {
	case Number:
		return toValue(raw)
	case Integer:
		return toInt(raw)
	case Bool:
		b, ok := raw.(bool)
		if !ok {
			return nil, diag.Invalid("want a boolean, got %T", raw)
		}
		return b, nil
	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, diag.Invalid("want a string, got %T", raw)
		}
		return s, nil
	case Choice:
		s, ok := raw.(string)
		if !ok || !slices.Contains(spec.Choices, s) {
			return nil, diag.Invalid("want one of %v, got %v", spec.Choices, raw)
		}
		return s, nil
	case PointArg:
		return toPoint(raw)
	case PointsArg:
		return toPoints(raw)
	case LineArg:
		return toLine(c, raw)
	case CircleArg:
		return toCircle(c, raw)
	case MatrixArg:
		return toMatrix(raw)
	case Expression:
		return toExpr(raw)
	case Interval:
		return toInterval(c, raw)
	}
	return nil, diag.Errorf(diag.Internal, "unknown argument kind %q", spec.Kind)
}

func toValue(raw any) (value.Value, error) {
	switch x := raw.(type) {
	case value.Value:
		return x, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return value.Value{}, diag.Invalid("%v is not a finite number", x)
		}
		return value.FromFloat(x), nil
	case int:
		return value.Int(int64(x)), nil
	case int64:
		return value.Int(x), nil
	case json.Number:
		return value.Parse(x.String())
	case string:
		return value.Parse(x)
	}
	return value.Value{}, diag.Invalid("want a number, got %T", raw)
}

func toInt(raw any) (int, error) {
	switch x := raw.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > 1<<31 {
			return 0, diag.Invalid("want an integer, got %v", x)
		}
		return int(x), nil
	case json.Number:
		n, err := strconv.Atoi(x.String())
		if err != nil {
			return 0, diag.Invalid("want an integer, got %s", x)
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			return 0, diag.Invalid("want an integer, got %q", x)
		}
		return n, nil
	}
	return 0, diag.Invalid("want an integer, got %T", raw)
}

// toPoint accepts [x, y] or {"x": .., "y": .., "label": ..}.
func toPoint(raw any) (geom.Point, error) {
	switch x := raw.(type) {
	case geom.Point:
		return x, nil
	case []any:
		if len(x) != 2 {
			return geom.Point{}, diag.Invalid("a point needs 2 coordinates, got %d", len(x))
		}
		return pointOf(x[0], x[1], "")
	case map[string]any:
		label, _ := x["label"].(string)
		px, okx := x["x"]
		py, oky := x["y"]
		if !okx || !oky {
			return geom.Point{}, diag.Invalid("a point object needs x and y")
		}
		return pointOf(px, py, label)
	}
	return geom.Point{}, diag.Invalid("want a point [x, y], got %T", raw)
}

func pointOf(rx, ry any, label string) (geom.Point, error) {
	x, err := toValue(rx)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := toValue(ry)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Point{X: x, Y: y, Label: label}, nil
}

func toPoints(raw any) ([]geom.Point, error) {
	if ps, ok := raw.([]geom.Point); ok {
		return slices.Clone(ps), nil
	}
	xs, ok := raw.([]any)
	if !ok {
		return nil, diag.Invalid("want a list of points, got %T", raw)
	}
	out := make([]geom.Point, len(xs))
	for i, r := range xs {
		p, err := toPoint(r)
		if err != nil {
			return nil, diag.Errorf(diag.InvalidArgument, "point %d: %w", i+1, err)
		}
		out[i] = p
	}
	return out, nil
}

// toLine accepts {"a","b","c"} for a*x + b*y + c = 0, {"p","q"} for two
// points, {"slope","intercept"}, or {"point","direction"}.
func toLine(c *value.Calc, raw any) (geom.Line, error) {
	if l, ok := raw.(geom.Line); ok {
		return l, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return geom.Line{}, diag.Invalid("want a line object, got %T", raw)
	}
	has := func(keys ...string) bool {
		for _, k := range keys {
			if _, ok := m[k]; !ok {
				return false
			}
		}
		return true
	}
	switch {
	case has("a", "b", "c"):
		vs, err := values(m, "a", "b", "c")
		if err != nil {
			return geom.Line{}, err
		}
		return geom.LineFromGeneral(c, vs[0], vs[1], vs[2])
	case has("p", "q"):
		p, err := toPoint(m["p"])
		if err != nil {
			return geom.Line{}, err
		}
		q, err := toPoint(m["q"])
		if err != nil {
			return geom.Line{}, err
		}
		return geom.LineThrough(c, p, q)
	case has("slope", "intercept"):
		vs, err := values(m, "slope", "intercept")
		if err != nil {
			return geom.Line{}, err
		}
		return geom.LineFromSlopeIntercept(vs[0], vs[1]), nil
	case has("point", "direction"):
		p, err := toPoint(m["point"])
		if err != nil {
			return geom.Line{}, err
		}
		d, err := toPoint(m["direction"])
		if err != nil {
			return geom.Line{}, err
		}
		return geom.LineFromPointDirection(c, p, d.X, d.Y)
	}
	return geom.Line{}, diag.Invalid("a line needs {a, b, c}, {p, q}, {slope, intercept} or {point, direction}")
}

// toCircle accepts {"center","radius"} or {"d","e","f"} for
// x^2 + y^2 + d*x + e*y + f = 0.
func toCircle(c *value.Calc, raw any) (geom.Circle, error) {
	if ci, ok := raw.(geom.Circle); ok {
		return ci, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return geom.Circle{}, diag.Invalid("want a circle object, got %T", raw)
	}
	if ctr, ok := m["center"]; ok {
		p, err := toPoint(ctr)
		if err != nil {
			return geom.Circle{}, err
		}
		r, err := toValue(m["radius"])
		if err != nil {
			return geom.Circle{}, err
		}
		return geom.NewCircle(c, p, r)
	}
	vs, err := values(m, "d", "e", "f")
	if err != nil {
		return geom.Circle{}, diag.Invalid("a circle needs {center, radius} or {d, e, f}")
	}
	return geom.CircleFromGeneral(c, vs[0], vs[1], vs[2])
}

func values(m map[string]any, keys ...string) ([]value.Value, error) {
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		r, ok := m[k]
		if !ok {
			return nil, diag.Invalid("missing %s", k)
		}
		v, err := toValue(r)
		if err != nil {
			return nil, diag.Errorf(diag.InvalidArgument, "%s: %w", k, err)
		}
		out[i] = v
	}
	return out, nil
}

func toMatrix(raw any) (geom.Matrix, error) {
	if m, ok := raw.(geom.Matrix); ok {
		return m, nil
	}
	rows, ok := raw.([]any)
	if !ok {
		return geom.Matrix{}, diag.Invalid("want a matrix as a list of rows, got %T", raw)
	}
	vs := make([][]value.Value, len(rows))
	for i, r := range rows {
		cells, ok := r.([]any)
		if !ok {
			return geom.Matrix{}, diag.Invalid("row %d is not a list", i+1)
		}
		for j, cell := range cells {
			v, err := toValue(cell)
			if err != nil {
				return geom.Matrix{}, diag.Errorf(diag.InvalidArgument, "entry (%d, %d): %w", i+1, j+1, err)
			}
			vs[i] = append(vs[i], v)
		}
	}
	return geom.NewMatrix(vs)
}

// toExpr accepts infix text or a JSON expression tree.
func toExpr(raw any) (symbolic.Expr, error) {
	switch x := raw.(type) {
	case symbolic.Expr:
		return x, nil
	case string:
		e, err := symbolic.Parse(x)
		if err != nil {
			return nil, diag.Errorf(diag.InvalidArgument, "%w", err)
		}
		return e, nil
	case map[string]any:
		e, err := symbolic.FromJSON(x)
		if err != nil {
			return nil, diag.Errorf(diag.InvalidArgument, "%w", err)
		}
		return e, nil
	}
	return nil, diag.Invalid("want an expression, got %T", raw)
}

func toInterval(c *value.Calc, raw any) (IntervalValue, error) {
	if iv, ok := raw.(IntervalValue); ok {
		raw = []any{iv.Lo, iv.Hi}
	}
	xs, ok := raw.([]any)
	if !ok || len(xs) != 2 {
		return IntervalValue{}, diag.Invalid("want an interval [lo, hi]")
	}
	lo, err := toValue(xs[0])
	if err != nil {
		return IntervalValue{}, err
	}
	hi, err := toValue(xs[1])
	if err != nil {
		return IntervalValue{}, err
	}
	if !c.Less(lo, hi) {
		return IntervalValue{}, diag.Invalid("interval [%s, %s] is empty", lo, hi)
	}
	return IntervalValue{Lo: lo, Hi: hi}, nil
}

func checkConstraints(c *value.Calc, spec ArgSpec, v any) error {
	var num value.Value
	switch x := v.(type) {
	case value.Value:
		num = x
	case int:
		num = value.Int(int64(x))
	default:
		return nil
	}
	for _, k := range spec.Constraints {
		switch s := c.Sign(num); {
		case k == Positive && s <= 0:
			return diag.Invalid("must be positive, got %s", num)
		case k == NonNegative && s < 0:
			return diag.Invalid("must not be negative, got %s", num)
		case k == NonZero && s == 0:
			return diag.Invalid("must not be zero")
		}
	}
	if spec.Min != nil && num.Float() < *spec.Min {
		return diag.Invalid("must be at least %g, got %s", *spec.Min, num)
	}
	if spec.Max != nil && num.Float() > *spec.Max {
		return diag.Invalid("must be at most %g, got %s", *spec.Max, num)
	}
	return nil
}

