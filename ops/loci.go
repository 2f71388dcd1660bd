package ops

import (
	"fmt"
	"slices"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/plot"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Loci
// ============================================================

func locusOps() []registry.Entry {
	ab := func() []registry.ArgSpec {
		return []registry.ArgSpec{
			required("a", registry.PointArg, "first fixed point"),
			required("b", registry.PointArg, "second fixed point"),
		}
	}
	return []registry.Entry{
		{
			Descriptor: registry.Descriptor{
				ID: "perpendicular_bisector", Domain: Loci, Label: "Perpendicular bisector",
				Description: "Locus of points equidistant from A and B.",
				Args:        ab(),
				Presets:     []registry.Preset{preset("default", map[string]any{"a": []any{0, 0}, "b": []any{4, 2}})},
			},
			Handler: perpendicularBisector,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "apollonius_circle", Domain: Loci, Label: "Apollonius circle",
				Description: "Locus of P with PA : PB = m : n.",
				Args: append(ab(),
					positive(optional("m", registry.Number, 2, "ratio numerator")),
					positive(optional("n", registry.Number, 1, "ratio denominator")),
				),
				Presets: []registry.Preset{
					preset("2:1", map[string]any{"a": []any{0, 0}, "b": []any{3, 0}}),
					preset("1:1", map[string]any{"a": []any{-1, 0}, "b": []any{1, 0}, "m": 1, "n": 1}),
				},
			},
			Handler: apolloniusCircle,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "locus_midpoints", Domain: Loci, Label: "Midpoints of segments",
				Description: "Points are read in pairs; each pair is one segment.",
				Args:        []registry.ArgSpec{required("points", registry.PointsArg, "segment endpoints, pairwise")},
				Presets: []registry.Preset{preset("chords", map[string]any{"points": []any{
					[]any{-4, 0}, []any{0, 4}, []any{-3, -1}, []any{1, 3}, []any{-2, -2}, []any{2, 2},
				}})},
			},
			Handler: locusMidpoints,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "implicit_locus", Domain: Loci, Label: "Implicit locus f(x, y) = 0",
				Description: "Polynomial loci of degree ≤ 2 are identified as a line or conic; others are sampled.",
				Args: []registry.ArgSpec{
					required("expression", registry.Expression, "f(x, y)"),
					optional("window", registry.Interval, []any{-10, 10}, "square sampling window"),
				},
				Presets: []registry.Preset{
					preset("circle", map[string]any{"expression": "x^2 + y^2 - 9"}),
					preset("line", map[string]any{"expression": "2*x - y + 1"}),
					preset("lemniscate", map[string]any{"expression": "(x^2 + y^2)^2 - 8*(x^2 - y^2)", "window": []any{-4, 4}}),
				},
			},
			Handler: implicitLocus,
		},
	}
}

// bisector is the perpendicular bisector of ab; a and b must differ.
func bisector(c *value.Calc, a, b geom.Point) (geom.Line, geom.Point, error) {
	if a.Equal(c, b) {
		return geom.Line{}, geom.Point{}, diag.Degen("A and B coincide; every point is equidistant")
	}
	m := geom.Midpoint(c, a, b).Named("M")
	dx, dy := geom.Vector(c, a, b)
	l, err := geom.LineFromPointDirection(c, m, c.Neg(dy), dx)
	return l, m, err
}

func perpendicularBisector(call *registry.Call) error {
	c := call.Calc
	a, b := labelled(call.Point("a"), "A"), labelled(call.Point("b"), "B")
	l, m, err := bisector(c, a, b)
	if err != nil {
		return err
	}
	call.Step("midpoint", "M = %s", m)
	call.Step("direction", "perpendicular to AB through M")
	call.Step("equation", "%s", l.Equation(c))
	call.Set("midpoint", m)
	call.Set("line", lineInfo(c, l))
	call.Plot.Segment(a, b, plot.Color(grey))
	call.Plot.Line(l, plot.Color(purple), plot.Label("bisector"))
	plotPoints(call, blue, a, b)
	plotPoints(call, red, m)
	return nil
}

func apolloniusCircle(call *registry.Call) error {
	c := call.Calc
	a, b := labelled(call.Point("a"), "A"), labelled(call.Point("b"), "B")
	if a.Equal(c, b) {
		return diag.Degen("A and B coincide")
	}
	k, err := c.Div(call.Number("m"), call.Number("n"))
	if err != nil {
		return err
	}
	call.Step("ratio", "PA / PB = k = %s", k)
	call.Set("ratio", k)
	k2 := c.Square(k)
	den := c.Sub(value.Int(1), k2)
	if c.IsZero(den) {
		l, _, err := bisector(c, a, b)
		if err != nil {
			return err
		}
		call.Warnf(diag.Degenerate, "ratio 1:1 gives the perpendicular bisector, not a circle")
		call.Step("locus", "k = 1: %s", l.Equation(c))
		call.Set("kind", "line")
		call.Set("line", lineInfo(c, l))
		call.Plot.Line(l, plot.Color(purple))
		plotPoints(call, blue, a, b)
		return nil
	}
	// centre (A - k^2 B) / (1 - k^2), radius k |AB| / |1 - k^2|
	cx, _ := c.Div(c.Sub(a.X, c.Mul(k2, b.X)), den)
	cy, _ := c.Div(c.Sub(a.Y, c.Mul(k2, b.Y)), den)
	r, err := c.Div(c.Mul(k, geom.Distance(c, a, b)), c.Abs(den))
	if err != nil {
		return err
	}
	ci, err := geom.NewCircle(c, geom.NewPoint(cx, cy).Named("O"), r)
	if err != nil {
		return err
	}
	call.Step("expand", "|P - A|^2 = k^2 |P - B|^2 is a circle since k ≠ 1")
	call.Step("centre", "(A - k^2 B) / (1 - k^2) = %s", ci.Center)
	call.Step("radius", "k |AB| / |1 - k^2| = %s", value.Describe(r))
	call.Set("kind", "circle")
	call.Set("center", ci.Center)
	call.Set("radius", r)
	call.Set("equation", ci.Equation(c))
	call.Plot.Circle(ci, plot.Color(purple), plot.Label("Apollonius"))
	call.Plot.Segment(a, b, plot.Color(grey), plot.Dotted())
	plotPoints(call, blue, a, b)
	plotPoints(call, red, ci.Center)
	return nil
}

func locusMidpoints(call *registry.Call) error {
	c := call.Calc
	ps := call.Points("points")
	if err := needPoints(ps, 2); err != nil {
		return err
	}
	if len(ps)%2 == 1 {
		call.Warnf(diag.InvalidArgument, "odd number of points; the last point %s is ignored", ps[len(ps)-1])
	}
	var mids []geom.Point
	for i := 0; i+1 < len(ps); i += 2 {
		m := geom.Midpoint(c, ps[i], ps[i+1]).Named(fmt.Sprintf("M%d", len(mids)+1))
		mids = append(mids, m)
		call.Plot.Segment(ps[i], ps[i+1], plot.Color(grey), plot.Dotted())
	}
	call.Step("midpoints", "((x1 + x2)/2, (y1 + y2)/2) for each of %d segments", len(mids))
	call.Set("midpoints", mids)
	if len(mids) >= 3 {
		col := geom.Collinear(c, mids...)
		call.Set("collinear", col)
		if col {
			if l, err := geom.LineThrough(c, mids[0], mids[len(mids)-1]); err == nil {
				call.Step("fit", "the midpoints lie on %s", l.Equation(c))
				call.Set("line", lineInfo(c, l))
				call.Plot.Line(l, plot.Color(purple), plot.Dashed())
			}
		}
	}
	call.Plot.Points(mids, plot.Color(purple), plot.Label("Midpoints"))
	return nil
}

func implicitLocus(call *registry.Call) error {
	c := call.Calc
	lo, hi := call.Interval("window").Floats()
	l, err := geom.NewLocus(call.Expr("expression"), geom.Rect{XMin: lo, XMax: hi, YMin: lo, YMax: hi}, call.Settings.MaxGrid)
	if err != nil {
		return err
	}
	call.Step("predicate", "%s = 0", l.Expr)
	call.Set("expression", l.Expr.String())
	el, ok, err := l.Eliminate(c)
	if err != nil {
		return err
	}
	if ok {
		switch el.Kind {
		case "line":
			call.Step("eliminate", "degree 1: %s", el.Line.Equation(c))
			call.Set("kind", "line")
			call.Set("line", lineInfo(c, el.Line))
			call.Plot.Line(el.Line, plot.Color(purple))
			return nil
		case "conic":
			k := el.Conic
			call.Step("eliminate", "degree 2 with B^2 - 4AC = %s: %s", k.Discriminant, k.Kind)
			call.Warn(k.Notes...)
			call.Set("kind", k.Kind)
			call.Set("circle", k.Circle)
			call.Set("equation", k.Equation(c))
			plotConic(call, k, lo, hi, plot.Color(purple), plot.Label(string(k.Kind)))
			return nil
		}
	}
	call.Warnf(diag.SymbolicFallback, "no closed form; sampled on a %dx%d grid", l.Grid, l.Grid)
	pts := slices.Collect(l.Samples())
	call.Step("sample", "%d sign changes of f on the grid", len(pts))
	call.Set("kind", "sampled")
	call.Set("samples", len(pts))
	if len(pts) == 0 {
		call.Warnf(diag.Degenerate, "no points of the locus inside the window")
	}
	call.Plot.Scatter(pts, plot.Color(purple))
	return nil
}
