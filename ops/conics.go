package ops

import (
	"math"
	"slices"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/plot"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Conics
// ============================================================

var conicCoefficients = []string{"a", "b", "c", "d", "e", "f"}

func conicArgs() []registry.ArgSpec {
	help := map[string]string{
		"a": "coefficient of x^2", "b": "coefficient of xy", "c": "coefficient of y^2",
		"d": "coefficient of x", "e": "coefficient of y", "f": "constant term",
	}
	out := make([]registry.ArgSpec, 0, len(conicCoefficients))
	for _, name := range conicCoefficients {
		out = append(out, optional(name, registry.Number, 0, help[name]))
	}
	return out
}

func conicOps() []registry.Entry {
	window := optional("window", registry.Interval, []any{-10, 10}, "plot window on both axes")
	semi := func(name string) registry.ArgSpec {
		return positive(required(name, registry.Number, "semi-axis "+name))
	}
	return []registry.Entry{
		{
			Descriptor: registry.Descriptor{
				ID: "classify_conic", Domain: Conics, Label: "Classify a conic",
				Description: "Classifies ax^2 + bxy + cy^2 + dx + ey + f = 0 by its discriminant and determinant.",
				Args:        append(conicArgs(), window),
				Presets: []registry.Preset{
					preset("circle", map[string]any{"a": 1, "c": 1, "f": -4}),
					preset("hyperbola", map[string]any{"a": 1, "c": -1, "f": -1}),
					preset("rotated parabola", map[string]any{"a": 1, "b": 2, "c": 1, "d": -1}),
				},
			},
			Handler: classifyConic,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "parabola_y2_4ax", Domain: Conics, Label: "Parabola y^2 = 4ax",
				Args:    []registry.ArgSpec{nonZero(required("a", registry.Number, "focal distance"))},
				Presets: []registry.Preset{preset("a = 1", map[string]any{"a": 1})},
			},
			Handler: standardHandler(func(c *value.Calc, call *registry.Call) (geom.StandardConic, error) {
				return geom.ParabolaY2(c, call.Number("a"))
			}),
		},
		{
			Descriptor: registry.Descriptor{
				ID: "parabola_x2_4ay", Domain: Conics, Label: "Parabola x^2 = 4ay",
				Args:    []registry.ArgSpec{nonZero(required("a", registry.Number, "focal distance"))},
				Presets: []registry.Preset{preset("a = -1/2", map[string]any{"a": "-1/2"})},
			},
			Handler: standardHandler(func(c *value.Calc, call *registry.Call) (geom.StandardConic, error) {
				return geom.ParabolaX2(c, call.Number("a"))
			}),
		},
		{
			Descriptor: registry.Descriptor{
				ID: "ellipse_standard", Domain: Conics, Label: "Ellipse x^2/a^2 + y^2/b^2 = 1",
				Args:    []registry.ArgSpec{semi("a"), semi("b")},
				Presets: []registry.Preset{preset("5-3", map[string]any{"a": 5, "b": 3})},
			},
			Handler: standardHandler(func(c *value.Calc, call *registry.Call) (geom.StandardConic, error) {
				return geom.EllipseStandard(c, call.Number("a"), call.Number("b"))
			}),
		},
		{
			Descriptor: registry.Descriptor{
				ID: "hyperbola_standard", Domain: Conics, Label: "Hyperbola x^2/a^2 - y^2/b^2 = 1",
				Args:    []registry.ArgSpec{semi("a"), semi("b")},
				Presets: []registry.Preset{preset("3-4", map[string]any{"a": 3, "b": 4})},
			},
			Handler: standardHandler(func(c *value.Calc, call *registry.Call) (geom.StandardConic, error) {
				return geom.HyperbolaStandard(c, call.Number("a"), call.Number("b"))
			}),
		},
		{
			Descriptor: registry.Descriptor{
				ID: "line_conic_intersection", Domain: Conics, Label: "Line and conic intersection",
				Args: append(conicArgs(), required("line", registry.LineArg, lineHelp), window),
				Presets: []registry.Preset{preset("ellipse", map[string]any{
					"a": 1, "c": 4, "f": -4, "line": map[string]any{"slope": 0, "intercept": "1/2"},
				})},
			},
			Handler: lineConicIntersection,
		},
	}
}

func conicFromArgs(call *registry.Call) (geom.Conic, error) {
	vs := make([]value.Value, len(conicCoefficients))
	for i, name := range conicCoefficients {
		vs[i] = call.Number(name)
	}
	return geom.NewConic(call.Calc, vs[0], vs[1], vs[2], vs[3], vs[4], vs[5])
}

// plotConic samples the implicit curve over a square window.
func plotConic(call *registry.Call, k geom.Conic, lo, hi float64, opts ...plot.Opt) {
	l, err := geom.NewLocus(k.Expr(), geom.Rect{XMin: lo, XMax: hi, YMin: lo, YMax: hi}, call.Settings.MaxGrid)
	if err != nil {
		return
	}
	call.Plot.Scatter(slices.Collect(l.Samples()), opts...)
}

func classifyConic(call *registry.Call) error {
	c := call.Calc
	k, err := conicFromArgs(call)
	if err != nil {
		return err
	}
	call.Step("equation", "%s", k.Equation(c))
	call.Step("discriminant", "B^2 - 4AC = %s", k.Discriminant)
	call.Step("determinant", "det of the 3x3 conic matrix = %s", k.Delta)
	call.Warn(k.Notes...)
	switch {
	case k.Circle:
		call.Step("classification", "B^2 - 4AC < 0 with A = C and B = 0: circle")
	case k.Kind == geom.Ellipse:
		call.Step("classification", "B^2 - 4AC < 0: ellipse")
	case k.Kind == geom.Hyperbola:
		call.Step("classification", "B^2 - 4AC > 0: hyperbola")
	case k.Kind == geom.Parabola:
		call.Step("classification", "B^2 - 4AC = 0: parabola")
	default:
		call.Step("classification", "degenerate conic")
	}
	call.Set("kind", k.Kind)
	call.Set("circle", k.Circle)
	call.Set("discriminant", k.Discriminant)
	call.Set("determinant", k.Delta)
	call.Set("equation", k.Equation(c))
	if theta := k.Rotation(c); c.Sign(theta) != 0 {
		call.Set("rotation", angleDegrees(c, theta))
		call.Step("rotation", "rotating by theta = %s removes the xy term", value.Describe(theta))
	}
	if k.Kind == geom.Ellipse || k.Kind == geom.Hyperbola {
		if ctr, err := k.Center(c); err == nil {
			ctr = ctr.Named("C")
			call.Set("center", ctr)
			plotPoints(call, red, ctr)
		}
	}
	lo, hi := call.Interval("window").Floats()
	plotConic(call, k, lo, hi, plot.Color(blue), plot.Label(string(k.Kind)))
	return nil
}

func standardHandler(build func(*value.Calc, *registry.Call) (geom.StandardConic, error)) registry.Handler {
	return func(call *registry.Call) error {
		c := call.Calc
		sc, err := build(c, call)
		if err != nil {
			return err
		}
		describeStandard(call, sc)
		xs, ys := standardSamples(c, sc, call.Settings.Samples)
		call.Plot.Curve(xs, ys, plot.Color(blue), plot.Label(string(sc.Kind)))
		plotStandardFeatures(call, sc)
		return nil
	}
}

func describeStandard(call *registry.Call, sc geom.StandardConic) {
	c := call.Calc
	call.Step("equation", "%s", sc.Conic.Equation(c))
	call.Step("eccentricity", "e = %s", value.Describe(sc.Eccentricity))
	for _, f := range sc.Foci {
		call.Step("focus", "%s", f)
	}
	for _, d := range sc.Directrices {
		call.Step("directrix", "%s", d.Equation(c))
	}
	call.Step("latus rectum", "length %s", value.Describe(sc.LatusRectum))

	lines := func(ls []geom.Line) []map[string]any {
		out := make([]map[string]any, len(ls))
		for i, l := range ls {
			out[i] = lineInfo(c, l)
		}
		return out
	}
	call.Set("kind", sc.Kind)
	call.Set("equation", sc.Conic.Equation(c))
	call.Set("vertices", sc.Vertices)
	call.Set("foci", sc.Foci)
	call.Set("directrices", lines(sc.Directrices))
	call.Set("axis", lineInfo(c, sc.Axis))
	call.Set("eccentricity", sc.Eccentricity)
	call.Set("latus_rectum", sc.LatusRectum)
	if len(sc.Asymptotes) > 0 {
		call.Set("asymptotes", lines(sc.Asymptotes))
		for _, a := range sc.Asymptotes {
			call.Step("asymptote", "%s", a.Equation(c))
		}
	}
	if sc.Kind != geom.Parabola {
		call.Set("major_axis", sc.Major)
		call.Set("minor_axis", sc.Minor)
	}
}

func plotStandardFeatures(call *registry.Call, sc geom.StandardConic) {
	plotPoints(call, red, sc.Vertices...)
	plotPoints(call, green, sc.Foci...)
	for _, d := range sc.Directrices {
		call.Plot.Line(d, plot.Color(grey), plot.Dashed(), plot.Label("directrix"))
	}
	for _, a := range sc.Asymptotes {
		call.Plot.Line(a, plot.Color(orange), plot.Dotted(), plot.Label("asymptote"))
	}
}

// standardSamples parametrises a conic in standard position. Hyperbola
// branches are separated by a NaN sample so the plot splits them.
func standardSamples(c *value.Calc, sc geom.StandardConic, n int) (xs, ys []float64) {
	k := sc.Conic
	switch sc.Kind {
	case geom.Parabola:
		// y^2 = 4ax has D != 0, x^2 = 4ay has E != 0
		if c.Sign(k.D) != 0 {
			a := -k.D.Float() / 4
			for i := 0; i <= n; i++ {
				t := -3 + 6*float64(i)/float64(n)
				xs, ys = append(xs, a*t*t), append(ys, 2*a*t)
			}
			return xs, ys
		}
		a := -k.E.Float() / 4
		for i := 0; i <= n; i++ {
			t := -3 + 6*float64(i)/float64(n)
			xs, ys = append(xs, 2*a*t), append(ys, a*t*t)
		}
	case geom.Ellipse:
		a, b := math.Sqrt(k.C.Float()), math.Sqrt(k.A.Float())
		for i := 0; i <= n; i++ {
			t := 2 * math.Pi * float64(i) / float64(n)
			xs, ys = append(xs, a*math.Cos(t)), append(ys, b*math.Sin(t))
		}
	case geom.Hyperbola:
		a, b := math.Sqrt(-k.C.Float()), math.Sqrt(k.A.Float())
		for _, side := range []float64{1, -1} {
			for i := 0; i <= n/2; i++ {
				t := -2 + 4*float64(i)/float64(n/2)
				xs, ys = append(xs, side*a*math.Cosh(t)), append(ys, b*math.Sinh(t))
			}
			xs, ys = append(xs, math.NaN()), append(ys, math.NaN())
		}
	}
	return xs, ys
}

func lineConicIntersection(call *registry.Call) error {
	c := call.Calc
	k, err := conicFromArgs(call)
	if err != nil {
		return err
	}
	l := call.Line("line")
	call.Step("substitute", "put (x, y) = %s + t*(%s, %s) into %s", l.P, l.DX, l.DY, k.Equation(c))
	pts, rel, err := geom.IntersectConicLine(c, k, l)
	if err != nil {
		return err
	}
	call.Set("relation", rel)
	call.Set("kind", k.Kind)
	switch rel {
	case geom.Tangent:
		call.Step("quadratic", "the quadratic in t has a double root")
		call.Warn(diag.Warning(diag.Degenerate, "line is tangent to the conic"))
	case geom.Disjoint:
		call.Step("quadratic", "the quadratic in t has no real roots")
	default:
		call.Step("quadratic", "%d real root(s)", len(pts))
	}
	lo, hi := call.Interval("window").Floats()
	plotConic(call, k, lo, hi, plot.Color(blue))
	call.Plot.Line(l, plot.Color(orange))
	return setPoints(call, pts)
}
