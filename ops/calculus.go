package ops

import (
	"fmt"
	"math"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/plot"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/symbolic"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Calculus
// ============================================================

const solveStep = "solve f'(x) = 0"

func calculusOps() []registry.Entry {
	fx := required("expression", registry.Expression, "f(x)")
	window := optional("domain", registry.Interval, []any{-5, 5}, "x range")
	return []registry.Entry{
		{
			Descriptor: registry.Descriptor{
				ID: "plot_function", Domain: Calculus, Label: "Plot a function",
				Args: []registry.ArgSpec{fx, window, optional("derivative", registry.Bool, false, "overlay f'(x)")},
				Presets: []registry.Preset{
					preset("cubic with slope", map[string]any{"expression": "x^3 - 3*x", "derivative": true}),
					preset("damped", map[string]any{"expression": "exp(-x/4)*sin(2*x)", "domain": []any{0, 10}}),
				},
			},
			Handler: plotFunction,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "derivative", Domain: Calculus, Label: "Derivative",
				Args: []registry.ArgSpec{
					fx,
					between(optional("order", registry.Integer, 1, "n-th derivative"), 1, 6),
					optional("at", registry.Number, nil, "evaluate at x"),
					window,
				},
				Presets: []registry.Preset{
					preset("product rule", map[string]any{"expression": "x^2*sin(x)", "at": "pi"}),
					preset("second", map[string]any{"expression": "ln(x)", "order": 2, "at": 1, "domain": []any{"1/10", 5}}),
				},
			},
			Handler: derivative,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "tangent_line", Domain: Calculus, Label: "Tangent and normal at a point",
				Args:    []registry.ArgSpec{fx, required("x0", registry.Number, "point of tangency"), window},
				Presets: []registry.Preset{preset("parabola", map[string]any{"expression": "x^2", "x0": 1})},
			},
			Handler: tangentLine,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "definite_integral", Domain: Calculus, Label: "Definite integral",
				Args: []registry.ArgSpec{
					fx,
					required("lower", registry.Number, "a"),
					required("upper", registry.Number, "b"),
				},
				Presets: []registry.Preset{
					preset("polynomial", map[string]any{"expression": "x^2", "lower": 0, "upper": 3}),
					preset("sine arch", map[string]any{"expression": "sin(x)", "lower": 0, "upper": "pi"}),
					preset("gaussian", map[string]any{"expression": "exp(-x^2)", "lower": -2, "upper": 2}),
				},
			},
			Handler: definiteIntegral,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "critical_points", Domain: Calculus, Label: "Critical points",
				Description: "Solves f'(x) = 0 on the domain and classifies each point by the second derivative.",
				Args:        []registry.ArgSpec{fx, optional("domain", registry.Interval, []any{-10, 10}, "search range")},
				Presets: []registry.Preset{
					preset("cubic", map[string]any{"expression": "x^3 - 3*x"}),
					preset("trig", map[string]any{"expression": "sin(x) + x/2", "domain": []any{0, "2*pi"}}),
				},
			},
			Handler: criticalPoints,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "taylor_polynomial", Domain: Calculus, Label: "Taylor polynomial",
				Args: []registry.ArgSpec{
					fx,
					optional("center", registry.Number, 0, "expansion point a"),
					between(optional("order", registry.Integer, 3, "degree"), 0, 12),
					window,
				},
				Presets: []registry.Preset{
					preset("exp", map[string]any{"expression": "exp(x)", "order": 4}),
					preset("cos", map[string]any{"expression": "cos(x)", "order": 6, "domain": []any{"-2*pi", "2*pi"}}),
				},
			},
			Handler: taylorPolynomial,
		},
	}
}

func function(call *registry.Call) (geom.Function, error) {
	return geom.NewFunction(call.Expr("expression"), "x")
}

func curve(call *registry.Call, f geom.Function, lo, hi float64, opts ...plot.Opt) {
	xs, ys := f.Samples(lo, hi, call.Settings.Samples)
	call.Plot.Curve(xs, ys, opts...)
}

func plotFunction(call *registry.Call) error {
	f, err := function(call)
	if err != nil {
		return err
	}
	lo, hi := call.Interval("domain").Floats()
	call.Step("function", "f(x) = %s", f)
	call.Set("function", f.String())
	call.Set("latex", f.LaTeX())
	if y0, err := f.At(call.Calc, value.Int(0)); err == nil && lo <= 0 && 0 <= hi {
		call.Set("y_intercept", y0)
		call.Plot.Point(geom.NewPoint(value.Int(0), y0).Named("Y"), plot.Color(green))
	}
	curve(call, f, lo, hi, plot.Color(blue), plot.Label("f(x)"))
	if call.Bool("derivative") {
		d := f.Derivative()
		call.Step("derivative", "f'(x) = %s", d)
		call.Set("derivative", d.String())
		curve(call, d, lo, hi, plot.Color(orange), plot.Dashed(), plot.Label("f'(x)"))
	}
	return nil
}

func derivative(call *registry.Call) error {
	f, err := function(call)
	if err != nil {
		return err
	}
	n := call.Int("order")
	d := f
	for i := 1; i <= n; i++ {
		d = d.Derivative()
		call.Step(fmt.Sprintf("order %d", i), "%s = %s", primes(i), d)
	}
	call.Set("function", f.String())
	call.Set("derivative", d.String())
	call.Set("latex", d.LaTeX())
	call.Set("order", n)
	if call.Has("at") {
		x := call.Number("at")
		v, err := d.At(call.Calc, x)
		if err != nil {
			return err
		}
		v = call.Calc.Simplify(v)
		call.Step("evaluate", "%s at x = %s is %s", primes(n), x, value.Describe(v))
		call.Set("value", v)
	}
	lo, hi := call.Interval("domain").Floats()
	curve(call, f, lo, hi, plot.Color(blue), plot.Label("f(x)"))
	curve(call, d, lo, hi, plot.Color(orange), plot.Label(primes(n)+"(x)"))
	return nil
}

func primes(n int) string {
	if n <= 3 {
		return "f" + "'''"[:n]
	}
	return fmt.Sprintf("f^(%d)", n)
}

func tangentLine(call *registry.Call) error {
	c := call.Calc
	f, err := function(call)
	if err != nil {
		return err
	}
	x0 := call.Number("x0")
	y0, err := f.At(c, x0)
	if err != nil {
		return err
	}
	m, err := f.Derivative().At(c, x0)
	if err != nil {
		return diag.Invalid("f is not differentiable at x = %s", x0)
	}
	p := geom.NewPoint(x0, y0).Named("P")
	call.Step("point", "f(%s) = %s", x0, value.Describe(y0))
	call.Step("slope", "f'(%s) = %s", x0, value.Describe(m))
	tan, err := geom.LineFromPointDirection(c, p, value.Int(1), m)
	if err != nil {
		return err
	}
	norm := geom.PerpendicularThrough(c, tan, p)
	call.Step("tangent", "y - %s = %s (x - %s)", y0, m, x0)
	call.Set("point", p)
	call.Set("slope", m)
	call.Set("tangent", lineInfo(c, tan))
	call.Set("normal", lineInfo(c, norm))
	if c.IsZero(m) {
		call.Step("normal", "horizontal tangent, the normal is x = %s", x0)
	}
	lo, hi := call.Interval("domain").Floats()
	curve(call, f, lo, hi, plot.Color(blue), plot.Label("f(x)"))
	call.Plot.Line(tan, plot.Color(red), plot.Label("tangent"))
	call.Plot.Line(norm, plot.Color(grey), plot.Dashed(), plot.Label("normal"))
	call.Plot.Point(p, plot.Color(red))
	return nil
}

func definiteIntegral(call *registry.Call) error {
	c := call.Calc
	f, err := function(call)
	if err != nil {
		return err
	}
	a, b := call.Number("lower"), call.Number("upper")
	lo, hi := a.Float(), b.Float()
	if c.Equal(a, b) {
		call.Step("bounds", "equal bounds give 0")
		call.Set("value", value.Int(0))
		call.Set("method", "trivial")
		return nil
	}
	xs, ys := f.Samples(math.Min(lo, hi), math.Max(lo, hi), call.Settings.Samples)
	for i, y := range ys {
		if math.IsNaN(y) {
			return diag.Degen("f is undefined at x ≈ %.6g inside the interval", xs[i])
		}
	}
	if poles := f.Poles(math.Min(lo, hi), math.Max(lo, hi), call.Roots()); len(poles) > 0 {
		return diag.Degen("f has a pole at x ≈ %.6g inside the interval; the integral diverges", poles[0])
	}
	call.Step("integral", "∫ from %s to %s of %s dx", a, b, f)
	call.Plot.Area(xs, ys, plot.Fill(blue, 0.25))
	curve(call, f, math.Min(lo, hi), math.Max(lo, hi), plot.Color(blue), plot.Label("f(x)"))

	if anti, ok := symbolic.Integrate(f.Expr, "x"); ok {
		F := geom.Function{Expr: anti, Var: "x"}
		fb, errB := F.At(c, b)
		fa, errA := F.At(c, a)
		if errA == nil && errB == nil {
			v := c.Sub(fb, fa)
			call.Step("antiderivative", "F(x) = %s", F)
			call.Step("evaluate", "F(%s) - F(%s) = %s", b, a, value.Describe(v))
			call.Set("antiderivative", F.String())
			call.Set("value", v)
			call.Set("method", "symbolic")
			return nil
		}
	}
	call.Warnf(diag.SymbolicFallback, "no antiderivative found; Simpson's rule on %d subintervals", call.Settings.Samples)
	v := value.Approx(symbolic.Simpson(f.Func(), lo, hi, call.Settings.Samples))
	call.Step("simpson", "composite Simpson with n = %d gives %s", call.Settings.Samples, v)
	call.Set("value", v)
	call.Set("method", "numeric")
	return nil
}

// exactCritical solves f' = 0 in closed form when f' is a polynomial of
// degree at most 2.
func exactCritical(call *registry.Call, d geom.Function) ([]value.Value, bool, error) {
	deg := d.Degree()
	if deg < 0 || deg > 2 {
		return nil, false, nil
	}
	cs, err := symbolic.PolyCoeffs(d.Expr, "x")
	if err != nil {
		return nil, false, nil
	}
	var roots []symbolic.Expr
	switch deg {
	case 0:
		if symbolic.IsZero(cs[0]) {
			return nil, true, diag.Degen("f is constant; every point is critical")
		}
		call.Step(solveStep, "f'(x) = %s never vanishes", d)
		return nil, true, nil
	case 1:
		r, err := symbolic.SolveLinear(cs[1], cs[0])
		if err != nil {
			return nil, false, nil
		}
		call.Step(solveStep, "linear: x = %s", r)
		roots = []symbolic.Expr{r}
	case 2:
		sol, err := symbolic.SolveQuadratic(cs[2], cs[1], cs[0], call.Calc.Tol.Eps)
		if err != nil {
			return nil, false, nil
		}
		call.Step(solveStep, "quadratic with discriminant %s", sol.Discriminant)
		roots = sol.Roots
	}
	out := make([]value.Value, 0, len(roots))
	for _, r := range roots {
		v, err := call.Calc.Exact(r)
		if err != nil {
			return nil, false, nil
		}
		out = append(out, v)
	}
	return out, true, nil
}

func criticalPoints(call *registry.Call) error {
	c := call.Calc
	f, err := function(call)
	if err != nil {
		return err
	}
	iv := call.Interval("domain")
	lo, hi := iv.Floats()
	d := f.Derivative()
	dd := d.Derivative()
	call.Step("derivative", "f'(x) = %s", d)

	xs, exact, err := exactCritical(call, d)
	if err != nil {
		call.Step(solveStep, "f'(x) = 0 identically")
		call.Warn(diag.AsDiagnostic(err))
		call.Set("critical_points", []map[string]any{})
		return nil
	}
	if !exact {
		call.Step(solveStep, "bounded numeric search on [%s, %s]", iv.Lo, iv.Hi)
		call.Warnf(diag.SymbolicFallback, "f'(x) = %s is not a polynomial of degree ≤ 2; roots located numerically", d)
		for _, r := range symbolic.FindRoots(d.Func(), lo, hi, call.Roots()) {
			xs = append(xs, value.Approx(r.X))
		}
	}

	points := []map[string]any{}
	var marks []geom.Point
	for _, x := range xs {
		if xf := x.Float(); xf < lo || xf > hi {
			continue
		}
		y, err := f.At(c, x)
		if err != nil {
			continue
		}
		kind := classifyCritical(c, d, dd, x)
		call.Step("classify", "x = %s: f(x) = %s, %s", value.Describe(x), value.Describe(y), kind)
		points = append(points, map[string]any{"x": x, "y": y, "kind": kind})
		marks = append(marks, geom.NewPoint(x, y).Named(kind))
	}
	call.Set("derivative", d.String())
	call.Set("critical_points", points)
	curve(call, f, lo, hi, plot.Color(blue), plot.Label("f(x)"))
	plotPoints(call, red, marks...)
	return nil
}

// classifyCritical uses the second derivative, then the sign change of f'.
func classifyCritical(c *value.Calc, d, dd geom.Function, x value.Value) string {
	if s, err := dd.At(c, x); err == nil {
		switch c.Sign(s) {
		case 1:
			return "minimum"
		case -1:
			return "maximum"
		}
	}
	h := 1e-4 * math.Max(1, math.Abs(x.Float()))
	l, r := d.Eval(x.Float()-h), d.Eval(x.Float()+h)
	switch {
	case l < 0 && r > 0:
		return "minimum"
	case l > 0 && r < 0:
		return "maximum"
	}
	return "inflection"
}

func taylorPolynomial(call *registry.Call) error {
	c := call.Calc
	f, err := function(call)
	if err != nil {
		return err
	}
	a := call.Number("center")
	n := call.Int("order")
	if _, err := f.At(c, a); err != nil {
		return diag.Invalid("f is undefined at the centre %s", a)
	}
	p := symbolic.TaylorSeries(f.Expr, "x", a.Expr(), n)
	for _, name := range symbolic.SymbolNames(p) {
		if name != "x" {
			return diag.Errorf(diag.Internal, "Taylor expansion left symbol %s", name)
		}
	}
	t := geom.Function{Expr: p, Var: "x"}
	if y := t.Eval(a.Float()); math.IsNaN(y) || math.IsInf(y, 0) {
		return diag.Invalid("f has no Taylor expansion of order %d at %s", n, a)
	}
	call.Step("expand", "sum over k = 0..%d of f^(k)(%s) (x - %s)^k / k!", n, a, a)
	call.Step("polynomial", "T%d(x) = %s", n, t)
	call.Set("polynomial", t.String())
	call.Set("latex", t.LaTeX())
	call.Set("center", a)
	call.Set("order", n)
	lo, hi := call.Interval("domain").Floats()
	curve(call, f, lo, hi, plot.Color(blue), plot.Label("f(x)"))
	curve(call, t, lo, hi, plot.Color(orange), plot.Dashed(), plot.Label(fmt.Sprintf("T%d", n)))
	if y, err := f.At(c, a); err == nil {
		call.Plot.Point(geom.NewPoint(a, y).Named("a"), plot.Color(red))
	}
	return nil
}
