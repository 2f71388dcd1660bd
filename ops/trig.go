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
// Trigonometry
// ============================================================

var trigFuncs = []string{"sin", "cos", "tan", "cot", "sec", "csc"}

// poleClip hides the near-vertical jumps at the poles of tan, cot, sec
// and csc.
const poleClip = 50

// identityTol is the sampled error below which two sides are taken to agree.
const identityTol = 1e-9

func trigOps() []registry.Entry {
	fullTurn := []any{"-2*pi", "2*pi"}
	fn := func(def string) registry.ArgSpec {
		return registry.ArgSpec{Name: "func", Kind: registry.Choice, Default: def, Choices: trigFuncs, Help: "base function"}
	}
	return []registry.Entry{
		{
			Descriptor: registry.Descriptor{
				ID: "plot_trig", Domain: Trigonometry, Label: "Plot a trigonometric function",
				Args: []registry.ArgSpec{fn("sin"), optional("domain", registry.Interval, fullTurn, "x range")},
				Presets: []registry.Preset{
					preset("sine", map[string]any{"func": "sin"}),
					preset("tangent", map[string]any{"func": "tan"}),
				},
			},
			Handler: plotTrig,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "transform_trig", Domain: Trigonometry, Label: "Transformed trigonometric function",
				Description: "y = A f(Bx + C) + D with amplitude, period, phase shift and vertical shift.",
				Args: []registry.ArgSpec{
					fn("sin"),
					optional("amplitude", registry.Number, 1, "A"),
					nonZero(optional("frequency", registry.Number, 1, "B")),
					optional("phase", registry.Number, 0, "C"),
					optional("vertical", registry.Number, 0, "D"),
					optional("domain", registry.Interval, fullTurn, "x range"),
				},
				Presets: []registry.Preset{preset("2sin(2x + pi/2) + 1", map[string]any{
					"amplitude": 2, "frequency": 2, "phase": "pi/2", "vertical": 1,
				})},
			},
			Handler: transformTrig,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "verify_identity", Domain: Trigonometry, Label: "Verify a trigonometric identity",
				Args: []registry.ArgSpec{
					required("lhs", registry.Expression, "left-hand side in x"),
					required("rhs", registry.Expression, "right-hand side in x"),
					optional("domain", registry.Interval, fullTurn, "sampling range for the numeric check"),
				},
				Presets: []registry.Preset{
					preset("pythagorean", map[string]any{"lhs": "sin(x)^2 + cos(x)^2", "rhs": "1"}),
					preset("double angle", map[string]any{"lhs": "sin(2*x)", "rhs": "2*sin(x)*cos(x)"}),
					preset("false", map[string]any{"lhs": "sin(x)", "rhs": "cos(x)"}),
				},
			},
			Handler: verifyIdentity,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "solve_trig_equation", Domain: Trigonometry, Label: "Solve a trigonometric equation",
				Description: "Solves f(x) = 0 on the domain.",
				Args: []registry.ArgSpec{
					required("expression", registry.Expression, "f(x)"),
					optional("domain", registry.Interval, []any{0, "2*pi"}, "search range"),
				},
				Presets: []registry.Preset{
					preset("sin x = 1/2", map[string]any{"expression": "sin(x) - 1/2"}),
					preset("cos 2x", map[string]any{"expression": "cos(2*x)"}),
				},
			},
			Handler: solveTrigEquation,
		},
	}
}

// trigCurve samples y = f(x) and breaks the curve at poles.
func trigCurve(call *registry.Call, f geom.Function, lo, hi float64, clip bool, opts ...plot.Opt) {
	xs, ys := f.Samples(lo, hi, call.Settings.Samples)
	if clip {
		for i, y := range ys {
			if math.Abs(y) > poleClip {
				ys[i] = math.NaN()
			}
		}
	}
	call.Plot.Curve(xs, ys, opts...)
}

func hasPoles(name string) bool { return name != "sin" && name != "cos" }

// basePeriod is 2*pi, or pi for tan and cot.
func basePeriod(name string) value.Value {
	if name == "tan" || name == "cot" {
		return value.Pi
	}
	return value.TwoPi
}

func plotTrig(call *registry.Call) error {
	name := call.Text("func")
	f, err := geom.ParseFunction(name+"(x)", "x")
	if err != nil {
		return err
	}
	lo, hi := call.Interval("domain").Floats()
	call.Step("plot", "y = %s(x) on [%s, %s]", name, call.Interval("domain").Lo, call.Interval("domain").Hi)
	call.Set("function", f.String())
	call.Set("period", basePeriod(name))
	if !hasPoles(name) {
		call.Set("amplitude", value.Int(1))
		call.Set("range", []value.Value{value.Int(-1), value.Int(1)})
	}
	trigCurve(call, f, lo, hi, hasPoles(name), plot.Color(blue), plot.Label(name))
	return nil
}

func transformTrig(call *registry.Call) error {
	c := call.Calc
	name := call.Text("func")
	a, b, ph, v := call.Number("amplitude"), call.Number("frequency"), call.Number("phase"), call.Number("vertical")
	x := symbolic.S("x")
	inner := symbolic.AddOf(symbolic.MulOf(b.Expr(), x), ph.Expr())
	g, err := symbolic.FuncOf(name, inner)
	if err != nil {
		return diag.Invalid("%v", err)
	}
	f, err := geom.NewFunction(symbolic.AddOf(symbolic.MulOf(a.Expr(), g), v.Expr()), "x")
	if err != nil {
		return err
	}
	period, _ := c.Div(basePeriod(name), c.Abs(b))
	shift, _ := c.Div(c.Neg(ph), b)
	call.Step("form", "y = %s", f)
	call.Step("period", "T = %s / |B| = %s", basePeriod(name), value.Describe(period))
	call.Step("phase shift", "-C/B = %s", value.Describe(shift))
	call.Set("function", f.String())
	call.Set("period", period)
	call.Set("phase_shift", shift)
	call.Set("vertical_shift", v)
	if !hasPoles(name) {
		amp := c.Abs(a)
		call.Step("amplitude", "|A| = %s", amp)
		call.Set("amplitude", amp)
		call.Set("range", []value.Value{c.Sub(v, amp), c.Add(v, amp)})
	}
	if c.Sign(a) == 0 {
		call.Warnf(diag.Degenerate, "amplitude is zero; the graph is the line y = %s", v)
	}
	lo, hi := call.Interval("domain").Floats()
	base, _ := geom.ParseFunction(name+"(x)", "x")
	trigCurve(call, base, lo, hi, hasPoles(name), plot.Color(grey), plot.Dotted(), plot.Label(name+"(x)"))
	trigCurve(call, f, lo, hi, hasPoles(name), plot.Color(orange), plot.Label("transformed"))
	return nil
}

func verifyIdentity(call *registry.Call) error {
	lhs, err := geom.NewFunction(call.Expr("lhs"), "x")
	if err != nil {
		return err
	}
	rhs, err := geom.NewFunction(call.Expr("rhs"), "x")
	if err != nil {
		return err
	}
	diff := symbolic.Subtract(lhs.Expr, rhs.Expr)
	call.Step("difference", "(%s) - (%s)", lhs, rhs)
	if symbolic.TrigZero(diff) {
		call.Step("simplify", "rewriting through sin and cos and applying sin^2 + cos^2 = 1 gives 0")
		call.Set("identity", true)
		call.Set("method", "symbolic")
		return nil
	}
	simplified := symbolic.TrigSimplify(diff)
	call.Step("simplify", "the difference simplifies to %s, not identically 0", simplified)

	lo, hi := call.Interval("domain").Floats()
	fl, fr := lhs.Func(), rhs.Func()
	n := call.Settings.Samples
	maxErr, worst, checked := 0.0, math.NaN(), 0
	for i := 0; i <= n; i++ {
		x := lo + (hi-lo)*float64(i)/float64(n)
		l, r := fl(x), fr(x)
		if math.IsNaN(l) || math.IsNaN(r) || math.IsInf(l, 0) || math.IsInf(r, 0) {
			continue
		}
		checked++
		if e := math.Abs(l-r) / math.Max(1, math.Max(math.Abs(l), math.Abs(r))); e > maxErr {
			maxErr, worst = e, x
		}
	}
	if checked == 0 {
		return diag.Invalid("neither side is defined anywhere on the domain")
	}
	holds := maxErr <= identityTol
	call.Warnf(diag.SymbolicFallback, "identity decided by sampling %d points", checked)
	call.Step("sample", "max relative difference over %d samples = %.3g", checked, maxErr)
	call.Set("identity", holds)
	call.Set("method", "numeric")
	call.Set("max_error", value.Approx(maxErr))
	if !holds {
		call.Set("counterexample", value.Approx(worst))
	}
	trigCurve(call, lhs, lo, hi, true, plot.Color(blue), plot.Label("lhs"))
	trigCurve(call, rhs, lo, hi, true, plot.Color(orange), plot.Dashed(), plot.Label("rhs"))
	return nil
}

// piMultiple recognises x as p*pi/q for small q.
func piMultiple(x float64) (symbolic.Expr, bool) {
	for q := int64(1); q <= 12; q++ {
		p := math.Round(x * float64(q) / math.Pi)
		if math.Abs(p*math.Pi/float64(q)-x) <= 1e-9*math.Max(1, math.Abs(x)) {
			return symbolic.MulOf(symbolic.F(int64(p), q), symbolic.Pi), true
		}
	}
	return nil, false
}

func solveTrigEquation(call *registry.Call) error {
	c := call.Calc
	f, err := geom.NewFunction(call.Expr("expression"), "x")
	if err != nil {
		return err
	}
	iv := call.Interval("domain")
	lo, hi := iv.Floats()
	call.Step("equation", "%s = 0 on [%s, %s]", f, iv.Lo, iv.Hi)
	roots := symbolic.FindRoots(f.Func(), lo, hi, call.Roots())
	var sols []value.Value
	numeric := 0
	for _, r := range roots {
		if e, ok := piMultiple(r.X); ok {
			if res := symbolic.Sub(f.Expr, "x", e); symbolic.IsZero(res) || symbolic.TrigZero(res) {
				v, err := c.Exact(e)
				if err == nil {
					sols = append(sols, v)
					call.Step("root", "x = %s (exact)", v)
					continue
				}
			}
		}
		numeric++
		if !r.Converged {
			call.Warnf(diag.SymbolicFallback, "root near %.6g did not converge within %d iterations", r.X, call.Settings.MaxIterations)
		}
		sols = append(sols, value.Approx(r.X))
		call.Step("root", "x ≈ %.10g", r.X)
	}
	if numeric > 0 {
		call.Warnf(diag.SymbolicFallback, "%d root(s) located numerically", numeric)
	}
	if len(sols) == 0 {
		call.Step("roots", "no solution on the domain")
		sols = []value.Value{}
	}
	call.Set("solutions", sols)
	call.Set("count", len(sols))
	trigCurve(call, f, lo, hi, true, plot.Color(blue), plot.Label(fmt.Sprintf("y = %s", f)))
	pts := make([]geom.Point, len(sols))
	for i, s := range sols {
		pts[i] = geom.NewPoint(s, value.Int(0))
	}
	call.Plot.Points(pts, plot.Color(green))
	return nil
}
