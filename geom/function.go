package geom

import (
	"math"
	"strings"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/symbolic"
	"github.com/njchilds90/geographer/value"
)

// Function is a single-variable real expression.
type Function struct {
	Expr symbolic.Expr
	Var  string
}

// NewFunction rejects expressions with symbols other than v.
func NewFunction(e symbolic.Expr, v string) (Function, error) {
	if v == "" {
		v = "x"
	}
	var extra []string
	for _, name := range symbolic.SymbolNames(e) {
		if name != v {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		return Function{}, diag.Invalid("f(%s) = %s uses unknown symbols %s", v, e, strings.Join(extra, ", "))
	}
	return Function{Expr: e.Simplify(), Var: v}, nil
}

func ParseFunction(src, v string) (Function, error) {
	e, err := symbolic.Parse(src)
	if err != nil {
		return Function{}, diag.Errorf(diag.InvalidArgument, "%w", err)
	}
	return NewFunction(e, v)
}

func (f Function) String() string { return f.Expr.String() }
func (f Function) LaTeX() string  { return f.Expr.LaTeX() }

// Eval returns NaN where f is undefined.
func (f Function) Eval(x float64) float64 {
	return symbolic.Func1(f.Expr, f.Var)(x)
}

// Func returns f as a float64 closure.
func (f Function) Func() func(float64) float64 { return symbolic.Func1(f.Expr, f.Var) }

// At evaluates exactly at exact arguments.
func (f Function) At(c *value.Calc, x value.Value) (value.Value, error) {
	if x.IsExact() {
		return c.Exact(symbolic.Sub(f.Expr, f.Var, x.Expr()))
	}
	y := value.Approx(f.Eval(x.Float()))
	if !y.IsFinite() {
		return value.Value{}, diag.Invalid("f is undefined at %s = %s", f.Var, x)
	}
	return y, nil
}

func (f Function) Derivative() Function {
	return Function{Expr: symbolic.Expand(symbolic.Diff(f.Expr, f.Var)), Var: f.Var}
}

// Degree is the polynomial degree in Var, or -1.
func (f Function) Degree() int { return symbolic.Degree(f.Expr, f.Var) }

// Poles locates points of [lo, hi] where |f| grows without bound. They
// are the zeros of 1/f that f itself confirms to be large.
func (f Function) Poles(lo, hi float64, opt symbolic.RootOptions) []float64 {
	fn := f.Func()
	recip := func(x float64) float64 { return 1 / fn(x) }
	tol := opt.Tolerance
	if tol <= 0 {
		tol = 1e-12
	}
	bound := 1 / math.Sqrt(tol)
	var poles []float64
	for _, r := range symbolic.FindRoots(recip, lo, hi, opt) {
		if y := fn(r.X); math.IsNaN(y) || math.IsInf(y, 0) || math.Abs(y) >= bound {
			poles = append(poles, r.X)
		}
	}
	return poles
}

func (f Function) Samples(lo, hi float64, n int) (xs, ys []float64) {
	return symbolic.Sampled(f.Func(), lo, hi, n)
}
