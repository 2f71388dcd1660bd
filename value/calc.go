package value

import (
	"fmt"
	"math"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/symbolic"
)

// DefaultMaxNodes bounds exact expression growth before falling back.
const DefaultMaxNodes = 96

// Calc performs arithmetic for one operation invocation. It carries the
// tolerance and node budget and records every exact-to-approximate
// fallback it had to make. A Calc is not safe for concurrent use.
type Calc struct {
	Tol      Tolerance
	MaxNodes int

	fallbacks []diag.Diagnostic
	seen      map[string]bool
}

func NewCalc(tol Tolerance, maxNodes int) *Calc {
	if tol.Eps <= 0 {
		tol = DefaultTolerance
	}
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	return &Calc{Tol: tol, MaxNodes: maxNodes}
}

// Fallbacks returns the symbolic_fallback diagnostics recorded so far.
func (c *Calc) Fallbacks() []diag.Diagnostic {
	return append([]diag.Diagnostic(nil), c.fallbacks...)
}

func (c *Calc) fallback(format string, args ...any) {
	d := diag.Warning(diag.SymbolicFallback, format, args...)
	if c.seen == nil {
		c.seen = map[string]bool{}
	}
	if c.seen[d.Detail] {
		return
	}
	c.seen[d.Detail] = true
	c.fallbacks = append(c.fallbacks, d)
}

// exact finalises an exact result, degrading to float64 when the simplified
// expression outgrows the node budget.
func (c *Calc) exact(e symbolic.Expr) Value {
	e = symbolic.Expand(e)
	if n := symbolic.Size(e); n > c.MaxNodes {
		c.fallback("exact expression grew to %d nodes (limit %d); continuing in float64", n, c.MaxNodes)
		f, _ := symbolic.Float(e)
		return Approx(f)
	}
	return Value{expr: e}
}

func bothExact(vs ...Value) bool {
	for _, v := range vs {
		if v.expr == nil {
			return false
		}
	}
	return true
}

func (c *Calc) Add(a, b Value) Value {
	if bothExact(a, b) {
		return c.exact(symbolic.AddOf(a.expr, b.expr))
	}
	return Approx(a.Float() + b.Float())
}

func (c *Calc) Sub(a, b Value) Value {
	if bothExact(a, b) {
		return c.exact(symbolic.Subtract(a.expr, b.expr))
	}
	return Approx(a.Float() - b.Float())
}

func (c *Calc) Mul(a, b Value) Value {
	if bothExact(a, b) {
		return c.exact(symbolic.MulOf(a.expr, b.expr))
	}
	return Approx(a.Float() * b.Float())
}

// Sum adds any number of values.
func (c *Calc) Sum(vs ...Value) Value {
	acc := Int(0)
	for _, v := range vs {
		acc = c.Add(acc, v)
	}
	return acc
}

// Product multiplies any number of values.
func (c *Calc) Product(vs ...Value) Value {
	acc := Int(1)
	for _, v := range vs {
		acc = c.Mul(acc, v)
	}
	return acc
}

// Div fails with a degenerate error when the divisor is zero within tolerance.
func (c *Calc) Div(a, b Value) (Value, error) {
	if c.IsZero(b) {
		return Value{}, diag.Degen("division by %s", b)
	}
	if bothExact(a, b) {
		return c.exact(symbolic.MulOf(a.expr, symbolic.Recip(b.expr))), nil
	}
	return Approx(a.Float() / b.Float()), nil
}

func (c *Calc) Neg(a Value) Value {
	if a.expr != nil {
		return Value{expr: symbolic.Neg(a.expr)}
	}
	return Approx(-a.f)
}

func (c *Calc) Square(a Value) Value { return c.Mul(a, a) }

// Scale multiplies by a small rational p/q.
func (c *Calc) Scale(a Value, p, q int64) Value { return c.Mul(a, Frac(p, q)) }

// Sqrt rejects negative radicands beyond tolerance and clamps the rest to 0.
func (c *Calc) Sqrt(a Value) (Value, error) {
	switch c.Sign(a) {
	case 0:
		return Int(0), nil
	case -1:
		return Value{}, diag.Invalid("square root of negative value %s", a)
	}
	if a.expr != nil {
		return c.exact(symbolic.SqrtOf(a.expr)), nil
	}
	return Approx(math.Sqrt(a.f)), nil
}

// Hypot returns sqrt(a^2 + b^2).
func (c *Calc) Hypot(a, b Value) Value {
	r, err := c.Sqrt(c.Add(c.Square(a), c.Square(b)))
	if err != nil {
		return Approx(math.Hypot(a.Float(), b.Float()))
	}
	return r
}

func (c *Calc) Abs(a Value) Value {
	if c.Sign(a) < 0 {
		return c.Neg(a)
	}
	return a
}

// Apply evaluates a named function, exactly when the argument is exact.
func (c *Calc) Apply(name string, a Value) Value {
	if a.expr != nil {
		e, err := symbolic.FuncOf(name, a.expr)
		if err == nil {
			v := c.exact(e)
			if v.IsFinite() {
				return v
			}
		}
	}
	e, err := symbolic.FuncOf(name, symbolic.S("t"))
	if err != nil {
		return Approx(math.NaN())
	}
	f, _ := symbolic.Eval(e, map[string]float64{"t": a.Float()})
	return Approx(f)
}

func (c *Calc) Sin(a Value) Value { return c.Apply("sin", a) }
func (c *Calc) Cos(a Value) Value { return c.Apply("cos", a) }

// Atan2 returns the angle of (x, y) in (-pi, pi].
func (c *Calc) Atan2(y, x Value) Value {
	if !bothExact(x, y) {
		return Approx(math.Atan2(y.Float(), x.Float()))
	}
	sx, sy := c.Sign(x), c.Sign(y)
	switch {
	case sx == 0 && sy == 0:
		return Int(0)
	case sx == 0:
		return c.Scale(Pi, int64(sy), 2)
	case sy == 0 && sx > 0:
		return Int(0)
	case sy == 0:
		return Pi
	}
	ratio, err := c.Div(y, x)
	if err != nil {
		return Approx(math.Atan2(y.Float(), x.Float()))
	}
	base := c.Apply("atan", ratio)
	if sx > 0 {
		return base
	}
	if sy > 0 {
		return c.Add(base, Pi)
	}
	return c.Sub(base, Pi)
}

// Acos clamps arguments within tolerance of [-1, 1].
func (c *Calc) Acos(a Value) (Value, error) {
	f := a.Float()
	switch {
	case c.Tol.Close(f, 1):
		return Int(0), nil
	case c.Tol.Close(f, -1):
		return Pi, nil
	case f > 1 || f < -1:
		return Value{}, diag.Invalid("acos argument %s outside [-1, 1]", a)
	}
	return c.Apply("acos", a), nil
}

// Degrees converts radians to degrees.
func (c *Calc) Degrees(rad Value) Value {
	d, _ := c.Div(c.Mul(rad, Int(180)), Pi)
	return d
}

// Radians converts degrees to radians.
func (c *Calc) Radians(deg Value) Value {
	return c.Mul(deg, Value{expr: symbolic.MulOf(symbolic.F(1, 180), symbolic.Pi)})
}

// Sign returns -1, 0 or 1; values within tolerance of zero are 0.
func (c *Calc) Sign(a Value) int {
	if a.expr != nil {
		if n, ok := symbolic.NumValue(a.expr); ok && n.IsZero() {
			return 0
		}
	}
	f := a.Float()
	switch {
	case math.IsNaN(f):
		return 0
	case c.Tol.Zero(f):
		return 0
	case f < 0:
		return -1
	}
	return 1
}

// IsZero reports whether a is zero. Exact zero is a fast path; anything
// else is compared within tolerance scaled by the reference magnitudes.
func (c *Calc) IsZero(a Value, scale ...Value) bool {
	if a.expr != nil {
		if n, ok := symbolic.NumValue(a.expr); ok && n.IsZero() {
			return true
		}
	}
	fs := make([]float64, len(scale))
	for i, s := range scale {
		fs[i] = s.Float()
	}
	return c.Tol.Zero(a.Float(), fs...)
}

// Equal compares exactly when both values are exact and the difference
// simplifies to zero, otherwise within tol.
func Equal(a, b Value, tol Tolerance) bool {
	if bothExact(a, b) {
		d := symbolic.Expand(symbolic.Subtract(a.expr, b.expr))
		if n, ok := symbolic.NumValue(d); ok && n.IsZero() {
			return true
		}
	}
	return tol.Close(a.Float(), b.Float())
}

// Equal compares under the calculator's tolerance.
func (c *Calc) Equal(a, b Value) bool { return Equal(a, b, c.Tol) }

// Simplify applies the trigonometric identities and expansion to an exact
// value. When the simplified form outgrows the node budget the input is
// kept and a symbolic_fallback is recorded. Approximate values pass through.
func (c *Calc) Simplify(a Value) Value {
	if a.expr == nil {
		return a
	}
	s := symbolic.TrigSimplify(a.expr)
	if n := symbolic.Size(s); n > c.MaxNodes {
		c.fallback("simplified form of %s has %d nodes (limit %d); kept as is", a.expr, n, c.MaxNodes)
		return a
	}
	if symbolic.Size(s) > symbolic.Size(a.expr) {
		return a
	}
	return Value{expr: s}
}

// Compare orders a and b, treating values within tolerance as equal.
func (c *Calc) Compare(a, b Value) int {
	if c.Equal(a, b) {
		return 0
	}
	if a.Float() < b.Float() {
		return -1
	}
	return 1
}

func (c *Calc) Less(a, b Value) bool { return c.Compare(a, b) < 0 }

// Min returns the smaller of a and b.
func (c *Calc) Min(a, b Value) Value {
	if c.Less(b, a) {
		return b
	}
	return a
}

// Max returns the larger of a and b.
func (c *Calc) Max(a, b Value) Value {
	if c.Less(a, b) {
		return b
	}
	return a
}

// Check rejects non-finite values with an invalid argument error.
func (c *Calc) Check(name string, v Value) error {
	if !v.IsFinite() {
		return diag.Invalid("%s is not a finite number", name)
	}
	return nil
}

// Describe formats a value with its float approximation when exact.
func Describe(v Value) string {
	if v.IsExact() {
		if _, ok := symbolic.NumValue(v.expr); ok {
			return v.String()
		}
		return fmt.Sprintf("%s ≈ %s", v.String(), formatFloat(v.Float()))
	}
	return v.String()
}

// Exact wraps a constant expression under the node budget and rejects
// expressions that evaluate to a non-finite number.
func (c *Calc) Exact(e symbolic.Expr) (Value, error) {
	v, err := Exact(e)
	if err != nil {
		return Value{}, err
	}
	v = c.exact(v.expr)
	if !v.IsFinite() {
		return Value{}, diag.Invalid("%s is undefined", e)
	}
	return v, nil
}
