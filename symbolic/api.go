package symbolic

import (
	"fmt"
	"math"
	"sort"
)

// ============================================================
// Top-level convenience functions
// ============================================================

func Simplify(e Expr) Expr { return e.Simplify() }

func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}

func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

func DiffN(expr Expr, varName string, n int) Expr {
	for range n {
		expr = Diff(expr, varName)
	}
	return expr
}

func Neg(e Expr) Expr          { return MulOf(N(-1), e) }
func Subtract(a, b Expr) Expr  { return AddOf(a, MulOf(N(-1), b)) }
func Square(e Expr) Expr       { return PowOf(e, N(2)) }
func Recip(e Expr) Expr        { return PowOf(e, N(-1)) }
func Equal(a, b Expr) bool     { return a.Simplify().Equal(b.Simplify()) }
func IsZero(e Expr) bool       { return isZeroExpr(e.Simplify()) }
func IsConstant(e Expr) bool   { return len(FreeSymbols(e)) == 0 }
func ToLaTeX(e Expr) string    { return e.LaTeX() }
func ToString(e Expr) string   { return e.String() }
func Type(e Expr) string       { return e.exprType() }
func NumValue(e Expr) (*Num, bool) {
	n, ok := e.Simplify().(*Num)
	return n, ok
}

// Quo returns a/b, failing when b is exactly zero.
func Quo(a, b Expr) (Expr, error) {
	if IsZero(b) {
		return nil, ErrDivByZero
	}
	return MulOf(a, PowOf(b, N(-1))), nil
}

// Float evaluates a constant expression in float64.
func Float(e Expr) (float64, error) { return e.evalf(nil) }

// Eval evaluates e with the given symbol bindings.
func Eval(e Expr, env map[string]float64) (float64, error) { return e.evalf(env) }

// Func1 compiles e into a float function of one variable. Evaluation
// errors surface as NaN.
func Func1(e Expr, varName string) func(float64) float64 {
	env := map[string]float64{}
	return func(x float64) float64 {
		env[varName] = x
		v, err := e.evalf(env)
		if err != nil {
			return math.NaN()
		}
		return v
	}
}

// Func2 compiles e into a float function of two variables.
func Func2(e Expr, xName, yName string) func(x, y float64) float64 {
	env := map[string]float64{}
	return func(x, y float64) float64 {
		env[xName] = x
		env[yName] = y
		v, err := e.evalf(env)
		if err != nil {
			return math.NaN()
		}
		return v
	}
}

// Size counts the nodes of e.
func Size(e Expr) int {
	switch v := e.(type) {
	case *Add:
		n := 1
		for _, t := range v.terms {
			n += Size(t)
		}
		return n
	case *Mul:
		n := 1
		for _, f := range v.factors {
			n += Size(f)
		}
		return n
	case *Pow:
		return 1 + Size(v.base) + Size(v.exp)
	case *Func:
		return 1 + Size(v.arg)
	}
	return 1
}

// ============================================================
// Free Symbols
// ============================================================

func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

// SymbolNames returns the free symbols of e in sorted order.
func SymbolNames(e Expr) []string {
	set := FreeSymbols(e)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

func contains(e Expr, varName string) bool {
	_, ok := FreeSymbols(e)[varName]
	return ok
}

// ============================================================
// Equation
// ============================================================

type Equation struct{ LHS, RHS Expr }

func Eq(lhs, rhs Expr) *Equation { return &Equation{LHS: lhs, RHS: rhs} }
func (e *Equation) String() string {
	return fmt.Sprintf("%s = %s", e.LHS.String(), e.RHS.String())
}
func (e *Equation) LaTeX() string { return e.LHS.LaTeX() + " = " + e.RHS.LaTeX() }

// Residual returns LHS - RHS.
func (e *Equation) Residual() Expr { return Subtract(e.LHS, e.RHS) }
