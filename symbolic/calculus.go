package symbolic

import (
	"math"
)

// ============================================================
// Integration (rule-based symbolic + numerical)
// ============================================================

// Integrate returns an antiderivative of expr with respect to varName, or
// false when no rule applies. Supported: polynomials, power rule, and
// sin, cos, exp, sec^2, 1/u for linear arguments u = a*x + b.
func Integrate(expr Expr, varName string) (Expr, bool) {
	expr = Expand(expr)
	terms := Terms(expr)
	out := make([]Expr, 0, len(terms))
	for _, t := range terms {
		it, ok := integrateTerm(t, varName)
		if !ok {
			return nil, false
		}
		out = append(out, it)
	}
	return AddOf(out...), true
}

func integrateTerm(t Expr, varName string) (Expr, bool) {
	x := S(varName)
	if !contains(t, varName) {
		return MulOf(t, x), true
	}
	c, rest := splitCoeff(t)
	var constPart []Expr
	var varPart []Expr
	factors := []Expr{rest}
	if m, ok := rest.(*Mul); ok {
		factors = m.factors
	}
	for _, f := range factors {
		if contains(f, varName) {
			varPart = append(varPart, f)
		} else {
			constPart = append(constPart, f)
		}
	}
	if len(varPart) != 1 {
		return nil, false
	}
	inner, ok := integrateFactor(varPart[0], varName)
	if !ok {
		return nil, false
	}
	return MulOf(append([]Expr{c, inner}, constPart...)...), true
}

// linearArg matches u = a*x + b with constant a != 0.
func linearArg(u Expr, varName string) (a Expr, ok bool) {
	cs, err := PolyCoeffs(u, varName)
	if err != nil || len(cs) != 2 || contains(cs[1], varName) || IsZero(cs[1]) {
		return nil, false
	}
	return cs[1], true
}

func integrateFactor(f Expr, varName string) (Expr, bool) {
	switch v := f.(type) {
	case *Sym:
		return MulOf(F(1, 2), PowOf(v, N(2))), true
	case *Pow:
		a, lin := linearArg(v.base, varName)
		if n, ok := v.exp.(*Num); ok && lin {
			if n.IsNegOne() {
				return MulOf(PowOf(a, N(-1)), LnOf(AbsOf(v.base))), true
			}
			k := numAdd(n, N(1))
			return MulOf(numRecip(k), PowOf(a, N(-1)), PowOf(v.base, k)), true
		}
		if b, ok := v.base.(*Num); ok && b.Sign() > 0 {
			if a, lin := linearArg(v.exp, varName); lin {
				return MulOf(f, PowOf(MulOf(a, LnOf(b)), N(-1))), true
			}
		}
		if fn, ok := v.base.(*Func); ok && fn.name == "cos" {
			if n, ok := v.exp.(*Num); ok && n.val.Cmp(N(-2).val) == 0 {
				if a, lin := linearArg(fn.arg, varName); lin {
					return MulOf(PowOf(a, N(-1)), TanOf(fn.arg)), true
				}
			}
		}
	case *Func:
		a, lin := linearArg(v.arg, varName)
		if !lin {
			return nil, false
		}
		inv := PowOf(a, N(-1))
		switch v.name {
		case "sin":
			return MulOf(N(-1), inv, CosOf(v.arg)), true
		case "cos":
			return MulOf(inv, SinOf(v.arg)), true
		case "exp":
			return MulOf(inv, ExpOf(v.arg)), true
		case "sinh":
			return MulOf(inv, CoshOf(v.arg)), true
		case "cosh":
			return MulOf(inv, SinhOf(v.arg)), true
		case "tan":
			return MulOf(N(-1), inv, LnOf(AbsOf(CosOf(v.arg)))), true
		case "ln":
			return MulOf(inv, Subtract(MulOf(v.arg, LnOf(v.arg)), v.arg)), true
		}
	}
	return nil, false
}

// Simpson integrates f over [a, b] with the composite Simpson rule on n
// subintervals (rounded up to even).
func Simpson(f func(float64) float64, a, b float64, n int) float64 {
	if n < 2 {
		n = 2
	}
	if n%2 == 1 {
		n++
	}
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		w := 4.0
		if i%2 == 0 {
			w = 2
		}
		sum += w * f(a+float64(i)*h)
	}
	return sum * h / 3
}

// ============================================================
// Taylor / Maclaurin series
// ============================================================

// TaylorSeries expands expr about a up to the given order.
func TaylorSeries(expr Expr, varName string, a Expr, order int) Expr {
	terms := []Expr{}
	current := expr
	factorial := N(1)
	shift := Subtract(S(varName), a)
	for k := 0; k <= order; k++ {
		if k > 0 {
			factorial = numMul(factorial, N(int64(k)))
		}
		coeff := MulOf(Sub(current, varName, a), numRecip(factorial))
		if !isZeroExpr(coeff) {
			terms = append(terms, MulOf(coeff, PowOf(shift, N(int64(k)))))
		}
		current = Diff(current, varName)
	}
	return Expand(AddOf(terms...))
}

// Sampled evaluates f on n+1 evenly spaced points of [lo, hi].
func Sampled(f func(float64) float64, lo, hi float64, n int) (xs, ys []float64) {
	if n < 1 {
		n = 1
	}
	xs = make([]float64, n+1)
	ys = make([]float64, n+1)
	for i := range xs {
		x := lo + (hi-lo)*float64(i)/float64(n)
		xs[i] = x
		ys[i] = f(x)
		if math.IsInf(ys[i], 0) {
			ys[i] = math.NaN()
		}
	}
	return xs, ys
}
