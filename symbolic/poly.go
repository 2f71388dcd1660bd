package symbolic

import (
	"fmt"
)

// maxExpandTerms bounds the product expansion; larger products stay factored.
const maxExpandTerms = 512

// ============================================================
// Expansion
// ============================================================

// Expand distributes products over sums and expands small positive integer
// powers of sums.
func Expand(e Expr) Expr { return expandExpr(e.Simplify()).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandExpr(t)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expandExpr(f)
		}
		return distribute(factors)
	case *Pow:
		base := expandExpr(v.base)
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.Sign() > 0 {
			k := n.val.Num().Int64()
			if add, ok := base.(*Add); ok && k <= 12 {
				factors := make([]Expr, k)
				for i := range factors {
					factors[i] = add
				}
				return distribute(factors)
			}
		}
		return PowOf(base, v.exp)
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	}
	return e
}

func distribute(factors []Expr) Expr {
	acc := []Expr{N(1)}
	for _, f := range factors {
		fs := []Expr{f}
		if add, ok := f.(*Add); ok {
			fs = add.terms
		}
		if len(acc)*len(fs) > maxExpandTerms {
			return MulOf(factors...)
		}
		next := make([]Expr, 0, len(acc)*len(fs))
		for _, a := range acc {
			for _, b := range fs {
				next = append(next, MulOf(a, b))
			}
		}
		acc = []Expr{AddOf(next...)}
		if add, ok := acc[0].(*Add); ok {
			acc = add.terms
		}
	}
	return AddOf(acc...)
}

// Terms returns the summands of e, or e itself when it is not a sum.
func Terms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.Terms()
	}
	return []Expr{e}
}

// ============================================================
// Polynomial utilities
// ============================================================

// PolyCoeffs returns the coefficients of e as a polynomial in varName,
// lowest degree first. Coefficients may contain other symbols.
func PolyCoeffs(e Expr, varName string) ([]Expr, error) {
	coeffs := map[int]Expr{}
	maxDeg := 0
	for _, t := range Terms(Expand(e)) {
		c, k, err := monomial(t, varName)
		if err != nil {
			return nil, err
		}
		if prev, ok := coeffs[k]; ok {
			c = AddOf(prev, c)
		}
		coeffs[k] = c
		if k > maxDeg {
			maxDeg = k
		}
	}
	out := make([]Expr, maxDeg+1)
	for i := range out {
		if c, ok := coeffs[i]; ok {
			out[i] = c
		} else {
			out[i] = N(0)
		}
	}
	for len(out) > 1 && IsZero(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out, nil
}

// Degree returns the degree of e in varName, or -1 when e is not a
// polynomial in varName.
func Degree(e Expr, varName string) int {
	cs, err := PolyCoeffs(e, varName)
	if err != nil {
		return -1
	}
	return len(cs) - 1
}

// monomial splits c*v^k with c free of v.
func monomial(t Expr, varName string) (Expr, int, error) {
	if !contains(t, varName) {
		return t, 0, nil
	}
	factors := []Expr{t}
	if m, ok := t.(*Mul); ok {
		factors = m.factors
	}
	k := 0
	rest := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if !contains(f, varName) {
			rest = append(rest, f)
			continue
		}
		d, ok := symPower(f, varName)
		if !ok {
			return nil, 0, fmt.Errorf("%w in %s: term %s", ErrNotPolynomial, varName, t)
		}
		k += d
	}
	return MulOf(rest...), k, nil
}

func symPower(f Expr, varName string) (int, bool) {
	switch v := f.(type) {
	case *Sym:
		return 1, v.name == varName
	case *Pow:
		s, ok := v.base.(*Sym)
		n, ok2 := v.exp.(*Num)
		if ok && ok2 && s.name == varName && n.IsInteger() && n.Sign() > 0 {
			return int(n.val.Num().Int64()), true
		}
	}
	return 0, false
}

// Monomial2 is the exponent pair of x^i*y^j.
type Monomial2 struct{ I, J int }

// PolyCoeffs2 returns the coefficients of e as a bivariate polynomial.
func PolyCoeffs2(e Expr, xName, yName string) (map[Monomial2]Expr, error) {
	out := map[Monomial2]Expr{}
	for _, t := range Terms(Expand(e)) {
		cx, i, err := monomial(t, xName)
		if err != nil {
			return nil, err
		}
		c, j, err := monomial(cx, yName)
		if err != nil {
			return nil, err
		}
		key := Monomial2{I: i, J: j}
		if prev, ok := out[key]; ok {
			c = AddOf(prev, c)
		}
		out[key] = c
	}
	return out, nil
}

// TotalDegree2 is the largest i+j with a nonzero coefficient.
func TotalDegree2(cs map[Monomial2]Expr) int {
	d := 0
	for k, c := range cs {
		if !IsZero(c) && k.I+k.J > d {
			d = k.I + k.J
		}
	}
	return d
}

// FromCoeffs rebuilds sum c_k * v^k.
func FromCoeffs(coeffs []Expr, varName string) Expr {
	terms := make([]Expr, len(coeffs))
	for k, c := range coeffs {
		terms[k] = MulOf(c, PowOf(S(varName), N(int64(k))))
	}
	return AddOf(terms...)
}
