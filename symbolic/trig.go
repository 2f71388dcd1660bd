package symbolic

import (
	"math/big"
)

// ============================================================
// Trigonometric identities
// ============================================================

// maxAngleMultiple bounds the expansion of sin(n*u) and cos(n*u).
const maxAngleMultiple = 6

// TrigSimplify rewrites tan, cot, sec and csc through sin and cos, expands
// compound and multiple angles and applies sin^2 + cos^2 = 1.
func TrigSimplify(e Expr) Expr {
	if TrigZero(e) {
		return N(0)
	}
	return Expand(pythagorean(Expand(trigRewrite(e.Simplify()))))
}

// TrigZero reports whether e vanishes identically under the identities
// TrigSimplify applies. A false result is not a proof of non-identity.
func TrigZero(e Expr) bool {
	r := Expand(trigRewrite(e.Simplify()))
	num, _ := together(r)
	num = Expand(pythagorean(num))
	return isZeroExpr(num)
}

func trigRewrite(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = trigRewrite(t)
		}
		return AddOf(ts...)
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = trigRewrite(f)
		}
		return MulOf(fs...)
	case *Pow:
		return PowOf(trigRewrite(v.base), trigRewrite(v.exp))
	case *Func:
		u := trigRewrite(v.arg)
		switch v.name {
		case "sin":
			return expandSin(u)
		case "cos":
			return expandCos(u)
		case "tan":
			return MulOf(expandSin(u), PowOf(expandCos(u), N(-1)))
		case "cot":
			return MulOf(expandCos(u), PowOf(expandSin(u), N(-1)))
		case "sec":
			return PowOf(expandCos(u), N(-1))
		case "csc":
			return PowOf(expandSin(u), N(-1))
		}
		return funcOf(v.name, u).Simplify()
	}
	return e
}

// splitAngle writes u as head + tail for sums, or (n-1)*w + w for integer
// multiples n*w.
func splitAngle(u Expr) (head, tail Expr, ok bool) {
	if a, isAdd := u.(*Add); isAdd {
		return a.terms[0], AddOf(a.terms[1:]...), true
	}
	c, rest := splitCoeff(u)
	if c.IsInteger() && c.Sign() > 0 && !c.IsOne() && c.val.Cmp(big.NewRat(maxAngleMultiple, 1)) <= 0 {
		if _, isConst := rest.(*Const); isConst {
			return nil, nil, false
		}
		return MulOf(numAdd(c, N(-1)), rest), rest, true
	}
	return nil, nil, false
}

func expandSin(u Expr) Expr {
	a, b, ok := splitAngle(u)
	if !ok {
		return SinOf(u)
	}
	return AddOf(MulOf(expandSin(a), expandCos(b)), MulOf(expandCos(a), expandSin(b)))
}

func expandCos(u Expr) Expr {
	a, b, ok := splitAngle(u)
	if !ok {
		return CosOf(u)
	}
	return Subtract(MulOf(expandCos(a), expandCos(b)), MulOf(expandSin(a), expandSin(b)))
}

// pythagorean replaces even powers of cos(u) by powers of 1 - sin(u)^2.
func pythagorean(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = pythagorean(t)
		}
		return AddOf(ts...)
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = pythagorean(f)
		}
		return MulOf(fs...)
	case *Pow:
		fn, ok := v.base.(*Func)
		n, ok2 := v.exp.(*Num)
		if ok && ok2 && fn.name == "cos" && n.IsInteger() && n.Sign() > 0 {
			k := n.val.Num().Int64()
			oneMinus := Subtract(N(1), Square(SinOf(fn.arg)))
			out := PowOf(oneMinus, N(k/2))
			if k%2 == 1 {
				out = MulOf(out, fn)
			}
			return Expand(out)
		}
	}
	return e
}

// together brings a sum over a common denominator built from factors with
// negative integer exponents. The numerator is expanded.
func together(e Expr) (num, den Expr) {
	type denomFactor struct {
		base Expr
		pow  int64
	}
	terms := Terms(e)
	split := make([]map[string]denomFactor, len(terms))
	nums := make([]Expr, len(terms))
	common := map[string]denomFactor{}
	var order []string
	for i, t := range terms {
		split[i] = map[string]denomFactor{}
		factors := []Expr{t}
		if m, ok := t.(*Mul); ok {
			factors = m.factors
		}
		var numer []Expr
		for _, f := range factors {
			if p, ok := f.(*Pow); ok {
				if n, ok := p.exp.(*Num); ok && n.IsInteger() && n.Sign() < 0 {
					key := p.base.String()
					k := -n.val.Num().Int64()
					split[i][key] = denomFactor{base: p.base, pow: k}
					if c, seen := common[key]; !seen || c.pow < k {
						if !seen {
							order = append(order, key)
						}
						common[key] = denomFactor{base: p.base, pow: k}
					}
					continue
				}
			}
			numer = append(numer, f)
		}
		nums[i] = MulOf(numer...)
	}
	scaled := make([]Expr, len(terms))
	for i := range terms {
		fs := []Expr{nums[i]}
		for _, key := range order {
			missing := common[key].pow - split[i][key].pow
			if missing > 0 {
				fs = append(fs, PowOf(common[key].base, N(missing)))
			}
		}
		scaled[i] = MulOf(fs...)
	}
	dens := make([]Expr, 0, len(order))
	for _, key := range order {
		dens = append(dens, PowOf(common[key].base, N(common[key].pow)))
	}
	return Expand(AddOf(scaled...)), MulOf(dens...)
}
