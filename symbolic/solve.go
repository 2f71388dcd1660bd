package symbolic

import (
	"errors"
	"math"
	"sort"
)

// ============================================================
// Solvers
// ============================================================

var ErrNotQuadratic = errors.New("symbolic: leading coefficient is zero")

// SolveLinear solves a*x + b = 0.
func SolveLinear(a, b Expr) (Expr, error) {
	if IsZero(a) {
		return nil, ErrDivByZero
	}
	return MulOf(N(-1), b, PowOf(a, N(-1))), nil
}

// QuadraticSolution holds the exact real roots of a*x^2 + b*x + c = 0.
type QuadraticSolution struct {
	Discriminant Expr
	// Roots are ascending; a double root appears once.
	Roots []Expr
}

// SolveQuadratic solves a*x^2 + b*x + c = 0 exactly for constant
// coefficients. The sign of an irrational discriminant is decided in
// float64 with tolerance eps.
func SolveQuadratic(a, b, c Expr, eps float64) (QuadraticSolution, error) {
	if IsZero(a) {
		return QuadraticSolution{}, ErrNotQuadratic
	}
	disc := Expand(Subtract(Square(b), MulOf(N(4), a, c)))
	sol := QuadraticSolution{Discriminant: disc}
	sign, err := signOf(disc, eps)
	if err != nil {
		return sol, err
	}
	twoA := MulOf(N(2), a)
	switch {
	case sign < 0:
		return sol, nil
	case sign == 0:
		sol.Roots = []Expr{Expand(MulOf(N(-1), b, PowOf(twoA, N(-1))))}
		return sol, nil
	}
	sq := SqrtOf(disc)
	r1 := Expand(MulOf(AddOf(MulOf(N(-1), b), MulOf(N(-1), sq)), PowOf(twoA, N(-1))))
	r2 := Expand(MulOf(AddOf(MulOf(N(-1), b), sq), PowOf(twoA, N(-1))))
	f1, _ := Float(r1)
	f2, _ := Float(r2)
	if f1 > f2 {
		r1, r2 = r2, r1
	}
	sol.Roots = []Expr{r1, r2}
	return sol, nil
}

// signOf decides the sign of a constant expression.
func signOf(e Expr, eps float64) (int, error) {
	if n, ok := NumValue(e); ok {
		return n.Sign(), nil
	}
	v, err := Float(e)
	if err != nil {
		return 0, err
	}
	switch {
	case math.Abs(v) <= eps*math.Max(1, math.Abs(v)):
		return 0, nil
	case v < 0:
		return -1, nil
	}
	return 1, nil
}

// SolveLinearSystem2x2 solves a1*x + b1*y = c1, a2*x + b2*y = c2.
func SolveLinearSystem2x2(a1, b1, c1, a2, b2, c2 Expr) (x, y Expr, err error) {
	det := Expand(Subtract(MulOf(a1, b2), MulOf(a2, b1)))
	if IsZero(det) {
		return nil, nil, ErrDivByZero
	}
	inv := PowOf(det, N(-1))
	x = Expand(MulOf(Subtract(MulOf(c1, b2), MulOf(c2, b1)), inv))
	y = Expand(MulOf(Subtract(MulOf(a1, c2), MulOf(a2, c1)), inv))
	return x, y, nil
}

// ============================================================
// Bounded numeric root finding
// ============================================================

// RootOptions bounds the numeric search.
type RootOptions struct {
	Samples       int
	MaxIterations int
	Tolerance     float64
}

// Root is a numerically located zero.
type Root struct {
	X         float64
	Converged bool
}

// FindRoots locates zeros of f on [lo, hi] by scanning a uniform grid for
// sign changes and near-touches, then refining each bracket by bisection.
func FindRoots(f func(float64) float64, lo, hi float64, opt RootOptions) []Root {
	if opt.Samples < 2 {
		opt.Samples = 2
	}
	if opt.MaxIterations <= 0 {
		opt.MaxIterations = 100
	}
	if opt.Tolerance <= 0 {
		opt.Tolerance = 1e-12
	}
	n := opt.Samples
	step := (hi - lo) / float64(n)
	xs := make([]float64, n+1)
	ys := make([]float64, n+1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
		ys[i] = f(xs[i])
	}

	var roots []Root
	for i := 0; i < n; i++ {
		a, b := xs[i], xs[i+1]
		fa, fb := ys[i], ys[i+1]
		if !finite(fa) || !finite(fb) {
			continue
		}
		switch {
		case fa == 0:
			roots = append(roots, Root{X: a, Converged: true})
		case fa*fb < 0:
			// A sign change across a pole is not a root.
			if r := bisect(f, a, b, fa, opt); finite(f(r.X)) && math.Abs(f(r.X)) <= math.Max(math.Abs(fa), math.Abs(fb)) {
				roots = append(roots, r)
			}
		case i > 0 && finite(ys[i-1]) && math.Abs(fa) < math.Abs(ys[i-1]) && math.Abs(fa) < math.Abs(fb) && fa*ys[i-1] > 0 && fa*fb > 0:
			r := minimiseAbs(f, xs[i-1], b, opt)
			if v := f(r.X); finite(v) && math.Abs(v) <= math.Sqrt(opt.Tolerance) {
				roots = append(roots, r)
			}
		}
	}
	if ys[n] == 0 {
		roots = append(roots, Root{X: xs[n], Converged: true})
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].X < roots[j].X })
	out := roots[:0]
	for _, r := range roots {
		if len(out) > 0 && math.Abs(r.X-out[len(out)-1].X) <= math.Max(step/2, opt.Tolerance) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func bisect(f func(float64) float64, a, b, fa float64, opt RootOptions) Root {
	for range opt.MaxIterations {
		m := (a + b) / 2
		fm := f(m)
		if fm == 0 || (b-a)/2 <= opt.Tolerance*math.Max(1, math.Abs(m)) {
			return Root{X: m, Converged: true}
		}
		if fa*fm < 0 {
			b = m
		} else {
			a, fa = m, fm
		}
	}
	return Root{X: (a + b) / 2, Converged: false}
}

// minimiseAbs runs a golden-section search on |f| for even-order zeros.
func minimiseAbs(f func(float64) float64, a, b float64, opt RootOptions) Root {
	const invPhi = 0.6180339887498949
	g := func(x float64) float64 { return math.Abs(f(x)) }
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	for range opt.MaxIterations {
		if b-a <= opt.Tolerance*math.Max(1, math.Abs(c)) {
			return Root{X: (a + b) / 2, Converged: true}
		}
		if g(c) < g(d) {
			b = d
		} else {
			a = c
		}
		c = b - invPhi*(b-a)
		d = a + invPhi*(b-a)
	}
	return Root{X: (a + b) / 2, Converged: false}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
