package symbolic_test

import (
	"errors"
	"math"
	"testing"

	"github.com/njchilds90/geographer/symbolic"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := symbolic.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := symbolic.F(2, 6)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := symbolic.F(-2, 5)
	if n.LaTeX() != `-\frac{2}{5}` {
		t.Errorf("want -\\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_Decimal(t *testing.T) {
	n, ok := symbolic.NDecimal("0.25")
	if !ok || n.String() != "1/4" {
		t.Errorf("want 1/4, got %v", n)
	}
}

// ============================================================
// Add / Mul tests
// ============================================================

func TestAdd_LikeTerms(t *testing.T) {
	x := symbolic.S("x")
	got := symbolic.AddOf(x, symbolic.MulOf(symbolic.N(3), x), symbolic.N(2), symbolic.N(-2))
	if got.String() != "4*x" {
		t.Errorf("want 4*x, got %s", got)
	}
}

func TestAdd_CollapseToZero(t *testing.T) {
	x := symbolic.S("x")
	got := symbolic.Subtract(symbolic.MulOf(symbolic.N(2), x), symbolic.AddOf(x, x))
	if got.String() != "0" {
		t.Errorf("want 0, got %s", got)
	}
}

func TestAdd_NegativeTermsPrintWithMinus(t *testing.T) {
	got := symbolic.MustParse("x^3 - 3*x")
	if got.String() != "x^3 - 3*x" {
		t.Errorf("want x^3 - 3*x, got %s", got)
	}
}

func TestMul_MergesPowers(t *testing.T) {
	x := symbolic.S("x")
	got := symbolic.MulOf(x, symbolic.PowOf(x, symbolic.N(2)), symbolic.N(3))
	if got.String() != "3*x^3" {
		t.Errorf("want 3*x^3, got %s", got)
	}
}

func TestMul_Cancels(t *testing.T) {
	x := symbolic.S("x")
	got := symbolic.MulOf(x, symbolic.Recip(x))
	if got.String() != "1" {
		t.Errorf("want 1, got %s", got)
	}
}

func TestMul_RationalCoefficientPrintsAsFraction(t *testing.T) {
	got := symbolic.MulOf(symbolic.F(1, 2), symbolic.S("x"))
	if got.String() != "x/2" {
		t.Errorf("want x/2, got %s", got)
	}
}

// ============================================================
// Radicals
// ============================================================

func TestSqrt_PerfectSquare(t *testing.T) {
	got := symbolic.SqrtOf(symbolic.N(25))
	if got.String() != "5" {
		t.Errorf("want 5, got %s", got)
	}
}

func TestSqrt_ExtractsSquareFactor(t *testing.T) {
	got := symbolic.SqrtOf(symbolic.N(8))
	if got.String() != "2*sqrt(2)" {
		t.Errorf("want 2*sqrt(2), got %s", got)
	}
}

func TestSqrt_RationalisesDenominator(t *testing.T) {
	got := symbolic.SqrtOf(symbolic.F(1, 2))
	if got.String() != "sqrt(2)/2" {
		t.Errorf("want sqrt(2)/2, got %s", got)
	}
}

func TestSqrt_ProductOfRadicals(t *testing.T) {
	got := symbolic.MulOf(symbolic.SqrtOf(symbolic.N(2)), symbolic.SqrtOf(symbolic.N(8)))
	if got.String() != "4" {
		t.Errorf("want 4, got %s", got)
	}
}

func TestCubeRoot_Negative(t *testing.T) {
	got := symbolic.PowOf(symbolic.N(-8), symbolic.F(1, 3))
	if got.String() != "-2" {
		t.Errorf("want -2, got %s", got)
	}
}

func TestSqrt_LaTeX(t *testing.T) {
	got := symbolic.SqrtOf(symbolic.N(3)).LaTeX()
	if got != `\sqrt{3}` {
		t.Errorf("want \\sqrt{3}, got %s", got)
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_ExactSpecialAngles(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sin(pi)", "0"},
		{"cos(pi)", "-1"},
		{"cos(pi/3)", "1/2"},
		{"sin(pi/4)", "sqrt(2)/2"},
		{"sin(3*pi/2)", "-1"},
		{"tan(pi/4)", "1"},
		{"sin(-x)", "-sin(x)"},
		{"cos(-x)", "cos(x)"},
		{"atan(1)", "pi/4"},
		{"ln(e)", "1"},
	}
	for _, tt := range tests {
		got := symbolic.MustParse(tt.in)
		if got.String() != tt.want {
			t.Errorf("%s: want %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestFunc_AbsOfConstant(t *testing.T) {
	got := symbolic.MustParse("|1 - sqrt(2)|")
	if got.String() != "sqrt(2) - 1" {
		t.Errorf("want sqrt(2) - 1, got %s", got)
	}
}

func TestFunc_Diff(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sin(x)", "cos(x)"},
		{"cos(x)", "-sin(x)"},
		{"exp(2*x)", "2*exp(2*x)"},
		{"ln(x)", "1/x"},
		{"x^3 - 3*x", "3*x^2 - 3"},
	}
	for _, tt := range tests {
		got := symbolic.Diff(symbolic.MustParse(tt.in), "x")
		if got.String() != tt.want {
			t.Errorf("d/dx %s: want %s, got %s", tt.in, tt.want, got)
		}
	}
}

// ============================================================
// Expansion and polynomials
// ============================================================

func TestExpand_Square(t *testing.T) {
	got := symbolic.Expand(symbolic.MustParse("(x + 1)^2"))
	if got.String() != "x^2 + 2*x + 1" {
		t.Errorf("want x^2 + 2*x + 1, got %s", got)
	}
}

func TestPolyCoeffs(t *testing.T) {
	cs, err := symbolic.PolyCoeffs(symbolic.MustParse("3*x^2 - 3"), "x")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"-3", "0", "3"}
	if len(cs) != len(want) {
		t.Fatalf("want %d coefficients, got %d", len(want), len(cs))
	}
	for i := range want {
		if cs[i].String() != want[i] {
			t.Errorf("coeff[%d]: want %s, got %s", i, want[i], cs[i])
		}
	}
}

func TestPolyCoeffs_NotPolynomial(t *testing.T) {
	_, err := symbolic.PolyCoeffs(symbolic.MustParse("sin(x) + x"), "x")
	if !errors.Is(err, symbolic.ErrNotPolynomial) {
		t.Errorf("want ErrNotPolynomial, got %v", err)
	}
	if d := symbolic.Degree(symbolic.MustParse("sin(x)"), "x"); d != -1 {
		t.Errorf("want degree -1, got %d", d)
	}
}

func TestPolyCoeffs2_Conic(t *testing.T) {
	cs, err := symbolic.PolyCoeffs2(symbolic.MustParse("x^2 + 3*x*y - y + 7"), "x", "y")
	if err != nil {
		t.Fatal(err)
	}
	checks := map[symbolic.Monomial2]string{
		{I: 2, J: 0}: "1",
		{I: 1, J: 1}: "3",
		{I: 0, J: 1}: "-1",
		{I: 0, J: 0}: "7",
	}
	for k, want := range checks {
		if got, ok := cs[k]; !ok || got.String() != want {
			t.Errorf("coeff %v: want %s, got %v", k, want, got)
		}
	}
	if d := symbolic.TotalDegree2(cs); d != 2 {
		t.Errorf("want total degree 2, got %d", d)
	}
}

// ============================================================
// Solvers
// ============================================================

func TestSolveLinear(t *testing.T) {
	got, err := symbolic.SolveLinear(symbolic.N(2), symbolic.N(-3))
	if err != nil || got.String() != "3/2" {
		t.Errorf("want 3/2, got %v (%v)", got, err)
	}
	if _, err := symbolic.SolveLinear(symbolic.N(0), symbolic.N(1)); !errors.Is(err, symbolic.ErrDivByZero) {
		t.Errorf("want ErrDivByZero, got %v", err)
	}
}

func TestSolveQuadratic_TwoRoots(t *testing.T) {
	sol, err := symbolic.SolveQuadratic(symbolic.N(3), symbolic.N(0), symbolic.N(-3), 1e-9)
	if err != nil {
		t.Fatal(err)
	}
	if len(sol.Roots) != 2 || sol.Roots[0].String() != "-1" || sol.Roots[1].String() != "1" {
		t.Errorf("want [-1 1], got %v", sol.Roots)
	}
	if sol.Discriminant.String() != "36" {
		t.Errorf("want discriminant 36, got %s", sol.Discriminant)
	}
}

func TestSolveQuadratic_Irrational(t *testing.T) {
	sol, err := symbolic.SolveQuadratic(symbolic.N(1), symbolic.N(0), symbolic.N(-2), 1e-9)
	if err != nil {
		t.Fatal(err)
	}
	if len(sol.Roots) != 2 || sol.Roots[0].String() != "-sqrt(2)" || sol.Roots[1].String() != "sqrt(2)" {
		t.Errorf("want [-sqrt(2) sqrt(2)], got %v", sol.Roots)
	}
}

func TestSolveQuadratic_NoRealRoots(t *testing.T) {
	sol, err := symbolic.SolveQuadratic(symbolic.N(1), symbolic.N(0), symbolic.N(1), 1e-9)
	if err != nil {
		t.Fatal(err)
	}
	if len(sol.Roots) != 0 {
		t.Errorf("want no roots, got %v", sol.Roots)
	}
}

func TestSolveLinearSystem2x2(t *testing.T) {
	x, y, err := symbolic.SolveLinearSystem2x2(
		symbolic.N(1), symbolic.N(1), symbolic.N(3),
		symbolic.N(1), symbolic.N(-1), symbolic.N(1),
	)
	if err != nil {
		t.Fatal(err)
	}
	if x.String() != "2" || y.String() != "1" {
		t.Errorf("want (2, 1), got (%s, %s)", x, y)
	}
}

func TestFindRoots(t *testing.T) {
	f := symbolic.Func1(symbolic.MustParse("x^2 - 2"), "x")
	roots := symbolic.FindRoots(f, -3, 3, symbolic.RootOptions{Samples: 200, MaxIterations: 200, Tolerance: 1e-12})
	if len(roots) != 2 {
		t.Fatalf("want 2 roots, got %v", roots)
	}
	if math.Abs(roots[0].X+math.Sqrt2) > 1e-9 || math.Abs(roots[1].X-math.Sqrt2) > 1e-9 {
		t.Errorf("want ±sqrt(2), got %v", roots)
	}
}

func TestFindRoots_DoubleRoot(t *testing.T) {
	f := symbolic.Func1(symbolic.MustParse("(x - 1)^2"), "x")
	roots := symbolic.FindRoots(f, -2.05, 3.05, symbolic.RootOptions{Samples: 100, MaxIterations: 200, Tolerance: 1e-12})
	if len(roots) != 1 || math.Abs(roots[0].X-1) > 1e-5 {
		t.Errorf("want root near 1, got %v", roots)
	}
}

func TestFindRoots_SkipsPoles(t *testing.T) {
	f := symbolic.Func1(symbolic.MustParse("1/x"), "x")
	roots := symbolic.FindRoots(f, -1.05, 1, symbolic.RootOptions{Samples: 20})
	if len(roots) != 0 {
		t.Errorf("want no roots, got %v", roots)
	}
}

// ============================================================
// Calculus
// ============================================================

func TestIntegrate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"5", "5*x"},
		{"x^2", "x^3/3"},
		{"1/x", "ln(abs(x))"},
		{"cos(2*x)", "sin(2*x)/2"},
		{"exp(x)", "exp(x)"},
	}
	for _, tt := range tests {
		got, ok := symbolic.Integrate(symbolic.MustParse(tt.in), "x")
		if !ok || got.String() != tt.want {
			t.Errorf("∫%s: want %s, got %v (ok=%v)", tt.in, tt.want, got, ok)
		}
	}
	if _, ok := symbolic.Integrate(symbolic.MustParse("exp(x^2)"), "x"); ok {
		t.Error("exp(x^2) has no elementary antiderivative rule")
	}
}

func TestSimpson(t *testing.T) {
	got := symbolic.Simpson(math.Sin, 0, math.Pi, 100)
	if math.Abs(got-2) > 1e-6 {
		t.Errorf("want 2, got %v", got)
	}
}

func TestTaylorSeries_Exp(t *testing.T) {
	got := symbolic.TaylorSeries(symbolic.MustParse("exp(x)"), "x", symbolic.N(0), 3)
	if got.String() != "x^3/6 + x^2/2 + x + 1" {
		t.Errorf("want x^3/6 + x^2/2 + x + 1, got %s", got)
	}
}

// ============================================================
// Trigonometric identities
// ============================================================

func TestTrigZero(t *testing.T) {
	identities := []string{
		"sin(x)^2 + cos(x)^2 - 1",
		"1 + tan(x)^2 - sec(x)^2",
		"sin(2*x) - 2*sin(x)*cos(x)",
		"cos(2*x) - 1 + 2*sin(x)^2",
		"sin(x + pi/2) - cos(x)",
	}
	for _, s := range identities {
		if !symbolic.TrigZero(symbolic.MustParse(s)) {
			t.Errorf("%s should vanish", s)
		}
	}
	if symbolic.TrigZero(symbolic.MustParse("sin(x) - cos(x)")) {
		t.Error("sin(x) - cos(x) is not identically zero")
	}
}

// ============================================================
// Parser
// ============================================================

func TestParse(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2x + 3", "2*x + 3"},
		{"x**2", "x^2"},
		{"-x^2", "-x^2"},
		{"2^-1", "1/2"},
		{"0.5*x", "x/2"},
		{"sqrt(12)", "2*sqrt(3)"},
		{"(x+1)(x-1)", "(x + 1)*(x - 1)"},
	}
	for _, tt := range tests {
		got, err := symbolic.Parse(tt.in)
		if err != nil {
			t.Errorf("%s: %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("%s: want %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"2 +", "sin x", "(x", "1/0", "x $ 2"} {
		_, err := symbolic.Parse(in)
		var perr *symbolic.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%q: want *ParseError, got %v", in, err)
		}
	}
}

func TestParse_StringRoundTrip(t *testing.T) {
	for _, in := range []string{"x^3/6 + x^2/2 - 1", "2*sqrt(3)*pi", "sin(x)/cos(x)^2", "-x/(2*y)"} {
		e := symbolic.MustParse(in)
		again := symbolic.MustParse(e.String())
		if !e.Equal(again) {
			t.Errorf("%s: reparse gave %s", e, again)
		}
	}
}

func TestParseEquation(t *testing.T) {
	eq, err := symbolic.ParseEquation("x^2 + y^2 = 4")
	if err != nil {
		t.Fatal(err)
	}
	if got := eq.Residual().String(); got != "x^2 + y^2 - 4" {
		t.Errorf("want x^2 + y^2 - 4, got %s", got)
	}
}

// ============================================================
// Evaluation, size, JSON
// ============================================================

func TestFloat(t *testing.T) {
	v, err := symbolic.Float(symbolic.MustParse("sqrt(2)*pi"))
	if err != nil || math.Abs(v-math.Sqrt2*math.Pi) > 1e-12 {
		t.Errorf("want %v, got %v (%v)", math.Sqrt2*math.Pi, v, err)
	}
	if _, err := symbolic.Float(symbolic.S("x")); !errors.Is(err, symbolic.ErrUnbound) {
		t.Errorf("want ErrUnbound, got %v", err)
	}
}

func TestEval_Bindings(t *testing.T) {
	v, err := symbolic.Eval(symbolic.MustParse("x*y + 1"), map[string]float64{"x": 2, "y": 3})
	if err != nil || v != 7 {
		t.Errorf("want 7, got %v (%v)", v, err)
	}
}

func TestSize(t *testing.T) {
	if n := symbolic.Size(symbolic.MustParse("x^2 + 1")); n != 5 {
		t.Errorf("want 5 nodes, got %d", n)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	e := symbolic.MustParse("x^2 + 2*sin(pi*x) - sqrt(3)")
	s, err := symbolic.ToJSON(e)
	if err != nil {
		t.Fatal(err)
	}
	back, err := symbolic.ParseJSON([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	if !e.Equal(back) {
		t.Errorf("round trip: want %s, got %s", e, back)
	}
}

func TestJSON_UnknownType(t *testing.T) {
	if _, err := symbolic.FromJSON(map[string]any{"type": "matrix"}); err == nil {
		t.Error("want error for unknown type")
	}
}

func TestDeterminism(t *testing.T) {
	a := symbolic.MustParse("y + x + 2*x*y + x^2")
	b := symbolic.MustParse("x^2 + 2*y*x + x + y")
	if a.String() != b.String() {
		t.Errorf("want identical canonical forms, got %s and %s", a, b)
	}
}
