package value_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/symbolic"
	"github.com/njchilds90/geographer/value"
)

func newCalc() *value.Calc { return value.NewCalc(value.DefaultTolerance, 0) }

func TestExactRejectsFreeSymbols(t *testing.T) {
	_, err := value.Exact(symbolic.MustParse("x + 1"))
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)

	v, err := value.Exact(symbolic.MustParse("sqrt(8)"))
	require.NoError(t, err)
	assert.True(t, v.IsExact())
	assert.Equal(t, "2*sqrt(2)", v.String())
}

func TestFromFloat(t *testing.T) {
	// variables keep the sum in float64; a constant expression would be exact
	a, b := 0.1, 0.2
	tests := []struct {
		in        float64
		wantExact bool
		want      string
	}{
		{0.1, true, "1/10"},
		{-2.5, true, "-5/2"},
		{3, true, "3"},
		{1e-10, true, "1/10000000000"},
		{math.Pi, false, "3.14159265359"},
		{a + b, false, "0.3"},
	}
	for _, tt := range tests {
		v := value.FromFloat(tt.in)
		assert.Equal(t, tt.wantExact, v.IsExact(), "exactness of %v", tt.in)
		assert.Equal(t, tt.want, v.String())
	}
}

func TestParse(t *testing.T) {
	v, err := value.Parse("pi/4")
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/4, v.Float(), 1e-15)

	_, err = value.Parse("sqrt(-1)")
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
	_, err = value.Parse("1 +")
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}

func TestTolerance(t *testing.T) {
	tol := value.DefaultTolerance
	assert.True(t, tol.Close(1, 1+1e-10))
	assert.False(t, tol.Close(1, 1+1e-8))
	// relative: large magnitudes scale the bound
	assert.True(t, tol.Close(1e6, 1e6+1e-4))

	abs := value.Tolerance{Eps: 1e-9}
	assert.False(t, abs.Close(1e6, 1e6+1e-4))
	assert.True(t, tol.Zero(1e-10))
	assert.True(t, tol.Zero(1e-4, 1e6))
}

func TestCalc_ExactArithmetic(t *testing.T) {
	c := newCalc()
	sum := c.Add(value.Frac(1, 3), value.Frac(1, 6))
	assert.True(t, sum.IsExact())
	assert.Equal(t, "1/2", sum.String())

	q, err := c.Div(value.Int(1), value.Int(3))
	require.NoError(t, err)
	assert.Equal(t, "1/3", q.String())

	r, err := c.Sqrt(value.Int(2))
	require.NoError(t, err)
	sq := c.Square(r)
	assert.Equal(t, "2", sq.String())
}

func TestCalc_MixedIsApproximate(t *testing.T) {
	c := newCalc()
	got := c.Mul(value.Int(2), value.Approx(1.5))
	assert.False(t, got.IsExact())
	assert.Equal(t, 3.0, got.Float())
}

func TestCalc_DivByZero(t *testing.T) {
	c := newCalc()
	_, err := c.Div(value.Int(1), value.Approx(1e-12))
	assert.ErrorIs(t, err, diag.ErrDegenerate)
}

func TestCalc_SqrtNegative(t *testing.T) {
	c := newCalc()
	_, err := c.Sqrt(value.Int(-4))
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)

	z, err := c.Sqrt(value.Approx(-1e-12))
	require.NoError(t, err)
	assert.Equal(t, 0.0, z.Float())
}

func TestCalc_FallbackOnNodeBudget(t *testing.T) {
	c := value.NewCalc(value.DefaultTolerance, 8)
	a, err := value.Exact(symbolic.MustParse("sqrt(2) + sqrt(3) + sqrt(5)"))
	require.NoError(t, err)
	got := c.Square(a)
	assert.False(t, got.IsExact())
	assert.InDelta(t, math.Pow(math.Sqrt2+math.Sqrt(3)+math.Sqrt(5), 2), got.Float(), 1e-9)

	fb := c.Fallbacks()
	require.Len(t, fb, 1)
	assert.Equal(t, diag.SymbolicFallback, fb[0].Kind)

	c.Square(a)
	assert.Len(t, c.Fallbacks(), 1, "identical fallbacks are recorded once")
}

func TestCalc_Atan2(t *testing.T) {
	c := newCalc()
	tests := []struct {
		y, x value.Value
		want string
	}{
		{value.Int(1), value.Int(1), "pi/4"},
		{value.Int(1), value.Int(0), "pi/2"},
		{value.Int(0), value.Int(-3), "pi"},
		{value.Int(-1), value.Int(-1), "-3*pi/4"},
	}
	for _, tt := range tests {
		got := c.Atan2(tt.y, tt.x)
		assert.Equal(t, tt.want, got.String())
		assert.InDelta(t, math.Atan2(tt.y.Float(), tt.x.Float()), got.Float(), 1e-12)
	}
}

func TestCalc_DegreesRoundTrip(t *testing.T) {
	c := newCalc()
	deg := c.Degrees(c.Radians(value.Int(30)))
	assert.Equal(t, "30", deg.String())
	assert.Equal(t, "1/2", c.Sin(c.Radians(value.Int(30))).String())
}

func TestCalc_EqualAndCompare(t *testing.T) {
	c := newCalc()
	half, err := value.Parse("sqrt(2)/2")
	require.NoError(t, err)
	inv, err := c.Div(value.Int(1), mustSqrt(t, c, value.Int(2)))
	require.NoError(t, err)
	assert.True(t, c.Equal(half, inv))
	assert.True(t, c.Equal(value.Approx(0.5), value.Frac(1, 2)))
	assert.Equal(t, -1, c.Compare(value.Int(1), value.Int(2)))
	assert.Equal(t, 0, c.Sign(value.Approx(1e-12)))
}

func mustSqrt(t *testing.T, c *value.Calc, v value.Value) value.Value {
	t.Helper()
	r, err := c.Sqrt(v)
	require.NoError(t, err)
	return r
}

func TestMarshalJSON(t *testing.T) {
	b, err := json.Marshal(map[string]value.Value{
		"exact":  value.Frac(1, 2),
		"approx": value.Approx(0.25),
		"nan":    value.Approx(math.NaN()),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"exact":{"exact":"1/2","latex":"\\frac{1}{2}","value":0.5},"approx":0.25,"nan":null}`, string(b))
}

func TestEqual(t *testing.T) {
	half, err := value.Parse("sqrt(2)/2")
	require.NoError(t, err)
	other, err := value.Parse("sqrt(8)/4")
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b value.Value
		tol  value.Tolerance
		want bool
	}{
		{"exact forms", half, other, value.Tolerance{Eps: 0}, true},
		{"exact against float", value.Frac(1, 2), value.Approx(0.5 + 1e-12), value.DefaultTolerance, true},
		{"outside tolerance", value.Int(1), value.Approx(1.001), value.DefaultTolerance, false},
		{"loose tolerance", value.Int(1), value.Approx(1.001), value.Tolerance{Eps: 1e-2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, value.Equal(tt.a, tt.b, tt.tol))
		})
	}
}

func TestCalc_Simplify(t *testing.T) {
	c := newCalc()
	v, err := value.Exact(symbolic.MustParse("sin(pi/7)^2 + cos(pi/7)^2"))
	require.NoError(t, err)
	got := c.Simplify(v)
	assert.True(t, got.IsExact())
	assert.Equal(t, "1", got.String())
	assert.Empty(t, c.Fallbacks())

	approx := value.Approx(0.25)
	assert.Equal(t, approx, c.Simplify(approx))
}

func TestCalc_SimplifyOverBudgetKeepsInput(t *testing.T) {
	c := value.NewCalc(value.DefaultTolerance, 8)
	// tan rewrites to sin/cos, which needs more nodes than the budget allows
	v, err := value.Exact(symbolic.MustParse("tan(pi/7)"))
	require.NoError(t, err)
	got := c.Simplify(v)
	assert.Equal(t, v.String(), got.String())
	fb := c.Fallbacks()
	require.Len(t, fb, 1)
	assert.Equal(t, diag.SymbolicFallback, fb[0].Kind)
}
