package geom_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/symbolic"
	"github.com/njchilds90/geographer/value"
)

func calc() *value.Calc { return value.NewCalc(value.DefaultTolerance, 0) }

func v(n int64) value.Value { return value.Int(n) }

func pointStrings(ps []geom.Point) [][2]string {
	out := make([][2]string, len(ps))
	for i, p := range ps {
		out[i] = [2]string{p.X.String(), p.Y.String()}
	}
	return out
}

func TestDistance_SymmetricAndNonNegative(t *testing.T) {
	c := calc()
	pairs := [][2]geom.Point{
		{geom.Pt(0, 0), geom.Pt(3, 4)},
		{geom.Pt(-2, 5), geom.Pt(7, -1)},
		{geom.Pt(1, 1), geom.Pt(1, 1)},
		{geom.NewPoint(value.Approx(0.3), value.Frac(1, 3)), geom.Pt(2, 2)},
	}
	for _, pq := range pairs {
		d1 := geom.Distance(c, pq[0], pq[1])
		d2 := geom.Distance(c, pq[1], pq[0])
		assert.True(t, c.Equal(d1, d2), "distance %s vs %s", d1, d2)
		assert.GreaterOrEqual(t, d1.Float(), 0.0)
	}
	assert.Equal(t, "5", geom.Distance(c, geom.Pt(0, 0), geom.Pt(3, 4)).String())
}

func TestMidpointAndSection(t *testing.T) {
	c := calc()
	m := geom.Midpoint(c, geom.Pt(0, 0), geom.Pt(4, 2))
	assert.Equal(t, [2]string{"2", "1"}, [2]string{m.X.String(), m.Y.String()})

	in, err := geom.SectionPoint(c, geom.Pt(0, 0), geom.Pt(6, 0), v(1), v(2), false)
	require.NoError(t, err)
	assert.Equal(t, "2", in.X.String())

	ex, err := geom.SectionPoint(c, geom.Pt(0, 0), geom.Pt(6, 0), v(2), v(1), true)
	require.NoError(t, err)
	assert.Equal(t, "12", ex.X.String())

	_, err = geom.SectionPoint(c, geom.Pt(0, 0), geom.Pt(6, 0), v(3), v(3), true)
	assert.ErrorIs(t, err, diag.ErrDegenerate)
}

func TestCollinear(t *testing.T) {
	c := calc()
	assert.True(t, geom.Collinear(c, geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2)))
	assert.True(t, geom.Collinear(c, geom.Pt(2, 2), geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(-5, -5)))
	assert.False(t, geom.Collinear(c, geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 3)))
}

func TestLineThrough_Degenerate(t *testing.T) {
	_, err := geom.LineThrough(calc(), geom.Pt(1, 2), geom.Pt(1, 2))
	assert.ErrorIs(t, err, diag.ErrDegenerate)

	_, err = geom.LineFromGeneral(calc(), v(0), v(0), v(3))
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)

	_, err = geom.LineFromPointDirection(calc(), geom.Pt(0, 0), v(0), v(0))
	assert.ErrorIs(t, err, diag.ErrDegenerate)
}

func TestLine_GeneralFormRoundTrip(t *testing.T) {
	c := calc()
	l, err := geom.LineThrough(c, geom.Pt(1, 2), geom.Pt(3, 6))
	require.NoError(t, err)
	a, b, k := l.General(c)
	assert.Equal(t, []string{"-4", "2", "0"}, []string{a.String(), b.String(), k.String()})

	back, err := geom.LineFromGeneral(c, a, b, k)
	require.NoError(t, err)
	assert.True(t, l.Equivalent(c, back))

	m, ok := l.Slope(c)
	require.True(t, ok)
	assert.Equal(t, "2", m.String())
	y0, ok := l.YIntercept(c)
	require.True(t, ok)
	assert.Equal(t, "0", y0.String())

	vert, err := geom.LineThrough(c, geom.Pt(2, 0), geom.Pt(2, 5))
	require.NoError(t, err)
	_, ok = vert.Slope(c)
	assert.False(t, ok)
	assert.Equal(t, "x = 2", vert.SlopeIntercept(c))
}

func TestIntersect(t *testing.T) {
	c := calc()
	l1, _ := geom.LineThrough(c, geom.Pt(0, 0), geom.Pt(1, 1))
	l2, _ := geom.LineThrough(c, geom.Pt(0, 2), geom.Pt(2, 0))
	p, rel := geom.Intersect(c, l1, l2)
	assert.Equal(t, geom.Intersecting, rel)
	assert.Equal(t, [2]string{"1", "1"}, [2]string{p.X.String(), p.Y.String()})

	l3, _ := geom.LineThrough(c, geom.Pt(0, 1), geom.Pt(1, 2))
	_, rel = geom.Intersect(c, l1, l3)
	assert.Equal(t, geom.Parallel, rel)

	l4, _ := geom.LineThrough(c, geom.Pt(5, 5), geom.Pt(-3, -3))
	_, rel = geom.Intersect(c, l1, l4)
	assert.Equal(t, geom.Coincident, rel)
}

func TestIntersect_ToleranceBoundary(t *testing.T) {
	c := calc()
	l1, err := geom.LineFromGeneral(c, v(1), v(1), v(0))
	require.NoError(t, err)

	// det = 1e-10 is below eps = 1e-9: parallel, no coordinates
	l2, err := geom.LineFromGeneral(c, v(1), value.FromFloat(1+1e-10), v(-1))
	require.NoError(t, err)
	_, rel := geom.Intersect(c, l1, l2)
	assert.Equal(t, geom.Parallel, rel)

	l3, err := geom.LineFromGeneral(c, v(1), value.FromFloat(1+1e-8), v(-1))
	require.NoError(t, err)
	_, rel = geom.Intersect(c, l1, l3)
	assert.Equal(t, geom.Intersecting, rel)
}

func TestAngleDistanceFoot(t *testing.T) {
	c := calc()
	diag1, _ := geom.LineThrough(c, geom.Pt(0, 0), geom.Pt(1, 1))
	xAxis, _ := geom.LineFromGeneral(c, v(0), v(1), v(0))
	assert.Equal(t, "pi/4", geom.AngleBetween(c, diag1, xAxis).String())

	l, _ := geom.LineFromGeneral(c, v(3), v(4), v(-5))
	assert.Equal(t, "1", geom.DistanceToPoint(c, l, geom.Pt(0, 0)).String())
	f := geom.Foot(c, l, geom.Pt(0, 0))
	assert.Equal(t, [2]string{"3/5", "4/5"}, [2]string{f.X.String(), f.Y.String()})
	assert.True(t, l.Contains(c, f))
}

func TestBisectors(t *testing.T) {
	c := calc()
	xAxis, _ := geom.LineFromGeneral(c, v(0), v(1), v(0))
	yAxis, _ := geom.LineFromGeneral(c, v(1), v(0), v(0))
	bs, err := geom.Bisectors(c, xAxis, yAxis)
	require.NoError(t, err)
	for _, b := range bs {
		assert.True(t, b.Contains(c, geom.Pt(0, 0)))
		assert.InDelta(t, math.Pi/4, geom.AngleBetween(c, b, xAxis).Float(), 1e-12)
	}

	par, _ := geom.LineFromGeneral(c, v(0), v(1), v(-1))
	_, err = geom.Bisectors(c, xAxis, par)
	assert.ErrorIs(t, err, diag.ErrDegenerate)
}

func TestTriangle_RightTriangle(t *testing.T) {
	c := calc()
	tri, err := geom.NewTriangle(c, geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(0, 3))
	require.NoError(t, err)

	a, b, cc := tri.Sides()
	assert.Equal(t, []string{"5", "3", "4"}, []string{a.String(), b.String(), cc.String()})
	assert.Equal(t, "6", tri.Area().String())
	assert.Equal(t, "5/2", tri.Circumradius().String())
	assert.Equal(t, "1", tri.Inradius().String())

	tests := []struct {
		name string
		want [2]string
	}{
		{"centroid", [2]string{"4/3", "1"}},
		{"incenter", [2]string{"1", "1"}},
		{"circumcenter", [2]string{"2", "3/2"}},
		{"orthocenter", [2]string{"0", "0"}},
	}
	for _, tt := range tests {
		p, err := tri.Center(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, [2]string{p.X.String(), p.Y.String()}, tt.name)
	}
	_, err = tri.Center("nine_point")
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)

	angA, _, _ := tri.Angles()
	assert.Equal(t, "pi/2", angA.String())
	assert.Equal(t, geom.Classification{BySides: "scalene", ByAngles: "right"}, tri.Classify())
}

func TestTriangle_Collinear(t *testing.T) {
	_, err := geom.NewTriangle(calc(), geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2))
	assert.ErrorIs(t, err, diag.ErrDegenerate)
}

func TestCircle_Construction(t *testing.T) {
	c := calc()
	_, err := geom.NewCircle(c, geom.Pt(0, 0), v(0))
	assert.ErrorIs(t, err, diag.ErrDegenerate)
	_, err = geom.NewCircle(c, geom.Pt(0, 0), v(-1))
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)

	ci, err := geom.CircleFromGeneral(c, v(-4), v(-6), v(-12))
	require.NoError(t, err)
	assert.Equal(t, [3]string{"2", "3", "5"}, [3]string{ci.Center.X.String(), ci.Center.Y.String(), ci.R.String()})

	_, err = geom.CircleFromGeneral(c, v(0), v(0), v(1))
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)

	through, err := geom.CircleThrough(c, geom.Pt(5, 0), geom.Pt(0, 5), geom.Pt(-5, 0))
	require.NoError(t, err)
	assert.Equal(t, "5", through.R.String())
	assert.True(t, through.Center.Equal(c, geom.Pt(0, 0)))
}

func TestIntersectCircles(t *testing.T) {
	c := calc()
	a, _ := geom.NewCircle(c, geom.Pt(0, 0), v(5))
	b, _ := geom.NewCircle(c, geom.Pt(8, 0), v(5))
	pts, rel := geom.IntersectCircles(c, a, b)
	assert.Equal(t, geom.Secant, rel)
	assert.Equal(t, [][2]string{{"4", "-3"}, {"4", "3"}}, pointStrings(pts))

	small, _ := geom.NewCircle(c, geom.Pt(0, 0), v(2))
	touch, _ := geom.NewCircle(c, geom.Pt(5, 0), v(3))
	pts, rel = geom.IntersectCircles(c, small, touch)
	assert.Equal(t, geom.ExternallyTangent, rel)
	assert.Equal(t, [][2]string{{"2", "0"}}, pointStrings(pts))

	inner, _ := geom.NewCircle(c, geom.Pt(0, 0), v(1))
	_, rel = geom.IntersectCircles(c, a, inner)
	assert.Equal(t, geom.Concentric, rel)

	far, _ := geom.NewCircle(c, geom.Pt(20, 0), v(1))
	_, rel = geom.IntersectCircles(c, a, far)
	assert.Equal(t, geom.Separate, rel)
}

func TestIntersectLineCircle(t *testing.T) {
	c := calc()
	ci, _ := geom.NewCircle(c, geom.Pt(0, 0), v(5))
	l, _ := geom.LineFromGeneral(c, v(0), v(1), v(-3))
	pts, rel := geom.IntersectLine(c, ci, l)
	assert.Equal(t, geom.Secant, rel)
	assert.Equal(t, [][2]string{{"-4", "3"}, {"4", "3"}}, pointStrings(pts))

	tan, _ := geom.LineFromGeneral(c, v(0), v(1), v(-5))
	pts, rel = geom.IntersectLine(c, ci, tan)
	assert.Equal(t, geom.Tangent, rel)
	assert.Equal(t, [][2]string{{"0", "5"}}, pointStrings(pts))

	miss, _ := geom.LineFromGeneral(c, v(0), v(1), v(-6))
	_, rel = geom.IntersectLine(c, ci, miss)
	assert.Equal(t, geom.Disjoint, rel)
}

func TestTangentPoints(t *testing.T) {
	c := calc()
	ci, _ := geom.NewCircle(c, geom.Pt(0, 0), v(3))
	pts, rel := geom.TangentPoints(c, ci, geom.Pt(5, 0))
	assert.Equal(t, geom.Outside, rel)
	assert.Equal(t, [][2]string{{"9/5", "-12/5"}, {"9/5", "12/5"}}, pointStrings(pts))

	_, rel = geom.TangentPoints(c, ci, geom.Pt(1, 0))
	assert.Equal(t, geom.Inside, rel)
}

func TestNewConic_Classification(t *testing.T) {
	c := calc()
	tests := []struct {
		name       string
		coef       [6]int64
		want       geom.ConicKind
		circle     bool
		degenerate bool // carries a degenerate note
	}{
		{"circle", [6]int64{1, 0, 1, 0, 0, -4}, geom.Ellipse, true, false},
		{"ellipse", [6]int64{4, 0, 9, 0, 0, -36}, geom.Ellipse, false, false},
		{"hyperbola", [6]int64{1, 0, -1, 0, 0, -1}, geom.Hyperbola, false, false},
		{"parabola", [6]int64{0, 0, 1, -4, 0, 0}, geom.Parabola, false, true},
		{"line pair", [6]int64{1, 0, -1, 0, 0, 0}, geom.Degenerate, false, true},
		{"parallel lines", [6]int64{1, 0, 0, 0, 0, -1}, geom.Degenerate, false, true},
		{"imaginary", [6]int64{1, 0, 1, 0, 0, 1}, geom.Degenerate, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := geom.NewConic(c, v(tt.coef[0]), v(tt.coef[1]), v(tt.coef[2]), v(tt.coef[3]), v(tt.coef[4]), v(tt.coef[5]))
			require.NoError(t, err)
			assert.Equal(t, tt.want, k.Kind)
			assert.Equal(t, tt.circle, k.Circle)
			assert.Equal(t, tt.degenerate, len(k.Notes) > 0)
			for _, n := range k.Notes {
				assert.Equal(t, diag.Degenerate, n.Kind)
			}
		})
	}

	_, err := geom.NewConic(c, v(0), v(0), v(0), v(1), v(1), v(0))
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}

func TestIntersectConicLine(t *testing.T) {
	c := calc()
	k, err := geom.NewConic(c, v(1), v(0), v(1), v(0), v(0), v(-25))
	require.NoError(t, err)
	l, _ := geom.LineFromGeneral(c, v(0), v(1), v(-3))
	pts, rel, err := geom.IntersectConicLine(c, k, l)
	require.NoError(t, err)
	assert.Equal(t, geom.Secant, rel)
	assert.Equal(t, [][2]string{{"-4", "3"}, {"4", "3"}}, pointStrings(pts))
}

func TestStandardForms(t *testing.T) {
	c := calc()
	p, err := geom.ParabolaY2(c, v(2))
	require.NoError(t, err)
	assert.Equal(t, "2", p.Foci[0].X.String())
	assert.Equal(t, "8", p.LatusRectum.String())
	assert.Equal(t, geom.Parabola, p.Conic.Kind)

	e, err := geom.EllipseStandard(c, v(5), v(3))
	require.NoError(t, err)
	assert.Equal(t, "4", e.Foci[0].X.String())
	assert.Equal(t, "4/5", e.Eccentricity.String())
	assert.Equal(t, "18/5", e.LatusRectum.String())
	assert.Equal(t, "25/4", e.Directrices[0].P.X.String())

	h, err := geom.HyperbolaStandard(c, v(3), v(4))
	require.NoError(t, err)
	assert.Equal(t, "5", h.Foci[0].X.String())
	assert.Equal(t, "5/3", h.Eccentricity.String())
	assert.Len(t, h.Asymptotes, 2)
	assert.Equal(t, geom.Hyperbola, h.Conic.Kind)

	_, err = geom.ParabolaX2(c, v(0))
	assert.ErrorIs(t, err, diag.ErrDegenerate)
	_, err = geom.EllipseStandard(c, v(-1), v(2))
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}

func mustMatrix(t *testing.T, rows ...[]int64) geom.Matrix {
	t.Helper()
	vs := make([][]value.Value, len(rows))
	for i, r := range rows {
		for _, x := range r {
			vs[i] = append(vs[i], value.Int(x))
		}
	}
	m, err := geom.NewMatrix(vs)
	require.NoError(t, err)
	return m
}

func TestMatrix_DetIsMultiplicative(t *testing.T) {
	c := calc()
	pairs := [][2]geom.Matrix{
		{mustMatrix(t, []int64{1, 2}, []int64{3, 4}), mustMatrix(t, []int64{0, 1}, []int64{-1, 3})},
		{
			mustMatrix(t, []int64{2, 0, 1}, []int64{1, 3, 2}, []int64{1, 1, 1}),
			mustMatrix(t, []int64{1, 2, 3}, []int64{0, 1, 4}, []int64{5, 6, 0}),
		},
	}
	for _, mn := range pairs {
		prod, err := geom.MatMul(c, mn[0], mn[1])
		require.NoError(t, err)
		want := c.Mul(mn[0].Det(c), mn[1].Det(c))
		assert.True(t, c.Equal(prod.Det(c), want), "det(MN) = %s, det(M)det(N) = %s", prod.Det(c), want)
	}
}

func TestMatrix_Inverse(t *testing.T) {
	c := calc()
	m := mustMatrix(t, []int64{4, 7}, []int64{2, 6})
	inv, err := m.Inverse(c)
	require.NoError(t, err)
	assert.Equal(t, "[[3/5, -7/10], [-1/5, 2/5]]", inv.String())

	id, err := geom.MatMul(c, m, inv)
	require.NoError(t, err)
	assert.Equal(t, geom.Identity(2).String(), id.String())

	_, err = mustMatrix(t, []int64{1, 2}, []int64{2, 4}).Inverse(c)
	assert.ErrorIs(t, err, diag.ErrDegenerate)

	_, err = geom.NewMatrix([][]value.Value{{v(1)}})
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
	_, err = geom.MatAdd(c, m, geom.Identity(3))
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}

func TestMatrix_Eigen(t *testing.T) {
	c := calc()
	e, err := mustMatrix(t, []int64{2, 1}, []int64{1, 2}).EigenDecompose(c)
	require.NoError(t, err)
	require.True(t, e.Exact)
	require.Len(t, e.Pairs, 2)
	assert.Equal(t, "1", e.Pairs[0].Value.String())
	assert.Equal(t, "3", e.Pairs[1].Value.String())
	assert.Equal(t, []string{"1", "-1"}, []string{e.Pairs[0].Vector[0].String(), e.Pairs[0].Vector[1].String()})

	rot, err := mustMatrix(t, []int64{0, -1}, []int64{1, 0}).EigenDecompose(c)
	require.NoError(t, err)
	assert.False(t, rot.Exact)
	assert.True(t, rot.Complex)

	diag3, err := mustMatrix(t, []int64{1, 0, 0}, []int64{0, 2, 0}, []int64{0, 0, 3}).EigenDecompose(c)
	require.NoError(t, err)
	assert.False(t, diag3.Exact)
	var got []float64
	for _, p := range diag3.Pairs {
		got = append(got, p.Value.Float())
	}
	sort.Float64s(got)
	require.Len(t, got, 3)
	for i, want := range []float64{1, 2, 3} {
		assert.InDelta(t, want, got[i], 1e-12)
	}
}

func TestMatrix_ApplyHomogeneous(t *testing.T) {
	c := calc()
	m := geom.Affine(v(1), v(0), v(0), v(1), v(2), v(-1))
	p, err := m.ApplyPoint(c, geom.Pt(3, 3))
	require.NoError(t, err)
	assert.Equal(t, [2]string{"5", "2"}, [2]string{p.X.String(), p.Y.String()})

	r := geom.RotationMatrix(c, geom.Pt(1, 1), value.Pi)
	q, err := r.ApplyPoint(c, geom.Pt(2, 1))
	require.NoError(t, err)
	assert.Equal(t, [2]string{"0", "1"}, [2]string{q.X.String(), q.Y.String()})
}

func TestTransforms(t *testing.T) {
	c := calc()
	half, _ := value.Parse("pi/2")
	r := geom.Rotate(c, geom.Pt(1, 0), geom.Pt(0, 0), half)
	assert.Equal(t, [2]string{"0", "1"}, [2]string{r.X.String(), r.Y.String()})

	l, _ := geom.LineThrough(c, geom.Pt(0, 0), geom.Pt(1, 1))
	m := geom.ReflectPoint(c, l, geom.Pt(1, 2))
	assert.Equal(t, [2]string{"2", "1"}, [2]string{m.X.String(), m.Y.String()})

	s := geom.ScaleAbout(c, geom.Pt(3, 3), geom.Pt(1, 1), v(2), v(3))
	assert.Equal(t, [2]string{"5", "7"}, [2]string{s.X.String(), s.Y.String()})
	assert.ErrorIs(t, geom.CheckScale(c, v(0), v(1)), diag.ErrDegenerate)
}

func TestFunction(t *testing.T) {
	c := calc()
	f, err := geom.ParseFunction("x^3 - 3*x", "x")
	require.NoError(t, err)
	assert.Equal(t, "3*x^2 - 3", f.Derivative().String())
	y, err := f.At(c, v(2))
	require.NoError(t, err)
	assert.Equal(t, "2", y.String())
	assert.Equal(t, 3, f.Degree())

	_, err = geom.ParseFunction("x + a", "x")
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)

	g, _ := geom.ParseFunction("ln(x)", "x")
	_, err = g.At(c, v(0))
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}

func TestLocus_Eliminate(t *testing.T) {
	c := calc()
	dom := geom.Rect{XMin: -3, XMax: 3, YMin: -3, YMax: 3}

	circle, err := geom.NewLocus(symbolic.MustParse("x^2 + y^2 - 4"), dom, 40)
	require.NoError(t, err)
	el, ok, err := circle.Eliminate(c)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "conic", el.Kind)
	assert.True(t, el.Conic.Circle)

	line, err := geom.NewLocus(symbolic.MustParse("2*x - y + 1"), dom, 10)
	require.NoError(t, err)
	el, ok, err = line.Eliminate(c)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "line", el.Kind)
	assert.True(t, el.Line.Contains(c, geom.Pt(0, 1)))

	wave, err := geom.NewLocus(symbolic.MustParse("y - sin(x)"), dom, 10)
	require.NoError(t, err)
	_, ok, err = wave.Eliminate(c)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = geom.NewLocus(symbolic.MustParse("x + z"), dom, 10)
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
	_, err = geom.NewLocus(symbolic.MustParse("x + y"), geom.Rect{XMin: 1, XMax: 1, YMin: 0, YMax: 1}, 10)
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}

func TestLocus_SamplesLieNearCurve(t *testing.T) {
	dom := geom.Rect{XMin: -3, XMax: 3, YMin: -3, YMax: 3}
	l, err := geom.NewLocus(symbolic.MustParse("x^2 + y^2 - 4"), dom, 40)
	require.NoError(t, err)
	n := 0
	for p := range l.Samples() {
		n++
		assert.InDelta(t, 4, p[0]*p[0]+p[1]*p[1], 0.05)
	}
	assert.Greater(t, n, 40)

	taken := 0
	for range l.Samples() {
		taken++
		if taken == 3 {
			break
		}
	}
	assert.Equal(t, 3, taken)
}

func TestLocus_SamplesFindEvenOrderZeros(t *testing.T) {
	dom := geom.Rect{XMin: -2, XMax: 2, YMin: -2, YMax: 2}
	l, err := geom.NewLocus(symbolic.MustParse("(x^2 + y^2 - 1)^2"), dom, 40)
	require.NoError(t, err)
	n := 0
	for p := range l.Samples() {
		n++
		assert.InDelta(t, 1, p[0]*p[0]+p[1]*p[1], 1e-3)
	}
	assert.Greater(t, n, 40)
}

func TestFunction_Poles(t *testing.T) {
	opt := symbolic.RootOptions{Samples: 400, MaxIterations: 100, Tolerance: 1e-12}
	tests := []struct {
		expr   string
		lo, hi float64
		want   []float64
	}{
		{"1/x", -1, 2, []float64{0}},
		{"1/x^2", -1, 2, []float64{0}},
		{"tan(x)", 0, 2, []float64{math.Pi / 2}},
		{"1/(x^2 - 1)", -2, 2, []float64{-1, 1}},
		{"exp(-x^2)", -2, 2, nil},
		{"x^2 - 1", -2, 2, nil},
		{"sin(x)", 0, math.Pi, nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := geom.ParseFunction(tt.expr, "x")
			require.NoError(t, err)
			got := f.Poles(tt.lo, tt.hi, opt)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-6)
			}
		})
	}
}

func TestTriangle_ZeroValue(t *testing.T) {
	var tri geom.Triangle
	assert.NotPanics(t, func() {
		tri.Centroid()
		tri.Circumcenter()
		tri.Classify()
	})
}
