package plot_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/plot"
)

func TestCurve_SplitsAtNonFinite(t *testing.T) {
	var b plot.Builder
	xs := []float64{-2, -1, 0, 1, 2, 3}
	ys := []float64{0.5, 1, math.Inf(1), 1, math.NaN(), 7}
	b.Curve(xs, ys, plot.Color("blue"))

	els := b.Elements()
	require.Len(t, els, 1, "the lone sample after NaN is dropped")
	assert.Equal(t, plot.Curve, els[0].Type)
	assert.Equal(t, [][2]float64{{-2, 0.5}, {-1, 1}}, els[0].Data["points"])
	assert.Equal(t, "blue", els[0].Style.Color)

	var b2 plot.Builder
	b2.Curve([]float64{0, 1, 2, 3, 4}, []float64{0, 1, math.NaN(), 3, 4})
	assert.Len(t, b2.Elements(), 2)
}

func TestPoint_UsesLabelAsRef(t *testing.T) {
	var b plot.Builder
	b.Point(geom.Pt(1, 2).Named("A"), plot.Color("red"))
	b.Segment(geom.Pt(0, 0), geom.Pt(1, 1), plot.Dashed(), plot.Refs("A", "B"))

	els := b.Elements()
	require.Len(t, els, 2)
	assert.Equal(t, []string{"A"}, els[0].Refs)
	assert.Equal(t, "A", els[0].Style.Label)
	assert.Equal(t, [2]float64{1, 2}, els[0].Data["at"])
	assert.Equal(t, "dash", els[1].Style.Dash)
	assert.Equal(t, []string{"A", "B"}, els[1].Refs)
}
