package result_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/result"
	"github.com/njchilds90/geographer/value"
)

func TestBuild_StatusPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		diags []diag.Diagnostic
		want  result.Status
	}{
		{"none", nil, result.OK},
		{"warning", []diag.Diagnostic{diag.Warning(diag.Degenerate, "tangent")}, result.Warning},
		{"error wins", []diag.Diagnostic{
			diag.Warning(diag.SymbolicFallback, "numeric"),
			diag.Degen("collinear").Diagnostic(),
		}, result.Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := result.NewAssembler("distance")
			a.Warn(tt.diags...)
			assert.Equal(t, tt.want, a.Build().Status())
		})
	}
}

func TestBuild_IsImmutable(t *testing.T) {
	a := result.NewAssembler("midpoint")
	a.Set("x", 1)
	a.Steps.Add("given", "A, B")
	r := a.Build()

	a.Set("x", 2)
	a.Steps.Add("later", "ignored")
	p := r.Payload()
	p["x"] = 3

	got, _ := r.Get("x")
	assert.Equal(t, 1, got)
	assert.Len(t, r.Derivation(), 1)
}

func TestWarn_Dedupes(t *testing.T) {
	a := result.NewAssembler("classify_conic")
	w := diag.Warning(diag.Degenerate, "parabolic boundary")
	a.Warn(w, w)
	a.Warn(w)
	assert.Len(t, a.Build().Warnings(), 1)
}

func TestMarshalJSON(t *testing.T) {
	a := result.NewAssembler("distance")
	a.Set("distance", value.Int(5))
	a.Steps.Add("formula", "d = sqrt(dx^2 + dy^2)")
	b, err := json.Marshal(a.Build())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"status": "ok",
		"operation": "distance",
		"payload": {"distance": {"exact": "5", "latex": "5", "value": 5}},
		"derivation": [{"label": "formula", "text": "d = sqrt(dx^2 + dy^2)"}],
		"plot_elements": [],
		"warnings": []
	}`, string(b))

	f := result.NewAssembler("distance")
	f.Fail(diag.Invalid("missing argument p"))
	b, err = json.Marshal(f.Build())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"status":"error"`)
	assert.Contains(t, string(b), `{"kind":"invalid_argument","detail":"missing argument p"}`)
}
