package registry_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/result"
	"github.com/njchilds90/geographer/value"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixture() []registry.Entry {
	return []registry.Entry{
		{
			Descriptor: registry.Descriptor{
				ID: "midpoint", Domain: "points", Label: "Midpoint",
				Args: []registry.ArgSpec{
					{Name: "a", Kind: registry.PointArg, Required: true},
					{Name: "b", Kind: registry.PointArg, Default: []any{0, 0}},
				},
				Presets: []registry.Preset{{Name: "unit", Args: map[string]any{"a": []any{2, 4}}}},
			},
			Handler: func(c *registry.Call) error {
				m := geom.Midpoint(c.Calc, c.Point("a"), c.Point("b"))
				c.Step("midpoint", "M = %s", m)
				c.Set("midpoint", m)
				return nil
			},
		},
		{
			Descriptor: registry.Descriptor{
				ID: "circle_area", Domain: "circles", Label: "Circle area",
				Args: []registry.ArgSpec{
					{Name: "r", Kind: registry.Number, Required: true, Constraints: []registry.Constraint{registry.Positive}},
					{Name: "unit", Kind: registry.Choice, Default: "cm", Choices: []string{"cm", "m"}},
				},
			},
			Handler: func(c *registry.Call) error {
				c.Set("area", c.Calc.Mul(c.Calc.Square(c.Number("r")), value.Pi))
				c.Set("unit", c.Text("unit"))
				return nil
			},
		},
		{
			Descriptor: registry.Descriptor{ID: "always_degenerate", Domain: "misc", Label: "Degenerate"},
			Handler: func(c *registry.Call) error {
				c.Step("check", "points coincide")
				return diag.Degen("points coincide")
			},
		},
		{
			Descriptor: registry.Descriptor{ID: "panics", Domain: "misc", Label: "Panics"},
			Handler:    func(*registry.Call) error { panic("boom") },
		},
	}
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.New(fixture())
	require.NoError(t, err)
	return r
}

func TestNew_RejectsBadDescriptors(t *testing.T) {
	ok := func(*registry.Call) error { return nil }
	tests := []struct {
		name  string
		entry registry.Entry
	}{
		{"bad id", registry.Entry{Descriptor: registry.Descriptor{ID: "Bad-Id", Domain: "d", Label: "l"}, Handler: ok}},
		{"no handler", registry.Entry{Descriptor: registry.Descriptor{ID: "x", Domain: "d", Label: "l"}}},
		{"unknown kind", registry.Entry{Descriptor: registry.Descriptor{ID: "x", Domain: "d", Label: "l",
			Args: []registry.ArgSpec{{Name: "a", Kind: "tensor"}}}, Handler: ok}},
		{"bad default", registry.Entry{Descriptor: registry.Descriptor{ID: "x", Domain: "d", Label: "l",
			Args: []registry.ArgSpec{{Name: "a", Kind: registry.Number, Default: "1 +"}}}, Handler: ok}},
		{"choice without choices", registry.Entry{Descriptor: registry.Descriptor{ID: "x", Domain: "d", Label: "l",
			Args: []registry.ArgSpec{{Name: "a", Kind: registry.Choice}}}, Handler: ok}},
		{"bad preset", registry.Entry{Descriptor: registry.Descriptor{ID: "x", Domain: "d", Label: "l",
			Args:    []registry.ArgSpec{{Name: "a", Kind: registry.Number, Required: true}},
			Presets: []registry.Preset{{Name: "p", Args: map[string]any{}}}}, Handler: ok}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.New([]registry.Entry{tt.entry})
			assert.ErrorIs(t, err, diag.ErrInternal)
		})
	}

	_, err := registry.New(append(fixture(), fixture()[0]))
	assert.ErrorIs(t, err, diag.ErrInternal, "duplicate ids")
}

func TestLookup(t *testing.T) {
	r := newRegistry(t)
	d, err := r.Lookup("midpoint")
	require.NoError(t, err)
	assert.Equal(t, "points", d.Domain)

	d.Args[0].Name = "changed"
	d.Presets[0].Args["a"] = "oops"
	again, err := r.Lookup("midpoint")
	require.NoError(t, err)
	assert.Equal(t, "a", again.Args[0].Name, "descriptors are copied out")
	assert.Equal(t, []any{2, 4}, again.Presets[0].Args["a"])

	_, err = r.Lookup("nope")
	assert.ErrorIs(t, err, diag.ErrNotFound)
}

func TestDescriptorsSorted(t *testing.T) {
	r := newRegistry(t)
	var ids []string
	for _, d := range r.Descriptors() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"always_degenerate", "circle_area", "midpoint", "panics"}, ids)
	assert.Equal(t, []string{"circles", "misc", "points"}, r.Domains())
}

func TestInvoke_Defaults(t *testing.T) {
	r := newRegistry(t)
	res, err := r.Invoke("midpoint", map[string]any{"a": []any{2, 4}})
	require.NoError(t, err)
	assert.Equal(t, result.OK, res.Status())
	m, ok := res.Get("midpoint")
	require.True(t, ok)
	assert.Equal(t, "(1, 2)", m.(geom.Point).String())
	assert.True(t, res.HasStep("midpoint"))

	res, err = r.Invoke("circle_area", map[string]any{"r": "1/2"})
	require.NoError(t, err)
	unit, _ := res.Get("unit")
	assert.Equal(t, "cm", unit)
	area, _ := res.Get("area")
	assert.Equal(t, "pi/4", area.(value.Value).String())
}

func TestInvoke_InvalidArguments(t *testing.T) {
	r := newRegistry(t)
	tests := []struct {
		name string
		id   string
		args map[string]any
	}{
		{"missing required", "midpoint", map[string]any{}},
		{"unknown argument", "midpoint", map[string]any{"a": []any{1, 1}, "z": 1}},
		{"malformed point", "midpoint", map[string]any{"a": []any{1}}},
		{"constraint", "circle_area", map[string]any{"r": -1}},
		{"zero is not positive", "circle_area", map[string]any{"r": 0.0}},
		{"choice", "circle_area", map[string]any{"r": 1, "unit": "km"}},
		{"unparsable number", "circle_area", map[string]any{"r": "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Invoke(tt.id, tt.args)
			require.ErrorIs(t, err, diag.ErrInvalidArgument)
			require.NotNil(t, res, "a result is still returned for rendering")
			assert.Equal(t, result.Error, res.Status())
			assert.True(t, res.HasWarning(diag.InvalidArgument))
		})
	}
}

func TestInvoke_NotFound(t *testing.T) {
	r := newRegistry(t)
	res, err := r.Invoke("no_such_op", nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, diag.ErrNotFound)
}

func TestInvoke_DegenerateIsAResult(t *testing.T) {
	r := newRegistry(t)
	res, err := r.Invoke("always_degenerate", nil)
	require.NoError(t, err)
	assert.Equal(t, result.Error, res.Status())
	assert.True(t, res.HasWarning(diag.Degenerate))
	assert.True(t, res.HasStep("check"), "steps recorded before the failure are kept")
}

func TestInvoke_RecoversPanics(t *testing.T) {
	r := newRegistry(t)
	res, err := r.Invoke("panics", nil)
	assert.ErrorIs(t, err, diag.ErrInternal)
	require.NotNil(t, res)
	assert.Equal(t, result.Error, res.Status())
}

func TestInvoke_Idempotent(t *testing.T) {
	r := newRegistry(t)
	args := map[string]any{"a": []any{"1/3", 5}, "b": []any{1, "sqrt(2)"}}
	first, err := r.Invoke("midpoint", args)
	require.NoError(t, err)
	second, err := r.Invoke("midpoint", args)
	require.NoError(t, err)
	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestBatch_PreservesOrder(t *testing.T) {
	r := newRegistry(t)
	var reqs []registry.Request
	for i := range 20 {
		reqs = append(reqs, registry.Request{ID: "circle_area", Args: map[string]any{"r": i + 1}})
	}
	reqs = append(reqs, registry.Request{ID: "nope"})

	out, err := r.Batch(context.Background(), reqs, 4)
	require.NoError(t, err)
	require.Len(t, out, len(reqs))
	for i := range 20 {
		require.NoError(t, out[i].Err)
		area, _ := out[i].Result.Get("area")
		assert.InDelta(t, float64((i+1)*(i+1))*3.141592653589793, area.(value.Value).Float(), 1e-9)
	}
	assert.ErrorIs(t, out[20].Err, diag.ErrNotFound)
}

func TestBatch_Cancelled(t *testing.T) {
	r := newRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := r.Batch(ctx, []registry.Request{{ID: "midpoint", Args: map[string]any{"a": []any{1, 1}}}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, out, 1)
	assert.ErrorIs(t, out[0].Err, context.Canceled)
}

func TestRunPresets(t *testing.T) {
	r := newRegistry(t)
	out, err := r.RunPresets(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "unit", out[0].Request.Name)
	assert.Equal(t, result.OK, out[0].Result.Status())
}

func TestSchemaJSON(t *testing.T) {
	r := newRegistry(t)
	b, err := r.SchemaJSON()
	require.NoError(t, err)
	var s struct {
		Version    int
		Operations []struct {
			ID   string
			Args []map[string]any
		}
	}
	require.NoError(t, json.Unmarshal(b, &s))
	assert.Equal(t, registry.SchemaVersion, s.Version)
	require.Len(t, s.Operations, 4)
	assert.Equal(t, "circle_area", s.Operations[1].ID)
	assert.Equal(t, []any{"positive"}, s.Operations[1].Args[0]["constraints"])
}
