package geographer_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/geographer"
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/result"
)

func TestDefault_IsShared(t *testing.T) {
	assert.Same(t, geographer.Default(), geographer.Default())
	assert.NotEmpty(t, geographer.Operations())
}

func TestInvoke(t *testing.T) {
	res, err := geographer.Invoke("distance", map[string]any{"a": []any{0, 0}, "b": []any{3, 4}})
	require.NoError(t, err)
	assert.Equal(t, result.OK, res.Status())

	b, err := json.Marshal(res)
	require.NoError(t, err)
	var wire struct {
		Status    string         `json:"status"`
		Operation string         `json:"operation"`
		Payload   map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(b, &wire))
	assert.Equal(t, "ok", wire.Status)
	assert.Equal(t, "distance", wire.Operation)
	assert.Contains(t, wire.Payload, "distance")
}

func TestHandle_Envelope(t *testing.T) {
	r := geographer.Default()

	resp := geographer.Handle(r, registry.Request{ID: "no_such_op"})
	assert.Nil(t, resp.Result)
	require.NotNil(t, resp.Error)
	assert.Equal(t, diag.NotFound, resp.Error.Kind)

	resp = geographer.Handle(r, registry.Request{ID: "distance", Args: map[string]any{"a": []any{0, 0}}})
	require.NotNil(t, resp.Result)
	assert.Equal(t, result.Error, resp.Result.Status())
	require.NotNil(t, resp.Error)
	assert.Equal(t, diag.InvalidArgument, resp.Error.Kind)

	resp = geographer.Handle(r, registry.Request{ID: "distance", Args: map[string]any{"a": []any{1, 1}, "b": []any{1, 1}}})
	assert.Nil(t, resp.Error)
}
