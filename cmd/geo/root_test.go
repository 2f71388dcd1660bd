package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestOps_JSON(t *testing.T) {
	out, err := run(t, "ops", "--domain", "points", "-o", "json")
	require.NoError(t, err)

	var ds []struct {
		ID     string `json:"id"`
		Domain string `json:"domain"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ds))
	require.NotEmpty(t, ds)
	for _, d := range ds {
		assert.Equal(t, "points", d.Domain)
	}
}

func TestOps_UnknownDomain(t *testing.T) {
	_, err := run(t, "ops", "--domain", "astrology")
	assert.ErrorContains(t, err, "astrology")
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe", "distance")
	require.NoError(t, err)
	assert.Contains(t, out, "distance")
	assert.Contains(t, out, "3-4-5")

	_, err = run(t, "describe", "no_such_operation")
	assert.Error(t, err)
}

func TestInvoke(t *testing.T) {
	out, err := run(t, "invoke", "distance", "--arg", "a=[0,0]", "--arg", "b=[3,4]", "-o", "json")
	require.NoError(t, err)

	var resp struct {
		Result struct {
			Status  string `json:"status"`
			Payload struct {
				Distance struct {
					Exact string `json:"exact"`
				} `json:"distance"`
			} `json:"payload"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Result.Status)
	assert.Equal(t, "5", resp.Result.Payload.Distance.Exact)
}

func TestInvoke_PresetWithOverride(t *testing.T) {
	out, err := run(t, "invoke", "distance", "--preset", "3-4-5", "--args", `{"b":[6,8]}`, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "status: ok")
	assert.Contains(t, out, "exact: \"10\"")
}

func TestInvoke_Errors(t *testing.T) {
	_, err := run(t, "invoke", "no_such_operation")
	assert.Error(t, err)

	_, err = run(t, "invoke", "distance", "--arg", "a=[0,0]")
	assert.ErrorContains(t, err, "invalid_argument")

	_, err = run(t, "invoke", "distance", "--arg", "novalue")
	assert.ErrorContains(t, err, "key=value")

	_, err = run(t, "invoke", "distance", "--preset", "missing")
	assert.ErrorContains(t, err, "no preset")
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(strings.TrimSpace(out))))
}

func TestPresets_Table(t *testing.T) {
	out, err := run(t, "presets", "--domain", "points")
	require.NoError(t, err)
	assert.Contains(t, out, "OPERATION")
	assert.Contains(t, out, "midpoint")
}

func TestParseArgs(t *testing.T) {
	got, err := parseArgs(`{"k":2}`, []string{"expression=x^2 - 1", "n=3", "flag=true"})
	require.NoError(t, err)
	assert.Equal(t, "x^2 - 1", got["expression"])
	assert.Equal(t, json.Number("3"), got["n"])
	assert.Equal(t, true, got["flag"])
	assert.Equal(t, json.Number("2"), got["k"])
}
