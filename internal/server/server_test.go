package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/njchilds90/geographer"
	"github.com/njchilds90/geographer/internal/config"
	"github.com/njchilds90/geographer/internal/server"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default().Server
	ts := httptest.NewServer(server.New(geographer.Default(), cfg, zaptest.NewLogger(t)).Handler())
	t.Cleanup(ts.Close)
	return ts
}

type envelope struct {
	Result *struct {
		Status  string         `json:"status"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
	Error *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func post(t *testing.T, ts *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	return resp, raw
}

func TestInvoke(t *testing.T) {
	ts := newServer(t)
	resp, body := post(t, ts, "/invoke", `{"operation":"midpoint","args":{"a":[0,0],"b":[4,2]}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	require.NotNil(t, env.Result)
	assert.Equal(t, "ok", env.Result.Status)
	assert.Contains(t, env.Result.Payload, "midpoint")
	assert.Nil(t, env.Error)
}

func TestInvoke_Errors(t *testing.T) {
	ts := newServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"unknown operation", `{"operation":"nope"}`, http.StatusNotFound, "not_found"},
		{"missing argument", `{"operation":"midpoint","args":{"a":[0,0]}}`, http.StatusBadRequest, "invalid_argument"},
		{"malformed json", `{"operation":`, http.StatusBadRequest, "invalid_argument"},
		{"unknown field", `{"operation":"midpoint","extra":1}`, http.StatusBadRequest, "invalid_argument"},
		{"trailing data", `{"operation":"midpoint"} {}`, http.StatusBadRequest, "invalid_argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, ts, "/invoke", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			var env envelope
			require.NoError(t, json.Unmarshal(body, &env))
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.kind, env.Error.Kind)
		})
	}
}

func TestInvoke_DegenerateIsOK(t *testing.T) {
	ts := newServer(t)
	resp, body := post(t, ts, "/invoke", `{"operation":"triangle_summary","args":{"a":[0,0],"b":[1,1],"c":[2,2]}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	require.NotNil(t, env.Result)
	assert.Equal(t, "error", env.Result.Status)
	assert.Nil(t, env.Error)
}

func TestBatch(t *testing.T) {
	ts := newServer(t)
	resp, body := post(t, ts, "/batch", `{"requests":[
		{"operation":"distance","args":{"a":[0,0],"b":[3,4]}},
		{"operation":"nope"},
		{"operation":"line_from_points","args":{"p":[0,1],"q":[2,5]}}
	]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Responses []envelope `json:"responses"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Responses, 3)
	assert.Equal(t, "ok", out.Responses[0].Result.Status)
	assert.Equal(t, "not_found", out.Responses[1].Error.Kind)
	assert.Equal(t, "ok", out.Responses[2].Result.Status)
}

func TestOperations(t *testing.T) {
	ts := newServer(t)

	resp, err := http.Get(ts.URL + "/operations?domain=circles")
	require.NoError(t, err)
	defer resp.Body.Close()
	var ds []struct {
		ID     string `json:"id"`
		Domain string `json:"domain"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ds))
	require.NotEmpty(t, ds)
	for _, d := range ds {
		assert.Equal(t, "circles", d.Domain)
	}

	one, err := http.Get(ts.URL + "/operations/circle_intersection")
	require.NoError(t, err)
	one.Body.Close()
	assert.Equal(t, http.StatusOK, one.StatusCode)

	missing, err := http.Get(ts.URL + "/operations/nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestSchemaAndHealth(t *testing.T) {
	ts := newServer(t)
	for _, path := range []string{"/schema", "/health"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		var v map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.NotEmpty(t, v, path)
	}
}
