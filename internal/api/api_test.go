package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/interactive/internal/config"
	"github.com/gyaneshwarpardhi/interactive/internal/gate"
	"github.com/gyaneshwarpardhi/interactive/internal/graph"
	"github.com/gyaneshwarpardhi/interactive/internal/runner"
	"github.com/gyaneshwarpardhi/interactive/internal/session"
)

const workflowYAML = `
version: "1"
session:
  execution_workers: 1
  queue_depth: 4
workflow:
  nodes:
    - id: a
      type: InteractiveSelector
    - id: b
      type: InteractiveSelector
    - id: sw
      type: InteractiveSwitch
    - id: reset
      type: InteractiveReset
  links:
    - {origin: a, target: sw, target_slot: 0}
    - {origin: b, target: sw, target_slot: 1}
`

type testServer struct {
	t    *testing.T
	h    http.Handler
	path string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(workflowYAML), 0o644))

	loader, err := config.NewLoader(path)
	require.NoError(t, err)
	cfg := loader.Config()
	require.NoError(t, config.Validate(cfg))
	g, err := graph.Build(&cfg.Workflow)
	require.NoError(t, err)

	sess := session.New(context.Background(), g, gate.New(gate.DefaultTheme()),
		runner.New(runner.DefaultRegistry(), nil), cfg.Session, nil)
	t.Cleanup(sess.Shutdown)

	return &testServer{t: t, h: New(sess, loader), path: path}
}

func (s *testServer) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, httptest.NewRequest(method, target, &buf))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestPostEvent_Click(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/v1/events", map[string]string{"type": "click", "node_id": "a"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[session.EventResult](t, rec)
	assert.NotEmpty(t, res.EventID)
	assert.True(t, res.Execute)
	assert.NotEmpty(t, res.ExecutionID)

	rec = s.do(http.MethodGet, "/v1/executions/"+res.ExecutionID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	view := decode[session.GraphView](t, s.do(http.MethodGet, "/v1/graph", nil))
	for _, n := range view.Nodes {
		switch n.ID {
		case "a":
			assert.Equal(t, gate.VisualActive, n.Visual)
		case "b":
			assert.Equal(t, gate.VisualInactive, n.Visual)
		}
	}
}

func TestPostEvent_Errors(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		body interface{}
		want int
	}{
		{"unknown type", map[string]string{"type": "drag"}, http.StatusBadRequest},
		{"missing node id", map[string]string{"type": "click"}, http.StatusBadRequest},
		{"unknown node", map[string]string{"type": "click", "node_id": "nope"}, http.StatusNotFound},
		{"no button", map[string]string{"type": "click", "node_id": "sw"}, http.StatusConflict},
		{"bad json", "not an object", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/v1/events", tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
			assert.Equal(t, tc.want, decode[errorResponse](t, rec).Status)
		})
	}
}

func TestPostBatch(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/v1/events/batch", []map[string]string{
		{"type": "click", "node_id": "a"},
		{"type": "click", "node_id": "missing"},
		{"type": "click", "node_id": "reset"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.EqualValues(t, 3, body["total"])
	assert.EqualValues(t, 2, body["applied"])
	assert.EqualValues(t, 1, body["failed"])

	rec = s.do(http.MethodPost, "/v1/events/batch", []map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/v1/events/batch", []interface{}{nil, map[string]string{"type": "reset"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body = decode[map[string]interface{}](t, rec)
	assert.EqualValues(t, 1, body["applied"])
	assert.EqualValues(t, 1, body["failed"])
}

func TestGetExecution_NotFound(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/v1/executions/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReloadWorkflow(t *testing.T) {
	s := newTestServer(t)

	require.NoError(t, os.WriteFile(s.path, []byte(`
version: "2"
workflow:
  nodes:
    - id: seed
      type: InteractiveSeed
`), 0o644))
	rec := s.do(http.MethodPost, "/v1/workflow/reload", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	view := decode[session.GraphView](t, s.do(http.MethodGet, "/v1/graph", nil))
	require.Len(t, view.Nodes, 1)
	assert.Equal(t, gate.SeedText, view.Nodes[0].Button)

	require.NoError(t, os.WriteFile(s.path, []byte("workflow: {}\n"), 0o644))
	rec = s.do(http.MethodPost, "/v1/workflow/reload", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	require.NoError(t, os.WriteFile(s.path, []byte("version: [unclosed\n"), 0o644))
	rec = s.do(http.MethodPost, "/v1/workflow/reload", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	require.NoError(t, os.Remove(s.path))
	rec = s.do(http.MethodPost, "/v1/workflow/reload", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProbes(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", nil).Code)

	rec := s.do(http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode[map[string]interface{}](t, rec)["status"])

	rec = s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "interactive_selections_forced_total")
}
