package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/interactive/internal/config"
	"github.com/gyaneshwarpardhi/interactive/internal/event"
	"github.com/gyaneshwarpardhi/interactive/internal/gate"
	"github.com/gyaneshwarpardhi/interactive/internal/graph"
	"github.com/gyaneshwarpardhi/interactive/internal/runner"
)

func testConf() config.SessionConf {
	return config.SessionConf{ExecutionWorkers: 1, QueueDepth: 8, ExecutionTimeoutMs: 2000, HistorySize: 10}
}

// workflow wires two images through selectors a and b into a switch and a save node.
func workflow(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(&config.Workflow{
		Nodes: []config.NodeDef{
			{ID: "img1", Type: "InteractiveString", Widgets: map[string]interface{}{"string": "one.png"}},
			{ID: "img2", Type: "InteractiveString", Widgets: map[string]interface{}{"string": "two.png"}},
			{ID: "a", Type: "InteractiveSelector"},
			{ID: "b", Type: "InteractiveSelector"},
			{ID: "sw", Type: "InteractiveSwitch"},
			{ID: "save", Type: "InteractiveSave"},
		},
		Links: []config.LinkDef{
			{Origin: "img1", Target: "a"},
			{Origin: "img2", Target: "b"},
			{Origin: "a", Target: "sw", TargetSlot: 0},
			{Origin: "b", Target: "sw", TargetSlot: 1},
			{Origin: "sw", Target: "save"},
		},
	})
	require.NoError(t, err)
	return g
}

func newSession(t *testing.T, g *graph.Graph, conf config.SessionConf) *Session {
	t.Helper()
	eng := gate.New(gate.DefaultTheme(), gate.WithSeedSource(func() int64 { return 7 }))
	s := New(context.Background(), g, eng, runner.New(runner.DefaultRegistry(), nil), conf, nil)
	t.Cleanup(s.Shutdown)
	return s
}

func click(id string) *event.Event {
	return &event.Event{ID: "ev-" + id, Type: event.TypeClick, NodeID: id, OccurredAt: time.Now()}
}

func nodeView(v *GraphView, id string) *NodeView {
	for i := range v.Nodes {
		if v.Nodes[i].ID == id {
			return &v.Nodes[i]
		}
	}
	return nil
}

func TestLoad_PreparesNodes(t *testing.T) {
	s := newSession(t, workflow(t), testConf())
	view := s.Snapshot()

	for _, id := range []string{"a", "b"} {
		nv := nodeView(view, id)
		require.NotNil(t, nv)
		require.NotNil(t, nv.Selected)
		assert.False(t, *nv.Selected)
		assert.Equal(t, gate.VisualSelectable, nv.Visual)
		assert.Equal(t, gate.DefaultTheme().SelectText, nv.Button)
	}
	assert.Equal(t, gate.SaveText, nodeView(view, "save").Button)
	assert.Nil(t, nodeView(view, "sw").Selected)
	assert.Len(t, view.Links, 5)
}

func TestHandle_SelectRunsPipeline(t *testing.T) {
	s := newSession(t, workflow(t), testConf())

	res, err := s.Handle(context.Background(), click("a"))
	require.NoError(t, err)
	assert.True(t, res.Execute)
	assert.False(t, res.ExecutionDropped)
	require.NotEmpty(t, res.ExecutionID)

	view := s.Snapshot()
	assert.Equal(t, gate.VisualActive, nodeView(view, "a").Visual)
	assert.Equal(t, gate.VisualInactive, nodeView(view, "b").Visual)
	assert.Equal(t, gate.DefaultTheme().DeselectText, nodeView(view, "a").Button)

	require.Eventually(t, func() bool {
		r, ok := s.Result(res.ExecutionID)
		return ok && r.Status == runner.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(nodeView(s.Snapshot(), "a").Images) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"one.png"}, nodeView(s.Snapshot(), "a").Images)
}

func TestHandle_SwitchingSelectionDeselectsOther(t *testing.T) {
	s := newSession(t, workflow(t), testConf())

	_, err := s.Handle(context.Background(), click("a"))
	require.NoError(t, err)
	res, err := s.Handle(context.Background(), click("b"))
	require.NoError(t, err)

	assert.True(t, res.Execute)
	assert.Equal(t, []string{"a"}, res.Deselected)

	view := s.Snapshot()
	assert.False(t, *nodeView(view, "a").Selected)
	assert.True(t, *nodeView(view, "b").Selected)
}

func TestHandle_ResetClearsSelections(t *testing.T) {
	s := newSession(t, workflow(t), testConf())
	_, err := s.Handle(context.Background(), click("a"))
	require.NoError(t, err)

	res, err := s.Handle(context.Background(), &event.Event{ID: "r", Type: event.TypeReset})
	require.NoError(t, err)
	assert.False(t, res.Execute)
	assert.Empty(t, res.ExecutionID)

	view := s.Snapshot()
	assert.False(t, *nodeView(view, "a").Selected)
	assert.Equal(t, gate.VisualSelectable, nodeView(view, "a").Visual)
}

func TestHandle_Errors(t *testing.T) {
	s := newSession(t, workflow(t), testConf())

	_, err := s.Handle(context.Background(), click("missing"))
	assert.ErrorIs(t, err, gate.ErrNodeNotFound)

	_, err = s.Handle(context.Background(), click("sw"))
	assert.ErrorIs(t, err, gate.ErrNotClickable)

	_, err = s.Handle(context.Background(), &event.Event{ID: "x", Type: event.TypeClick})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	_, err = s.Handle(context.Background(), &event.Event{ID: "y", Type: "drag"})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Handle(ctx, click("a"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandle_QueueFullDropsRun(t *testing.T) {
	conf := testConf()
	conf.ExecutionWorkers = 0
	conf.QueueDepth = 0
	s := newSession(t, workflow(t), conf)

	res, err := s.Handle(context.Background(), click("save"))
	require.NoError(t, err)
	assert.True(t, res.Execute)
	assert.True(t, res.ExecutionDropped)
	assert.Empty(t, res.ExecutionID)
}

func TestHistoryIsBounded(t *testing.T) {
	conf := testConf()
	conf.ExecutionWorkers = 0
	conf.HistorySize = 1
	s := newSession(t, workflow(t), conf)

	first, err := s.Handle(context.Background(), click("save"))
	require.NoError(t, err)
	second, err := s.Handle(context.Background(), click("save"))
	require.NoError(t, err)

	_, ok := s.Result(first.ExecutionID)
	assert.False(t, ok)
	queued, ok := s.Result(second.ExecutionID)
	require.True(t, ok)
	assert.Equal(t, runner.StatusQueued, queued.Status)
	assert.InDelta(t, 0.25, s.QueueUtilization(), 0.001)
}

func TestHandle_SeedClick(t *testing.T) {
	g := graph.NewGraph()
	g.AddNode(graph.NewNode("seed", graph.KindSeed))
	s := newSession(t, g, testConf())

	res, err := s.Handle(context.Background(), click("seed"))
	require.NoError(t, err)
	assert.True(t, res.Execute)

	var seed interface{}
	for _, w := range nodeView(s.Snapshot(), "seed").Widgets {
		if w.Name == "seed_value" {
			seed = w.Value
		}
	}
	assert.Equal(t, int64(7), seed)
}

func TestShutdown_RejectsEvents(t *testing.T) {
	s := newSession(t, workflow(t), testConf())
	s.Shutdown()

	_, err := s.Handle(context.Background(), click("a"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestWorkerPool_DrainRunsQueued(t *testing.T) {
	done := make(chan int, 4)
	p := newWorkerPool(context.Background(), 2, 4, func(_ context.Context, n int) { done <- n })
	for i := 0; i < 4; i++ {
		require.True(t, p.Submit(i))
	}
	p.Drain()
	assert.Len(t, done, 4)
}

func TestApply(t *testing.T) {
	s := newSession(t, workflow(t), testConf())

	cfg, err := config.Parse([]byte(`
version: "1"
workflow:
  nodes:
    - id: only
      type: InteractiveSelector
      widgets:
        selected: true
`))
	require.NoError(t, err)
	require.NoError(t, s.Apply(cfg))

	view := s.Snapshot()
	require.Len(t, view.Nodes, 1)
	assert.Equal(t, gate.DefaultTheme().DeselectText, view.Nodes[0].Button)

	bad := &config.AppConfig{Workflow: config.Workflow{Nodes: []config.NodeDef{{ID: "x"}}}}
	assert.Error(t, s.Apply(bad))
	assert.Len(t, s.Snapshot().Nodes, 1)
}

func TestExecute_SkipsPreviewsAfterResetOrReload(t *testing.T) {
	conf := testConf()
	conf.ExecutionWorkers = 0
	s := newSession(t, workflow(t), conf)
	ctx := context.Background()

	queued := func(id string) *execution {
		t.Helper()
		res, err := s.Handle(ctx, click(id))
		require.NoError(t, err)
		require.NotEmpty(t, res.ExecutionID)
		return <-s.pool.queue
	}

	x := queued("a")
	_, err := s.Handle(ctx, &event.Event{ID: "r", Type: event.TypeReset})
	require.NoError(t, err)
	s.execute(ctx, x)

	r, ok := s.Result(x.id)
	require.True(t, ok)
	assert.Equal(t, runner.StatusCompleted, r.Status)
	assert.Empty(t, nodeView(s.Snapshot(), "a").Images)

	x = queued("a")
	s.execute(ctx, x)
	assert.Equal(t, []string{"one.png"}, nodeView(s.Snapshot(), "a").Images)

	x = queued("b")
	require.NoError(t, s.Apply(&config.AppConfig{Version: "2", Workflow: config.Workflow{
		Nodes: []config.NodeDef{{ID: "a", Type: "InteractiveSelector"}},
	}}))
	s.execute(ctx, x)
	assert.Empty(t, nodeView(s.Snapshot(), "a").Images)
}
