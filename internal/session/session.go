package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/interactive/internal/config"
	"github.com/gyaneshwarpardhi/interactive/internal/event"
	"github.com/gyaneshwarpardhi/interactive/internal/gate"
	"github.com/gyaneshwarpardhi/interactive/internal/graph"
	"github.com/gyaneshwarpardhi/interactive/internal/metrics"
	"github.com/gyaneshwarpardhi/interactive/internal/runner"
)

var (
	ErrUnknownEvent = errors.New("unknown or incomplete event")
	ErrClosed       = errors.New("session closed")
)

// EventResult is the outcome of applying a single UI event.
type EventResult struct {
	EventID          string     `json:"event_id"`
	Type             event.Type `json:"type"`
	NodeID           string     `json:"node_id,omitempty"`
	Execute          bool       `json:"execute"`
	ExecutionID      string     `json:"execution_id,omitempty"`
	ExecutionDropped bool       `json:"execution_dropped,omitempty"`
	Deselected       []string   `json:"deselected,omitempty"`
	Reset            []string   `json:"reset,omitempty"`
	Revision         uint64     `json:"revision"`
	DurationMs       float64    `json:"duration_ms"`
}

// Session plays the host editor: it owns the live graph, applies UI events one
// at a time and runs the pipeline on snapshots when a click asks for it.
type Session struct {
	mu     sync.Mutex // serializes every access to graph
	graph  *graph.Graph
	epoch  uint64 // bumped when the graph is swapped or previews are cleared
	closed bool

	gate   *gate.Engine
	runner *runner.Runner
	pool   *workerPool[*execution]
	conf   config.SessionConf
	logger *slog.Logger

	histMu    sync.RWMutex
	history   map[string]*runner.Result
	histOrder []string
}

type execution struct {
	id    string
	graph *graph.Graph
	epoch uint64
}

// New creates a Session for g, starts the execution pool and loads g.
func New(ctx context.Context, g *graph.Graph, eng *gate.Engine, run *runner.Runner, conf config.SessionConf, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		gate:    eng,
		runner:  run,
		conf:    conf,
		logger:  logger,
		history: make(map[string]*runner.Result),
	}
	s.pool = newWorkerPool(ctx, conf.ExecutionWorkers, conf.QueueDepth, s.execute)
	s.Load(g)
	return s
}

// Load replaces the live graph: every node goes through creation, then the
// graph-loaded hook syncs labels and visuals.
func (s *Session) Load(g *graph.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range g.Nodes() {
		s.gate.NodeCreated(n)
	}
	s.gate.GraphLoaded(g)
	s.graph = g
	s.epoch++
	metrics.GraphNodes.Set(float64(g.NodeCount()))
	s.logger.Info("graph loaded", "nodes", g.NodeCount(), "links", len(g.Links()))
}

// Apply validates a reloaded config and swaps in the graph built from its
// workflow. The live graph is kept when either step fails. Theme and session
// settings only take effect on restart.
func (s *Session) Apply(cfg *config.AppConfig) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	g, err := graph.Build(&cfg.Workflow)
	if err != nil {
		return fmt.Errorf("build workflow: %w", err)
	}
	s.Load(g)
	return nil
}

// Handle applies ev to the live graph and queues a run when the event asks for one.
func (s *Session) Handle(ctx context.Context, ev *event.Event) (*EventResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ev.Valid() {
		metrics.EventsHandled.WithLabelValues(string(ev.Type), "rejected").Inc()
		return nil, fmt.Errorf("event %s (%q): %w", ev.ID, ev.Type, ErrUnknownEvent)
	}

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	var click gate.ClickResult
	switch ev.Type {
	case event.TypeClick:
		res, err := s.gate.Click(s.graph, ev.NodeID)
		if err != nil {
			metrics.EventsHandled.WithLabelValues(string(ev.Type), "error").Inc()
			return nil, err
		}
		click = res
		if len(click.Reset) > 0 {
			s.epoch++
		}
	case event.TypeReset:
		click = s.gate.ClickReset(s.graph)
		s.epoch++
	case event.TypeGraphChanged:
		s.gate.GraphChanged(s.graph)
	case event.TypeGraphLoaded:
		s.gate.GraphLoaded(s.graph)
	}

	out := &EventResult{
		EventID:    ev.ID,
		Type:       ev.Type,
		NodeID:     ev.NodeID,
		Execute:    click.Execute,
		Deselected: click.Deselected,
		Reset:      click.Reset,
	}
	if click.Execute {
		id, ok := s.enqueueLocked()
		out.ExecutionID = id
		out.ExecutionDropped = !ok
	}
	out.Revision = s.graph.Revision()
	out.DurationMs = float64(time.Since(start).Microseconds()) / 1000

	metrics.EventsHandled.WithLabelValues(string(ev.Type), "ok").Inc()
	metrics.EventDuration.Observe(out.DurationMs)
	metrics.SelectionsForced.Add(float64(len(click.Deselected)))
	metrics.SelectorsReset.Add(float64(len(click.Reset)))
	return out, nil
}

// enqueueLocked snapshots the graph and queues a run. Callers hold s.mu.
func (s *Session) enqueueLocked() (string, bool) {
	x := &execution{id: uuid.New().String(), graph: s.graph.Clone(), epoch: s.epoch}
	if !s.pool.Submit(x) {
		metrics.ExecutionsDropped.Inc()
		s.logger.Warn("execution queue full, run dropped", "capacity", s.pool.QueueCap())
		return "", false
	}
	metrics.ExecutionsQueued.Inc()
	s.record(&runner.Result{ID: x.id, Status: runner.StatusQueued})
	return x.id, true
}

func (s *Session) execute(ctx context.Context, x *execution) {
	timeout := time.Duration(s.conf.ExecutionTimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res := s.runner.Run(ctx, x.graph)
	res.ID = x.id
	s.record(res)
	metrics.ExecutionsFinished.WithLabelValues(string(res.Status)).Inc()
	metrics.ExecutionDuration.Observe(float64(res.DurationMs))
	s.logger.Info("execution finished", "id", res.ID, "status", res.Status, "duration_ms", res.DurationMs)

	previews := res.Previews()
	if len(previews) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if x.epoch != s.epoch {
		s.logger.Debug("previews skipped, graph reset or replaced during run", "id", res.ID)
		return
	}
	for id, images := range previews {
		if n := s.graph.Node(id); n != nil {
			n.Images = images
		}
	}
	s.graph.SetDirtyCanvas()
}

func (s *Session) record(res *runner.Result) {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	if _, exists := s.history[res.ID]; !exists {
		s.histOrder = append(s.histOrder, res.ID)
	}
	s.history[res.ID] = res
	for len(s.histOrder) > s.conf.HistorySize && s.conf.HistorySize > 0 {
		delete(s.history, s.histOrder[0])
		s.histOrder = s.histOrder[1:]
	}
}

// Result returns the latest known state of an execution.
func (s *Session) Result(id string) (*runner.Result, bool) {
	s.histMu.RLock()
	defer s.histMu.RUnlock()
	res, ok := s.history[id]
	return res, ok
}

// QueueUtilization returns queue used / capacity (0–1).
func (s *Session) QueueUtilization() float64 {
	if s.pool.QueueCap() == 0 {
		return 0
	}
	return float64(s.pool.QueueLen()) / float64(s.pool.QueueCap())
}

// Shutdown stops accepting events and drains queued runs.
func (s *Session) Shutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.pool.Drain()
}
