// Package runner executes a snapshot of the graph: every node with a
// registered executor runs in traversal order, with its inputs fed from the
// outputs of the nodes linked into it.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gyaneshwarpardhi/interactive/internal/graph"
)

// Status is the final state of a run.
type Status string

const (
	StatusQueued      Status = "queued"
	StatusCompleted   Status = "completed"
	StatusInterrupted Status = "interrupted"
	StatusFailed      Status = "failed"
	StatusCancelled   Status = "cancelled"
)

// NodeResult records what one node produced.
type NodeResult struct {
	NodeID string     `json:"node_id"`
	Kind   graph.Kind `json:"kind"`
	Output *Output    `json:"output,omitempty"`
}

// Result is the outcome of one run.
type Result struct {
	ID            string       `json:"id"`
	Status        Status       `json:"status"`
	Nodes         []NodeResult `json:"nodes"`
	InterruptedAt string       `json:"interrupted_at,omitempty"`
	Error         string       `json:"error,omitempty"`
	DurationMs    int64        `json:"duration_ms"`
}

// Runner walks a graph and runs each node through the registry.
type Runner struct {
	registry *Registry
	logger   *slog.Logger
}

// New creates a Runner backed by reg.
func New(reg *Registry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{registry: reg, logger: logger}
}

// Run executes g. Nodes without an executor are skipped and produce no outputs.
// The run stops at the first interrupt, error or context cancellation.
func (r *Runner) Run(ctx context.Context, g *graph.Graph) *Result {
	start := time.Now()
	res := &Result{Status: StatusCompleted}
	outputs := make(map[string][]interface{}, g.NodeCount())

	incoming := make(map[string][]*graph.Link)
	for _, l := range g.Links() {
		incoming[l.TargetID] = append(incoming[l.TargetID], l)
	}

	for _, n := range g.Order() {
		if err := ctx.Err(); err != nil {
			res.Status = StatusCancelled
			res.Error = err.Error()
			break
		}
		exec, err := r.registry.Get(n.Kind)
		if err != nil {
			continue
		}

		in := &Input{Node: n, Values: make(map[string]interface{}, len(n.Widgets))}
		for _, w := range n.Widgets {
			if w.Type != graph.WidgetButton {
				in.Values[w.Name] = w.Value
			}
		}
		for _, l := range incoming[n.ID] {
			vals, ok := outputs[l.OriginID]
			if !ok || l.OriginSlot >= len(vals) || l.TargetSlot >= len(n.Inputs) {
				continue
			}
			in.Values[n.Inputs[l.TargetSlot].Name] = vals[l.OriginSlot]
		}

		out, err := exec.Execute(ctx, in)
		if errors.Is(err, ErrInterrupted) {
			res.Status = StatusInterrupted
			res.InterruptedAt = n.ID
			r.logger.Info("run interrupted", "node", n.ID, "kind", n.Kind)
			break
		}
		if err != nil {
			res.Status = StatusFailed
			res.Error = fmt.Sprintf("node %s: %s", n.ID, err)
			r.logger.Warn("node failed", "node", n.ID, "kind", n.Kind, "err", err)
			break
		}
		outputs[n.ID] = out.Values
		res.Nodes = append(res.Nodes, NodeResult{NodeID: n.ID, Kind: n.Kind, Output: out})
	}

	res.DurationMs = time.Since(start).Milliseconds()
	return res
}

// Previews returns the images each node displayed during the run, by node id.
func (res *Result) Previews() map[string][]string {
	out := make(map[string][]string)
	for _, nr := range res.Nodes {
		if nr.Output == nil {
			continue
		}
		if pv, ok := nr.Output.UI.(*Preview); ok && len(pv.Images) > 0 {
			out[nr.NodeID] = pv.Images
		}
	}
	return out
}
