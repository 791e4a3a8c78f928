package gate

import (
	"errors"
	"fmt"

	"github.com/gyaneshwarpardhi/interactive/internal/graph"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrNotClickable = errors.New("node has no button")
)

// ClickResult describes what a click did.
type ClickResult struct {
	// Execute is set when the click should trigger a pipeline run.
	Execute bool `json:"execute"`
	// Deselected lists the competing selectors a selection forced off.
	Deselected []string `json:"deselected,omitempty"`
	// Reset lists the downstream selectors cleared by propagation.
	Reset []string `json:"reset,omitempty"`
}

// Click dispatches a button press on the node with the given id.
func (e *Engine) Click(g *graph.Graph, id string) (ClickResult, error) {
	n := g.Node(id)
	if n == nil {
		return ClickResult{}, fmt.Errorf("click %s: %w", id, ErrNodeNotFound)
	}
	switch {
	case n.Kind.IsSelector():
		return e.ClickSelector(g, n), nil
	case n.Kind == graph.KindSave:
		return e.ClickSave(n), nil
	case n.Kind == graph.KindSeed:
		return e.ClickSeed(n), nil
	case n.Kind == graph.KindReset:
		return e.ClickReset(g), nil
	}
	return ClickResult{}, fmt.Errorf("click %s (%s): %w", id, n.Type, ErrNotClickable)
}

// ClickSelector toggles sel. Selecting it forces every selector sharing a switch
// with it off; the run is requested when sel was the blocking selector or when a
// competing selection was actually cleared. Deselecting it clears downstream
// selections when propagate_deselect is on. Visuals are recomputed either way.
func (e *Engine) ClickSelector(g *graph.Graph, sel *graph.Node) ClickResult {
	idx := graph.NewIndex(g)
	var res ClickResult

	if !sel.Selected() {
		blocking := IsBlockingSelector(idx, sel)
		changed := false
		for _, sw := range idx.SwitchOutputs(sel) {
			for _, other := range idx.SelectorInputs(sw) {
				if other.Selected() {
					changed = true
					res.Deselected = append(res.Deselected, other.ID)
				}
				other.SetSelected(false)
			}
		}
		sel.SetSelected(true)
		res.Execute = blocking || changed
		e.logger.Debug("selector selected", "node", sel.ID, "blocking", blocking, "deselected", res.Deselected)
	} else {
		sel.SetSelected(false)
		if sel.PropagateDeselect() {
			for _, n := range ResetForward(idx, sel) {
				res.Reset = append(res.Reset, n.ID)
			}
		}
		e.logger.Debug("selector deselected", "node", sel.ID, "reset", res.Reset)
	}

	e.Recompute(g)
	return res
}

// ClickSave bumps the save counter so the save node re-evaluates, and requests a run.
func (e *Engine) ClickSave(n *graph.Node) ClickResult {
	n.SetSaveTrigger((n.SaveTrigger() + 1) % 1000)
	return ClickResult{Execute: true}
}

// ClickSeed draws a new seed in [0, MaxSeed] and requests a run.
func (e *Engine) ClickSeed(n *graph.Node) ClickResult {
	n.SetSeedValue(e.seed())
	return ClickResult{Execute: true}
}

// ClickReset clears every selector in traversal order, propagating the reset
// downstream from each, and recomputes visuals. It never requests a run.
func (e *Engine) ClickReset(g *graph.Graph) ClickResult {
	idx := graph.NewIndex(g)
	var res ClickResult
	seen := make(map[string]bool)
	for _, n := range g.Order() {
		if !n.Kind.IsSelector() {
			continue
		}
		n.SetSelected(false)
		for _, c := range ResetForward(idx, n) {
			if !seen[c.ID] {
				seen[c.ID] = true
				res.Reset = append(res.Reset, c.ID)
			}
		}
	}
	e.Recompute(g)
	e.logger.Debug("selections reset", "downstream", len(res.Reset))
	return res
}
