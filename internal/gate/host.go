package gate

import "github.com/gyaneshwarpardhi/interactive/internal/graph"

// NodeCreated prepares a freshly created node: selectors and save nodes get
// their internal widgets hidden, and every clickable kind gets its button.
func (e *Engine) NodeCreated(n *graph.Node) {
	switch {
	case n.Kind.IsSelector():
		n.HideWidget("selected")
		n.AddButton(e.theme.SelectText)
	case n.Kind == graph.KindSave:
		e.theme.Paint(n, VisualInactive)
		n.HideWidget("save_trigger")
		n.AddButton(SaveText)
	case n.Kind == graph.KindSeed:
		e.theme.Paint(n, VisualInactive)
		n.AddButton(SeedText)
	case n.Kind == graph.KindReset:
		e.theme.Paint(n, VisualInactive)
		n.AddButton(ResetText)
	}
}

// GraphLoaded syncs selector labels with their stored selection and, when the
// graph holds a switch, recomputes visuals.
func (e *Engine) GraphLoaded(g *graph.Graph) {
	hasSwitch := false
	for _, n := range g.Nodes() {
		switch {
		case n.Kind.IsSelector():
			e.theme.label(n, n.Selected())
		case n.Kind.IsSwitch():
			hasSwitch = true
		}
	}
	if hasSwitch {
		e.Recompute(g)
	}
}

// GraphChanged recomputes visuals after a structural change.
func (e *Engine) GraphChanged(g *graph.Graph) {
	e.Recompute(g)
}
