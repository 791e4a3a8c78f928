package graph

// Index is an adjacency snapshot of a Graph, built in one scan of the link list.
// Lookups return nodes in link storage order, exactly as Graph.Connections would.
// An Index goes stale when links change; node state (widgets, colors) is shared.
type Index struct {
	inputs  map[string][]*Node
	outputs map[string][]*Node
}

// NewIndex builds the predecessor/successor lists of every node in g.
func NewIndex(g *Graph) *Index {
	x := &Index{
		inputs:  make(map[string][]*Node, len(g.nodes)),
		outputs: make(map[string][]*Node, len(g.nodes)),
	}
	for _, l := range g.links {
		origin, target := g.nodes[l.OriginID], g.nodes[l.TargetID]
		if origin == nil || target == nil {
			continue
		}
		x.outputs[origin.ID] = append(x.outputs[origin.ID], target)
		if l.OriginID != l.TargetID {
			x.inputs[target.ID] = append(x.inputs[target.ID], origin)
		}
	}
	return x
}

// Inputs returns the direct predecessors of n.
func (x *Index) Inputs(n *Node) []*Node { return x.inputs[n.ID] }

// Outputs returns the direct successors of n.
func (x *Index) Outputs(n *Node) []*Node { return x.outputs[n.ID] }

// SelectorInputs returns the selector-family predecessors of n.
// The kind-filtered lookups return each node once, in first-link order, even
// when several links join the same pair of nodes.
func (x *Index) SelectorInputs(n *Node) []*Node {
	return filterKind(x.inputs[n.ID], Kind.IsSelector)
}

// SwitchInputs returns the switch-family predecessors of n.
func (x *Index) SwitchInputs(n *Node) []*Node {
	return filterKind(x.inputs[n.ID], Kind.IsSwitch)
}

// SwitchOutputs returns the switch-family successors of n.
func (x *Index) SwitchOutputs(n *Node) []*Node {
	return filterKind(x.outputs[n.ID], Kind.IsSwitch)
}

func filterKind(nodes []*Node, keep func(Kind) bool) []*Node {
	var out []*Node
	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if keep(n.Kind) && !seen[n.ID] {
			seen[n.ID] = true
			out = append(out, n)
		}
	}
	return out
}
