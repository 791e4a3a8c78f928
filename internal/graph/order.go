package graph

// Order returns every node in traversal order: a topological order computed
// with Kahn's algorithm, ties resolved by insertion order. Nodes that sit on or
// behind a cycle never reach in-degree zero and are appended afterwards in
// insertion order, so the result always contains each node exactly once.
func (g *Graph) Order() []*Node {
	indeg := make(map[string]int, len(g.nodes))
	succ := make(map[string][]string, len(g.nodes))
	for _, l := range g.links {
		if g.nodes[l.OriginID] == nil || g.nodes[l.TargetID] == nil {
			continue
		}
		indeg[l.TargetID]++
		succ[l.OriginID] = append(succ[l.OriginID], l.TargetID)
	}

	order := make([]*Node, 0, len(g.ordered))
	placed := make(map[string]bool, len(g.ordered))
	var queue []*Node
	for _, n := range g.ordered {
		if indeg[n.ID] == 0 {
			queue = append(queue, n)
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		placed[n.ID] = true
		for _, id := range succ[n.ID] {
			indeg[id]--
			if indeg[id] == 0 {
				queue = append(queue, g.nodes[id])
			}
		}
	}

	for _, n := range g.ordered {
		if !placed[n.ID] {
			order = append(order, n)
		}
	}
	return order
}
