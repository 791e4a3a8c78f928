package gate

import "github.com/gyaneshwarpardhi/interactive/internal/graph"

// ResetForward walks every node reachable from n's direct successors and clears
// "selected" and the cached preview on each selector it meets. The walk passes
// through nodes of any kind. It returns the selectors it visited, in visit order.
func ResetForward(idx *graph.Index, n *graph.Node) []*graph.Node {
	outs := idx.Outputs(n)
	stack := make([]*graph.Node, len(outs))
	copy(stack, outs)
	visited := make(map[string]bool)

	var cleared []*graph.Node
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur.ID] {
			continue
		}
		visited[cur.ID] = true

		if cur.Kind.IsSelector() {
			cur.SetSelected(false)
			cur.ClearImages()
			cleared = append(cleared, cur)
		}
		for _, out := range idx.Outputs(cur) {
			if !visited[out.ID] {
				stack = append(stack, out)
			}
		}
	}
	return cleared
}
