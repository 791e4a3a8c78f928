package gate

import "github.com/gyaneshwarpardhi/interactive/internal/graph"

// anySelected reports whether at least one of the selectors is selected.
func anySelected(selectors []*graph.Node) bool {
	for _, s := range selectors {
		if s.Selected() {
			return true
		}
	}
	return false
}

// countSelected returns how many of the selectors are selected.
func countSelected(selectors []*graph.Node) int {
	c := 0
	for _, s := range selectors {
		if s.Selected() {
			c++
		}
	}
	return c
}

// isBlockedSwitch reports whether none of the switch's selector inputs is selected.
func isBlockedSwitch(idx *graph.Index, sw *graph.Node) bool {
	return !anySelected(idx.SelectorInputs(sw))
}

// HasBlockedSwitchesBefore walks backwards from n and reports whether any
// upstream switch has no selected selector input. It stops at the first one.
func HasBlockedSwitchesBefore(idx *graph.Index, n *graph.Node) bool {
	stack := []*graph.Node{n}
	visited := map[string]bool{n.ID: true}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, in := range idx.Inputs(cur) {
			if in.Kind.IsSwitch() && isBlockedSwitch(idx, in) {
				return true
			}
			if !visited[in.ID] {
				visited[in.ID] = true
				stack = append(stack, in)
			}
		}
	}
	return false
}

// IsBlockingSelector reports whether selecting sel is the only thing keeping
// its downstream switches from running: none of its switch outputs already has
// a selected selector, and no switch further up its chain is unresolved.
func IsBlockingSelector(idx *graph.Index, sel *graph.Node) bool {
	switches := idx.SwitchOutputs(sel)
	if len(switches) == 0 {
		return false
	}
	for _, sw := range switches {
		if anySelected(idx.SelectorInputs(sw)) {
			return false
		}
	}
	return !HasBlockingSwitchInChain(idx, sel)
}

// HasBlockingSwitchInChain follows switch-to-switch input edges backwards from n
// and reports whether any switch met on the way has no selected selector input.
func HasBlockingSwitchInChain(idx *graph.Index, n *graph.Node) bool {
	stack := []*graph.Node{n}
	visited := make(map[string]bool)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur.ID] {
			continue
		}
		visited[cur.ID] = true

		for _, sw := range idx.SwitchInputs(cur) {
			if isBlockedSwitch(idx, sw) {
				return true
			}
			stack = append(stack, sw)
		}
	}
	return false
}
