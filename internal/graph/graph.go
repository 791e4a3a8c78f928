package graph

import "fmt"

// Link is a directed edge from an output slot of one node to an input slot of another.
type Link struct {
	ID         string `json:"id"`
	OriginID   string `json:"origin_id"`
	OriginSlot int    `json:"origin_slot"`
	TargetID   string `json:"target_id"`
	TargetSlot int    `json:"target_slot"`
	Type       string `json:"type,omitempty"`
}

// Graph holds nodes and the links between them.
// It is not safe for concurrent use; the owner serializes access.
type Graph struct {
	nodes    map[string]*Node // id → Node
	ordered  []*Node          // insertion order
	links    []*Link          // storage order
	dirty    bool
	revision uint64
}

// NewGraph allocates an empty Graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode registers a node by its ID, replacing any node with the same ID.
func (g *Graph) AddNode(n *Node) {
	if old, ok := g.nodes[n.ID]; ok {
		for i, o := range g.ordered {
			if o == old {
				g.ordered[i] = n
				break
			}
		}
	} else {
		g.ordered = append(g.ordered, n)
	}
	g.nodes[n.ID] = n
}

// AddLink records a link. Both endpoints must already be registered.
func (g *Graph) AddLink(l *Link) error {
	if _, ok := g.nodes[l.OriginID]; !ok {
		return fmt.Errorf("link %s: unknown origin node %q", l.ID, l.OriginID)
	}
	if _, ok := g.nodes[l.TargetID]; !ok {
		return fmt.Errorf("link %s: unknown target node %q", l.ID, l.TargetID)
	}
	g.links = append(g.links, l)
	return nil
}

// RemoveNode drops a node and every link attached to it.
func (g *Graph) RemoveNode(id string) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	delete(g.nodes, id)
	for i, o := range g.ordered {
		if o == n {
			g.ordered = append(g.ordered[:i], g.ordered[i+1:]...)
			break
		}
	}
	kept := g.links[:0]
	for _, l := range g.links {
		if l.OriginID != id && l.TargetID != id {
			kept = append(kept, l)
		}
	}
	g.links = kept
}

// Node returns a node by ID (nil if not found).
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	return g.ordered
}

// Links returns all links in storage order.
func (g *Graph) Links() []*Link {
	return g.links
}

// NodeCount returns the total number of registered nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Connections returns the direct predecessors and successors of n by scanning
// every link. A link from n contributes its target to outputs; otherwise a link
// into n contributes its origin to inputs.
func (g *Graph) Connections(n *Node) (inputs, outputs []*Node) {
	for _, l := range g.links {
		if l.OriginID == n.ID {
			if t := g.nodes[l.TargetID]; t != nil {
				outputs = append(outputs, t)
			}
		} else if l.TargetID == n.ID {
			if o := g.nodes[l.OriginID]; o != nil {
				inputs = append(inputs, o)
			}
		}
	}
	return inputs, outputs
}

// SetDirtyCanvas flags the graph for redraw.
func (g *Graph) SetDirtyCanvas() {
	g.dirty = true
	g.revision++
}

// Dirty reports whether a redraw is pending and clears the flag.
func (g *Graph) Dirty() bool {
	d := g.dirty
	g.dirty = false
	return d
}

// Revision counts redraw requests since the graph was created.
func (g *Graph) Revision() uint64 {
	return g.revision
}

// Clone returns a deep copy of the graph's nodes and links.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes:    make(map[string]*Node, len(g.nodes)),
		ordered:  make([]*Node, 0, len(g.ordered)),
		links:    make([]*Link, 0, len(g.links)),
		revision: g.revision,
	}
	for _, n := range g.ordered {
		cn := n.Clone()
		c.nodes[cn.ID] = cn
		c.ordered = append(c.ordered, cn)
	}
	for _, l := range g.links {
		cl := *l
		c.links = append(c.links, &cl)
	}
	return c
}
