package session

import (
	"github.com/gyaneshwarpardhi/interactive/internal/gate"
	"github.com/gyaneshwarpardhi/interactive/internal/graph"
)

// NodeView is the read-only rendering of a node.
type NodeView struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Kind     graph.Kind   `json:"kind"`
	Title    string       `json:"title,omitempty"`
	Selected *bool        `json:"selected,omitempty"`
	Visual   gate.Visual  `json:"visual,omitempty"`
	Color    string       `json:"color,omitempty"`
	BgColor  string       `json:"bgcolor,omitempty"`
	Button   string       `json:"button,omitempty"`
	Widgets  []WidgetView `json:"widgets,omitempty"`
	Images   []string     `json:"images,omitempty"`
}

// WidgetView is the read-only rendering of a widget.
type WidgetView struct {
	Name  string           `json:"name"`
	Type  graph.WidgetType `json:"type"`
	Value interface{}      `json:"value,omitempty"`
}

// GraphView is a consistent snapshot of the live graph.
type GraphView struct {
	Revision uint64       `json:"revision"`
	Nodes    []NodeView   `json:"nodes"`
	Links    []graph.Link `json:"links"`
}

// Snapshot renders the live graph under the session lock.
func (s *Session) Snapshot() *GraphView {
	s.mu.Lock()
	defer s.mu.Unlock()

	theme := s.gate.Theme()
	view := &GraphView{Revision: s.graph.Revision()}
	for _, n := range s.graph.Nodes() {
		nv := NodeView{
			ID:      n.ID,
			Type:    n.Type,
			Kind:    n.Kind,
			Title:   n.Title,
			Color:   n.Color,
			BgColor: n.BgColor,
			Images:  append([]string(nil), n.Images...),
		}
		if n.Kind.IsSelector() {
			sel := n.Selected()
			nv.Selected = &sel
			nv.Visual = theme.VisualOf(n)
		}
		if b := n.Button(); b != nil {
			nv.Button = b.Name
		}
		for _, w := range n.Widgets {
			if w.Type == graph.WidgetButton {
				continue
			}
			nv.Widgets = append(nv.Widgets, WidgetView{Name: w.Name, Type: w.Type, Value: w.Value})
		}
		view.Nodes = append(view.Nodes, nv)
	}
	for _, l := range s.graph.Links() {
		view.Links = append(view.Links, *l)
	}
	return view
}
