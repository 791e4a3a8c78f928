package graph

import (
	"fmt"
	"sort"

	"github.com/gyaneshwarpardhi/interactive/internal/config"
)

// Build constructs a Graph from a validated workflow definition.
// Slots default to the ones of the node's kind; widget values override defaults.
func Build(wf *config.Workflow) (*Graph, error) {
	g := NewGraph()
	for _, nd := range wf.Nodes {
		n := NewNode(nd.ID, ParseKind(nd.Type))
		n.Type = nd.Type
		n.Title = nd.Title
		if len(nd.Inputs) > 0 {
			n.Inputs = slotsFrom(nd.Inputs)
		}
		if len(nd.Outputs) > 0 {
			n.Outputs = slotsFrom(nd.Outputs)
		}
		names := make([]string, 0, len(nd.Widgets))
		for name := range nd.Widgets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			n.SetWidget(name, nd.Widgets[name])
		}
		g.AddNode(n)
	}

	for i, ld := range wf.Links {
		id := ld.ID
		if id == "" {
			id = fmt.Sprintf("%d", i+1)
		}
		origin, target := g.Node(ld.Origin), g.Node(ld.Target)
		if origin == nil || target == nil {
			return nil, fmt.Errorf("link %s: endpoints %q -> %q not found", id, ld.Origin, ld.Target)
		}
		if ld.OriginSlot < 0 || ld.OriginSlot >= len(origin.Outputs) {
			return nil, fmt.Errorf("link %s: node %s has no output slot %d", id, origin.ID, ld.OriginSlot)
		}
		if ld.TargetSlot < 0 || ld.TargetSlot >= len(target.Inputs) {
			return nil, fmt.Errorf("link %s: node %s has no input slot %d", id, target.ID, ld.TargetSlot)
		}
		typ := ld.Type
		if typ == "" {
			typ = origin.Outputs[ld.OriginSlot].Type
		}
		l := &Link{
			ID:         id,
			OriginID:   origin.ID,
			OriginSlot: ld.OriginSlot,
			TargetID:   target.ID,
			TargetSlot: ld.TargetSlot,
			Type:       typ,
		}
		if err := g.AddLink(l); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func slotsFrom(defs []config.SlotDef) []Slot {
	out := make([]Slot, len(defs))
	for i, d := range defs {
		out[i] = Slot{Name: d.Name, Type: d.Type}
	}
	return out
}
