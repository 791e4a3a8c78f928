package event

import "time"

// Type names a UI event the host forwards to the session.
type Type string

const (
	TypeClick        Type = "click"         // button press on NodeID
	TypeReset        Type = "reset"         // global reset of every selection
	TypeGraphChanged Type = "graph_changed" // structure changed; recompute visuals
	TypeGraphLoaded  Type = "graph_loaded"  // graph (re)loaded; sync labels
)

// Event is the canonical input model for all UI events.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	NodeID     string    `json:"node_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	ReceivedAt time.Time `json:"-"`
}

// Valid reports whether the event type is known and carries what it needs.
func (e *Event) Valid() bool {
	switch e.Type {
	case TypeClick:
		return e.NodeID != ""
	case TypeReset, TypeGraphChanged, TypeGraphLoaded:
		return true
	}
	return false
}
