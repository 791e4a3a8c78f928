package gate

import (
	"github.com/gyaneshwarpardhi/interactive/internal/config"
	"github.com/gyaneshwarpardhi/interactive/internal/graph"
)

// Visual is the indicator a selector shows.
type Visual string

const (
	VisualActive     Visual = "active"
	VisualInactive   Visual = "inactive"
	VisualTooMany    Visual = "too_many"
	VisualSelectable Visual = "selectable"
	VisualNone       Visual = ""
)

// Theme maps visual states to node colors and holds the button labels.
type Theme struct {
	ActiveColor   string
	InactiveColor string
	TooManyColor  string
	SelectColor   string
	SelectText    string
	DeselectText  string
}

// Button labels of the non-selector nodes.
const (
	SaveText  = "👤 Save Image"
	SeedText  = "👤 New Random Seed"
	ResetText = "👤 Reset selections"
)

// DefaultTheme returns the stock colors and labels.
func DefaultTheme() Theme {
	return Theme{
		ActiveColor:   "#335533",
		InactiveColor: "#444444",
		TooManyColor:  "#553333",
		SelectColor:   "#555533",
		SelectText:    "👤 Select",
		DeselectText:  "✖️  Deselect",
	}
}

// ThemeFromConfig overlays non-empty config values on DefaultTheme.
func ThemeFromConfig(c config.ThemeConf) Theme {
	t := DefaultTheme()
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&t.ActiveColor, c.ActiveColor)
	set(&t.InactiveColor, c.InactiveColor)
	set(&t.TooManyColor, c.TooManyColor)
	set(&t.SelectColor, c.SelectColor)
	set(&t.SelectText, c.SelectText)
	set(&t.DeselectText, c.DeselectText)
	return t
}

func (t Theme) color(v Visual) string {
	switch v {
	case VisualActive:
		return t.ActiveColor
	case VisualTooMany:
		return t.TooManyColor
	case VisualSelectable:
		return t.SelectColor
	}
	return t.InactiveColor
}

// Paint sets both node colors to the color of v.
func (t Theme) Paint(n *graph.Node, v Visual) {
	c := t.color(v)
	n.Color = c
	n.BgColor = c
}

// VisualOf maps a node's background color back to a visual state.
func (t Theme) VisualOf(n *graph.Node) Visual {
	switch n.BgColor {
	case t.ActiveColor:
		return VisualActive
	case t.InactiveColor:
		return VisualInactive
	case t.TooManyColor:
		return VisualTooMany
	case t.SelectColor:
		return VisualSelectable
	}
	return VisualNone
}

// label renames the node's button to Deselect when selected, Select otherwise.
// Nodes without a button are left alone.
func (t Theme) label(n *graph.Node, selected bool) {
	b := n.Button()
	if b == nil {
		return
	}
	if selected {
		b.Name = t.DeselectText
	} else {
		b.Name = t.SelectText
	}
}
