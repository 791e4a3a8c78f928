package graph

import "fmt"

// Slot is a named, typed input or output port of a node.
type Slot struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Node is a graph vertex as the editor sees it.
type Node struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Type    string    `json:"type"` // raw host type tag
	Title   string    `json:"title,omitempty"`
	Inputs  []Slot    `json:"inputs,omitempty"`
	Outputs []Slot    `json:"outputs,omitempty"`
	Widgets []*Widget `json:"widgets,omitempty"`

	Color   string `json:"color,omitempty"`
	BgColor string `json:"bgcolor,omitempty"`

	// Images holds the cached preview of the last execution.
	Images []string `json:"images,omitempty"`
}

// parameter slots shared by the "with parameters" variants, in output order.
var parameterSlots = []Slot{
	{Name: "parameter_latent", Type: "LATENT"},
	{Name: "parameter_mask", Type: "MASK"},
	{Name: "parameter_string", Type: "STRING"},
	{Name: "parameter_int", Type: "INT"},
	{Name: "parameter_float", Type: "FLOAT"},
}

// SwitchInputCount is the number of selector slots a switch offers.
const SwitchInputCount = 8

// NewNode creates a node of the given kind with the slots and widgets that kind requires.
func NewNode(id string, kind Kind) *Node {
	n := &Node{ID: id, Kind: kind, Type: string(kind)}
	switch kind {
	case KindSelector, KindSelectorWithParameters:
		n.Widgets = []*Widget{
			{Name: "propagate_deselect", Type: WidgetToggle, Value: true},
			{Name: "selected", Type: WidgetToggle, Value: false},
		}
		n.Inputs = []Slot{{Name: "images", Type: "IMAGE"}}
		if kind == KindSelectorWithParameters {
			n.Inputs = append(n.Inputs, parameterSlots...)
		}
		n.Outputs = []Slot{{Name: "selector", Type: "interactive_images"}}
	case KindSwitch, KindSwitchWithParameters:
		for i := 1; i <= SwitchInputCount; i++ {
			n.Inputs = append(n.Inputs, Slot{Name: fmt.Sprintf("selector%d", i), Type: "interactive_images"})
		}
		n.Outputs = []Slot{{Name: "images", Type: "IMAGE"}}
		if kind == KindSwitchWithParameters {
			n.Outputs = append(n.Outputs, parameterSlots...)
		}
	case KindSave:
		n.Inputs = []Slot{{Name: "images", Type: "IMAGE"}}
		n.Widgets = []*Widget{
			{Name: "filename_prefix", Type: WidgetText, Value: "ComfyUI"},
			{Name: "save_trigger", Type: WidgetNumber, Value: int64(0)},
		}
	case KindSeed:
		n.Outputs = []Slot{{Name: "seed_value", Type: "INT"}}
		n.Widgets = []*Widget{{Name: "seed_value", Type: WidgetNumber, Value: int64(0)}}
	case KindString, KindStringMultiline:
		n.Outputs = []Slot{{Name: "string", Type: "STRING"}}
		n.Widgets = []*Widget{{Name: "string", Type: WidgetText, Value: ""}}
	case KindStringAppend:
		n.Inputs = []Slot{{Name: "input1", Type: "STRING"}, {Name: "input2", Type: "STRING"}}
		n.Outputs = []Slot{{Name: "output", Type: "STRING"}}
		n.Widgets = []*Widget{
			{Name: "join_prompt_using", Type: WidgetCombo, Value: "comma and space",
				Options: []string{"comma and space", "space", "enter"}},
			{Name: "input2", Type: WidgetText, Value: ""},
		}
	case KindInteger:
		n.Outputs = []Slot{{Name: "integer", Type: "INT"}}
		n.Widgets = []*Widget{{Name: "integer", Type: WidgetNumber, Value: int64(0)}}
	case KindFloat:
		n.Outputs = []Slot{{Name: "float", Type: "FLOAT"}}
		n.Widgets = []*Widget{{Name: "float", Type: WidgetNumber, Value: float64(0)}}
	}
	return n
}

// Widget returns the widget with the given name, or nil.
func (n *Node) Widget(name string) *Widget {
	for _, w := range n.Widgets {
		if w.Type != WidgetButton && w.Name == name {
			return w
		}
	}
	return nil
}

// Button returns the node's button widget, or nil.
func (n *Node) Button() *Widget {
	for _, w := range n.Widgets {
		if w.Type == WidgetButton {
			return w
		}
	}
	return nil
}

// AddButton attaches a button labelled label. A node has at most one button;
// calling it again relabels the existing one.
func (n *Node) AddButton(label string) *Widget {
	if b := n.Button(); b != nil {
		b.Name = label
		return b
	}
	b := &Widget{Name: label, Type: WidgetButton}
	n.Widgets = append(n.Widgets, b)
	return b
}

// SetWidget sets the value of a named widget, creating it if needed.
func (n *Node) SetWidget(name string, value interface{}) {
	if w := n.Widget(name); w != nil {
		switch w.Value.(type) {
		case int64:
			if i, ok := toInt64(value); ok {
				value = i
			}
		case float64:
			if f, ok := toFloat64(value); ok {
				value = f
			}
		}
		w.Value = value
		return
	}
	n.Widgets = append(n.Widgets, &Widget{Name: name, Type: inferWidgetType(value), Value: value})
}

// HasInput reports whether the node has an input slot with the given name.
func (n *Node) HasInput(name string) bool {
	for _, s := range n.Inputs {
		if s.Name == name {
			return true
		}
	}
	return false
}

// HideWidget hides the named widget unless it has been converted to an input.
// The widget's original type is kept so ShowWidget can restore it.
func (n *Node) HideWidget(name string) {
	w := n.Widget(name)
	if w == nil || n.HasInput(name) {
		return
	}
	w.hide()
}

// ShowWidget restores a widget hidden by HideWidget.
func (n *Node) ShowWidget(name string) {
	if w := n.Widget(name); w != nil {
		w.show()
	}
}

func (n *Node) mustWidget(name string) *Widget {
	w := n.Widget(name)
	if w == nil {
		panic(fmt.Sprintf("graph: node %s (%s) has no %q widget", n.ID, n.Type, name))
	}
	return w
}

// Selected returns the "selected" flag of a selector node.
func (n *Node) Selected() bool { return toBool(n.mustWidget("selected").Value) }

// SetSelected writes the "selected" flag of a selector node.
func (n *Node) SetSelected(v bool) { n.mustWidget("selected").Value = v }

// PropagateDeselect returns the "propagate_deselect" flag of a selector node.
func (n *Node) PropagateDeselect() bool { return toBool(n.mustWidget("propagate_deselect").Value) }

// SaveTrigger returns the save counter of a save node.
func (n *Node) SaveTrigger() int64 {
	v, _ := toInt64(n.mustWidget("save_trigger").Value)
	return v
}

// SetSaveTrigger writes the save counter of a save node.
func (n *Node) SetSaveTrigger(v int64) { n.mustWidget("save_trigger").Value = v }

// SeedValue returns the seed of a seed node.
func (n *Node) SeedValue() int64 {
	v, _ := toInt64(n.mustWidget("seed_value").Value)
	return v
}

// SetSeedValue writes the seed of a seed node.
func (n *Node) SetSeedValue(v int64) { n.mustWidget("seed_value").Value = v }

// ClearImages drops the cached preview.
func (n *Node) ClearImages() { n.Images = nil }

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	c.Inputs = append([]Slot(nil), n.Inputs...)
	c.Outputs = append([]Slot(nil), n.Outputs...)
	c.Images = append([]string(nil), n.Images...)
	c.Widgets = make([]*Widget, len(n.Widgets))
	for i, w := range n.Widgets {
		c.Widgets[i] = w.clone()
	}
	return &c
}
