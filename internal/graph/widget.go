package graph

// WidgetType is the editor control a widget is drawn as.
type WidgetType string

const (
	WidgetToggle WidgetType = "toggle"
	WidgetNumber WidgetType = "number"
	WidgetText   WidgetType = "text"
	WidgetCombo  WidgetType = "combo"
	WidgetButton WidgetType = "button"

	// WidgetHidden replaces the type of a hidden widget; the original is kept on the widget.
	WidgetHidden WidgetType = "hidden"
)

// Widget is a named value control on a node. Buttons carry their label in Name.
type Widget struct {
	Name    string      `json:"name"`
	Type    WidgetType  `json:"type"`
	Value   interface{} `json:"value,omitempty"`
	Options []string    `json:"options,omitempty"`

	origType WidgetType
}

// Hidden reports whether the widget is currently hidden.
func (w *Widget) Hidden() bool { return w.Type == WidgetHidden }

func (w *Widget) hide() {
	if w.Hidden() {
		return
	}
	if w.origType == "" {
		w.origType = w.Type
	}
	w.Type = WidgetHidden
}

func (w *Widget) show() {
	if !w.Hidden() {
		return
	}
	w.Type = w.origType
}

func (w *Widget) clone() *Widget {
	c := *w
	if w.Options != nil {
		c.Options = append([]string(nil), w.Options...)
	}
	return &c
}

func toBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func inferWidgetType(v interface{}) WidgetType {
	switch v.(type) {
	case bool:
		return WidgetToggle
	case int, int32, int64, uint64, float32, float64:
		return WidgetNumber
	}
	return WidgetText
}
