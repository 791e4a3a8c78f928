package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/interactive/internal/graph"
)

// Payload is what a selector hands to a switch.
type Payload struct {
	Selected   bool                   `json:"selected"`
	Images     []string               `json:"images,omitempty"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// Preview is the UI record of a node that shows images.
type Preview struct {
	Images      []string `json:"images"`
	Destination string   `json:"destination,omitempty"`
	Prefix      string   `json:"prefix,omitempty"`
}

var parameterNames = []string{
	"parameter_latent",
	"parameter_mask",
	"parameter_string",
	"parameter_int",
	"parameter_float",
}

// -----------------------------------------------------------------------
// Selector
// -----------------------------------------------------------------------

type selectorExecutor struct{ kind graph.Kind }

func (e selectorExecutor) Kind() graph.Kind { return e.kind }

func (e selectorExecutor) Execute(_ context.Context, in *Input) (*Output, error) {
	sel, _ := in.Value("selected").(bool)
	p := &Payload{Selected: sel, Images: toStrings(in.Value("images"))}
	for _, name := range parameterNames {
		if v, ok := in.Values[name]; ok && v != nil {
			if p.Parameters == nil {
				p.Parameters = make(map[string]interface{})
			}
			p.Parameters[name] = v
		}
	}
	out := &Output{Values: []interface{}{p}}
	if p.Images != nil {
		out.UI = &Preview{Images: p.Images, Destination: "temp"}
	}
	return out, nil
}

// -----------------------------------------------------------------------
// Switch
// -----------------------------------------------------------------------

type switchExecutor struct{ kind graph.Kind }

func (e switchExecutor) Kind() graph.Kind { return e.kind }

// Execute forwards the single selected payload. More than one selected
// selector is an error; none selected interrupts the run until the user picks
// one. A selector wired to several slots counts once.
func (e switchExecutor) Execute(_ context.Context, in *Input) (*Output, error) {
	var chosen *Payload
	active := 0
	seen := make(map[*Payload]bool)
	for _, slot := range in.Node.Inputs {
		p, ok := in.Values[slot.Name].(*Payload)
		if !ok || p == nil || !p.Selected || seen[p] {
			continue
		}
		seen[p] = true
		active++
		if chosen == nil {
			chosen = p
		}
	}
	if active > 1 {
		return nil, fmt.Errorf("too many inputs are active (%d)", active)
	}
	if chosen == nil {
		return nil, ErrInterrupted
	}

	out := &Output{Values: []interface{}{chosen.Images}}
	if e.kind.HasParameters() {
		for _, name := range parameterNames {
			out.Values = append(out.Values, chosen.Parameters[name])
		}
	}
	return out, nil
}

// -----------------------------------------------------------------------
// Save
// -----------------------------------------------------------------------

// SaveExecutor writes to the output destination only when the save counter
// moved since the last run of that node; otherwise the images stay temporary.
type SaveExecutor struct {
	mu     sync.Mutex
	last   map[string]int64 // node id → last seen save_trigger
	suffix string
}

// NewSaveExecutor creates a SaveExecutor with a random temporary prefix suffix.
func NewSaveExecutor() *SaveExecutor {
	return &SaveExecutor{
		last:   make(map[string]int64),
		suffix: "_save_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:5],
	}
}

func (e *SaveExecutor) Kind() graph.Kind { return graph.KindSave }

func (e *SaveExecutor) Execute(_ context.Context, in *Input) (*Output, error) {
	images := toStrings(in.Value("images"))
	if images == nil {
		return &Output{UI: &Preview{Images: []string{}}}, nil
	}
	prefix, _ := in.Value("filename_prefix").(string)
	if prefix == "" {
		prefix = "ComfyUI"
	}
	trigger, _ := toInt64(in.Value("save_trigger"))

	e.mu.Lock()
	changed := trigger != e.last[in.Node.ID]
	if changed {
		e.last[in.Node.ID] = trigger
	}
	e.mu.Unlock()

	pv := &Preview{Images: images, Destination: "output", Prefix: prefix}
	if !changed {
		pv.Destination = "temp"
		pv.Prefix = prefix + e.suffix
	}
	return &Output{UI: pv}, nil
}

// -----------------------------------------------------------------------
// Value nodes
// -----------------------------------------------------------------------

// widgetExecutor emits the value of one widget on its single output.
type widgetExecutor struct {
	kind   graph.Kind
	widget string
}

func (e widgetExecutor) Kind() graph.Kind { return e.kind }

func (e widgetExecutor) Execute(_ context.Context, in *Input) (*Output, error) {
	return &Output{Values: []interface{}{in.Value(e.widget)}}, nil
}

type stringAppendExecutor struct{}

func (stringAppendExecutor) Kind() graph.Kind { return graph.KindStringAppend }

func (stringAppendExecutor) Execute(_ context.Context, in *Input) (*Output, error) {
	var sep string
	switch mode, _ := in.Value("join_prompt_using").(string); mode {
	case "comma and space", "":
		sep = ", "
	case "space":
		sep = " "
	case "enter":
		sep = "\n"
	default:
		return nil, fmt.Errorf("unknown join mode %q", mode)
	}
	a, _ := in.Value("input1").(string)
	b, _ := in.Value("input2").(string)

	var out string
	switch {
	case a == "":
		out = b
	case b == "":
		out = a
	default:
		out = a + sep + b
	}
	return &Output{Values: []interface{}{out}}, nil
}

type resetExecutor struct{}

func (resetExecutor) Kind() graph.Kind { return graph.KindReset }

func (resetExecutor) Execute(context.Context, *Input) (*Output, error) {
	return &Output{}, nil
}

func toStrings(v interface{}) []string {
	switch s := v.(type) {
	case []string:
		return s
	case string:
		return []string{s}
	case []interface{}:
		out := make([]string, 0, len(s))
		for _, x := range s {
			if str, ok := x.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}
