package runner

import (
	"context"
	"errors"

	"github.com/gyaneshwarpardhi/interactive/internal/graph"
)

// ErrInterrupted stops a run without failing it: a switch had nothing selected.
var ErrInterrupted = errors.New("processing interrupted")

// Input is what an executor sees: the node and its resolved values.
// Values start from the node's widgets; a linked input of the same name wins.
type Input struct {
	Node   *graph.Node
	Values map[string]interface{}
}

// Value returns the named value, or nil.
func (in *Input) Value(name string) interface{} {
	return in.Values[name]
}

// Output holds one value per output slot plus anything shown on the node itself.
type Output struct {
	Values []interface{} `json:"values,omitempty"`
	UI     interface{}   `json:"ui,omitempty"`
}

// Executor is the interface all node implementations must satisfy.
type Executor interface {
	// Kind returns the node kind this executor is registered under.
	Kind() graph.Kind
	// Execute runs the node and returns its outputs.
	Execute(ctx context.Context, in *Input) (*Output, error)
}
