package runner

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gyaneshwarpardhi/interactive/internal/graph"
)

// Registry maps node kinds to their executors.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu        sync.RWMutex
	executors map[graph.Kind]Executor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{executors: make(map[graph.Kind]Executor)}
}

// DefaultRegistry returns a Registry holding every built-in executor.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(selectorExecutor{kind: graph.KindSelector})
	r.Register(selectorExecutor{kind: graph.KindSelectorWithParameters})
	r.Register(switchExecutor{kind: graph.KindSwitch})
	r.Register(switchExecutor{kind: graph.KindSwitchWithParameters})
	r.Register(NewSaveExecutor())
	r.Register(widgetExecutor{kind: graph.KindSeed, widget: "seed_value"})
	r.Register(widgetExecutor{kind: graph.KindString, widget: "string"})
	r.Register(widgetExecutor{kind: graph.KindStringMultiline, widget: "string"})
	r.Register(widgetExecutor{kind: graph.KindInteger, widget: "integer"})
	r.Register(widgetExecutor{kind: graph.KindFloat, widget: "float"})
	r.Register(stringAppendExecutor{})
	r.Register(resetExecutor{})
	return r
}

// Register adds an executor. Panics on duplicate kind to surface misconfiguration early.
func (r *Registry) Register(e Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.executors[e.Kind()]; exists {
		panic(fmt.Sprintf("runner registry: duplicate kind %q", e.Kind()))
	}
	r.executors[e.Kind()] = e
}

// Get returns the executor for the given kind.
func (r *Registry) Get(kind graph.Kind) (Executor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.executors[kind]
	if !ok {
		return nil, fmt.Errorf("no executor registered for node kind %q", kind)
	}
	return e, nil
}

// Kinds returns all registered kinds, sorted.
func (r *Registry) Kinds() []graph.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]graph.Kind, 0, len(r.executors))
	for k := range r.executors {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
