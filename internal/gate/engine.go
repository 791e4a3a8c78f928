// Package gate decides the visual state of selector and switch nodes and
// applies the click behavior of the interactive nodes.
//
// Everything here runs synchronously on the caller's goroutine and mutates the
// graph in place. Callers serialize access to the graph.
package gate

import (
	"log/slog"
	"math/rand/v2"

	"github.com/gyaneshwarpardhi/interactive/internal/graph"
)

// MaxSeed is the largest value a seed click can produce.
const MaxSeed int64 = 1125899906842624

// Engine recomputes node visuals and handles clicks.
type Engine struct {
	theme  Theme
	seed   func() int64
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeedSource replaces the random seed generator.
func WithSeedSource(fn func() int64) Option {
	return func(e *Engine) { e.seed = fn }
}

// WithLogger sets the logger used for click and reset diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine that paints with theme.
func New(theme Theme, opts ...Option) *Engine {
	e := &Engine{
		theme:  theme,
		seed:   func() int64 { return rand.Int64N(MaxSeed + 1) },
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Theme returns the engine's theme.
func (e *Engine) Theme() Theme { return e.theme }

// Recompute refreshes the colors and button labels of every selector in the
// graph from the current "selected" flags, then marks the canvas dirty.
// Running it twice without an intervening change yields the same state.
func (e *Engine) Recompute(g *graph.Graph) {
	idx := graph.NewIndex(g)
	for _, n := range g.Order() {
		switch {
		case n.Kind.IsSelector():
			if len(idx.SwitchOutputs(n)) == 0 {
				sel := n.Selected()
				e.theme.Paint(n, activeOrInactive(sel))
				e.theme.label(n, sel)
			}
		case n.Kind.IsSwitch():
			e.recomputeSwitch(idx, n)
		}
	}
	g.SetDirtyCanvas()
}

func (e *Engine) recomputeSwitch(idx *graph.Index, sw *graph.Node) {
	selectors := idx.SelectorInputs(sw)
	selected := countSelected(selectors)

	switch {
	case selected > 1:
		// Ambiguous: flag the competing selections, leave the rest inactive.
		for _, s := range selectors {
			sel := s.Selected()
			if sel {
				e.theme.Paint(s, VisualTooMany)
			} else {
				e.theme.Paint(s, VisualInactive)
			}
			e.theme.label(s, sel)
		}
	case selected == 1:
		for _, s := range selectors {
			sel := s.Selected()
			e.theme.Paint(s, activeOrInactive(sel))
			e.theme.label(s, sel)
		}
	case len(selectors) == 1, !HasBlockedSwitchesBefore(idx, sw):
		e.paintAll(selectors, VisualSelectable)
	default:
		e.paintAll(selectors, VisualInactive)
	}
}

func (e *Engine) paintAll(selectors []*graph.Node, v Visual) {
	for _, s := range selectors {
		e.theme.Paint(s, v)
		e.theme.label(s, false)
	}
}

func activeOrInactive(selected bool) Visual {
	if selected {
		return VisualActive
	}
	return VisualInactive
}
