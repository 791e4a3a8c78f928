package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interactive_events_handled_total",
		Help: "Total number of UI events applied to the graph, labelled by type and status.",
	}, []string{"type", "status"})

	EventDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "interactive_event_duration_ms",
		Help:    "Time spent applying a UI event, including the visual recompute, in milliseconds.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
	})

	SelectionsForced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interactive_selections_forced_total",
		Help: "Total number of competing selectors deselected by a selection.",
	})

	SelectorsReset = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interactive_selectors_reset_total",
		Help: "Total number of downstream selectors cleared by reset propagation.",
	})

	ExecutionsQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interactive_executions_queued_total",
		Help: "Total number of pipeline runs placed on the execution queue.",
	})

	ExecutionsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interactive_executions_dropped_total",
		Help: "Total number of pipeline runs rejected due to a full queue.",
	})

	ExecutionsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interactive_executions_finished_total",
		Help: "Total number of pipeline runs finished, labelled by final status.",
	}, []string{"status"})

	ExecutionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "interactive_execution_duration_ms",
		Help:    "Pipeline run latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "interactive_graph_nodes",
		Help: "Number of nodes in the live graph.",
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "interactive_queue_utilization_ratio",
		Help: "Current execution queue utilization (0–1).",
	})
)
