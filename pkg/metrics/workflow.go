package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics records intervention lifecycle activity.
type WorkflowMetrics struct {
	transitions *prometheus.CounterVec
}

// NewWorkflowMetrics registers the workflow counters on the provided registerer.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intervention_transitions_total",
		Help: "Successful intervention status transitions.",
	}, []string{"from", "to", "actor"})
	reg.MustRegister(transitions)
	return &WorkflowMetrics{transitions: transitions}
}

// IncTransition counts one successful transition on the labelled edge.
func (w *WorkflowMetrics) IncTransition(from, to, actor string) {
	if w == nil || w.transitions == nil {
		return
	}
	w.transitions.WithLabelValues(
		normalizeLabel(from),
		normalizeLabel(to),
		normalizeLabel(actor),
	).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
