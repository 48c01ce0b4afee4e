package interp

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the ambient prometheus instrumentation for an Interpreter:
// a step counter, background task gauge, and task-error counter. A host
// that doesn't care about metrics can leave Options.Metrics nil; every
// call site that touches it is nil-checked.
type Metrics struct {
	StepsTotal  prometheus.Counter
	TasksActive prometheus.Gauge
	TaskErrors  prometheus.Counter
}

// NewMetrics builds a Metrics registered under the given registerer with
// the "aiscript_" namespace, following go-dws's client_golang wiring
// style (one collector set per long-lived interpreter instance).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aiscript",
			Name:      "steps_total",
			Help:      "Total evaluator steps executed.",
		}),
		TasksActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aiscript",
			Name:      "background_tasks_active",
			Help:      "Number of currently registered Async:interval/timeout tasks.",
		}),
		TaskErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aiscript",
			Name:      "background_task_errors_total",
			Help:      "Total errors raised by Async:interval/timeout callbacks.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.StepsTotal, m.TasksActive, m.TaskErrors)
	}
	return m
}
