package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hubertnosek100/hmediator/internal/application/mediator"
)

// DispatchMetricsCollector records mediator dispatch metrics
//
// It observes every Send/Ask call and records:
// - Dispatch duration (histogram)
// - Outcome counts by status (counter)
//
// Status is "success" or the mediator.ErrorKind of the failure, so wiring
// problems (not_found, ambiguous, missing_dependency, no_constructor) are
// distinguishable from errors returned by handlers.
type DispatchMetricsCollector struct {
	dispatchDuration *prometheus.HistogramVec
	dispatchesTotal  *prometheus.CounterVec
}

// NewDispatchMetricsCollector creates a new dispatch metrics collector
func NewDispatchMetricsCollector(namespace string) *DispatchMetricsCollector {
	if namespace == "" {
		namespace = defaultNamespace
	}

	return &DispatchMetricsCollector{
		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "dispatch_duration_seconds",
				Help:      "Request dispatch duration distribution, including handler construction",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"request", "kind", "status"},
		),

		dispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "dispatches_total",
				Help:      "Total number of dispatched requests by type, kind and status",
			},
			[]string{"request", "kind", "status"},
		),
	}
}

// Register registers all dispatch metrics with the Prometheus registry
func (c *DispatchMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.dispatchDuration,
		c.dispatchesTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// ObserveDispatch implements mediator.Observer
func (c *DispatchMetricsCollector) ObserveDispatch(record mediator.DispatchRecord) {
	request := record.Contract.RequestName()
	kind := record.Contract.Kind.String()
	status := record.Status()

	c.dispatchDuration.WithLabelValues(request, kind, status).Observe(record.Duration.Seconds())
	c.dispatchesTotal.WithLabelValues(request, kind, status).Inc()
}

var _ mediator.Observer = (*DispatchMetricsCollector)(nil)
