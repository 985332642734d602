package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const NAMESPACE = "deployer"

// Registry holds every deployer metric. It is pushed to a pushgateway at
// the end of a run when one is configured.
var Registry = prometheus.NewRegistry()

func NewCounter(name string, help string, labels []string) *Counter {
	counter := &Counter{
		metric: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: NAMESPACE,
				Name:      name,
				Help:      help,
			},
			labels,
		),
	}

	counter.Register(Registry)
	return counter
}

func NewGauge(name string, help string, labels []string) *Gauge {
	gauge := &Gauge{
		metric: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: NAMESPACE,
				Name:      name,
				Help:      help,
			},
			labels,
		),
	}

	gauge.Register(Registry)
	return gauge
}

func NewHistogram(name string, help string, labels []string) *Histogram {
	histogram := &Histogram{
		metric: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: NAMESPACE,
				Name:      name,
				Help:      help,
				Buckets:   prometheus.DefBuckets,
			},
			labels,
		),
	}

	histogram.Register(Registry)
	return histogram
}
