package metrics

import "github.com/prometheus/client_golang/prometheus"

type MetricType string

const (
	CounterType   MetricType = "counter"
	GaugeType     MetricType = "gauge"
	HistogramType MetricType = "histogram"
)

type Metric interface {
	Register(registerer prometheus.Registerer)
}

type Counter struct {
	metric *prometheus.CounterVec
}

type Gauge struct {
	metric *prometheus.GaugeVec
}

type Histogram struct {
	metric *prometheus.HistogramVec
}
