package metrics

import "github.com/prometheus/client_golang/prometheus"

func (c *Counter) Register(registerer prometheus.Registerer) {
	registerer.MustRegister(c.metric)
}

func (c *Counter) Increment(labels ...string) {
	c.metric.WithLabelValues(labels...).Inc()
}

func (c *Counter) Add(value float64, labels ...string) {
	c.metric.WithLabelValues(labels...).Add(value)
}

func (c *Counter) Get() *prometheus.CounterVec {
	return c.metric
}

func (g *Gauge) Register(registerer prometheus.Registerer) {
	registerer.MustRegister(g.metric)
}

func (g *Gauge) Set(value float64, labels ...string) {
	g.metric.WithLabelValues(labels...).Set(value)
}

func (g *Gauge) Get() *prometheus.GaugeVec {
	return g.metric
}

func (h *Histogram) Register(registerer prometheus.Registerer) {
	registerer.MustRegister(h.metric)
}

func (h *Histogram) Observe(value float64, labels ...string) {
	h.metric.WithLabelValues(labels...).Observe(value)
}

func (h *Histogram) Get() *prometheus.HistogramVec {
	return h.metric
}
