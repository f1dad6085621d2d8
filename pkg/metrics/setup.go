package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Server      *http.Server
	Registry    *prometheus.Registry
	registerer  prometheus.Registerer
	serviceName string
}

func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	server := &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	return &Metrics{
		Server:      server,
		Registry:    registry,
		registerer:  wrappedRegistry,
		serviceName: cfg.ServiceName,
	}
}

// RegisterCounterVec creates and registers a CounterVec carrying the service label.
func (m *Metrics) RegisterCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	c := createCounterVec(name, help, labels)
	m.registerer.MustRegister(c)
	return c
}

// RegisterHistogramVec creates and registers a HistogramVec carrying the service label.
func (m *Metrics) RegisterHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	h := createHistogramVec(name, help, labels, buckets)
	m.registerer.MustRegister(h)
	return h
}

// RegisterGaugeVec creates and registers a GaugeVec carrying the service label.
func (m *Metrics) RegisterGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	g := createGaugeVec(name, help, labels)
	m.registerer.MustRegister(g)
	return g
}
