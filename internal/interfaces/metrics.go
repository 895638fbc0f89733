package interfaces

import "github.com/prometheus/client_golang/prometheus"

// Metrics is a name-keyed facade over a Prometheus registry. A metric must
// be registered before it is updated; updates to unknown names are dropped.
type Metrics interface {
	GetRegistry() *prometheus.Registry

	IncCounter(name string)
	AddCounter(name string, value float64)
	ObserveHistogram(name string, value float64)
	SetGauge(name string, value float64)

	// The Vec variants take label values in registration order.
	IncCounterVec(name string, labels ...string)
	ObserveHistogramVec(name string, value float64, labels ...string)
	SetGaugeVec(name string, value float64, labels ...string)

	RegisterCounter(name, help string)
	RegisterCounterVec(name, help string, labels []string)
	// RegisterHistogram uses the Prometheus default buckets when buckets is nil.
	RegisterHistogram(name, help string, buckets []float64)
	RegisterHistogramVec(name, help string, buckets []float64, labels []string)
	RegisterGauge(name, help string)
	RegisterGaugeVec(name, help string, labels []string)
}
