// Package metrics expone los contadores Prometheus de la aplicación.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores de negocio registrados en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	// ImportRows filas procesadas por el pipeline de importación, por origen.
	ImportRows *prometheus.CounterVec
	// RFQsSent correos de RFQ aceptados por el transporte.
	RFQsSent prometheus.Counter
	// RFQsGenerated RFQs creados por la generación.
	RFQsGenerated prometheus.Counter
}

// New construye y registra los contadores.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		ImportRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bomlink_import_rows_total",
			Help: "Filas procesadas por el pipeline de importación.",
		}, []string{"source"}),
		RFQsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bomlink_rfqs_sent_total",
			Help: "RFQs despachados por correo.",
		}),
		RFQsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bomlink_rfqs_generated_total",
			Help: "RFQs creados por la generación.",
		}),
	}
	registry.MustRegister(m.ImportRows, m.RFQsSent, m.RFQsGenerated)
	return m
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
