package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors exported on /metrics.
type Metrics struct {
	AppointmentsRecorded *prometheus.CounterVec
	RecordFailures       *prometheus.CounterVec
	ReengagementSent     *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
}

// New builds the collectors and registers them with reg. Tests pass a fresh
// registry so repeated construction never collides.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AppointmentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberledger",
			Subsystem: "ledger",
			Name:      "appointments_recorded_total",
			Help:      "Appointments committed to the ledger by client resolution.",
		}, []string{"resolution"}), // resolution: existing, new_inline, walk_in
		RecordFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberledger",
			Subsystem: "ledger",
			Name:      "record_failures_total",
			Help:      "Appointment record calls that did not commit, by reason.",
		}, []string{"reason"}), // reason: validation, not_found, storage, consistency
		ReengagementSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberledger",
			Subsystem: "reengagement",
			Name:      "messages_total",
			Help:      "Reengagement messages dispatched by status.",
		}, []string{"status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "barberledger",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.AppointmentsRecorded, m.RecordFailures, m.ReengagementSent, m.RequestDuration)
	return m
}
