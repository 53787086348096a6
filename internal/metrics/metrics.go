package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds ledger collectors, nil *Metrics records nothing
type Metrics struct {
	mutations *prometheus.CounterVec
	customers prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_mutations_total",
				Help: "Customer mutations by operation and outcome",
			},
			[]string{"op", "outcome"}, // create|update|delete|refresh , success|failure
		),
		customers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_customers",
				Help: "Customers in collection after last refresh",
			},
		),
	}
}

func (m *Metrics) MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		m.mutations,
		m.customers,
	)
}

func (m *Metrics) Mutation(op string, err error) {
	if m == nil {
		return
	}

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.mutations.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) Collection(size int) {
	if m == nil {
		return
	}
	m.customers.Set(float64(size))
}
