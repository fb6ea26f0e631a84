package webauth

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// Metrics counts the challenges issued and verified by an Authenticator.
type Metrics struct {
	challengesIssued prometheus.Counter
	challengesFailed prometheus.Counter
	verifications    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg, unless reg is
// nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		challengesIssued: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "webauth",
				Name:      "challenges_issued_total",
				Help:      "Number of challenge transactions issued",
			},
		),
		challengesFailed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "webauth",
				Name:      "challenges_failed_total",
				Help:      "Number of challenge transactions that could not be built",
			},
		),
		verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "webauth",
				Name:      "verifications_total",
				Help:      "Number of challenge verifications by result",
			},
			[]string{"result"},
		),
	}

	if reg == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.challengesIssued, m.challengesFailed, m.verifications} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observeIssued(err error) {
	if err != nil {
		m.challengesFailed.Inc()
		return
	}
	m.challengesIssued.Inc()
}

// observeVerification labels the outcome with the kind of challenge error, or
// "ok", or "error" for any other failure.
func (m *Metrics) observeVerification(err error) {
	m.verifications.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err == nil {
		return resultOK
	}
	if t, ok := challengeErrType(err); ok {
		return t.String()
	}
	return resultError
}
