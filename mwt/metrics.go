package mwt

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts Explorer outcomes. A nil *Metrics is valid and counts nothing.
type Metrics struct {
	Decisions      prometheus.Counter
	Records        prometheus.Counter
	RecordFailures prometheus.Counter
	PolicyErrors   prometheus.Counter
	EncodingErrors prometheus.Counter
}

// NewMetrics creates the Explorer counters and registers them on reg.
// Pass prometheus.DefaultRegisterer to expose them process-wide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Decisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mwt_decisions_total",
			Help: "Decisions returned to callers.",
		}),
		Records: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mwt_records_total",
			Help: "Decisions accepted by the recorder.",
		}),
		RecordFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mwt_record_failures_total",
			Help: "Decisions whose record was lost because the recorder failed.",
		}),
		PolicyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mwt_policy_errors_total",
			Help: "Calls that failed because the policy produced no valid decision.",
		}),
		EncodingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mwt_invalid_encoding_total",
			Help: "Calls rejected because the unit key was not valid UTF-8.",
		}),
	}
	reg.MustRegister(m.Decisions, m.Records, m.RecordFailures, m.PolicyErrors, m.EncodingErrors)
	return m
}

func (m *Metrics) incDecisions() {
	if m != nil {
		m.Decisions.Inc()
	}
}

func (m *Metrics) incRecords() {
	if m != nil {
		m.Records.Inc()
	}
}

func (m *Metrics) incRecordFailures() {
	if m != nil {
		m.RecordFailures.Inc()
	}
}

func (m *Metrics) incPolicyErrors() {
	if m != nil {
		m.PolicyErrors.Inc()
	}
}

func (m *Metrics) incEncodingErrors() {
	if m != nil {
		m.EncodingErrors.Inc()
	}
}
