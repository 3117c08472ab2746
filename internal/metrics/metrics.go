// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Logins counts successful logins.
	Logins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tempo_logins_total",
		Help: "Number of successful logins.",
	})

	// Decisions counts task decisions by outcome.
	Decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tempo_task_decisions_total",
		Help: "Number of task decisions by outcome.",
	}, []string{"decision"})

	// AuditEntries counts appended audit log entries by action.
	AuditEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tempo_audit_entries_total",
		Help: "Number of audit log entries appended, by action.",
	}, []string{"action"})
)
