// Package metrics expõe os contadores Prometheus da API, publicados em
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JobRuns conta as execuções dos jobs periódicos por resultado
	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_planner_job_runs_total",
			Help: "Total de execuções dos jobs periódicos",
		},
		[]string{"job", "result"}, // result: success ou failure
	)

	// JobDuration mede a latência de cada job periódico
	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "budget_planner_job_duration_seconds",
			Help:    "Duração das execuções dos jobs periódicos em segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	// StatusTransitions conta transições de status aplicadas às campanhas
	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_planner_status_transitions_total",
			Help: "Total de transições de status de campanha aplicadas",
		},
		[]string{"to"},
	)

	// SpendsRecorded conta os eventos de gasto registrados
	SpendsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "budget_planner_spend_events_total",
			Help: "Total de eventos de gasto registrados",
		},
	)

	// BudgetAlertsEmitted conta os alertas de orçamento emitidos por tipo
	BudgetAlertsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_planner_budget_alerts_total",
			Help: "Total de alertas de aproximação do teto de orçamento",
		},
		[]string{"type"},
	)
)

// RecordJobRun registra uma execução de job com resultado e duração
func RecordJobRun(job, result string, seconds float64) {
	JobRuns.WithLabelValues(job, result).Inc()
	JobDuration.WithLabelValues(job).Observe(seconds)
}
