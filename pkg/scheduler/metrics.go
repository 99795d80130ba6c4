package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// schedulerExecutions counts dispatched executions by policy.
	schedulerExecutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetchres_scheduler_executions_total",
			Help: "Total number of executions dispatched by scheduling policy",
		},
		[]string{"policy"}, // "immediate", "throttle", "debounce"
	)

	// schedulerCoalesced counts callers attached to an in-flight call.
	schedulerCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fetchres_scheduler_coalesced_total",
			Help: "Total number of callers coalesced onto an in-flight call",
		},
	)

	// schedulerThrottleWaits counts callers that waited out a spacing window.
	schedulerThrottleWaits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fetchres_scheduler_throttle_waits_total",
			Help: "Total number of callers that waited out a throttle spacing window",
		},
	)

	// schedulerSuperseded counts debounce calls cancelled by a newer call.
	schedulerSuperseded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fetchres_scheduler_superseded_total",
			Help: "Total number of pending debounce calls superseded by a newer call",
		},
	)
)
