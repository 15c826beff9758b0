package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tender_validation_failures_total",
		Help: "Requests rejected by validation, by failure code",
	}, []string{"code"})

	scoresRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tender_scores_recorded_total",
		Help: "Proposal scores created or overwritten",
	})

	scoreRevisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tender_score_revisions_total",
		Help: "Audited score revisions applied",
	})

	comparisonsRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tender_comparisons_total",
		Help: "Comparison reports produced",
	})

	eventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tender_event_publish_failures_total",
		Help: "Events that could not be handed to NATS",
	}, []string{"event"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tender_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
