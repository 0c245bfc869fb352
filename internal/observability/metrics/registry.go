// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verification pipeline metrics
var (
	// VerificationsTotal counts completed verifications by verdict and the
	// classification tier that produced it
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verifications_total",
			Help: "Total number of completed claim verifications",
		},
		[]string{"verdict", "tier"},
	)

	// VerificationDuration measures end-to-end pipeline duration in seconds
	VerificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verification_duration_seconds",
			Help:    "End-to-end claim verification duration in seconds",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	// CitationsReturned measures how many citations each verification carried
	CitationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verification_citations_returned",
			Help:    "Number of citations attached to a verification result",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)
)

// External dependency metrics
var (
	// ExternalCallsTotal counts outbound calls by service and outcome
	ExternalCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_calls_total",
			Help: "Total number of outbound external service calls",
		},
		[]string{"service", "status"},
	)

	// ExternalCallDuration measures outbound call duration by service
	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "external_call_duration_seconds",
			Help:    "Outbound external service call duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service"},
	)
)

// News metrics
var (
	// NewsCacheEventsTotal counts news cache lookups by result (hit, miss, expired)
	NewsCacheEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_cache_events_total",
			Help: "Total number of news cache lookups by result",
		},
		[]string{"result"},
	)

	// NewsArticlesFetchedTotal counts articles fetched from each upstream source
	NewsArticlesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_articles_fetched_total",
			Help: "Total number of news articles fetched from upstream sources",
		},
		[]string{"source"},
	)
)
