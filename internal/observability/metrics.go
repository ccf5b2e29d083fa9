package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_journal_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_journal_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_journal_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// OnboardingCompletions tracks onboarding completion flows by choice and
	// permission outcome
	OnboardingCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_journal_onboarding_completions_total",
			Help: "Number of completed onboarding flows",
		},
		[]string{"choice", "permission"},
	)

	// DocumentRenders tracks legal document renders by kind and locale
	DocumentRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_journal_document_renders_total",
			Help: "Number of legal document renders",
		},
		[]string{"document", "locale", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_journal_active_connections",
			Help: "Number of active connections",
		},
	)
)
