package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Total analyses by kind (quick|full) and result (success|error)
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slidelens_analyses_total",
			Help: "Total number of presentation analyses.",
		},
		[]string{"kind", "result"},
	)

	// Duration of analyses by kind and result
	AnalysisDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slidelens_analysis_duration_seconds",
			Help:    "Duration of presentation analyses in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120, 300},
		},
		[]string{"kind", "result"},
	)

	// In-flight analyses by kind
	InflightAnalyses = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "slidelens_analyses_inflight",
			Help: "Current number of in-flight presentation analyses.",
		},
		[]string{"kind"},
	)

	// Slides seen per analysis
	SlidesPerAnalysis = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slidelens_slides_per_analysis",
			Help:    "Number of slides in analyzed presentations.",
			Buckets: []float64{1, 5, 10, 20, 40, 80, 160},
		},
	)

	// Inference calls by kind (chat|caption) and result
	InferenceCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slidelens_inference_calls_total",
			Help: "Total number of calls to the inference endpoints.",
		},
		[]string{"kind", "result"},
	)

	InferenceDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slidelens_inference_duration_seconds",
			Help:    "Duration of inference calls in seconds.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 90},
		},
		[]string{"kind"},
	)

	// Report cache lookups by result (hit|miss|error)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slidelens_cache_lookups_total",
			Help: "Total number of report cache lookups.",
		},
		[]string{"result"},
	)

	// HTTP layer: in-flight requests and rejections at the limiter
	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slidelens_requests_inflight",
			Help: "In-flight requests to the analyze API.",
		},
	)

	RequestsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slidelens_requests_rejected_total",
			Help: "Total number of requests rejected due to max request limits.",
		},
	)

	// Worker semaphore usage
	WorkersInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slidelens_workers_in_use",
			Help: "Current number of workers acquired by the worker semaphore.",
		},
	)

	// Temp directories removed by the janitor
	JanitorRemovedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slidelens_janitor_removed_total",
			Help: "Total number of stale temp directories removed.",
		},
	)
)
