package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	RetrievalPagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsift",
			Name:      "retrieval_pages_total",
			Help:      "Total number of backend result pages fetched",
		},
		[]string{"paging"}, // "offset" / "cursor"
	)

	RetrievalDocsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docsift",
			Name:      "retrieval_docs_total",
			Help:      "Total raw documents returned by the search backend",
		},
	)

	RetrievalErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docsift",
			Name:      "retrieval_errors_total",
			Help:      "Total per-strategy retrieval failures",
		},
	)

	JudgeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsift",
			Name:      "judge_requests_total",
			Help:      "Total number of judge requests",
		},
		[]string{"status"}, // "success" / "content_policy" / "error"
	)

	JudgeRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docsift",
			Name:      "judge_request_duration_seconds",
			Help:      "Judge request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	ClassifyBatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsift",
			Name:      "classify_batches_total",
			Help:      "Classification attempts by path and outcome",
		},
		[]string{"path", "outcome"}, // path: "batch"/"individual"/"metadata"; outcome: "ok"/"empty"/"error"
	)

	BodyCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsift",
			Name:      "body_cache_total",
			Help:      "Body-text cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(RetrievalPagesTotal)
	prometheus.MustRegister(RetrievalDocsTotal)
	prometheus.MustRegister(RetrievalErrorsTotal)
	prometheus.MustRegister(JudgeRequestsTotal)
	prometheus.MustRegister(JudgeRequestDuration)
	prometheus.MustRegister(ClassifyBatchesTotal)
	prometheus.MustRegister(BodyCacheTotal)
	pipelineMetricsRegistered = true
}
