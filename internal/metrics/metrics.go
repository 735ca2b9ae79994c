package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "insighthub_http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var sourcesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "insighthub_sources_processed_total",
	Help: "Sources that finished processing, by final status",
}, []string{"status"})

var ingestionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "insighthub_ingestion_duration_seconds",
	Help:    "Time spent extracting, chunking and embedding one source.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60},
}, []string{"kind"})

var tasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "insighthub_tasks_total",
	Help: "Background tasks handled, by task name and result",
}, []string{"task", "result"})

var taskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "insighthub_task_duration_seconds",
	Help:    "Total time spent running a background task.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 120},
}, []string{"task"})

var embeddingCache = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "insighthub_embedding_cache_total",
	Help: "Embedding cache lookups by tier and result",
}, []string{"tier", "result"})

func RecordSourceProcessed(status string) {
	sourcesProcessed.WithLabelValues(status).Inc()
}

func CaptureIngestionMetrics(kind string, timeElapsed time.Duration) {
	ingestionDuration.WithLabelValues(kind).Observe(timeElapsed.Seconds())
}

func CaptureTaskMetrics(task, result string, timeElapsed time.Duration) {
	tasksTotal.WithLabelValues(task, result).Inc()
	taskDuration.WithLabelValues(task).Observe(timeElapsed.Seconds())
}

func RecordCacheLookup(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	embeddingCache.WithLabelValues(tier, result).Inc()
}
