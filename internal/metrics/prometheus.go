package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "immunogate_analysis_duration_seconds",
			Help:    "Full-comparison analysis duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"mode"},
	)

	AnalysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "immunogate_analysis_total",
			Help: "Total number of analysis runs",
		},
		[]string{"status"},
	)

	DatasetRows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "immunogate_dataset_rows",
			Help:    "Biomarker rows per uploaded dataset",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000},
		},
	)

	DatasetUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "immunogate_dataset_uploads_total",
			Help: "Total dataset uploads",
		},
		[]string{"status"},
	)

	SelectivityRatio = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "immunogate_recommended_selectivity_ratio",
			Help:    "Selectivity ratio of the recommended strategy",
			Buckets: []float64{1, 2, 5, 10, 50, 100, 1000},
		},
	)

	StreamSessions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "immunogate_stream_sessions_total",
			Help: "Total websocket analysis streams",
		},
	)
)

func Init() {
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(AnalysisTotal)
	prometheus.MustRegister(DatasetRows)
	prometheus.MustRegister(DatasetUploads)
	prometheus.MustRegister(SelectivityRatio)
	prometheus.MustRegister(StreamSessions)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
