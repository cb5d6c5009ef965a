package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_request_duration_seconds",
			Help:    "Duration of handled HTTP requests in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"route", "method"},
	)
	ApplicationsSubmittedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_applications_submitted_total",
			Help: "Total number of submitted job applications.",
		},
	)
	OrphanedResumesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_orphaned_resumes_total",
			Help: "Total number of resume uploads whose application row insert failed.",
		},
	)
	JobsCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_jobs_created_total",
			Help: "Total number of created job postings.",
		},
	)
	JobsDeletedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_jobs_deleted_total",
			Help: "Total number of deleted job postings.",
		},
	)
)

func StartMetricsServer(addr string) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ApplicationsSubmittedCounter)
	prometheus.MustRegister(OrphanedResumesCounter)
	prometheus.MustRegister(JobsCreatedCounter)
	prometheus.MustRegister(JobsDeletedCounter)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(addr, mux))
	}()
}
