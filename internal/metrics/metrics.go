package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	StartupSubmissions = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "foundry_startup_submissions_total", Help: "Total startup submissions accepted"},
	)
	StartupSubmissionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "foundry_startup_submission_failures_total", Help: "Total startup submissions that failed"},
	)
	ImageUploads = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "foundry_image_uploads_total", Help: "Total submission images stored"},
	)
	StorageErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "foundry_storage_errors_total", Help: "Total document store operation failures"},
	)
)

func Register() {
	prometheus.MustRegister(StartupSubmissions, StartupSubmissionFailures, ImageUploads, StorageErrors)
}
