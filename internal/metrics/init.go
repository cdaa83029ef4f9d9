package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	methods := []string{"concat", "filter"}
	strategies := []string{"concat_demuxer", "concat_filter", "version_probe"}

	for _, m := range methods {
		for _, status := range []string{"success", "validation_error", "processing_error", "error"} {
			StitchRequestsTotal.WithLabelValues(m, status)
		}
		StitchDuration.WithLabelValues(m)
	}

	for _, s := range strategies {
		FFmpegInvocationsTotal.WithLabelValues(s, "success")
		FFmpegInvocationsTotal.WithLabelValues(s, "error")
		FFmpegInvocationDuration.WithLabelValues(s)
	}
}
