package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_stitcher_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_stitcher_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_stitcher_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Stitch request metrics
var (
	StitchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_stitcher_stitch_requests_total",
			Help: "Total number of stitch requests",
		},
		[]string{"method", "status"},
	)

	StitchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_stitcher_stitch_duration_seconds",
			Help:    "End-to-end stitch duration in seconds, staging through output read",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"method"},
	)

	StitchFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_stitcher_stitch_fallbacks_total",
			Help: "Total number of stream-copy failures recovered by re-encode fallback",
		},
	)

	StitchInputFiles = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "video_stitcher_stitch_input_files",
			Help:    "Number of input files per stitch request",
			Buckets: []float64{2, 3, 4, 5, 8, 12, 20, 50},
		},
	)

	StitchOutputBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "video_stitcher_stitch_output_bytes",
			Help:    "Size of stitched output files in bytes",
			Buckets: prometheus.ExponentialBuckets(1<<20, 4, 8),
		},
	)

	UploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_stitcher_upload_bytes_total",
			Help: "Total bytes of uploaded video staged to workspaces",
		},
	)
)

// FFmpeg invocation metrics
var (
	FFmpegInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_stitcher_ffmpeg_invocations_total",
			Help: "Total number of ffmpeg invocations",
		},
		[]string{"strategy", "status"},
	)

	FFmpegInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_stitcher_ffmpeg_invocation_duration_seconds",
			Help:    "FFmpeg invocation duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"strategy"},
	)
)

// Workspace metrics
var (
	WorkspacesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_stitcher_workspaces_active",
			Help: "Number of request workspaces currently on disk",
		},
	)

	WorkspaceCleanupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_stitcher_workspace_cleanup_failures_total",
			Help: "Total number of workspace deletions that failed",
		},
	)
)
