// Package metrics declares the Prometheus metrics exported by the
// video stitching service.
//
// Metrics fall into three groups:
//
//   - HTTP metrics: request counts, durations, and in-flight gauge,
//     recorded by the middleware package.
//   - Stitch metrics: per-request counts and durations labeled by
//     stitching method and outcome, plus the fallback counter for
//     stream-copy failures that were recovered by re-encoding.
//   - FFmpeg metrics: per-invocation counts and durations labeled by
//     strategy, recorded by the stitcher package around each
//     subprocess run.
//
// All metrics are registered via promauto at package init. Call
// InitializeMetrics once at startup to pre-populate the expected label
// combinations so every series is present from the first scrape.
package metrics
