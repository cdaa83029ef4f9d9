// Package main provides the entry point for the video stitching service.
//
// The service accepts multiple uploaded video files over HTTP and
// returns a single concatenated video, invoking FFmpeg to do the media
// work. Stream-copy concatenation is attempted first for speed; when
// the inputs carry incompatible codecs it falls back to a filter-graph
// re-encode automatically.
//
// # Application Lifecycle
//
//  1. Configuration Loading: reads environment variables (optionally
//     seeded from a .env file) and validates the work directory
//  2. Stitch Engine Initialization: probes the FFmpeg binary
//  3. HTTP Server Setup: configures routes and middleware, starts the
//     main server and (optionally) a dedicated metrics server
//  4. Graceful Shutdown: handles SIGINT/SIGTERM with a 30s drain
//
// # HTTP Endpoints
//
//   - GET  /          service metadata
//   - GET  /health    health status including FFmpeg availability
//   - GET  /livez     liveness probe
//   - GET  /readyz    readiness probe (FFmpeg invocable)
//   - GET  /version   build information
//   - GET  /metrics   Prometheus metrics
//   - POST /stitch    multipart upload of 2+ videos, returns the
//     stitched MP4 as an attachment
//
// # Environment Variables
//
//   - PORT: main HTTP server port (default: 8080)
//   - METRICS_PORT: metrics server port (default: 9090)
//   - METRICS_ENABLED: enable metrics server (default: true)
//   - WORK_DIR: base directory for request workspaces (default: OS temp)
//   - FFMPEG_PATH: FFmpeg binary (default: ffmpeg from PATH)
//   - LOG_LEVEL: logging level (debug/info/warn/error)
//   - LOG_HEALTH_CHECKS: request-log health endpoints (default: true)
//
// FFmpeg must be installed for stitch requests to succeed; the service
// starts without it but reports a degraded health status.
package videostitcher
