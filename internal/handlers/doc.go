// Package handlers provides HTTP request handlers for the video
// stitching API.
//
// It includes handlers for:
//   - Service metadata and version information
//   - Health, liveness, and readiness checks
//   - Multipart video upload and stitching
//   - Prometheus metrics exposition
package handlers
