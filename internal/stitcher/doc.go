// Package stitcher concatenates video files using FFmpeg.
//
// It supports two strategies:
//   - Stream-copy concatenation via the concat demuxer: fast, no
//     re-encode, but requires byte-compatible codecs across inputs.
//   - Filter-graph re-encode concatenation via the concat filter:
//     slower, tolerant of mismatched input codecs.
//
// When the stream-copy strategy is requested and FFmpeg exits nonzero,
// the engine automatically retries with the filter-graph strategy
// before surfacing any error. A filter-graph failure is terminal.
//
// Stitching is performed using FFmpeg and requires it to be installed
// and available in the system PATH (or at the configured binary path).
package stitcher
