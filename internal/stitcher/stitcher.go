package stitcher

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"video-stitcher/internal/logging"
	"video-stitcher/internal/metrics"
)

// Method selects the concatenation strategy for a stitch request.
type Method string

const (
	// MethodConcat requests stream-copy concatenation with automatic
	// fallback to re-encoding on failure.
	MethodConcat Method = "concat"
	// MethodFilter requests filter-graph re-encode concatenation
	// directly, with no fallback.
	MethodFilter Method = "filter"
)

// Strategy labels used for logging and metrics.
const (
	strategyDemuxer = "concat_demuxer"
	strategyFilter  = "concat_filter"
	strategyProbe   = "version_probe"
)

// Result describes a completed stitch.
type Result struct {
	// OutputPath is where FFmpeg produced the concatenated file.
	OutputPath string
	// Method is the strategy that actually produced the output, which
	// differs from the requested method when the stream-copy attempt
	// fell back to re-encoding.
	Method Method
}

// Engine invokes FFmpeg to concatenate videos.
type Engine struct {
	ffmpegPath string
}

// New returns an Engine that invokes the given FFmpeg binary. An empty
// path means "ffmpeg" resolved via PATH.
func New(ffmpegPath string) *Engine {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Engine{ffmpegPath: ffmpegPath}
}

// Stitch concatenates inputPaths into outputPath.
//
// With MethodConcat the stream-copy strategy runs first; a nonzero exit
// triggers an automatic retry with the filter-graph strategy using the
// same inputs and output, and the stream-copy failure is never
// surfaced. Any other method runs the filter-graph strategy directly.
// A filter-graph failure is terminal and returns a *ProcessingError
// carrying FFmpeg's diagnostics.
func (e *Engine) Stitch(ctx context.Context, inputPaths []string, outputPath string, method Method) (Result, error) {
	if len(inputPaths) == 0 {
		return Result{}, ErrNoInputs
	}

	logging.Info("Stitching %d videos (method=%s)", len(inputPaths), method)

	if method == MethodConcat {
		err := e.concatDemuxer(ctx, inputPaths, outputPath)
		if err == nil {
			return Result{OutputPath: outputPath, Method: MethodConcat}, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}

		// Stream copy requires byte-compatible codecs across inputs;
		// mismatched codecs surface as a nonzero exit here.
		logging.Warn("Stream-copy concat failed, falling back to re-encode: %v", err)
		metrics.StitchFallbacksTotal.Inc()
	}

	if err := e.concatFilter(ctx, inputPaths, outputPath); err != nil {
		return Result{}, err
	}

	return Result{OutputPath: outputPath, Method: MethodFilter}, nil
}

// concatDemuxer runs the stream-copy strategy. The manifest is removed
// whether the invocation succeeds or fails.
func (e *Engine) concatDemuxer(ctx context.Context, inputPaths []string, outputPath string) error {
	manifestPath, err := writeManifest(inputPaths, outputPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(manifestPath); err != nil && !os.IsNotExist(err) {
			logging.Warn("Failed to remove concat manifest %s: %v", manifestPath, err)
		}
	}()

	stderr, err := e.run(ctx, strategyDemuxer, demuxerArgs(manifestPath, outputPath))
	if err != nil {
		return &ProcessingError{Strategy: strategyDemuxer, Stderr: stderr, Err: err}
	}

	logging.Info("Stream-copy concat succeeded: %s", outputPath)
	return nil
}

// concatFilter runs the re-encode strategy. Its failure is terminal.
func (e *Engine) concatFilter(ctx context.Context, inputPaths []string, outputPath string) error {
	stderr, err := e.run(ctx, strategyFilter, filterArgs(inputPaths, outputPath))
	if err != nil {
		return &ProcessingError{Strategy: strategyFilter, Stderr: stderr, Err: err}
	}

	logging.Info("Filter-graph concat succeeded: %s", outputPath)
	return nil
}

// Version invokes the FFmpeg binary with its version-query flag and
// returns the first line of output. Used by the health endpoint to
// probe tool availability.
func (e *Engine) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, e.ffmpegPath, "-version")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	metrics.FFmpegInvocationDuration.WithLabelValues(strategyProbe).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.FFmpegInvocationsTotal.WithLabelValues(strategyProbe, "error").Inc()
		return "", err
	}
	metrics.FFmpegInvocationsTotal.WithLabelValues(strategyProbe, "success").Inc()

	line, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(line), nil
}

// run executes one FFmpeg invocation, capturing stderr for diagnostics
// and recording per-strategy metrics. The request context is threaded
// into the subprocess so a cancelled request kills FFmpeg; no other
// timeout is applied.
func (e *Engine) run(ctx context.Context, strategy string, args []string) (string, error) {
	logging.Debug("Invoking %s %s", e.ffmpegPath, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	start := time.Now()
	err := cmd.Run()
	metrics.FFmpegInvocationDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.FFmpegInvocationsTotal.WithLabelValues(strategy, "error").Inc()
		return stderrBuf.String(), err
	}

	metrics.FFmpegInvocationsTotal.WithLabelValues(strategy, "success").Inc()
	return stderrBuf.String(), nil
}
