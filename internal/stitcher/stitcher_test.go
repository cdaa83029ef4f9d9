package stitcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeFFmpeg writes an executable shell script standing in for the real
// binary and returns its path. Tests drive success and failure paths
// without requiring FFmpeg to be installed.
func fakeFFmpeg(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("Failed to write fake ffmpeg: %v", err)
	}
	return path
}

// recordingFFmpeg returns a fake binary that appends each invocation's
// argument list to logPath (one line per call) and touches its last
// argument, mimicking output creation.
func recordingFFmpeg(t *testing.T, logPath string) string {
	t.Helper()

	script := `echo "$@" >> ` + logPath + `
for last; do :; done
touch "$last"
exit 0
`
	return fakeFFmpeg(t, script)
}

func invocations(t *testing.T, logPath string) []string {
	t.Helper()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read invocation log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func TestStitchNoInputs(t *testing.T) {
	e := New("ffmpeg")

	_, err := e.Stitch(context.Background(), nil, "/tmp/out.mp4", MethodConcat)
	if !errors.Is(err, ErrNoInputs) {
		t.Errorf("Expected ErrNoInputs, got %v", err)
	}
}

func TestStitchConcatSuccess(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	e := New(recordingFFmpeg(t, logPath))

	inputs := []string{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.mp4")}
	output := filepath.Join(dir, "out.mp4")

	result, err := e.Stitch(context.Background(), inputs, output, MethodConcat)
	if err != nil {
		t.Fatalf("Stitch() error: %v", err)
	}

	if result.OutputPath != output {
		t.Errorf("Expected output path %s, got %s", output, result.OutputPath)
	}
	if result.Method != MethodConcat {
		t.Errorf("Expected method concat, got %s", result.Method)
	}

	if _, err := os.Stat(output); err != nil {
		t.Errorf("Expected output file to exist: %v", err)
	}

	// The manifest must be cleaned up after a successful run.
	if _, err := os.Stat(output + "_concat_list.txt"); !os.IsNotExist(err) {
		t.Errorf("Expected manifest to be deleted, stat err = %v", err)
	}

	calls := invocations(t, logPath)
	if len(calls) != 1 {
		t.Fatalf("Expected 1 ffmpeg invocation, got %d", len(calls))
	}
	if !strings.Contains(calls[0], "-f concat") || !strings.Contains(calls[0], "-c copy") {
		t.Errorf("Expected concat demuxer invocation, got %q", calls[0])
	}
}

func TestStitchFallsBackToFilter(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")

	// Fail the concat demuxer shape, succeed on the filter shape.
	script := `echo "$@" >> ` + logPath + `
if [ "$1" = "-f" ]; then
  echo "Stream mapping: codec mismatch" >&2
  exit 1
fi
for last; do :; done
touch "$last"
exit 0
`
	e := New(fakeFFmpeg(t, script))

	inputs := []string{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.mkv")}
	output := filepath.Join(dir, "out.mp4")

	result, err := e.Stitch(context.Background(), inputs, output, MethodConcat)
	if err != nil {
		t.Fatalf("Expected fallback to recover, got error: %v", err)
	}

	if result.Method != MethodFilter {
		t.Errorf("Expected reported method filter after fallback, got %s", result.Method)
	}

	calls := invocations(t, logPath)
	if len(calls) != 2 {
		t.Fatalf("Expected 2 ffmpeg invocations (demuxer then filter), got %d", len(calls))
	}
	if !strings.Contains(calls[0], "-f concat") {
		t.Errorf("Expected first invocation to be the demuxer, got %q", calls[0])
	}
	if !strings.Contains(calls[1], "-filter_complex") || !strings.Contains(calls[1], "libx264") {
		t.Errorf("Expected second invocation to be the re-encode, got %q", calls[1])
	}

	// Manifest from the failed demuxer attempt must not linger.
	if _, err := os.Stat(output + "_concat_list.txt"); !os.IsNotExist(err) {
		t.Errorf("Expected manifest to be deleted after failed attempt, stat err = %v", err)
	}
}

func TestStitchFilterDirectSkipsDemuxer(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	e := New(recordingFFmpeg(t, logPath))

	inputs := []string{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.mov")}
	output := filepath.Join(dir, "out.mp4")

	result, err := e.Stitch(context.Background(), inputs, output, MethodFilter)
	if err != nil {
		t.Fatalf("Stitch() error: %v", err)
	}
	if result.Method != MethodFilter {
		t.Errorf("Expected method filter, got %s", result.Method)
	}

	calls := invocations(t, logPath)
	if len(calls) != 1 {
		t.Fatalf("Expected exactly 1 invocation for direct filter, got %d", len(calls))
	}
	if strings.Contains(calls[0], "-f concat") {
		t.Errorf("Stream-copy invocation must never run for method filter: %q", calls[0])
	}
}

func TestStitchTerminalFailureCarriesDiagnostics(t *testing.T) {
	dir := t.TempDir()
	e := New(fakeFFmpeg(t, `echo "Error initializing filter graph" >&2
exit 1
`))

	inputs := []string{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.mp4")}
	output := filepath.Join(dir, "out.mp4")

	_, err := e.Stitch(context.Background(), inputs, output, MethodConcat)
	if err == nil {
		t.Fatal("Expected terminal error when both strategies fail")
	}

	var pErr *ProcessingError
	if !errors.As(err, &pErr) {
		t.Fatalf("Expected *ProcessingError, got %T: %v", err, err)
	}

	if pErr.Strategy != strategyFilter {
		t.Errorf("Expected terminal failure from the filter strategy, got %s", pErr.Strategy)
	}
	if !strings.Contains(pErr.Diagnostic(), "Error initializing filter graph") {
		t.Errorf("Expected stderr diagnostics, got %q", pErr.Diagnostic())
	}
}

func TestStitchMissingBinary(t *testing.T) {
	e := New(filepath.Join(t.TempDir(), "no-such-ffmpeg"))

	_, err := e.Stitch(context.Background(), []string{"a.mp4", "b.mp4"}, filepath.Join(t.TempDir(), "out.mp4"), MethodFilter)
	if err == nil {
		t.Fatal("Expected error for missing binary")
	}

	var pErr *ProcessingError
	if !errors.As(err, &pErr) {
		t.Fatalf("Expected *ProcessingError, got %T", err)
	}
	if pErr.Diagnostic() == "" {
		t.Error("Expected a non-empty diagnostic even without stderr output")
	}
}

func TestVersion(t *testing.T) {
	e := New(fakeFFmpeg(t, `echo "ffmpeg version 6.1.1 Copyright (c) 2000-2023"
echo "built with gcc"
exit 0
`))

	version, err := e.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error: %v", err)
	}

	if version != "ffmpeg version 6.1.1 Copyright (c) 2000-2023" {
		t.Errorf("Expected first output line, got %q", version)
	}
}

func TestVersionMissingBinary(t *testing.T) {
	e := New(filepath.Join(t.TempDir(), "no-such-ffmpeg"))

	if _, err := e.Version(context.Background()); err == nil {
		t.Error("Expected error when the binary cannot be invoked")
	}
}

func TestStitchCancelledContext(t *testing.T) {
	dir := t.TempDir()
	e := New(fakeFFmpeg(t, "exit 1\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Stitch(ctx, []string{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.mp4")}, filepath.Join(dir, "out.mp4"), MethodConcat)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
