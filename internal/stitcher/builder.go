package stitcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// demuxerArgs constructs the argument list for the concat demuxer
// (stream-copy) invocation. The flags are the wire contract with
// ffmpeg: -safe 0 permits absolute paths in the manifest, -c copy
// skips re-encoding, -y overwrites any existing output.
func demuxerArgs(manifestPath, outputPath string) []string {
	return []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
		"-y", outputPath,
	}
}

// filterArgs constructs the argument list for the concat filter
// (re-encode) invocation. Every input becomes a separate -i stream;
// the filter graph labels each input's video and audio streams,
// concatenates them in input order into [outv]/[outa], and both
// outputs are mapped explicitly with fixed codec choices.
func filterArgs(inputPaths []string, outputPath string) []string {
	args := make([]string, 0, 2*len(inputPaths)+12)

	var labels strings.Builder
	for i, input := range inputPaths {
		args = append(args, "-i", input)
		fmt.Fprintf(&labels, "[%d:v][%d:a]", i, i)
	}

	filter := fmt.Sprintf("%sconcat=n=%d:v=1:a=1[outv][outa]", labels.String(), len(inputPaths))

	args = append(args,
		"-filter_complex", filter,
		"-map", "[outv]",
		"-map", "[outa]",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-y", outputPath,
	)

	return args
}

// writeManifest writes the concat demuxer input list alongside the
// eventual output file, one `file '<absolute-path>'` line per input,
// and returns the manifest path. The caller is responsible for
// removing the manifest after the invocation, successful or not.
func writeManifest(inputPaths []string, outputPath string) (string, error) {
	manifestPath := outputPath + "_concat_list.txt"

	var b strings.Builder
	for _, input := range inputPaths {
		abs, err := filepath.Abs(input)
		if err != nil {
			return "", fmt.Errorf("failed to resolve input path %s: %w", input, err)
		}
		fmt.Fprintf(&b, "file '%s'\n", abs)
	}

	if err := os.WriteFile(manifestPath, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write concat manifest: %w", err)
	}

	return manifestPath, nil
}
