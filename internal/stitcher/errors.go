package stitcher

import (
	"errors"
	"fmt"
)

// ErrNoInputs is returned when Stitch is called with an empty input list.
var ErrNoInputs = errors.New("no input videos provided")

// ProcessingError is returned when the terminal FFmpeg invocation exits
// nonzero. It carries the tool's diagnostic output so callers can
// surface it to clients.
type ProcessingError struct {
	Strategy string
	Stderr   string
	Err      error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("ffmpeg %s failed: %v", e.Strategy, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Diagnostic returns the tool's stderr output, or the wrapped error
// text when FFmpeg produced no diagnostics (e.g. the binary was not
// found at all).
func (e *ProcessingError) Diagnostic() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Error()
}
