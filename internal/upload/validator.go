package upload

import (
	"fmt"
	"strings"
)

// MinFiles is the minimum number of input files a stitch request must carry.
const MinFiles = 2

// allowedExtensions is the whitelist of accepted upload filename suffixes.
// Matching is exact-suffix: an uppercase extension such as .MP4 is rejected.
var allowedExtensions = []string{".mp4", ".avi", ".mov", ".mkv", ".webm"}

// ValidationError describes a rejected upload set. It maps to an HTTP 400
// response and is raised before any file touches disk.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate checks the uploaded filenames against the request shape rules:
// at least MinFiles files, every filename carrying a whitelisted video
// extension. It has no side effects.
func Validate(filenames []string) error {
	if len(filenames) < MinFiles {
		return &ValidationError{
			Reason: fmt.Sprintf("at least %d videos required for stitching, got %d file(s)", MinFiles, len(filenames)),
		}
	}

	for _, name := range filenames {
		if !AllowedExtension(name) {
			return &ValidationError{
				Reason: fmt.Sprintf("invalid file type: %s (supported: %s)", name, supportedList()),
			}
		}
	}

	return nil
}

// AllowedExtension reports whether the filename ends in one of the
// whitelisted video extensions.
func AllowedExtension(filename string) bool {
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

func supportedList() string {
	trimmed := make([]string, len(allowedExtensions))
	for i, ext := range allowedExtensions {
		trimmed[i] = strings.TrimPrefix(ext, ".")
	}
	return strings.Join(trimmed, ", ")
}
