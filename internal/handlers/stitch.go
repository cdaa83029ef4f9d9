package handlers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"video-stitcher/internal/logging"
	"video-stitcher/internal/metrics"
	"video-stitcher/internal/stitcher"
	"video-stitcher/internal/upload"

	"github.com/google/uuid"
)

// maxMultipartMemory is the in-memory threshold for multipart parsing;
// larger parts spill to temporary files. It is not an upload size limit.
const maxMultipartMemory = 32 << 20

// multipartFileField is the form field carrying the uploaded videos.
const multipartFileField = "files"

// StitchVideos handles POST /stitch: validate the uploaded set, stage
// it into a fresh workspace, run the stitch engine, and return the
// concatenated video bytes. The workspace is destroyed on every exit
// path before the response body is written.
func (h *Handlers) StitchVideos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeJSONError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logging.Warn("failed to remove multipart temp files: %v", err)
		}
	}()

	method := stitcher.Method(r.FormValue("method"))
	if method == "" {
		method = stitcher.MethodConcat
	}

	files := r.MultipartForm.File[multipartFileField]
	filenames := make([]string, len(files))
	for i, fh := range files {
		filenames[i] = fh.Filename
	}

	// Reject bad request shapes before anything touches disk.
	if err := upload.Validate(filenames); err != nil {
		metrics.StitchRequestsTotal.WithLabelValues(methodLabel(method), "validation_error").Inc()
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	requestID := newRequestID()
	logging.Info("Stitch request %s: %d files, method=%s", requestID, len(files), method)

	ws, err := h.workspaces.Create(requestID)
	if err != nil {
		metrics.StitchRequestsTotal.WithLabelValues(methodLabel(method), "error").Inc()
		logging.Error("Request %s: %v", requestID, err)
		writeJSONError(w, "failed to create workspace", http.StatusInternalServerError)
		return
	}
	// Guaranteed release: the workspace and everything in it goes away
	// on every path out of this handler. The success path destroys it
	// earlier, which makes this a no-op.
	defer h.workspaces.Destroy(ws)

	inputPaths := make([]string, 0, len(files))
	for i, fh := range files {
		part, err := fh.Open()
		if err != nil {
			metrics.StitchRequestsTotal.WithLabelValues(methodLabel(method), "error").Inc()
			logging.Error("Request %s: failed to open upload %s: %v", requestID, fh.Filename, err)
			writeJSONError(w, "failed to read upload "+fh.Filename, http.StatusInternalServerError)
			return
		}

		path, err := h.workspaces.Stage(ws, i, fh.Filename, part)
		if cerr := part.Close(); cerr != nil {
			logging.Warn("failed to close upload part %s: %v", fh.Filename, cerr)
		}
		if err != nil {
			metrics.StitchRequestsTotal.WithLabelValues(methodLabel(method), "error").Inc()
			logging.Error("Request %s: %v", requestID, err)
			writeJSONError(w, "failed to stage upload "+fh.Filename, http.StatusInternalServerError)
			return
		}

		inputPaths = append(inputPaths, path)
	}

	result, err := h.stitcher.Stitch(r.Context(), inputPaths, h.workspaces.OutputPath(ws), method)
	if err != nil {
		var pErr *stitcher.ProcessingError
		if errors.As(err, &pErr) {
			metrics.StitchRequestsTotal.WithLabelValues(methodLabel(method), "processing_error").Inc()
			logging.Error("Request %s: %v", requestID, err)
			writeJSONError(w, "video processing failed: "+pErr.Diagnostic(), http.StatusInternalServerError)
			return
		}
		metrics.StitchRequestsTotal.WithLabelValues(methodLabel(method), "error").Inc()
		logging.Error("Request %s: %v", requestID, err)
		writeJSONError(w, "error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Read the full output into memory, then tear down the workspace
	// before assembling the response so nothing references a path
	// inside a destroyed directory.
	content, err := os.ReadFile(result.OutputPath)
	if err != nil {
		metrics.StitchRequestsTotal.WithLabelValues(methodLabel(method), "error").Inc()
		logging.Error("Request %s: failed to read output: %v", requestID, err)
		writeJSONError(w, "stitched output could not be read", http.StatusInternalServerError)
		return
	}
	h.workspaces.Destroy(ws)

	metrics.StitchRequestsTotal.WithLabelValues(methodLabel(method), "success").Inc()
	metrics.StitchDuration.WithLabelValues(methodLabel(method)).Observe(time.Since(start).Seconds())
	metrics.StitchInputFiles.Observe(float64(len(files)))
	metrics.StitchOutputBytes.Observe(float64(len(content)))

	logging.Info("Stitch request %s complete: %d bytes, method=%s, took %v",
		requestID, len(content), result.Method, time.Since(start))

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", "attachment; filename=stitched_video.mp4")
	w.Header().Set("X-Video-Count", strconv.Itoa(len(files)))
	w.Header().Set("X-Output-Size", strconv.Itoa(len(content)))
	w.Header().Set("X-Method-Used", string(result.Method))
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(content); err != nil {
		logging.Warn("Request %s: failed to write response body: %v", requestID, err)
	}
}

// newRequestID generates the short random token that names the output
// file and is echoed in the response headers.
func newRequestID() string {
	return uuid.New().String()[:8]
}

// methodLabel collapses arbitrary method selectors into the two known
// strategies so client input cannot blow up metric cardinality.
func methodLabel(m stitcher.Method) string {
	if m == stitcher.MethodConcat {
		return string(stitcher.MethodConcat)
	}
	return string(stitcher.MethodFilter)
}
