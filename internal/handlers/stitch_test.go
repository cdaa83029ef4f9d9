package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"video-stitcher/internal/stitcher"
)

func TestStitchRejectsTooFewFiles(t *testing.T) {
	tests := []struct {
		name  string
		parts []uploadPart
	}{
		{"No files", nil},
		{"One file", []uploadPart{{"a.mp4", "aaa"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockStitcher{}
			h, baseDir := newTestHandlers(t, engine)

			rec := httptest.NewRecorder()
			h.StitchVideos(rec, multipartRequest(t, tt.parts, ""))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "at least 2 videos") {
				t.Errorf("Expected human-readable reason, got %s", rec.Body.String())
			}
			if engine.stitchCalls != 0 {
				t.Error("Engine must not run for an invalid request")
			}
			if workspaceCount(t, baseDir) != 0 {
				t.Error("No workspace may exist after a rejected request")
			}
		})
	}
}

func TestStitchRejectsBadExtensionBeforeStaging(t *testing.T) {
	engine := &mockStitcher{}
	h, baseDir := newTestHandlers(t, engine)

	rec := httptest.NewRecorder()
	h.StitchVideos(rec, multipartRequest(t, []uploadPart{
		{"a.mp4", "aaa"},
		{"b.txt", "bbb"},
	}, ""))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "b.txt") {
		t.Errorf("Expected reason to name the bad file, got %s", rec.Body.String())
	}
	if engine.stitchCalls != 0 {
		t.Error("Engine must not run when validation fails")
	}
	// Rejection happens before any file is staged, so no workspace was
	// ever created.
	if workspaceCount(t, baseDir) != 0 {
		t.Error("Expected no workspace on disk after validation failure")
	}
}

func TestStitchSuccess(t *testing.T) {
	engine := &mockStitcher{}
	h, baseDir := newTestHandlers(t, engine)

	rec := httptest.NewRecorder()
	h.StitchVideos(rec, multipartRequest(t, []uploadPart{
		{"first.mp4", "first-bytes"},
		{"second.mp4", "second-bytes"},
	}, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if got := rec.Header().Get("Content-Type"); got != "video/mp4" {
		t.Errorf("Expected video/mp4, got %s", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=stitched_video.mp4" {
		t.Errorf("Unexpected Content-Disposition: %s", got)
	}
	if got := rec.Header().Get("X-Video-Count"); got != "2" {
		t.Errorf("Expected X-Video-Count=2, got %s", got)
	}
	if got := rec.Header().Get("X-Method-Used"); got != "concat" {
		t.Errorf("Expected X-Method-Used=concat, got %s", got)
	}
	if got := rec.Header().Get("X-Request-ID"); len(got) != 8 {
		t.Errorf("Expected 8-character request ID, got %q", got)
	}

	if rec.Body.String() != "stitched-bytes" {
		t.Errorf("Expected stitched output bytes, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("X-Output-Size"); got != "14" {
		t.Errorf("Expected X-Output-Size to match body length, got %s", got)
	}

	// Engine received the staged copies in upload order.
	if len(engine.gotInputs) != 2 {
		t.Fatalf("Expected 2 staged inputs, got %d", len(engine.gotInputs))
	}
	if filepath.Base(engine.gotInputs[0]) != "video_000_first.mp4" {
		t.Errorf("Unexpected first staged name: %s", engine.gotInputs[0])
	}
	if filepath.Base(engine.gotInputs[1]) != "video_001_second.mp4" {
		t.Errorf("Unexpected second staged name: %s", engine.gotInputs[1])
	}

	if workspaceCount(t, baseDir) != 0 {
		t.Error("Workspace must be destroyed after the response")
	}
}

func TestStitchDefaultsToConcat(t *testing.T) {
	engine := &mockStitcher{}
	h, _ := newTestHandlers(t, engine)

	rec := httptest.NewRecorder()
	h.StitchVideos(rec, multipartRequest(t, []uploadPart{
		{"a.mp4", "a"},
		{"b.mp4", "b"},
	}, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if engine.gotMethod != stitcher.MethodConcat {
		t.Errorf("Expected default method concat, got %s", engine.gotMethod)
	}
}

func TestStitchPassesFilterMethod(t *testing.T) {
	engine := &mockStitcher{}
	h, _ := newTestHandlers(t, engine)

	rec := httptest.NewRecorder()
	h.StitchVideos(rec, multipartRequest(t, []uploadPart{
		{"a.mp4", "a"},
		{"b.mp4", "b"},
	}, "filter"))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if engine.gotMethod != stitcher.MethodFilter {
		t.Errorf("Expected method filter, got %s", engine.gotMethod)
	}
	if got := rec.Header().Get("X-Method-Used"); got != "filter" {
		t.Errorf("Expected X-Method-Used=filter, got %s", got)
	}
}

func TestStitchReportsActualMethodAfterFallback(t *testing.T) {
	// Engine reports filter although concat was requested, as happens
	// when the stream-copy attempt fell back to re-encoding.
	engine := &mockStitcher{
		stitchFn: func(_ context.Context, _ []string, outputPath string, _ stitcher.Method) (stitcher.Result, error) {
			if err := writeOutput(outputPath); err != nil {
				return stitcher.Result{}, err
			}
			return stitcher.Result{OutputPath: outputPath, Method: stitcher.MethodFilter}, nil
		},
	}
	h, _ := newTestHandlers(t, engine)

	rec := httptest.NewRecorder()
	h.StitchVideos(rec, multipartRequest(t, []uploadPart{
		{"a.mp4", "a"},
		{"b.mkv", "b"},
	}, "concat"))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Method-Used"); got != "filter" {
		t.Errorf("Expected X-Method-Used to reflect the actual strategy, got %s", got)
	}
}

func TestStitchProcessingErrorCarriesDiagnostics(t *testing.T) {
	engine := &mockStitcher{
		stitchFn: func(context.Context, []string, string, stitcher.Method) (stitcher.Result, error) {
			return stitcher.Result{}, &stitcher.ProcessingError{
				Strategy: "concat_filter",
				Stderr:   "Error while opening encoder for output stream",
				Err:      context.DeadlineExceeded,
			}
		},
	}
	h, baseDir := newTestHandlers(t, engine)

	rec := httptest.NewRecorder()
	h.StitchVideos(rec, multipartRequest(t, []uploadPart{
		{"a.mp4", "a"},
		{"b.mp4", "b"},
	}, ""))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Error while opening encoder") {
		t.Errorf("Expected ffmpeg diagnostics in body, got %s", rec.Body.String())
	}
	if workspaceCount(t, baseDir) != 0 {
		t.Error("Workspace must be destroyed after a processing failure")
	}
}

func TestStitchUnexpectedErrorDestroysWorkspace(t *testing.T) {
	engine := &mockStitcher{
		stitchFn: func(context.Context, []string, string, stitcher.Method) (stitcher.Result, error) {
			// Engine "succeeds" but never produces the output file,
			// so the response assembler fails to read it.
			return stitcher.Result{OutputPath: "/nonexistent/out.mp4", Method: stitcher.MethodConcat}, nil
		},
	}
	h, baseDir := newTestHandlers(t, engine)

	rec := httptest.NewRecorder()
	h.StitchVideos(rec, multipartRequest(t, []uploadPart{
		{"a.mp4", "a"},
		{"b.mp4", "b"},
	}, ""))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
	if workspaceCount(t, baseDir) != 0 {
		t.Error("Workspace must be destroyed after an unexpected failure")
	}
}

func TestStitchRejectsNonMultipartBody(t *testing.T) {
	h, _ := newTestHandlers(t, &mockStitcher{})

	req := httptest.NewRequest(http.MethodPost, "/stitch", strings.NewReader("not-multipart"))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.StitchVideos(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func writeOutput(path string) error {
	return os.WriteFile(path, []byte("fallback-bytes"), 0o644)
}
