package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"video-stitcher/internal/logging"
	"video-stitcher/internal/metrics"
)

// Workspace is a private, request-scoped directory on disk.
type Workspace struct {
	// Dir is the absolute path of the directory.
	Dir string
	// RequestID is the short token of the request that owns this workspace.
	RequestID string
}

// Manager creates and destroys request workspaces under a base directory.
type Manager struct {
	baseDir string
}

// NewManager returns a Manager rooted at baseDir. When baseDir is empty
// the operating system temp directory is used.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// Create makes a fresh uniquely named directory for one request and
// returns it. The random suffix from os.MkdirTemp keeps concurrent
// requests collision-free even under the same request ID prefix.
func (m *Manager) Create(requestID string) (*Workspace, error) {
	dir, err := os.MkdirTemp(m.baseDir, "stitch-"+requestID+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		// Fall back to the path MkdirTemp gave us; it is already usable.
		abs = dir
	}

	metrics.WorkspacesActive.Inc()
	logging.Debug("Created workspace %s", abs)

	return &Workspace{Dir: abs, RequestID: requestID}, nil
}

// Stage writes one upload into the workspace under a zero-padded index
// prefix plus the original base filename, and returns the absolute path
// of the staged copy. The filename is reduced to its base to keep
// uploads from escaping the workspace.
func (m *Manager) Stage(ws *Workspace, index int, filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("video_%03d_%s", index, filepath.Base(filename))
	path := filepath.Join(ws.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create staged file %s: %w", name, err)
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write staged file %s: %w", name, err)
	}

	metrics.UploadBytesTotal.Add(float64(written))
	logging.Debug("Staged %s (%d bytes)", name, written)

	return path, nil
}

// OutputPath returns the path inside the workspace where the stitched
// result for this request should be produced.
func (m *Manager) OutputPath(ws *Workspace) string {
	return filepath.Join(ws.Dir, "stitched_video_"+ws.RequestID+".mp4")
}

// Destroy recursively deletes the workspace. Deletion errors are logged
// and swallowed: cleanup must never mask the primary request outcome.
// Destroying an already-removed workspace is a no-op.
func (m *Manager) Destroy(ws *Workspace) {
	if ws == nil {
		return
	}

	if _, err := os.Stat(ws.Dir); os.IsNotExist(err) {
		return
	}

	if err := os.RemoveAll(ws.Dir); err != nil {
		metrics.WorkspaceCleanupFailures.Inc()
		logging.Warn("Failed to remove workspace %s: %v", ws.Dir, err)
		return
	}

	metrics.WorkspacesActive.Dec()
	logging.Debug("Destroyed workspace %s", ws.Dir)
}
