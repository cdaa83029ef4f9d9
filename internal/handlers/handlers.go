package handlers

import (
	"context"
	"io"

	"video-stitcher/internal/stitcher"
	"video-stitcher/internal/workspace"
)

// VideoStitcher is the engine interface the handlers depend on.
type VideoStitcher interface {
	Stitch(ctx context.Context, inputPaths []string, outputPath string, method stitcher.Method) (stitcher.Result, error)
	Version(ctx context.Context) (string, error)
}

// WorkspaceManager creates and destroys request-scoped workspaces.
type WorkspaceManager interface {
	Create(requestID string) (*workspace.Workspace, error)
	Stage(ws *workspace.Workspace, index int, filename string, r io.Reader) (string, error)
	OutputPath(ws *workspace.Workspace) string
	Destroy(ws *workspace.Workspace)
}

type Handlers struct {
	stitcher   VideoStitcher
	workspaces WorkspaceManager
}

func New(engine VideoStitcher, workspaces WorkspaceManager) *Handlers {
	return &Handlers{
		stitcher:   engine,
		workspaces: workspaces,
	}
}
