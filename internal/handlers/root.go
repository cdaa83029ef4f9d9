package handlers

import (
	"net/http"

	"video-stitcher/internal/startup"
)

// ServiceInfo is the metadata document served at the API root.
type ServiceInfo struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Root returns service metadata: name, version, and the endpoint list.
func (h *Handlers) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, ServiceInfo{
		Name:    startup.ServiceName,
		Version: startup.Version,
		Endpoints: map[string]string{
			"/stitch":  "POST - Upload multiple video files to stitch",
			"/health":  "GET - Check API health and FFmpeg availability",
			"/version": "GET - Build information",
			"/metrics": "GET - Prometheus metrics",
		},
	})
}
