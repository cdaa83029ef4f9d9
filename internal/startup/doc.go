// Package startup handles service configuration and initialization
// logging for the video stitching service.
//
// Configuration is read from environment variables (optionally seeded
// from a .env file by the caller). The package also carries build-time
// version information injected via -ldflags and the startup/shutdown
// banner logging used by main.
package startup
