// Package workspace manages request-scoped temporary directories that
// hold staged upload copies and the stitched output file.
//
// A workspace is created at the start of a stitch request and destroyed
// unconditionally when the request finishes, regardless of outcome.
// Workspaces are never shared across requests.
package workspace
