// Package upload validates incoming video uploads before any file is
// staged to disk or ffmpeg is invoked.
package upload
