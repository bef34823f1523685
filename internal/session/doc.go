// Package session owns the lifetime of one transcription run: it opens the
// audio stream, starts the segmentation loop, serves interactive commands,
// and tears everything down on cancellation.
package session
