// Package output delivers utterance results to the user: transcripts go to
// standard output, optionally onto the system clipboard, and optionally to a
// desktop notification. Delivery failures are reported, never fatal.
package output
